package app

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/klabast/wb-services/holiday-converter/internal/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `15-08-2025 Friday Independence Day Mandatory
31-02-2025 Monday Nonexistent Day Mandatory
1-Jan-2024 Monday New Year Optional
09-Apr-24 Tuesday Ugadi / Gudi Padwa Mandatory`

func jsonRequest(t *testing.T, target, text string) *http.Request {
	body, err := json.Marshal(map[string]string{"text": text})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target, text string) *http.Request {
	form := url.Values{"text": {text}}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, target, text string) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", text))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeConvert(t *testing.T, w *httptest.ResponseRecorder) ConvertResponse {
	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleConvertJSON(t *testing.T) {
	w := httptest.NewRecorder()
	HandleConvert(w, jsonRequest(t, "/api/convert", sampleListing))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	resp := decodeConvert(t, w)
	require.Len(t, resp.Holidays, 2)
	assert.Equal(t, "Independence Day", resp.Holidays[0].Subject)
	assert.Equal(t, "2025-08-16", resp.Holidays[0].End.String())
	assert.Equal(t, "Ugadi / Gudi Padwa", resp.Holidays[1].Subject)
	assert.False(t, resp.NoEntries)
	assert.Empty(t, resp.Warning)

	require.Len(t, resp.Errors, 2)
	assert.Equal(t, EntryError{
		Kind:    "date_parse",
		Date:    "31-02-2025",
		Message: `date "31-02-2025" could not be parsed: day out of range`,
	}, resp.Errors[0])
	assert.Equal(t, "date_format", resp.Errors[1].Kind)
	assert.Equal(t, "1-Jan-2024", resp.Errors[1].Date)
}

func TestHandleConvertForm(t *testing.T) {
	w := httptest.NewRecorder()
	HandleConvert(w, formRequest("/api/convert", "26-Jan-24 Friday Republic Day Mandatory"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeConvert(t, w)
	require.Len(t, resp.Holidays, 1)
	assert.Equal(t, "2024-01-26", resp.Holidays[0].Start.String())
}

func TestHandleConvertMultipart(t *testing.T) {
	w := httptest.NewRecorder()
	HandleConvert(w, multipartRequest(t, "/api/convert", "26-Jan-24 Friday Republic Day Mandatory"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeConvert(t, w)
	require.Len(t, resp.Holidays, 1)
	assert.Equal(t, "Republic Day", resp.Holidays[0].Subject)
}

func TestHandleConvertKeepsSubjectCharacters(t *testing.T) {
	w := httptest.NewRecorder()
	HandleConvert(w, jsonRequest(t, "/api/convert", "26-Jan-24 Friday Louis XIV\u2122 Day \u00bd \u2163 Mandatory"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeConvert(t, w)
	require.Len(t, resp.Holidays, 1)
	assert.Equal(t, "Louis XIV\u2122 Day \u00bd \u2163", resp.Holidays[0].Subject)
}

func TestHandleConvertNoEntries(t *testing.T) {
	w := httptest.NewRecorder()
	HandleConvert(w, jsonRequest(t, "/api/convert", "just some notes"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"holidays":[]`)
	assert.Contains(t, w.Body.String(), `"errors":[]`)

	resp := decodeConvert(t, w)
	assert.True(t, resp.NoEntries)
	assert.Equal(t, holiday.ErrNoEntries.Error(), resp.Warning)
}

func TestHandleConvertBlankInput(t *testing.T) {
	w := httptest.NewRecorder()
	HandleConvert(w, jsonRequest(t, "/api/convert", "  \n\t "))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrEmptyInput+"\n", w.Body.String())
}

func TestHandleConvertMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	HandleConvert(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleConvertTooLarge(t *testing.T) {
	MaxInputBytes = 16
	defer func() { MaxInputBytes = DefaultMaxInputBytes }()

	w := httptest.NewRecorder()
	HandleConvert(w, jsonRequest(t, "/api/convert", sampleListing))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHandleConvertMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	HandleConvert(w, httptest.NewRequest(http.MethodGet, "/api/convert", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleDownloadJSON(t *testing.T) {
	w := httptest.NewRecorder()
	HandleDownload(w, formRequest("/api/download", sampleListing))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=holidays.json", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var expected bytes.Buffer
	require.NoError(t, WriteJSON(&expected, holiday.Parse(sampleListing).Holidays))
	assert.Equal(t, expected.String(), w.Body.String())
}

func TestHandleDownloadICS(t *testing.T) {
	w := httptest.NewRecorder()
	HandleDownload(w, formRequest("/api/download?format=ics", sampleListing))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=holidays.ics", w.Header().Get("Content-Disposition"))
	assert.Equal(t, 2, strings.Count(w.Body.String(), "BEGIN:VEVENT"))
}

func TestHandleDownloadInvalidFormat(t *testing.T) {
	w := httptest.NewRecorder()
	HandleDownload(w, formRequest("/api/download?format=pdf", sampleListing))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrInvalidFormat+"\n", w.Body.String())
}

func TestGetConfig(t *testing.T) {
	w := httptest.NewRecorder()
	GetConfig(w, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var config struct {
		ExampleInput  string           `json:"exampleInput"`
		ExampleOutput holiday.Document `json:"exampleOutput"`
		DateFormats   []string         `json:"dateFormats"`
		Types         []string         `json:"types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &config))
	assert.Equal(t, ExampleInput, config.ExampleInput)
	require.Len(t, config.ExampleOutput.Holidays, 3)
	assert.Equal(t, "May Day", config.ExampleOutput.Holidays[2].Subject)
	assert.Len(t, config.DateFormats, 2)
	assert.Equal(t, []string{"Mandatory", "Optional"}, config.Types)
}

func TestRouter(t *testing.T) {
	IndexHTML = []byte("<html>form</html>")
	defer func() { IndexHTML = nil }()
	router := NewRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>form</html>", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(t, "/api/convert", sampleListing))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterWithAuth(t *testing.T) {
	hash, err := HashPassword(testPassword)
	require.NoError(t, err)
	router := NewRouter(&Authenticator{user: "admin", hash: hash})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(t, "/api/convert", sampleListing))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := jsonRequest(t, "/api/convert", sampleListing)
	req.SetBasicAuth("admin", testPassword)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
