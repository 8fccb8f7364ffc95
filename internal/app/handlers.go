package app

import (
	"errors"
	"net/http"

	"github.com/klabast/wb-services/holiday-converter/internal/holiday"
	"github.com/rs/zerolog/log"
)

// EntryError describes one skipped holiday entry
type EntryError struct {
	Kind    string `json:"kind"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// ConvertResponse is returned by the convert endpoint
type ConvertResponse struct {
	Holidays  holiday.Collection `json:"holidays"`
	Errors    []EntryError       `json:"errors"`
	NoEntries bool               `json:"noEntries"`
	Warning   string             `json:"warning,omitempty"`
}

// NewEntryError maps a parser error to its API representation
func NewEntryError(err error) EntryError {
	var formatErr *holiday.DateFormatError
	var parseErr *holiday.DateParseError
	switch {
	case errors.As(err, &formatErr):
		return EntryError{Kind: "date_format", Date: formatErr.Date, Message: err.Error()}
	case errors.As(err, &parseErr):
		return EntryError{Kind: "date_parse", Date: parseErr.Date, Message: err.Error()}
	default:
		return EntryError{Kind: "unknown", Message: err.Error()}
	}
}

// NewConvertResponse builds the API view of a parse result
func NewConvertResponse(res holiday.Result) ConvertResponse {
	resp := ConvertResponse{
		Holidays:  res.Holidays,
		Errors:    make([]EntryError, 0, len(res.Errors)),
		NoEntries: res.NoEntries,
	}
	for _, err := range res.Errors {
		resp.Errors = append(resp.Errors, NewEntryError(err))
	}
	if res.NoEntries {
		resp.Warning = holiday.ErrNoEntries.Error()
	}
	return resp
}

// ServeIndex serves the converter form
func ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(IndexHTML); err != nil {
		log.Error().Err(err).Msg("error writing index HTML")
	}
}

// GetConfig returns what the form needs to render its help and example panel
func GetConfig(w http.ResponseWriter, r *http.Request) {
	example := holiday.Parse(ExampleInput)
	config := map[string]any{
		"exampleInput":  ExampleInput,
		"exampleOutput": example.Document(),
		"dateFormats":   AcceptedDateFormats,
		"types":         []holiday.Type{holiday.Mandatory, holiday.Optional},
		"exportFormats": []string{FormatJSON, FormatICS, FormatCSV},
		"maxInputBytes": MaxInputBytes,
	}
	writeJSON(w, http.StatusOK, config)
}

// parseRequest reads and parses the submitted listing, writing an error
// response and returning false when there is nothing to convert
func parseRequest(w http.ResponseWriter, r *http.Request) (holiday.Result, bool) {
	text, status, err := ReadInput(w, r)
	if err != nil {
		log.Warn().Err(err).Str("remoteAddr", r.RemoteAddr).Msg("failed to read input")
		if status == http.StatusRequestEntityTooLarge {
			http.Error(w, ErrInputTooLarge, status)
		} else {
			http.Error(w, ErrInvalidRequest, status)
		}
		return holiday.Result{}, false
	}
	if holiday.IsBlank(text) {
		http.Error(w, ErrEmptyInput, http.StatusBadRequest)
		return holiday.Result{}, false
	}

	res := holiday.Parse(text)
	log.Info().
		Int("inputBytes", len(text)).
		Int("holidays", len(res.Holidays)).
		Int("skipped", len(res.Errors)).
		Bool("noEntries", res.NoEntries).
		Msg("converted holiday listing")
	for _, err := range res.Errors {
		log.Debug().Err(err).Msg("skipped holiday entry")
	}
	return res, true
}

// HandleConvert parses the submitted listing and returns holidays plus
// every skipped entry
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	res, ok := parseRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, NewConvertResponse(res))
}

// HandleDownload converts the submitted listing and returns it as an
// attachment in JSON, ICS or CSV format
func HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if _, ok := ExportFormats[format]; !ok {
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}
	res, ok := parseRequest(w, r)
	if !ok {
		return
	}
	GenerateDownload(w, format, res.Holidays)
}

// NewRouter registers all routes; the /api routes are wrapped by auth
func NewRouter(auth *Authenticator) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ServeIndex)
	mux.HandleFunc("/api/config", GetConfig)
	mux.HandleFunc("/api/convert", auth.RequireAuth(HandleConvert))
	mux.HandleFunc("/api/download", auth.RequireAuth(HandleDownload))
	return mux
}
