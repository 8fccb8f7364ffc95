package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/klabast/wb-services/holiday-converter/internal/holiday"
	"github.com/rs/zerolog/log"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// ReadInput extracts the raw listing from either a JSON body
// ({"text": "..."}) or a form field named text, url-encoded or multipart.
// The result is normalized.
func ReadInput(w http.ResponseWriter, r *http.Request) (string, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxInputBytes)

	var text string
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", inputErrorStatus(err), err
		}
		text = req.Text
	} else if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxInputBytes); err != nil {
			return "", inputErrorStatus(err), err
		}
		text = r.PostFormValue("text")
	} else {
		if err := r.ParseForm(); err != nil {
			return "", inputErrorStatus(err), err
		}
		text = r.PostFormValue("text")
	}
	return holiday.Normalize(text), http.StatusOK, nil
}

func inputErrorStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("error encoding response")
	}
}
