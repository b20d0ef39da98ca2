package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform failure envelope of the API.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// WriteJSON serializes v as the JSON response body with the given status code.
// Encoding failures are swallowed; by the time they can occur the header has
// already been written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform {ok:false, error:...} failure envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{OK: false, Error: message})
}
