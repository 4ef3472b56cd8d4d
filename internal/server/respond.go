package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// respondJSON writes payload as a JSON response body.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError writes the JSON error envelope the web clients expect.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondErrorf(w http.ResponseWriter, status int, format string, args ...any) {
	respondError(w, status, fmt.Sprintf(format, args...))
}

// decodeJSON decodes the request body into out, rejecting unknown fields
// and trailing garbage.
func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	if decoder.More() {
		return errors.New("request body contains trailing data")
	}
	return nil
}
