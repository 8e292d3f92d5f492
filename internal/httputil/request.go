package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the given destination.
// Bodies are capped at 1MB; document content travels through dedicated
// endpoints with their own limits.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	return ParseJSONLimit(w, r, dest, 1<<20)
}

// ParseJSONLimit decodes JSON with a caller-chosen body cap.
func ParseJSONLimit(w http.ResponseWriter, r *http.Request, dest interface{}, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
