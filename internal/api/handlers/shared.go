package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// defaultOwner is the owner used when no owner query parameter is supplied.
// The API is single-tenant by default but keeps data partitioned per owner.
const defaultOwner = "default"

// parseJSON decodes a request body into the given type, rejecting unknown
// fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(&v)
	return v, err
}

// ownerID returns the owner the request is scoped to.
func ownerID(r *http.Request) string {
	if owner := r.URL.Query().Get("owner"); owner != "" {
		return owner
	}
	return defaultOwner
}

// asOf returns the valuation timestamp for the request: the asOf query
// parameter (YYYY-MM-DD) when present, otherwise the current time.
func asOf(r *http.Request) time.Time {
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// mustParseDate parses a date already checked by validation.
func mustParseDate(date string) time.Time {
	t, _ := time.Parse("2006-01-02", date)
	return t
}
