package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorList is the error response body convention: a flat list of
// machine-readable error codes, e.g. {"errors":["INVALID_ID"]}.
type ErrorList struct {
	Errors []string `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful response (200 OK) with JSON data
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteErrors writes an error-list response with the given status code
func WriteErrors(w http.ResponseWriter, status int, codes ...string) {
	WriteJSON(w, status, ErrorList{Errors: codes})
}

// WriteEmpty writes a status code with no body
func WriteEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// WriteUnauthorized writes a 401 with an empty body. Unauthenticated
// responses deliberately carry no detail about why the token was rejected.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteEmpty(w, http.StatusUnauthorized)
}

// WriteNotFound writes a 404 with an empty body
func WriteNotFound(w http.ResponseWriter) {
	WriteEmpty(w, http.StatusNotFound)
}

// WriteInternalError writes a 500 error-list response
func WriteInternalError(w http.ResponseWriter) {
	WriteErrors(w, http.StatusInternalServerError, "INTERNAL_ERROR")
}
