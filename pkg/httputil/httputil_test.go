package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteSuccess(rec, map[string]string{"hello": "world"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestWriteErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrors(rec, http.StatusBadRequest, "INVALID_PROPERTIES")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":["INVALID_PROPERTIES"]}`, rec.Body.String())
}

func TestEmptyBodyWriters(t *testing.T) {
	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		wantCode int
	}{
		{"unauthorized", WriteUnauthorized, http.StatusUnauthorized},
		{"not found", WriteNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestWriteInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"errors":["INTERNAL_ERROR"]}`, rec.Body.String())
}

func TestParseJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"walk the dog"}`))

	var dest struct {
		Text string `json:"text"`
	}
	require.NoError(t, ParseJSON(req, &dest))
	assert.Equal(t, "walk the dog", dest.Text)

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"text":`))
	assert.Error(t, ParseJSON(req, &dest))
}

func TestReadBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("payload"))
	body, err := ReadBody(req)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestReadBody_CapsOversizedPayloads(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", maxBodyBytes+1)))
	body, err := ReadBody(req)
	require.NoError(t, err)
	assert.Len(t, body, maxBodyBytes)
}

func TestPathVar(t *testing.T) {
	router := mux.NewRouter()
	var got string
	router.HandleFunc("/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		got = PathVar(r, "id")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/todos/abc-123", nil))
	assert.Equal(t, "abc-123", got)
}
