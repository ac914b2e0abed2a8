package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestCheckHTTPMethod(t *testing.T) {
	h := newTestHandler()
	router := chi.NewRouter()
	router.Get("/items", func(w http.ResponseWriter, r *http.Request) {})
	router.Post("/items", func(w http.ResponseWriter, r *http.Request) {})
	router.Post("/logout", func(w http.ResponseWriter, r *http.Request) {})
	router.MethodNotAllowed(h.CheckHTTPMethod(router))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "GET on POST-only route", method: http.MethodGet, path: "/logout", wantStatus: http.StatusMethodNotAllowed, wantAllow: "POST"},
		{name: "DELETE lists every method", method: http.MethodDelete, path: "/items", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, POST"},
		{name: "registered method passes", method: http.MethodGet, path: "/items", wantStatus: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Allow"))
		})
	}
}

func TestCheckHTTPMethod_NoExactPatternIsNotFound(t *testing.T) {
	h := newTestHandler()
	router := chi.NewRouter()
	router.Post("/logout", func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	h.CheckHTTPMethod(router)(rr, httptest.NewRequest(http.MethodGet, "/logout/", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, rr.Header().Get("Allow"))
}
