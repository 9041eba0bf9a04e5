package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestPanicsAreRecovered(t *testing.T) {
	is := is.New(t)

	r := New("eventity-test")
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	is.Equal(w.Code, http.StatusInternalServerError)
}

func TestCORSPreflightAllowsPatch(t *testing.T) {
	is := is.New(t)

	r := New("eventity-test")
	r.Patch("/{entityId}", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodOptions, "/car", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	is.Equal(w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestErrorTypeHeaderIsExposed(t *testing.T) {
	is := is.New(t)

	r := New("eventity-test")
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	is.Equal(w.Header().Get("Access-Control-Expose-Headers"), "Eventity-Error-Type")
}

func TestUnknownOriginsAreNotAllowed(t *testing.T) {
	is := is.New(t)

	r := New("eventity-test", WithAllowedOrigins("http://allowed.example.com"))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://other.example.com")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	is.Equal(w.Header().Get("Access-Control-Allow-Origin"), "")

	req.Header.Set("Origin", "http://allowed.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	is.Equal(w.Header().Get("Access-Control-Allow-Origin"), "http://allowed.example.com")
}
