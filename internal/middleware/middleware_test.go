package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EmpoweredVote/rental-search/internal/middleware"
)

// call wraps a simple 200-OK inner handler in the CORS middleware and
// returns the recorded response.
func call(t *testing.T, origins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.CORS(origins)(inner)
	req := httptest.NewRequest(method, "/test", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestCORS_AllowedOrigin verifies that an allow-listed origin is echoed back.
func TestCORS_AllowedOrigin(t *testing.T) {
	rec := call(t, []string{"https://search.example.org"}, http.MethodGet, "https://search.example.org")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://search.example.org" {
		t.Errorf("expected origin to be echoed, got %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("expected Vary: Origin, got %q", got)
	}
}

// TestCORS_UnknownOrigin verifies that other origins get no allow header but
// the request still reaches the handler.
func TestCORS_UnknownOrigin(t *testing.T) {
	rec := call(t, []string{"https://search.example.org"}, http.MethodGet, "https://evil.example.com")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got == "" {
		t.Error("expected expose-headers to always be set")
	}
}

// TestCORS_Preflight verifies that OPTIONS requests short-circuit with 204.
func TestCORS_Preflight(t *testing.T) {
	rec := call(t, []string{"https://search.example.org"}, http.MethodOptions, "https://search.example.org")

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

// TestAllowedOrigins verifies parsing of CORS_ALLOWED_ORIGINS.
func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.org/ ,,https://b.example.org")

	got := middleware.AllowedOrigins()
	want := []string{"https://a.example.org", "https://b.example.org"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("origin %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	if got := middleware.AllowedOrigins(); len(got) == 0 {
		t.Error("expected default origins when unset")
	}
}
