package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("plain http", func(t *testing.T) {
		rr := httptest.NewRecorder()
		FeedSecurityHeaders(false)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/thread/abc", nil))

		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
		assert.Equal(t, FeedCSP, rr.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "cross-origin", rr.Header().Get("Cross-Origin-Resource-Policy"))
		assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
	})

	t.Run("hsts", func(t *testing.T) {
		rr := httptest.NewRecorder()
		FeedSecurityHeaders(true)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, hstsValue, rr.Header().Get("Strict-Transport-Security"))
	})
}
