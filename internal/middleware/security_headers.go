package middleware

import (
	"net/http"
)

// FeedCSP forbids everything: responses are XML or plain text and must never
// be rendered as a page.
const FeedCSP = "default-src 'none'; frame-ancestors 'none'"

const hstsValue = "max-age=31536000; includeSubDomains"

// feedHeaders go on every response.
var feedHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", FeedCSP},
	// feeds are fetched by readers on other origins
	{"Cross-Origin-Resource-Policy", "cross-origin"},
}

// FeedSecurityHeaders sets headers for a service that only answers with
// feeds and plain text. hsts must only be enabled when served over TLS.
func FeedSecurityHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			for _, h := range feedHeaders {
				headers.Set(h[0], h[1])
			}
			if hsts {
				headers.Set("Strict-Transport-Security", hstsValue)
			}
			next.ServeHTTP(w, r)
		})
	}
}
