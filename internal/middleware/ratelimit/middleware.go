package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	internal_errors "github.com/itchan-dev/musicthread-rss/internal/errors"
	"github.com/itchan-dev/musicthread-rss/internal/logger"
	"github.com/itchan-dev/musicthread-rss/internal/utils"
)

// Middleware rejects requests from clients that ran out of tokens with 429.
func Middleware(l *Limiter, clientKey func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, err := clientKey(r)
			if err != nil {
				logger.FromContext(r.Context()).Warn("can't identify client for rate limiting", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !l.Allow(client) {
				err := internal_errors.RateLimited(client)
				logger.FromContext(r.Context()).Info("request rate limited", "client", client)
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP identifies clients by the TCP peer address.
func ClientIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// no port
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}

// ForwardedClientIP trusts the first X-Forwarded-For entry. Only use it
// behind a proxy that overwrites the header.
func ForwardedClientIP(r *http.Request) (string, error) {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip, nil
		}
	}
	return ClientIP(r)
}
