package handler

import (
	"net/http"
	"net/url"
	"strings"

	internal_errors "github.com/itchan-dev/musicthread-rss/internal/errors"
)

// ParseThreadKey extracts <key> from an escaped path of the form
// /thread/<key>. The key is opaque, MusicThread decides if it exists.
func ParseThreadKey(escapedPath string) (string, bool) {
	components := strings.Split(strings.TrimPrefix(escapedPath, "/"), "/")
	if len(components) != 2 {
		return "", false
	}
	if components[0] != "thread" {
		return "", false
	}
	if len(components[1]) == 0 {
		return "", false
	}

	key, err := url.PathUnescape(components[1])
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// Validate returns the thread key of a feed request, or an
// *ErrorWithStatusCode when the request can't be served.
func (h *Handler) Validate(r *http.Request) (string, error) {
	if r.Method != http.MethodGet {
		return "", internal_errors.InvalidMethod(r.Method)
	}

	key, ok := ParseThreadKey(r.URL.EscapedPath())
	if !ok {
		return "", internal_errors.InvalidPath(r.URL.Path, h.invalidPathStatus())
	}
	return key, nil
}

func (h *Handler) invalidPathStatus() int {
	if h.cfg == nil {
		return http.StatusNotFound
	}
	return h.cfg.InvalidPathStatus
}
