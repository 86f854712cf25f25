package handler

import (
	"io"
	"net/http"
)

// Health reports liveness only. MusicThread is not contacted, an upstream
// outage shows up as feed errors instead.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}
