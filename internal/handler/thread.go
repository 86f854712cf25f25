package handler

import (
	"errors"
	"log/slog"
	"net/http"

	internal_errors "github.com/itchan-dev/musicthread-rss/internal/errors"
	"github.com/itchan-dev/musicthread-rss/internal/logger"
	"github.com/itchan-dev/musicthread-rss/internal/utils"
)

const feedContentType = "application/xml;charset=UTF-8"

// ThreadFeed serves GET /thread/{key} as an Atom feed.
func (h *Handler) ThreadFeed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	key, err := h.Validate(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	log = log.With("thread_key", key)

	thread, err := h.fetcher.GetThread(r.Context(), key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	feed, err := h.feed.Render(thread)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if r.Context().Err() != nil {
		log.Debug("request cancelled before feed was written")
		return
	}
	w.Header().Set("Content-Type", feedContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(feed); err != nil {
		log.Warn("failed to write feed", "error", err)
		return
	}
	log.Debug("feed served", "entries", len(thread.Links), "bytes", len(feed))
}

// writeError logs err with its internal cause and writes the client facing
// part. Nothing is written once the request context is done.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	if ctxErr := r.Context().Err(); ctxErr != nil {
		log.Debug("request cancelled", "error", err)
		return
	}

	kind := internal_errors.KindOf(err)
	level := slog.LevelError
	switch kind {
	case internal_errors.KindInvalidMethod, internal_errors.KindInvalidPath:
		level = slog.LevelInfo
	case internal_errors.KindUpstreamRejected:
		level = slog.LevelWarn
	}
	log.Log(r.Context(), level, "feed request failed", "kind", kind.String(), "error", errorDetail(err))

	utils.WriteErrorAndStatusCode(w, err)
}

func errorDetail(err error) string {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) && e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return err.Error()
}
