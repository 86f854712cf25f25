package handler

import (
	"context"

	"github.com/itchan-dev/musicthread-rss/internal/config"
	"github.com/itchan-dev/musicthread-rss/internal/domain"
)

type ThreadFetcher interface {
	GetThread(ctx context.Context, key string) (*domain.ThreadResponse, error)
}

type FeedRenderer interface {
	Render(payload *domain.ThreadResponse) ([]byte, error)
}

type Handler struct {
	fetcher ThreadFetcher
	feed    FeedRenderer
	cfg     *config.Config
}

func New(fetcher ThreadFetcher, feed FeedRenderer, cfg *config.Config) *Handler {
	return &Handler{fetcher, feed, cfg}
}
