package setup

import (
	"time"

	"github.com/itchan-dev/musicthread-rss/internal/apiclient"
	"github.com/itchan-dev/musicthread-rss/internal/config"
	"github.com/itchan-dev/musicthread-rss/internal/feed"
	"github.com/itchan-dev/musicthread-rss/internal/handler"
	"github.com/itchan-dev/musicthread-rss/internal/middleware/ratelimit"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config    *config.Config
	Client    *apiclient.APIClient
	Generator *feed.Generator
	Handler   *handler.Handler
	Limiter   *ratelimit.Limiter // nil when rate limiting is disabled
}

// idle clients are forgotten after this long
const limiterExpiration = 15 * time.Minute

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := apiclient.New(cfg.APIBaseURL, cfg.UpstreamTimeout)
	generator := feed.NewGenerator(feed.SystemClock, feed.Options{
		SiteBaseURL:          cfg.SiteBaseURL,
		FeedBaseURL:          cfg.FeedBaseURL,
		SanitizeDescriptions: cfg.SanitizeDescriptions,
	})

	deps := &Dependencies{
		Config:    cfg,
		Client:    client,
		Generator: generator,
		Handler:   handler.New(client, generator, cfg),
	}
	if cfg.RateLimit.Enabled {
		deps.Limiter = ratelimit.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, limiterExpiration)
	}
	return deps, nil
}
