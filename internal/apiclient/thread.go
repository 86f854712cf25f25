package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/itchan-dev/musicthread-rss/internal/domain"
	internal_errors "github.com/itchan-dev/musicthread-rss/internal/errors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// upper bound for a thread payload, anything larger is treated as a broken response
const maxResponseSize = 10 << 20

var upstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "musicthread_upstream_requests_total",
		Help: "Requests made to the MusicThread thread API by outcome",
	},
	[]string{"outcome", "status"},
)

// GetThread fetches /api/v0/thread/{key}. Errors are *ErrorWithStatusCode
// except when ctx ends first, then the context error is returned wrapped.
func (c *APIClient) GetThread(ctx context.Context, key string) (*domain.ThreadResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v0/thread/"+url.PathEscape(key))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			upstreamRequestsTotal.WithLabelValues("canceled", "").Inc()
			return nil, errors.Wrapf(ctxErr, "fetch thread %s", key)
		}
		upstreamRequestsTotal.WithLabelValues("unreachable", "").Inc()
		return nil, internal_errors.UpstreamUnreachable(errors.Wrapf(err, "fetch thread %s", key))
	}
	defer resp.Body.Close()

	status := strconv.Itoa(resp.StatusCode)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			upstreamRequestsTotal.WithLabelValues("canceled", status).Inc()
			return nil, errors.Wrapf(ctxErr, "read thread %s", key)
		}
		upstreamRequestsTotal.WithLabelValues("unreachable", status).Inc()
		return nil, internal_errors.UpstreamUnreachable(errors.Wrapf(err, "read thread %s", key))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		upstreamRequestsTotal.WithLabelValues("rejected", status).Inc()
		// best effort, a non-JSON error body falls back to the generic message
		var errResp domain.ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		return nil, internal_errors.UpstreamRejected(resp.StatusCode, errResp.Message())
	}

	var thread domain.ThreadResponse
	if err := json.Unmarshal(body, &thread); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// valid JSON of the wrong shape is a payload problem, not a transport one
			upstreamRequestsTotal.WithLabelValues("malformed", status).Inc()
			return nil, internal_errors.GenerationFailure(errors.Wrapf(err, "decode thread %s", key))
		}
		upstreamRequestsTotal.WithLabelValues("unreachable", status).Inc()
		return nil, internal_errors.UpstreamUnreachable(errors.Wrapf(err, "decode thread %s", key))
	}

	upstreamRequestsTotal.WithLabelValues("ok", status).Inc()
	return &thread, nil
}
