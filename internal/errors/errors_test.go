package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamRejected(t *testing.T) {
	t.Run("includes upstream message", func(t *testing.T) {
		err := UpstreamRejected(http.StatusNotFound, "thread not found")

		assert.Equal(t, http.StatusNotFound, err.StatusCode)
		assert.Equal(t, "Failed to fetch response from MusicThread (thread not found)", err.Error())
		assert.Equal(t, KindUpstreamRejected, err.Kind)
	})

	t.Run("generic message without upstream message", func(t *testing.T) {
		err := UpstreamRejected(http.StatusBadGateway, "")

		assert.Equal(t, http.StatusBadGateway, err.StatusCode)
		assert.Equal(t, MsgUpstreamFailure, err.Error())
	})
}

func TestInvalidPath(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, InvalidPath("/x", http.StatusNotFound).StatusCode)
	assert.Equal(t, http.StatusBadRequest, InvalidPath("/x", http.StatusBadRequest).StatusCode)
	assert.Equal(t, http.StatusNotFound, InvalidPath("/x", 0).StatusCode)
	assert.Equal(t, http.StatusNotFound, InvalidPath("/x", http.StatusInternalServerError).StatusCode)
}

func TestUpstreamUnreachableHidesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp 10.0.0.1:443: connection refused")
	err := UpstreamUnreachable(cause)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.NotContains(t, err.Error(), "10.0.0.1")
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("render: %w", GenerationFailure(context.Canceled))

	assert.Equal(t, KindGenerationFailure, KindOf(wrapped))
	assert.Equal(t, KindInvalidMethod, KindOf(InvalidMethod(http.MethodPost)))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, "upstream_unreachable", KindUpstreamUnreachable.String())
}

func TestRateLimited(t *testing.T) {
	err := RateLimited("203.0.113.7")

	assert.Equal(t, http.StatusTooManyRequests, err.StatusCode)
	assert.Equal(t, MsgRateLimited, err.Error())
	assert.Equal(t, "rate_limited", KindOf(err).String())
}
