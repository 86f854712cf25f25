package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	internal_errors "github.com/itchan-dev/musicthread-rss/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorAndStatusCode(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, internal_errors.UpstreamRejected(http.StatusNotFound, "thread not found"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "thread not found")
		assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, fmt.Errorf("goroutine 1 [running]: secret"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "secret")
		assert.Contains(t, rr.Body.String(), internal_errors.MsgInternal)
	})
}

type payload struct {
	Name string   `json:"name" validate:"required"`
	Tags []string `json:"tags" validate:"required"`
}

func TestDecodeValidate(t *testing.T) {
	var p payload
	require.NoError(t, Decode(strings.NewReader(`{"name":"a","tags":[]}`), &p))
	assert.NoError(t, Validate(&p))

	var missing payload
	require.NoError(t, Decode(strings.NewReader(`{"name":"a"}`), &missing))
	assert.Error(t, Validate(&missing))

	var broken payload
	assert.Error(t, Decode(strings.NewReader(`<html>`), &broken))
}

func TestWriteErrorAndStatusCodeWrapped(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErrorAndStatusCode(rr, fmt.Errorf("handler: %w", internal_errors.InvalidMethod(http.MethodPost)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, internal_errors.MsgInvalidMethod+"\n", rr.Body.String())
}
