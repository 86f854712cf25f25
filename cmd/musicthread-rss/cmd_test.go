package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/thread/abc" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"thread not found"}`))
			return
		}
		w.Write([]byte(`{
			"thread": {"key": "abc", "title": "Late Night", "description": "", "tags": [], "author": {"name": "Alice"}},
			"links": []
		}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRenderCmd(t *testing.T) {
	upstream := newUpstream(t)
	t.Setenv("API_BASE_URL", upstream.URL)

	t.Run("prints feed", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"render", "abc", "--env-file", "missing.env", "--log-level", "error"})

		require.NoError(t, cmd.ExecuteContext(context.Background()))

		parsed, err := gofeed.NewParser().ParseString(out.String())
		require.NoError(t, err)
		assert.Equal(t, "Late Night", parsed.Title)
		assert.Empty(t, parsed.Items)
	})

	t.Run("upstream error", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"render", "gone", "--env-file", "missing.env"})

		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "thread not found")
	})

	t.Run("requires key", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"render"})

		assert.Error(t, cmd.ExecuteContext(context.Background()))
	})
}

func TestServeStopsOnCancel(t *testing.T) {
	upstream := newUpstream(t)
	t.Setenv("API_BASE_URL", upstream.URL)
	t.Setenv("PORT", "18089")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve", "--env-file", "missing.env"})
	assert.NoError(t, cmd.ExecuteContext(ctx))
}
