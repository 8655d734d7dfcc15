package web

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tcm/internal/config"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Addr:            "127.0.0.1:0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestServerServesUntilCancelled(t *testing.T) {
	f := newFixture(t)
	srv, err := NewServer(testServerConfig(), f.site, discard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	client := &http.Client{Timeout: 5 * time.Second}
	defer client.CloseIdleConnections()

	resp, err := client.Get("http://" + srv.Addr() + "/debug/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"requests"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	// a second shutdown is harmless
	assert.NoError(t, srv.Shutdown())
}

func TestServerListenError(t *testing.T) {
	cfg := testServerConfig()
	cfg.Addr = "256.0.0.1:80"

	_, err := NewServer(cfg, http.NotFoundHandler(), discard)
	assert.Error(t, err)
}
