package server

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/jeopardy/internal/config"
)

// TestResolveListenAddress covers override, config and invalid inputs.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	addr, err := resolveListenAddress(":8080", "127.0.0.1:9090")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", addr)

	addr, err = resolveListenAddress("0.0.0.0:8080", "")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", addr)

	_, err = resolveListenAddress("", "")
	require.ErrorIs(t, err, ErrNoServerAddress)

	_, err = resolveListenAddress("no-port", "")
	require.Error(t, err)
}

// TestApplyLogLevel rejects unknown names.
func TestApplyLogLevel(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, applyLogLevel("info", "chatty"), ErrUnknownLogLevel)
	require.ErrorIs(t, applyLogLevel("chatty", ""), ErrUnknownLogLevel)
}

// writeConfig stores settings listening on ephemeral ports.
func writeConfig(t *testing.T) string {
	t.Helper()

	cfg := config.Default()
	cfg.HTTPAddress = "127.0.0.1:0"
	cfg.GRPCAddress = "127.0.0.1:0"
	cfg.APIURL = "http://127.0.0.1:1/api"

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(path, cfg))

	return path
}

// TestServer_Lifecycle serves health checks and stops when the context ends.
func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := New(ctx, &Options{ConfigPath: writeConfig(t)})
	require.NoError(t, err)

	done := make(chan error, 1)

	go func() {
		done <- s.Serve(ctx)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+s.HTTPAddr()+"/health", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, s.GRPCAddr())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}

// TestNew_InvalidOverrides fails fast before binding anything.
func TestNew_InvalidOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t)

	_, err := New(context.Background(), &Options{ConfigPath: path, LogLevel: "loud"})
	require.ErrorIs(t, err, ErrUnknownLogLevel)

	_, err = New(context.Background(), &Options{ConfigPath: path, HTTPAddress: "256.0.0.1:bad"})
	require.Error(t, err)
}
