package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/jeopardy/internal/config"
)

// TestInitConfig writes loadable defaults and refuses to overwrite without force.
func TestInitConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	written, err := InitConfig(path, false)
	require.NoError(t, err)
	require.Equal(t, path, written)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultHTTPAddress, cfg.HTTPAddress)
	require.Equal(t, config.DefaultAPIURL, cfg.APIURL)

	_, err = InitConfig(path, false)
	require.ErrorIs(t, err, ErrConfigExists)

	_, err = InitConfig(path, true)
	require.NoError(t, err)
}
