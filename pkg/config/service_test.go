package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhrncar/wattdash/pkg/pathing"
)

func TestLoad(t *testing.T) {
	t.Run("creates default file on first run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "wattdash.toml")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, pathing.GetDashboardDbPath(), cfg.DatabasePath)
		assert.Equal(t, "0.0.0.0", cfg.ListenAddress)
		assert.Equal(t, 8050, cfg.ListenPort)

		_, err = os.Stat(path)
		assert.NoError(t, err, "default config file was not written")
	})

	t.Run("reloads the written default unchanged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wattdash.toml")

		first, err := Load(path)
		require.NoError(t, err)

		second, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("reads an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wattdash.toml")
		content := "database_path = \"/tmp/custom.db\"\nlisten_address = \"127.0.0.1\"\nlisten_port = 9000\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.db", cfg.DatabasePath)
		assert.Equal(t, "127.0.0.1", cfg.ListenAddress)
		assert.Equal(t, 9000, cfg.ListenPort)
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wattdash.toml")
		require.NoError(t, os.WriteFile(path, []byte("listen_port = = 9000"), 0644))

		_, err := Load(path)

		assert.Error(t, err)
	})
}
