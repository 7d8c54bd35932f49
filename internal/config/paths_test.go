package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := UserConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/documentarist", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := UserConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "documentarist"), got)
	})
}

func TestLocateReportsDefaultPathWhenNothingFound(t *testing.T) {
	cfgHome := t.TempDir()
	overridePlatform(t, t.TempDir(), cfgHome)

	path, found, err := locate()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, filepath.Join(cfgHome, appDirName, FileName), path)
}
