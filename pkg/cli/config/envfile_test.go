package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/onesky-appdesc/pkg/cli/config"
)

func TestLoadEnvFile(t *testing.T) {
	t.Run("loads explicit file without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "onesky.env")
		gt.NoError(t, os.WriteFile(path, []byte("ONESKY_PROJECT_ID=from-file\nONESKY_PUBLIC_KEY=from-file\n"), 0600))

		t.Setenv("APPDESC_ENV_FILE", path)
		t.Setenv("ONESKY_PUBLIC_KEY", "from-env")
		t.Setenv("ONESKY_PROJECT_ID", "")
		os.Unsetenv("ONESKY_PROJECT_ID")

		gt.NoError(t, config.LoadEnvFile())
		gt.Equal(t, os.Getenv("ONESKY_PROJECT_ID"), "from-file")
		gt.Equal(t, os.Getenv("ONESKY_PUBLIC_KEY"), "from-env")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv("APPDESC_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
		gt.Error(t, config.LoadEnvFile())
	})

	t.Run("missing default file", func(t *testing.T) {
		t.Setenv("APPDESC_ENV_FILE", "")
		t.Chdir(t.TempDir())
		gt.NoError(t, config.LoadEnvFile())
	})
}
