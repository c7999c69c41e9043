package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vannrr/fmark/internal/config"
	"gotest.tools/v3/assert"
)

// setHome points HOME at a temp dir so defaults and the config file path
// resolve inside the test sandbox.
func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvDefaults, "")
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := setHome(t)

	cfg, help, err := config.Load(nil)
	assert.NilError(t, err)
	assert.Assert(t, !help)
	assert.Equal(t, cfg.Menu, "bemenu")
	assert.Equal(t, cfg.Browser, "firefox")
	assert.Equal(t, cfg.Path, filepath.Join(home, ".bookmarks"))
	assert.Equal(t, cfg.Rows, 20)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	setHome(t)
	t.Setenv(config.EnvDefaults, "--menu dmenu --rows 15")

	cfg, _, err := config.Load([]string{"-m", "fzf"})
	assert.NilError(t, err)
	assert.Equal(t, cfg.Menu, "fzf")
	// Env value survives where flags are silent.
	assert.Equal(t, cfg.Rows, 15)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	home := setHome(t)
	configDir := filepath.Join(home, ".config", "fmark")
	assert.NilError(t, os.MkdirAll(configDir, 0755))
	assert.NilError(t, os.WriteFile(
		filepath.Join(configDir, "config.json"),
		[]byte(`{"browser": "chromium", "rows": 30}`),
		0644,
	))

	cfg, _, err := config.Load(nil)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Browser, "chromium")
	assert.Equal(t, cfg.Rows, 30)
	// Unset fields keep their defaults.
	assert.Equal(t, cfg.Menu, "bemenu")
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	home := setHome(t)
	configDir := filepath.Join(home, ".config", "fmark")
	assert.NilError(t, os.MkdirAll(configDir, 0755))
	assert.NilError(t, os.WriteFile(
		filepath.Join(configDir, "config.json"),
		[]byte(`{"menu": "rofi"}`),
		0644,
	))
	t.Setenv(config.EnvDefaults, "--menu dmenu")

	cfg, _, err := config.Load(nil)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Menu, "dmenu")
}

func TestLoad_RowsClamped(t *testing.T) {
	setHome(t)

	cfg, _, err := config.Load([]string{"--rows", "9000"})
	assert.NilError(t, err)
	assert.Equal(t, cfg.Rows, 255)

	cfg, _, err = config.Load([]string{"--rows", "0"})
	assert.NilError(t, err)
	assert.Equal(t, cfg.Rows, 1)
}

func TestLoad_UnsupportedMenu(t *testing.T) {
	setHome(t)

	_, _, err := config.Load([]string{"--menu", "ed"})
	assert.ErrorContains(t, err, "unsupported menu program")
}

func TestLoad_UnknownFlag(t *testing.T) {
	setHome(t)

	_, _, err := config.Load([]string{"--frobnicate"})
	assert.Assert(t, err != nil)
}

func TestLoad_Help(t *testing.T) {
	setHome(t)

	_, help, err := config.Load([]string{"-h"})
	assert.NilError(t, err)
	assert.Assert(t, help)
}
