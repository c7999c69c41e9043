// Package config resolves runtime settings for one invocation. Precedence,
// lowest first: built-in defaults, the JSON config file, FMARK_DEFAULT_OPTS,
// explicit command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// BuiltinMenu selects the in-process picker instead of an external program.
const BuiltinMenu = "builtin"

// EnvDefaults is the environment variable holding default flags, e.g.
// "--menu dmenu --rows 15".
const EnvDefaults = "FMARK_DEFAULT_OPTS"

const (
	defaultMenu     = "bemenu"
	defaultBrowser  = "firefox"
	defaultFileName = ".bookmarks"
	defaultRows     = 20

	minRows = 1
	maxRows = 255
)

var supportedMenus = []string{"bemenu", "dmenu", "rofi", "fzf", BuiltinMenu}

// Config holds the resolved settings for one invocation.
type Config struct {
	Menu    string `json:"menu"`
	Browser string `json:"browser"`
	Path    string `json:"path"`
	Rows    int    `json:"rows"`
}

// Default returns the built-in settings, with the bookmark file in the
// user's home directory.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Menu:    defaultMenu,
		Browser: defaultBrowser,
		Path:    filepath.Join(home, defaultFileName),
		Rows:    defaultRows,
	}, nil
}

// DefaultConfigFilePath returns ~/.config/fmark/config.json.
func DefaultConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fmark", "config.json"), nil
}

// Load resolves the configuration from all four sources. help is true when
// -h/--help was asked for; the caller prints usage and exits.
func Load(args []string) (cfg Config, help bool, err error) {
	cfg, err = Default()
	if err != nil {
		return Config{}, false, err
	}

	configFile, err := DefaultConfigFilePath()
	if err == nil {
		if err := cfg.applyFile(configFile); err != nil {
			return Config{}, false, err
		}
	}

	if env := os.Getenv(EnvDefaults); strings.TrimSpace(env) != "" {
		if _, err := cfg.applyFlags(strings.Fields(env)); err != nil {
			return Config{}, false, fmt.Errorf("%s: %w", EnvDefaults, err)
		}
	}

	help, err = cfg.applyFlags(args)
	if err != nil {
		return Config{}, false, err
	}
	if help {
		return cfg, true, nil
	}

	// The row hint is clamped, not rejected; every supported program
	// copes with any value in this range.
	if cfg.Rows < minRows {
		cfg.Rows = minRows
	} else if cfg.Rows > maxRows {
		cfg.Rows = maxRows
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, false, err
	}
	return cfg, false, nil
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if !slices.Contains(supportedMenus, c.Menu) {
		return fmt.Errorf("unsupported menu program: %s", c.Menu)
	}
	if c.Browser == "" {
		return errors.New("browser must not be empty")
	}
	if c.Path == "" {
		return errors.New("bookmark file path must not be empty")
	}
	return nil
}

// applyFile overlays settings from the JSON config file. A missing file is
// fine; fields the file omits keep their current values.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var overlay struct {
		Menu    *string `json:"menu"`
		Browser *string `json:"browser"`
		Path    *string `json:"path"`
		Rows    *int    `json:"rows"`
	}
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if overlay.Menu != nil {
		c.Menu = *overlay.Menu
	}
	if overlay.Browser != nil {
		c.Browser = *overlay.Browser
	}
	if overlay.Path != nil {
		c.Path = *overlay.Path
	}
	if overlay.Rows != nil {
		c.Rows = *overlay.Rows
	}
	return nil
}

// applyFlags overlays one set of flag-style arguments onto the config.
// Short and long spellings are both registered, so -m and --menu work
// alike.
func (c *Config) applyFlags(args []string) (bool, error) {
	fs := flag.NewFlagSet("fmark", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var help bool
	for _, name := range []string{"m", "menu"} {
		fs.StringVar(&c.Menu, name, c.Menu, "menu program")
	}
	for _, name := range []string{"b", "browser"} {
		fs.StringVar(&c.Browser, name, c.Browser, "browser program")
	}
	for _, name := range []string{"p", "path"} {
		fs.StringVar(&c.Path, name, c.Path, "bookmark file path")
	}
	for _, name := range []string{"r", "rows"} {
		fs.IntVar(&c.Rows, name, c.Rows, "menu rows")
	}
	for _, name := range []string{"h", "help"} {
		fs.BoolVar(&help, name, help, "show help")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	if fs.NArg() > 0 {
		return false, fmt.Errorf("unrecognized argument %q", fs.Arg(0))
	}
	return help, nil
}
