// Package config reads the optional rpnc TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default settings
const (
	DefaultDB          = "rpnc.db"
	DefaultPersistMode = "on_demand"
	DefaultPrompt      = "rpnc> "
	DefaultHistory     = ".rpnc_history"
)

// Config holds settings that command-line flags may override.
type Config struct {
	DB          string   `toml:"db"`           // SQLite macro store; "" disables it
	PersistMode string   `toml:"persist_mode"` // on_demand, always or never
	Macros      []string `toml:"macros"`       // macro files loaded at start
	NoStdlib    bool     `toml:"no_stdlib"`
	Prelude     string   `toml:"prelude"` // replaces the built-in prelude
	Prompt      string   `toml:"prompt"`
	History     string   `toml:"history"` // REPL history file, relative to home
	Trace       bool     `toml:"trace"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DB:          DefaultDB,
		PersistMode: DefaultPersistMode,
		Prompt:      DefaultPrompt,
		History:     DefaultHistory,
	}
}

// DefaultPath returns the per-user config file location, or "" if the
// platform has no config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rpnc", "config.toml")
}

// Parse decodes TOML over the defaults. Unknown keys are an error so typos
// do not go unnoticed.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Load reads and parses a config file. A missing file returns an error
// matching os.ErrNotExist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// HistoryPath resolves the history file against the home directory.
func (c Config) HistoryPath() string {
	if c.History == "" || filepath.IsAbs(c.History) {
		return c.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.History
	}
	return filepath.Join(home, c.History)
}
