package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ----------------------------------------------------------------------------
// Config

// Config carries the handful of knobs either binary accepts as an override to
// its otherwise-fixed tables: the assembler's predefined symbols and the Jack
// compiler's XML indent width. Everything else (the grammar, the token tables,
// the HACK encoding tables) is normative and not configurable, per the platform
// reference; this is deliberately a thin, optional layer on top of it.
type Config struct {
	PredefinedSymbols map[string]uint16 `toml:"predefined_symbols"`
	XMLIndentWidth    int               `toml:"xml_indent_width"`
}

// Default returns the Config a binary uses when no '--config' flag is given.
func Default() Config {
	return Config{XMLIndentWidth: 2}
}

// Load decodes a TOML file at 'path' into a Config seeded with Default values, so
// a file only needs to set the keys it wants to override.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	if cfg.XMLIndentWidth <= 0 {
		return Config{}, fmt.Errorf("config %q: 'xml_indent_width' must be positive", path)
	}

	return cfg, nil
}

// LoadOptional is Load, except a missing file silently falls back to Default
// rather than failing: the '--config' flag is an override, not a requirement.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}
