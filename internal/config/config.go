// Package config loads cmd/wireform's own settings: default output
// encoding and whether to colorize terminal output. This is distinct
// from construct's process-wide print settings (SetPrintFalseFlags and
// friends), which tune how a Record/List pretty-prints
// and is never read from a file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings is cmd/wireform's on-disk configuration.
type Settings struct {
	OutputEncoding string `toml:"output_encoding"`
	Color          bool   `toml:"color"`
}

// Default returns the settings cmd/wireform starts with absent a file.
func Default() Settings {
	return Settings{OutputEncoding: "yaml", Color: true}
}

type fileSettings struct {
	OutputEncoding string `toml:"output_encoding"`
	Color          bool   `toml:"color"`
}

// Load reads path, overlaying only the keys the file actually defines
// onto Default(). A missing path is not an error: Load returns the
// defaults unchanged.
func Load(path string) (Settings, error) {
	cfg := Default()

	var raw fileSettings
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if isNotExist(err) {
			return cfg, nil
		}
		return Settings{}, fmt.Errorf("load wireform config: %w", err)
	}

	if meta.IsDefined("output_encoding") {
		enc := strings.ToLower(strings.TrimSpace(raw.OutputEncoding))
		if enc != "yaml" && enc != "json" {
			return Settings{}, fmt.Errorf("load wireform config: unsupported output_encoding %q", enc)
		}
		cfg.OutputEncoding = enc
	}
	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}

	return cfg, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
