package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// configFileName is looked up in the target directory when --config is
// not given.
const configFileName = "taproot.toml"

// config is the optional taproot.toml project file. Flags override it.
type config struct {
	// DB is the database path, relative to the target directory unless
	// absolute.
	DB string `toml:"db"`

	// Externs and Sources are doublestar glob patterns relative to the
	// target directory.
	Externs []string `toml:"externs"`
	Sources []string `toml:"sources"`

	// ComplexFunctionDefs accepts conditionals of two function literals
	// as known function values.
	ComplexFunctionDefs bool `toml:"complex_function_defs"`
}

// defaultConfig is used when no config file exists.
func defaultConfig() config {
	return config{
		DB:      filepath.Join(".taproot", "index.db"),
		Sources: []string{"**/*.js"},
	}
}

// loadConfig reads the config file at path, or the default location
// under targetDir when path is empty. A missing default file is not an
// error; a missing explicit one is.
func loadConfig(targetDir, path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(targetDir, configFileName)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DB == "" {
		cfg.DB = filepath.Join(".taproot", "index.db")
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = []string{"**/*.js"}
	}
	return cfg, nil
}
