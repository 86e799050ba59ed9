// Package config loads taprun's optional YAML configuration file,
// which supplies CLI defaults for the harness context and run-time
// knobs. Grounded on mage-x's file-based config loader: a single
// struct unmarshaled with gopkg.in/yaml.v3, with every field defaulted
// before the file is read.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/taprun/pkg/hctx"
)

// Config is the on-disk shape of taprun.yaml.
type Config struct {
	Strict        bool   `yaml:"strict"`
	ReadBlock     bool   `yaml:"read_block"`
	BlockingTime  int    `yaml:"blocking_time"`
	CaptureStderr bool   `yaml:"capture_stderr"`
	Source        string `yaml:"source"`
	Build         string `yaml:"build"`
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`

	// History, if set, enables the optional SQLite run-history store
	// at the given path.
	History string `yaml:"history"`
}

var errConfigPathEmpty = errors.New("config: path must not be empty")

// Default returns the harness's built-in CLI defaults, used when no
// config file is present.
func Default() Config {
	return Config{
		BlockingTime: hctx.DefaultBlockingTime,
		LogFile:      "stdout",
		LogLevel:     "info",
	}
}

// Load reads and unmarshals path over the built-in defaults. A missing
// file is not an error - Default() is returned unchanged - but a file
// that fails to parse is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return Config{}, errConfigPathEmpty
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// HarnessContext translates Config into the hctx.Context the
// Interpreter and Line Reader consult.
func (c Config) HarnessContext() *hctx.Context {
	return &hctx.Context{
		Strict:        c.Strict,
		ReadBlock:     c.ReadBlock,
		BlockingTime:  c.BlockingTime,
		CaptureStderr: c.CaptureStderr,
	}
}
