// Package config holds run settings, loaded from an optional YAML file and
// then overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jacob-alan-henning/bfitui/internal/bf"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeStep    Mode = "step"    // interactive single stepping
	ModeAll     Mode = "all"     // run at once, show console and memory
	ModeConsole Mode = "console" // run at once, show console only
)

type Config struct {
	Mode     Mode   `yaml:"mode"`
	TapeSize int    `yaml:"tape_size"`
	EOF      string `yaml:"eof"`
	// Input is a file supplying the bytes read by ','. Empty means stdin,
	// except in step mode where stdin belongs to the terminal.
	Input    string `yaml:"input"`
	Stream   bool   `yaml:"stream"`
	LogLevel string `yaml:"log_level"` // empty means info
	LogFile  string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		Mode:     ModeAll,
		TapeSize: bf.DefaultTapeSize,
		EOF:      bf.EOFUnchanged.String(),
		LogLevel: "warn",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeStep, ModeAll, ModeConsole:
	default:
		errs = append(errs, fmt.Errorf("invalid mode %q: must be 'step', 'all' or 'console'", c.Mode))
	}
	if c.TapeSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid tape_size %d: must be positive", c.TapeSize))
	}
	if _, err := bf.ParseEOFPolicy(c.EOF); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn' or 'error'", c.LogLevel))
	}
	return errors.Join(errs...)
}

// EOFPolicy returns the parsed end of input policy. Call Validate first.
func (c Config) EOFPolicy() bf.EOFPolicy {
	p, _ := bf.ParseEOFPolicy(c.EOF)
	return p
}
