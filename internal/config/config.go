package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// ColorMode controls report styling.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// FileName is the config file looked up in the working directory and in
// the user config directory.
const FileName = ".tally.yaml"

// Config is the resolved run configuration.
type Config struct {
	Color         ColorMode
	ExitOnFailure bool
	Timeout       time.Duration
	Run           string
	Debug         bool
}

// Defaults returns the hardcoded configuration.
func Defaults() Config {
	return Config{Color: ColorAuto}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs *multierror.Error
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = multierror.Append(errs, fmt.Errorf("color: unknown mode %q (expected auto, always, never)", c.Color))
	}
	if c.Timeout < 0 {
		errs = multierror.Append(errs, fmt.Errorf("timeout: must not be negative, got %s", c.Timeout))
	}
	return errs.ErrorOrNil()
}

// ColorEnabled reports whether output should be styled, given whether
// stdout is a terminal.
func (c Config) ColorEnabled(isTTY bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTTY
	}
}

// FileConfig mirrors .tally.yaml. Pointer fields distinguish "unset" from
// the zero value.
type FileConfig struct {
	Color         string `yaml:"color,omitempty"`
	ExitOnFailure *bool  `yaml:"exit_on_failure,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"`
	Run           string `yaml:"run,omitempty"`
	Debug         *bool  `yaml:"debug,omitempty"`
}

// LoadFile reads the config file. With an explicit path the file must
// exist; otherwise the default locations are searched and a missing file
// yields an empty FileConfig. The returned path is "" when no file was read.
func LoadFile(explicit string) (*FileConfig, string, error) {
	path := explicit
	if path == "" {
		path = getConfigPath()
		if path == "" {
			return &FileConfig{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && explicit == "" {
			return &FileConfig{}, "", nil
		}
		return nil, "", fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, "", fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, path, nil
}

// apply merges the file settings onto c.
func (fc *FileConfig) apply(c *Config) error {
	var errs *multierror.Error
	if fc.Color != "" {
		c.Color = ColorMode(fc.Color)
	}
	if fc.ExitOnFailure != nil {
		c.ExitOnFailure = *fc.ExitOnFailure
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("timeout: %w", err))
		} else {
			c.Timeout = d
		}
	}
	if fc.Run != "" {
		c.Run = fc.Run
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	return errs.ErrorOrNil()
}

// getConfigPath finds .tally.yaml in the working directory, then in the
// user config directory. Returns "" when neither exists.
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "tally", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
