// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the ggcompanion configuration file.
//
// The file is TOML. Keys that are absent keep their defaults:
//
//	companion_url = "http://localhost:12500"
//	listen        = "127.0.0.1:12501"
//	zoom          = 1
//	max_pixels    = 268435456
//	poll_interval = "250ms"
//	output_dir    = "pages"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	companion "github.com/gogpu/gg-companion"
)

// Defaults.
const (
	DefaultCompanionURL = "http://localhost:12500"
	DefaultListen       = "127.0.0.1:12501"
	DefaultZoom         = 1
	DefaultPollInterval = 250 * time.Millisecond
	DefaultOutputDir    = "pages"

	// MaxZoom bounds the zoom level in both directions.
	MaxZoom = 16
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Duration is a time.Duration written as a string ("250ms", "2s").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the CLI configuration.
type Config struct {
	CompanionURL string   `toml:"companion_url"`
	Listen       string   `toml:"listen"`
	Zoom         int      `toml:"zoom"`
	MaxPixels    int64    `toml:"max_pixels"`
	PollInterval Duration `toml:"poll_interval"`
	OutputDir    string   `toml:"output_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CompanionURL: DefaultCompanionURL,
		Listen:       DefaultListen,
		Zoom:         DefaultZoom,
		MaxPixels:    companion.DefaultMaxPixels,
		PollInterval: Duration(DefaultPollInterval),
		OutputDir:    DefaultOutputDir,
	}
}

// DefaultPath returns ~/.ggcompanion/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ggcompanion", "config.toml"), nil
}

// Load reads the configuration at path. A missing file yields the
// defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks every field.
func (c *Config) Validate() error {
	u, err := url.Parse(c.CompanionURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: companion_url %q must be an http(s) URL", ErrInvalid, c.CompanionURL)
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("%w: listen %q: %v", ErrInvalid, c.Listen, err)
	}
	if c.Zoom < -MaxZoom || c.Zoom > MaxZoom {
		return fmt.Errorf("%w: zoom %d outside [%d, %d]", ErrInvalid, c.Zoom, -MaxZoom, MaxZoom)
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("%w: max_pixels %d is negative", ErrInvalid, c.MaxPixels)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval %s must be positive", ErrInvalid, time.Duration(c.PollInterval))
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is empty", ErrInvalid)
	}
	return nil
}

// Apply installs process-wide settings (the pixel budget).
func (c *Config) Apply() {
	companion.SetMaxPixels(c.MaxPixels)
}
