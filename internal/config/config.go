// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles cedargen project configuration.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dacolabs/cedargen/internal/errors"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the project configuration file.
const FileName = "cedargen.yaml"

// Defaults used when neither the config file nor a flag sets a value.
const (
	DefaultOutput = "generated"
	DefaultFormat = "gotypes"
)

// ErrUnsupportedVersion indicates a config file written for another format version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Config represents the cedargen.yaml project configuration file.
type Config struct {
	Version    int    `yaml:"version"`
	Output     string `yaml:"output,omitempty"`
	Package    string `yaml:"package,omitempty"`
	Format     string `yaml:"format,omitempty"`
	RootName   string `yaml:"rootName,omitempty"`
	PlainNames bool   `yaml:"plainNames,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Output:  DefaultOutput,
		Format:  DefaultFormat,
	}
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.Wrapf(ErrUnsupportedVersion, "got %d, want %d", c.Version, CurrentConfigVersion)
	}
	if c.RootName != "" && strings.TrimSpace(c.RootName) == "" {
		return errors.New("rootName must not be blank")
	}
	return nil
}

// WithDefaults returns a copy of c with empty values filled from Default.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := Default()
	if out.Output == "" {
		out.Output = def.Output
	}
	if out.Format == "" {
		out.Format = def.Format
	}
	return &out
}
