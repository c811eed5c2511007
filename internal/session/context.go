// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/cedargen/internal/config"
	"github.com/dacolabs/cedargen/internal/errors"
)

// ErrInvalidConfig indicates the config file exists but is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration.
type Context struct {
	// Config is the configuration with defaults applied.
	Config *config.Config

	// Dir is the directory the configuration was resolved from.
	Dir string

	// File is the cedargen.yaml as written, nil when Dir has none.
	File *config.Config
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the cedargen Context stored in it.
// A missing cedargen.yaml yields the default configuration.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadDir(ctx, cwd)
}

// LoadDir is Load for an explicit project directory.
func LoadDir(ctx context.Context, dir string) (context.Context, error) {
	s := &Context{Dir: dir}

	configPath := filepath.Join(dir, config.FileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		s.Config = config.Default()
		return context.WithValue(ctx, contextKey{}, s), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	s.File = cfg
	s.Config = cfg.WithDefaults()
	return context.WithValue(ctx, contextKey{}, s), nil
}

// From extracts the cedargen Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if s, ok := ctx.Value(contextKey{}).(*Context); ok {
		return s
	}
	return nil
}
