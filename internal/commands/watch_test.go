// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTargets(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.yaml")

	targets, dirs, err := watchTargets([]string{a, b, a})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{a: a, b: b}, targets)
	assert.Equal(t, []string{dir}, dirs)
}

func TestWatchLoop(t *testing.T) {
	dir := t.TempDir()
	study := filepath.Join(dir, "study.json")
	targets := map[string]string{study: "study.json"}

	events := make(chan fsnotify.Event, 4)
	errs := make(chan error, 1)
	events <- fsnotify.Event{Name: study, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: study, Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: study, Op: fsnotify.Create}
	errs <- errors.New("overflow")
	close(events)

	var got []string
	err := watchLoop(context.Background(), events, errs, targets, func(path string) {
		got = append(got, path)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"study.json", "study.json"}, got)
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := watchLoop(ctx, make(chan fsnotify.Event), make(chan error), nil, func(string) {
		t.Fatal("no regeneration expected")
	})
	assert.NoError(t, err)
}

func TestOutputClaims_Conflict(t *testing.T) {
	claims := outputClaims{"out/study.go": "a/study.json"}

	tests := []struct {
		name     string
		path     string
		target   string
		wantPrev string
		wantOK   bool
	}{
		{"unclaimed target", "b/other.json", "out/other.go", "", false},
		{"owner regenerates", "a/study.json", "out/study.go", "a/study.json", false},
		{"other source", "b/study.json", "out/study.go", "a/study.json", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, ok := claims.conflict(tt.path, tt.target)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrev, prev)
		})
	}
}
