// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dacolabs/cedargen/internal/errors"
	"github.com/dacolabs/cedargen/internal/logger"
)

// watch calls regenerate with the argument naming a file each time that file
// is written, until ctx is done. Parent directories are watched so editors
// that replace files on save are seen too.
func watch(ctx context.Context, files []string, regenerate func(string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to start file watcher")
	}
	defer w.Close() //nolint:errcheck

	targets, dirs, err := watchTargets(files)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	logger.Infow("watching for changes", "files", len(targets))
	return watchLoop(ctx, w.Events, w.Errors, targets, regenerate)
}

// watchTargets maps absolute paths to the arguments naming them and lists
// the directories holding them.
func watchTargets(files []string) (map[string]string, []string, error) {
	targets := make(map[string]string, len(files))
	var dirs []string
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, nil, err
		}
		targets[abs] = f
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return targets, dirs, nil
}

func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, targets map[string]string, regenerate func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if path, ok := targets[abs]; ok {
				logger.Debugw("artifact changed", "path", path, "op", ev.Op.String())
				regenerate(path)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		}
	}
}
