package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ReloadDelay is how long the watcher waits after the last change to the
// config file before reloading it. Editors often write a file in steps.
const ReloadDelay = 250 * time.Millisecond

// Watch reloads the config file cfg was loaded from whenever it changes and
// passes each new, valid config to publish. Reloads that fail to parse or
// validate are logged and skipped, as are reloads identical to the last
// published config. Watch blocks until ctx is done.
func Watch(ctx context.Context, cfg *Config, log zerolog.Logger, publish func(*Config)) error {
	if cfg.Path() == "" {
		return errors.New("config was not loaded from a file")
	}
	path := cfg.Path()
	dir := filepath.Dir(path)
	file := filepath.Base(path)
	log = log.With().Str("component", "config").Str("path", path).Logger()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	// The directory is watched so that editors replacing the file by rename
	// are still seen.
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
		last  = *cfg
	)
	reload := func() {
		next, err := LoadFrom(path)
		if err != nil {
			log.Warn().Err(err).Msg("config reload failed")
			return
		}
		mu.Lock()
		unchanged := *next == last
		if !unchanged {
			last = *next
		}
		mu.Unlock()
		if unchanged {
			log.Debug().Msg("config unchanged")
			return
		}
		log.Info().Msg("config reloaded")
		publish(next)
	}
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(ReloadDelay, reload)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	log.Debug().Msg("watching config")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Base(ev.Name), file) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				schedule()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were dropped, so the file may have changed.
				schedule()
				continue
			}
			log.Warn().Err(err).Msg("config watch error")
		}
	}
}
