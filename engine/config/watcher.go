package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/Carmen-Shannon/oxy-cube/engine/logging"
)

// Watcher reloads a config file whenever it changes on disk and publishes the result.
// Consumers drain Updates without blocking; only the newest pending config is kept.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan *Config
	errs    chan error
	done    chan struct{}
	logger  *log.Logger
	overlay func(*Config)
	once    sync.Once
	wg      sync.WaitGroup
}

// Watch starts watching path. The containing directory is watched so editors that
// replace the file on save are handled.
//
// Parameters:
//   - path: the config file to watch
//   - logger: logger for reload diagnostics, nil selects the package default
//   - options: variadic list of WatcherBuilderOption functions
//
// Returns:
//   - *Watcher: the running watcher
//   - error: if the watcher could not be created
func Watch(path string, logger *log.Logger, options ...WatcherBuilderOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: failed to watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = logging.Default()
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		updates: make(chan *Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		logger:  logger,
	}
	for _, option := range options {
		option(w)
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates returns the channel of successfully reloaded configurations.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors returns the channel of reload failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Poll returns the newest reloaded config without blocking.
//
// Returns:
//   - *Config: the reloaded config, nil when none is pending
//   - bool: true if a config was pending
func (w *Watcher) Poll() (*Config, bool) {
	select {
	case cfg := <-w.updates:
		return cfg, true
	default:
		return nil, false
	}
}

// Close stops the watcher and waits for its goroutine to exit.
//
// Returns:
//   - error: ErrWatcherClosed on repeated calls, or the fsnotify close error
func (w *Watcher) Close() error {
	err := ErrWatcherClosed
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := w.load()
			if err != nil {
				w.logger.Warn("config reload failed", "path", w.path, "err", err)
				publish(w.errs, err)
				continue
			}
			w.logger.Info("config reloaded", "path", w.path)
			publish(w.updates, cfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			publish(w.errs, err)
		}
	}
}

// load reads the file and applies the overlay on top.
func (w *Watcher) load() (*Config, error) {
	cfg, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	if w.overlay == nil {
		return cfg, nil
	}
	w.overlay(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s with overrides: %w", w.path, err)
	}
	return cfg, nil
}

// publish replaces any pending value in a single-slot channel with v.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
