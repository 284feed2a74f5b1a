// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when URL list files change.
//
// A Watcher follows explicit files (the lists passed to `normalize --file`)
// and, optionally, every file under a base directory matching doublestar
// patterns. Events inside the debounce window are coalesced so the callback
// runs once with the full set of changed paths.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is zero or negative.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrNothingToWatch is returned by New when neither files nor patterns are set.
	ErrNothingToWatch = errors.New("watch: no files or patterns to watch")
	// ErrInvalidPattern is returned by New for a malformed glob.
	ErrInvalidPattern = errors.New("watch: invalid pattern")
	// ErrFatal wraps fsnotify errors after which the watcher cannot recover.
	ErrFatal = errors.New("watch: fatal fsnotify error")
)

// ignored lists directories and editor artifacts never reported to callers.
var ignored = []string{
	"**/.git",
	"**/.git/**",
	"**/*.swp",
	"**/*.swx",
	"**/*~",
	"**/.#*",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Files are watched individually. Their parent directories are
		// watched so editors that replace files by rename are still seen.
		Files []string

		// Patterns are doublestar globs relative to BaseDir. When set,
		// every non-ignored directory below BaseDir is watched.
		Patterns []string

		// BaseDir anchors Patterns. Empty means the working directory.
		BaseDir string

		// Debounce is the quiet period after the last event before OnChange runs.
		Debounce time.Duration

		// OnChange receives the changed paths: the Files entry as given, or
		// the slash-separated path relative to BaseDir for pattern matches.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives watcher diagnostics. nil uses slog.Default().
		Logger *slog.Logger
	}

	// Watcher monitors files and fires a debounced callback.
	// Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		log      *slog.Logger
		debounce time.Duration
		baseDir  string
		files    map[string]string // absolute path -> path as configured
		started  atomic.Bool
	}
)

// New validates cfg and registers the directories to watch.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Files) == 0 && len(cfg.Patterns) == 0 {
		return nil, ErrNothingToWatch
	}
	for _, pat := range cfg.Patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%w %q", ErrInvalidPattern, pat)
		}
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	files := make(map[string]string, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		files[abs] = f
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		log:      logger.With("component", "watch"),
		debounce: debounce,
		baseDir:  absBase,
		files:    files,
	}

	if err := w.register(); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// register adds the parent directory of every file and, when patterns are
// configured, every non-ignored directory below the base directory.
func (w *Watcher) register() error {
	dirs := make(map[string]struct{})
	for abs := range w.files {
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
	}
	if len(w.cfg.Patterns) == 0 {
		return nil
	}

	err := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("skipping inaccessible path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.isIgnored(path) {
			return filepath.SkipDir
		}
		if _, done := dirs[path]; done {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %q: %w", w.baseDir, err)
	}
	return nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks.
// A callback still running when the next window closes is not started
// twice; the pending paths are retried after another debounce period.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.log.Debug("previous run still in progress, deferring")
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()
		if len(changed) == 0 || w.cfg.OnChange == nil {
			return
		}

		w.log.Debug("change detected", "paths", changed)
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.log.Warn("callback failed", "error", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.log.Warn("closing fsnotify watcher", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			if evt.Has(fsnotify.Create) && len(w.cfg.Patterns) > 0 {
				w.maybeAddDir(evt.Name)
			}
			name, ok := w.match(evt.Name)
			if !ok {
				continue
			}

			mu.Lock()
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if fatalWatchError(err) {
				return fmt.Errorf("%w: %w", ErrFatal, err)
			}
			w.log.Warn("fsnotify error", "error", err)
		}
	}
}

// match reports whether an event path concerns a watched file and returns
// the name handed to OnChange.
func (w *Watcher) match(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if name, ok := w.files[abs]; ok {
		return name, true
	}
	if len(w.cfg.Patterns) == 0 || w.isIgnored(abs) {
		return "", false
	}
	rel, ok := w.relative(abs)
	if !ok {
		return "", false
	}
	for _, pat := range w.cfg.Patterns {
		if matched, _ := doublestar.Match(pat, rel); matched {
			return rel, true
		}
	}
	return "", false
}

// maybeAddDir extends the watch to directories created after startup.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.isIgnored(path) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.log.Warn("watching new directory", "path", path, "error", err)
	}
}

func (w *Watcher) relative(abs string) (string, bool) {
	rel, err := filepath.Rel(w.baseDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) isIgnored(abs string) bool {
	rel, ok := w.relative(abs)
	if !ok {
		rel = filepath.ToSlash(abs)
	}
	return isIgnored(rel)
}

func isIgnored(rel string) bool {
	for _, pat := range ignored {
		if matched, _ := doublestar.Match(pat, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pat, rel+"/"); matched {
			return true
		}
	}
	return false
}
