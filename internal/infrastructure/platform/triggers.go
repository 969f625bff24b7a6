package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

var modifierAliases = map[string]string{
	"command": "cmd",
	"⌘":       "cmd",
	"alt":     "option",
	"opt":     "option",
	"⌥":       "option",
	"ctrl":    "control",
	"⌃":       "control",
	"⇧":       "shift",
}

var modifierRank = map[string]int{"control": 0, "option": 1, "shift": 2, "cmd": 3}

// NormalizeCombo canonicalises a combo such as "Option+Cmd+G" to
// "option+cmd+g" so it can name a trigger file.
func NormalizeCombo(combo string) (string, error) {
	var mods []string
	key := ""
	for _, part := range strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+") {
		part = strings.TrimSpace(part)
		if alias, ok := modifierAliases[part]; ok {
			part = alias
		}
		if part == "" {
			return "", fmt.Errorf("invalid hotkey %q", combo)
		}
		if _, ok := modifierRank[part]; ok {
			mods = append(mods, part)
			continue
		}
		if key != "" {
			return "", fmt.Errorf("hotkey %q has more than one key", combo)
		}
		key = part
	}
	if key == "" {
		return "", fmt.Errorf("hotkey %q has no key", combo)
	}
	if strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	sort.Slice(mods, func(i, j int) bool { return modifierRank[mods[i]] < modifierRank[mods[j]] })
	return strings.Join(append(mods, key), "+"), nil
}

// FireTrigger drops the trigger file for combo into dir. A watcher registered
// on the same combo runs its callback and removes the file.
func FireTrigger(dir, combo string) error {
	name, err := NormalizeCombo(combo)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".trigger-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, name))
}

// TriggerWatcher turns trigger files created in a directory into hotkey
// callbacks.
type TriggerWatcher struct {
	dir    string
	logger ports.Logger

	mu        sync.Mutex
	callbacks map[string]func()
	watcher   *fsnotify.Watcher
	done      chan struct{}
}

// NewTriggerWatcher watches dir once the first hotkey is registered.
func NewTriggerWatcher(dir string, logger ports.Logger) *TriggerWatcher {
	return &TriggerWatcher{dir: dir, logger: logger, callbacks: make(map[string]func())}
}

// Register binds callback to combo. Callbacks run on the watcher goroutine.
func (w *TriggerWatcher) Register(combo string, callback func()) error {
	name, err := NormalizeCombo(combo)
	if err != nil {
		return err
	}
	if callback == nil {
		return errors.New("hotkey callback is nil")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		if err := w.start(); err != nil {
			return err
		}
	}
	w.callbacks[name] = callback
	// Drop a stale trigger left from a previous run.
	_ = os.Remove(filepath.Join(w.dir, name))
	w.logger.Debug("hotkey registered", map[string]interface{}{"combo": name, "dir": w.dir})
	return nil
}

func (w *TriggerWatcher) start() error {
	if err := os.MkdirAll(w.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start trigger watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = watcher
	w.done = make(chan struct{})
	go w.loop(watcher, w.done)
	return nil
}

func (w *TriggerWatcher) loop(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			w.dispatch(ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("trigger watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}

// dispatch claims the trigger by removing it, so a create followed by a
// write fires once.
func (w *TriggerWatcher) dispatch(path string) {
	name := filepath.Base(path)
	w.mu.Lock()
	cb := w.callbacks[name]
	w.mu.Unlock()
	if cb == nil {
		return
	}
	if err := os.Remove(path); err != nil {
		return
	}
	w.logger.Debug("hotkey fired", map[string]interface{}{"combo": name})
	cb()
}

// Close stops watching and waits for the dispatch goroutine.
func (w *TriggerWatcher) Close() error {
	w.mu.Lock()
	watcher, done := w.watcher, w.done
	w.watcher = nil
	w.mu.Unlock()
	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}
