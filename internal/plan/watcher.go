package plan

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher owns one directory of markdown plan files. It emits an Update for
// every matching filesystem change, starting with a synthetic created event
// for each pre-existing file so a fresh consumer sees the full set as a
// stream of creations.
type Watcher struct {
	dir     string
	fsw     *fsnotify.Watcher
	updates chan Update
	done    chan struct{}
	once    sync.Once

	mu   sync.Mutex
	seen map[string]bool
}

// NewWatcher creates the plans directory if absent and sets up the watch.
func NewWatcher(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plans dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch plans dir: %w", err)
	}

	return &Watcher{
		dir:     dir,
		fsw:     fsw,
		updates: make(chan Update, 64),
		done:    make(chan struct{}),
		seen:    make(map[string]bool),
	}, nil
}

// Updates returns the event channel. It is closed after Close once the
// watch loop has drained; nothing is emitted after that.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Start launches the watch loop: the initial synthetic scan, then live
// filesystem events.
func (w *Watcher) Start() {
	go w.run()
}

// Close stops watching. In-flight reads complete or fail silently.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
}

func (w *Watcher) run() {
	defer close(w.updates)

	for _, name := range w.existing() {
		w.emitRead(name, Created)
	}

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("warning: plan watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if !isPlan(name) {
		return
	}

	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		// Atomic saves (vim, VS Code) surface as Create for a file the
		// watcher has already announced; report those as modifications.
		kind := Created
		w.mu.Lock()
		if w.seen[name] {
			kind = Modified
		}
		w.mu.Unlock()
		w.emitRead(name, kind)

	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.mu.Lock()
		delete(w.seen, name)
		w.mu.Unlock()
		now := time.Now()
		w.emit(Update{
			Kind:      Deleted,
			File:      File{Filename: name, Path: filepath.Join(w.dir, name), LastModified: now},
			Timestamp: now,
		})
	}
}

// emitRead reads the file and emits a created/modified update. Read
// failures (permission, race with a delete) are logged and the event is
// dropped.
func (w *Watcher) emitRead(name string, kind Kind) {
	f, err := w.read(name)
	if err != nil {
		log.Printf("warning: read plan %s: %v", name, err)
		return
	}

	w.mu.Lock()
	w.seen[name] = true
	w.mu.Unlock()

	w.emit(Update{Kind: kind, File: f, Timestamp: time.Now()})
}

func (w *Watcher) emit(u Update) {
	select {
	case w.updates <- u:
	case <-w.done:
	}
}

// List enumerates the directory fresh and returns every plan, newest
// modification first. It is a full synchronous snapshot, independent of
// watcher event history.
func (w *Watcher) List() ([]File, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("read plans dir: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isPlan(e.Name()) {
			continue
		}
		f, err := w.read(e.Name())
		if err != nil {
			log.Printf("warning: read plan %s: %v", e.Name(), err)
			continue
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].LastModified.After(files[j].LastModified)
	})

	return files, nil
}

// Get reads one plan by filename. Returns os.ErrNotExist-wrapped errors for
// anything absent or outside the plans directory.
func (w *Watcher) Get(filename string) (File, error) {
	if filepath.Base(filename) != filename || !isPlan(filename) {
		return File{}, os.ErrNotExist
	}
	return w.read(filename)
}

func (w *Watcher) read(name string) (File, error) {
	path := filepath.Join(w.dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}

	return File{
		Filename:     name,
		Path:         path,
		Content:      string(data),
		LastModified: info.ModTime(),
	}, nil
}

// existing returns pre-existing plan filenames in name order, so the
// synthetic startup events are deterministic.
func (w *Watcher) existing() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		log.Printf("warning: scan plans dir: %v", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && isPlan(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func isPlan(name string) bool {
	return strings.HasSuffix(name, ".md")
}
