package todo

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher tracks the single live session: the JSON file in the todos
// directory with the most recent modification time. Any add or change in
// the directory re-derives the live state from scratch.
//
// A missing directory is tolerated (the assistant may not have run yet);
// the watcher then never produces a live state and never creates the
// directory itself.
type Watcher struct {
	dir     string
	fsw     *fsnotify.Watcher // nil when the todos dir is absent
	updates chan State
	done    chan struct{}
	once    sync.Once

	mu   sync.Mutex
	live *State
}

// NewWatcher sets up the watch. The directory is not created if absent.
func NewWatcher(dir string) (*Watcher, error) {
	w := &Watcher{
		dir:     dir,
		updates: make(chan State, 16),
		done:    make(chan struct{}),
	}

	if _, err := os.Stat(dir); err != nil {
		log.Printf("warning: todos dir %s unavailable: %v", dir, err)
		return w, nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch todos dir: %w", err)
	}
	w.fsw = fsw

	return w, nil
}

// Updates returns the channel of full live-state replacements.
func (w *Watcher) Updates() <-chan State {
	return w.updates
}

// Start loads the initial live state and begins tailing the directory.
func (w *Watcher) Start() {
	go w.run()
}

// Close stops watching; nothing is emitted afterwards.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.done)
		if w.fsw != nil {
			w.fsw.Close()
		}
	})
}

// Live returns a copy of the current live state. The second return is
// false until the first successful reload.
func (w *Watcher) Live() (State, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.live == nil {
		return State{}, false
	}
	return *w.live, true
}

func (w *Watcher) run() {
	defer close(w.updates)

	if w.fsw == nil {
		<-w.done
		return
	}

	if s, ok := w.reload(); ok {
		w.emit(s)
	}

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isSession(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
				if s, ok := w.reload(); ok {
					w.emit(s)
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("warning: todo watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

// reload re-derives the live state: pick the most-recently-modified session
// file and parse it. On any read or parse failure the previous live state
// is retained unchanged and nothing is emitted.
func (w *Watcher) reload() (State, bool) {
	name, modTime, err := w.pickLive()
	if err != nil {
		log.Printf("warning: scan todos dir: %v", err)
		return State{}, false
	}

	var state State
	if name == "" {
		state = State{SessionID: NoSessionID, Tasks: []Task{}, LastUpdated: time.Now()}
	} else {
		state, err = readSession(filepath.Join(w.dir, name), modTime)
		if err != nil {
			log.Printf("warning: reload session %s: %v", name, err)
			return State{}, false
		}
	}

	w.mu.Lock()
	w.live = &state
	w.mu.Unlock()
	return state, true
}

// pickLive returns the session file with the newest modification time.
// Equal times are broken deterministically: the lexicographically greater
// filename wins. An empty name means no session files exist.
func (w *Watcher) pickLive() (string, time.Time, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return "", time.Time{}, err
	}

	var name string
	var modTime time.Time
	for _, e := range entries {
		if e.IsDir() || !isSession(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			log.Printf("warning: stat session %s: %v", e.Name(), err)
			continue
		}
		mt := info.ModTime()
		if name == "" || mt.After(modTime) || (mt.Equal(modTime) && e.Name() > name) {
			name = e.Name()
			modTime = mt
		}
	}

	return name, modTime, nil
}

func (w *Watcher) emit(s State) {
	select {
	case w.updates <- s:
	case <-w.done:
	}
}

// readSession parses one session file into a State. Every task shares the
// file's modification time; the session id is the filename prefix before
// its first hyphen.
func readSession(path string, modTime time.Time) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return State{}, fmt.Errorf("parse session: %w", err)
	}

	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, Task{
			Content:    r.Content,
			ActiveForm: ActiveForm(r.Content),
			Status:     mapStatus(r.Status),
			Timestamp:  modTime,
		})
	}

	return State{
		SessionID:   sessionID(filepath.Base(path)),
		Tasks:       tasks,
		LastUpdated: modTime,
	}, nil
}

// mapStatus passes pending/in_progress through and treats every other
// value as completed rather than rejecting it.
func mapStatus(s string) Status {
	switch s {
	case string(StatusPending):
		return StatusPending
	case string(StatusInProgress):
		return StatusInProgress
	default:
		return StatusCompleted
	}
}

func sessionID(filename string) string {
	if i := strings.IndexByte(filename, '-'); i >= 0 {
		return filename[:i]
	}
	return filename
}

func isSession(name string) bool {
	return strings.HasSuffix(name, ".json")
}
