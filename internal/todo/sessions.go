package todo

import (
	"log"
	"os"
	"path/filepath"
	"sort"
)

// maxSessions caps how many historical sessions are offered.
const maxSessions = 50

// ListSessions enumerates all parseable session files with at least one
// task, newest first, at most maxSessions. Sessions whose task array is
// empty are invisible here even though their file still exists.
func (w *Watcher) ListSessions() ([]SessionInfo, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionInfo{}, nil
		}
		return nil, err
	}

	infos := make([]SessionInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSession(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		state, err := readSession(filepath.Join(w.dir, e.Name()), fi.ModTime())
		if err != nil {
			log.Printf("warning: skip session %s: %v", e.Name(), err)
			continue
		}
		if len(state.Tasks) == 0 {
			continue
		}
		infos = append(infos, SessionInfo{
			Filename:    e.Name(),
			LastUpdated: fi.ModTime(),
			TaskCount:   len(state.Tasks),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].LastUpdated.Equal(infos[j].LastUpdated) {
			return infos[i].LastUpdated.After(infos[j].LastUpdated)
		}
		return infos[i].Filename > infos[j].Filename
	})

	if len(infos) > maxSessions {
		infos = infos[:maxSessions]
	}
	return infos, nil
}

// LoadSession parses one named session file on demand, without touching the
// live state. Missing or unreadable files surface as errors for the caller
// to map to not-found.
func (w *Watcher) LoadSession(filename string) (State, error) {
	if filepath.Base(filename) != filename || !isSession(filename) {
		return State{}, os.ErrNotExist
	}

	path := filepath.Join(w.dir, filename)
	info, err := os.Stat(path)
	if err != nil {
		return State{}, err
	}
	return readSession(path, info.ModTime())
}
