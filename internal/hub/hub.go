// Package hub bridges the directory watchers to every connected push
// subscriber and keeps the derived per-plan version history.
package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johns/planboard/internal/plan"
	"github.com/johns/planboard/internal/todo"
)

// UpdateType tags a broadcast frame.
type UpdateType string

const (
	TypePlan UpdateType = "plan"
	TypeTodo UpdateType = "todo"
)

// Update is one broadcast frame: a plan.Update or a todo.State.
type Update struct {
	Type UpdateType `json:"type"`
	Data any        `json:"data"`
}

// Version is one retained snapshot of a plan's content.
type Version struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// History is the bounded version trail for one plan filename.
type History struct {
	Filename string    `json:"filename"`
	Versions []Version `json:"versions"`
}

// maxVersions bounds each plan's retained history; the oldest entry is
// evicted first.
const maxVersions = 10

// Hub owns the subscriber set and the plan history. It is the only
// component permitted to mutate either.
type Hub struct {
	mu          sync.Mutex
	history     map[string][]Version
	subscribers map[uuid.UUID]chan Update
}

func New() *Hub {
	return &Hub{
		history:     make(map[string][]Version),
		subscribers: make(map[uuid.UUID]chan Update),
	}
}

// Run pumps watcher channels into the hub until both close or the context
// is cancelled.
func (h *Hub) Run(ctx context.Context, plans <-chan plan.Update, todos <-chan todo.State) {
	for plans != nil || todos != nil {
		select {
		case u, ok := <-plans:
			if !ok {
				plans = nil
				continue
			}
			h.PublishPlan(u)
		case s, ok := <-todos:
			if !ok {
				todos = nil
				continue
			}
			h.PublishTodo(s)
		case <-ctx.Done():
			return
		}
	}
}

// PublishPlan records a version for created/modified updates, then fans the
// update out. Deletions are broadcast but never touch history.
func (h *Hub) PublishPlan(u plan.Update) {
	if u.Kind != plan.Deleted {
		h.mu.Lock()
		versions := append(h.history[u.File.Filename], Version{
			Content:   u.File.Content,
			Timestamp: u.Timestamp,
		})
		if len(versions) > maxVersions {
			versions = versions[len(versions)-maxVersions:]
		}
		h.history[u.File.Filename] = versions
		h.mu.Unlock()
	}

	h.broadcast(Update{Type: TypePlan, Data: u})
}

// PublishTodo fans out a full todo state replacement. No history is kept
// beyond the watcher's own live pointer.
func (h *Hub) PublishTodo(s todo.State) {
	h.broadcast(Update{Type: TypeTodo, Data: s})
}

// Subscribe registers a push subscriber and returns its channel plus a
// cancel func. Cancel deregisters and closes the channel; it is safe to
// call more than once. A subscriber only sees broadcasts made while it is
// registered — nothing is replayed.
func (h *Hub) Subscribe(buffer int) (<-chan Update, func()) {
	ch := make(chan Update, buffer)
	id := uuid.New()

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// broadcast delivers best-effort with no acknowledgment or backpressure: a
// subscriber whose buffer is full loses the frame rather than blocking
// everyone else.
func (h *Hub) broadcast(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- u:
		default:
		}
	}
}

// PlanHistory returns the retained versions for a filename; false when no
// created/modified event has been recorded for it.
func (h *Hub) PlanHistory(filename string) (History, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	versions, ok := h.history[filename]
	if !ok {
		return History{}, false
	}

	out := History{Filename: filename, Versions: make([]Version, len(versions))}
	copy(out.Versions, versions)
	return out, true
}

// SubscriberCount reports the live subscriber set size.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
