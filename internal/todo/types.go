package todo

import "time"

// Status is the internal task status. Anything the assistant writes other
// than pending/in_progress maps to completed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Task is one checklist item of a session. Timestamp is the modification
// time of the source file, shared by every task in a load.
type Task struct {
	Content    string    `json:"content"`
	ActiveForm string    `json:"activeForm"`
	Status     Status    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// State is one session's full checklist. It is replaced wholesale on every
// reload, never merged; tasks keep source-file order.
type State struct {
	SessionID   string    `json:"sessionId"`
	Tasks       []Task    `json:"tasks"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NoSessionID is the sentinel SessionID when the todos directory holds no
// session files.
const NoSessionID = "no-session"

// SessionInfo is a historical session as offered by ListSessions.
type SessionInfo struct {
	Filename    string    `json:"filename"`
	LastUpdated time.Time `json:"lastUpdated"`
	TaskCount   int       `json:"taskCount"`
}

// record is the external task schema written by the assistant.
type record struct {
	Content  string `json:"content"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	ID       string `json:"id"`
}
