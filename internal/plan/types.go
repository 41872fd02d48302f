package plan

import "time"

// Kind classifies a filesystem change to a plan file.
type Kind string

const (
	Created  Kind = "created"
	Modified Kind = "modified"
	Deleted  Kind = "deleted"
)

// File is a plan document on disk. Content is read fresh on every event
// and listing; nothing is cached between reads.
type File struct {
	Filename     string    `json:"filename"`
	Path         string    `json:"path"`
	Content      string    `json:"content"`
	LastModified time.Time `json:"lastModified"`
}

// Update is an immutable change event for one plan file. For Deleted the
// content is empty and LastModified is the event time; the original content
// is not recoverable from the event.
type Update struct {
	Kind      Kind      `json:"kind"`
	File      File      `json:"file"`
	Timestamp time.Time `json:"timestamp"`
}
