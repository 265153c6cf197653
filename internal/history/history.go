// Package history keeps a bounded, in-memory record of recent fetches.
// Nothing is persisted; the record exists so a host agent can see what it
// already pulled in this session.
package history

import (
	"sync"
	"time"
)

// DefaultSize is how many entries the log keeps unless told otherwise.
const DefaultSize = 10

// Entry records a single fetch.
type Entry struct {
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
	Format    string    `json:"format"`
	Method    string    `json:"method"` // "http" or "browser"
}

// Log is a fixed-capacity, newest-first record of fetches. Safe for
// concurrent use.
type Log struct {
	mu      sync.Mutex
	size    int
	entries []Entry
}

// New creates a log that keeps the most recent size entries. A non-positive
// size gets DefaultSize.
func New(size int) *Log {
	if size <= 0 {
		size = DefaultSize
	}
	return &Log{size: size}
}

// Add records a fetch, evicting the oldest entry once the log is full.
func (l *Log) Add(url, format, method string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		URL:       url,
		Timestamp: time.Now(),
		Format:    format,
		Method:    method,
	})
	if len(l.entries) > l.size {
		l.entries = l.entries[len(l.entries)-l.size:]
	}
}

// Recent returns the entries newest first.
func (l *Log) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}
