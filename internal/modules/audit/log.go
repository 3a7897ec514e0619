// Package audit keeps a short in-memory history of auth events for the
// dashboard's account activity card.
package audit

import (
	"sync"
	"time"
)

// Entry is one recorded auth event.
type Entry struct {
	Topic     string
	Email     string
	Mode      string
	RequestID string
	At        time.Time
}

// Log is a bounded, newest-first list of entries.
type Log struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry
}

// NewLog creates a log that keeps at most limit entries.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = 1
	}
	return &Log{limit: limit}
}

// Add records e, dropping the oldest entry when full.
func (l *Log) Add(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

// Recent returns a copy of the entries, newest first.
func (l *Log) Recent() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}
