// Package errlog keeps the per-session developer error panel: every failed
// validation or request appends an entry, and the panel shows the newest few.
package errlog

import (
	"sync"
	"time"
)

// DisplayLimit is how many entries the panel shows.
const DisplayLimit = 5

const timeLayout = "15:04:05"

type Entry struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Details string `json:"details"`
}

type Log struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

func New() *Log {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

// Record appends an entry. Storage is unbounded; only display is capped.
func (l *Log) Record(title, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		Time:    l.now().Format(timeLayout),
		Title:   title,
		Details: details,
	})
}

// Recent returns up to DisplayLimit entries, newest first.
func (l *Log) Recent() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.entries)
	if n > DisplayLimit {
		n = DisplayLimit
	}

	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
