package logging

import (
	"sync"
	"time"
)

// LogEntry is one record kept in the in-memory history.
type LogEntry struct {
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level"`
	Module     string         `json:"module,omitempty"`
	Message    string         `json:"message"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RingBuffer keeps the most recent entries, dropping the oldest once full.
type RingBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	next    int
	full    bool
}

// NewRingBuffer creates a buffer holding up to size entries.
func NewRingBuffer(size int) *RingBuffer {
	if size < 1 {
		size = 1
	}
	return &RingBuffer{entries: make([]LogEntry, size)}
}

// Write appends entry.
func (rb *RingBuffer) Write(entry LogEntry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.next] = entry
	rb.next++
	if rb.next == len(rb.entries) {
		rb.next = 0
		rb.full = true
	}
}

// Recent returns up to limit entries, oldest first. A limit <= 0 returns everything held.
func (rb *RingBuffer) Recent(limit int) []LogEntry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	var all []LogEntry
	if rb.full {
		all = make([]LogEntry, 0, len(rb.entries))
		all = append(all, rb.entries[rb.next:]...)
		all = append(all, rb.entries[:rb.next]...)
	} else {
		all = append([]LogEntry(nil), rb.entries[:rb.next]...)
	}

	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all
}

// Len returns the number of entries held.
func (rb *RingBuffer) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	if rb.full {
		return len(rb.entries)
	}
	return rb.next
}
