// Package transcript stores the append-only record of answer/feedback
// exchanges, one log per quiz session.
package transcript

import (
	"context"
	"sync"
)

// Entry is one submitted answer and the feedback it received. Feedback holds
// the raw Markdown exactly as the evaluator returned it; sanitization happens
// at render time so history can be reprocessed if the allow-list changes.
type Entry struct {
	Timestamp  string `json:"timestamp"`
	DeckIndex  int    `json:"deck_index"`
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
	Feedback   string `json:"feedback"`
}

// Log is an append-only per-key entry store. ReadAll returns entries in
// append order; an unknown logID yields an empty slice, not an error.
type Log interface {
	Append(ctx context.Context, logID string, e Entry) error
	ReadAll(ctx context.Context, logID string) ([]Entry, error)
}

type memLog struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// NewMemLog returns an in-memory Log for tests and development.
func NewMemLog() Log {
	return &memLog{entries: map[string][]Entry{}}
}

func (m *memLog) Append(_ context.Context, logID string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[logID] = append(m.entries[logID], e)
	return nil
}

func (m *memLog) ReadAll(_ context.Context, logID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries[logID]))
	copy(out, m.entries[logID])
	return out, nil
}
