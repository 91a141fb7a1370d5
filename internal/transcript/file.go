package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileLog keeps one JSON-array file per logID under a base directory. Each
// append rewrites the whole file, so a per-logID mutex serializes the
// read-modify-write and a reader never observes a partial entry.
//
// An unreadable or corrupt file is treated as empty and superseded by the
// next append. History is lost in that case; returning the feedback to the
// user matters more than strict retention here.
type FileLog struct {
	base string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileLog(base string) (*FileLog, error) {
	if base == "" {
		base = "./runs"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}
	return &FileLog{base: base, locks: map[string]*sync.Mutex{}}, nil
}

func (f *FileLog) lockFor(logID string) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[logID]
	if !ok {
		l = &sync.Mutex{}
		f.locks[logID] = l
	}
	return l
}

func (f *FileLog) path(logID string) string {
	return filepath.Join(f.base, filepath.Clean(logID)+".json")
}

func (f *FileLog) Append(_ context.Context, logID string, e Entry) error {
	l := f.lockFor(logID)
	l.Lock()
	defer l.Unlock()

	entries := f.readFile(logID)
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(logID), data, 0o644)
}

func (f *FileLog) ReadAll(_ context.Context, logID string) ([]Entry, error) {
	l := f.lockFor(logID)
	l.Lock()
	defer l.Unlock()
	return f.readFile(logID), nil
}

func (f *FileLog) readFile(logID string) []Entry {
	data, err := os.ReadFile(f.path(logID))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// unreadable log: start over rather than fail the request
			log.Printf("transcript %s unreadable, starting fresh: %v", logID, err)
		}
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("transcript %s corrupt, starting fresh: %v", logID, err)
		return []Entry{}
	}
	return entries
}
