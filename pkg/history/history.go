// Package history keeps the log of finalized calculations.
//
// The in-memory log is authoritative. Every change is applied to it first,
// and the resulting snapshot is then handed to a background persister that
// writes it to a [storedefs.Store]. Persistence failures are logged and
// otherwise ignored.
package history

import (
	"sync"

	"src.calc.sh/pkg/logutil"
	"src.calc.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[history] ")

// DefaultLimit is the default maximum number of entries kept in the log.
const DefaultLimit = 50

// Log is a bounded, newest-first log of history entries. It is safe for
// concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []storedefs.Entry
	limit   int
	p       *persister
}

// Open loads the log from the store and starts persisting changes to it. A
// log that cannot be loaded is treated as empty. A non-positive limit means
// DefaultLimit.
//
// The caller should call Close when the log is no longer needed, and remains
// responsible for closing the store afterwards.
func Open(st storedefs.Store, limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	entries, err := st.LoadHistory()
	if err != nil {
		logger.Println("cannot load history, starting with an empty one:", err)
		entries = nil
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return &Log{entries: entries, limit: limit, p: newPersister(st)}
}

// Add prepends an entry to the log, drops the oldest entries beyond the
// limit, and schedules the log to be persisted.
func (l *Log) Add(e storedefs.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]storedefs.Entry, 0, min(len(l.entries)+1, l.limit))
	entries = append(entries, e)
	for _, old := range l.entries {
		if len(entries) == l.limit {
			break
		}
		entries = append(entries, old)
	}
	l.entries = entries
	// The slice is never modified in place, so it can be shared with the
	// persister.
	l.p.save(entries)
}

// Clear empties the log and schedules the stored log to be removed.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.p.clear()
}

// Entries returns a copy of the entries, newest first.
func (l *Log) Entries() []storedefs.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]storedefs.Entry(nil), l.entries...)
}

// Get returns the i-th entry, counting from the newest.
func (l *Log) Get(i int) (storedefs.Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.entries) {
		return storedefs.Entry{}, false
	}
	return l.entries[i], true
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Limit returns the maximum number of entries.
func (l *Log) Limit() int { return l.limit }

// Flush waits until all scheduled changes have been written.
func (l *Log) Flush() { l.p.flush() }

// Close writes any pending change and stops the persister. Changes made
// after Close are kept in memory only.
func (l *Log) Close() { l.p.close() }
