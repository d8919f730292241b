// Package store implements the durable storage of the history log.
//
// The log is stored as a JSON array of entries, newest first, under the key
// [storedefs.HistoryKey]. Three backends are provided: bbolt, SQLite and an
// in-memory one.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"src.calc.sh/pkg/logutil"
	"src.calc.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Names of the backends accepted by Open.
const (
	Bolt   = "bolt"
	SQLite = "sqlite"
	Memory = "memory"
)

// ErrCorrupt is wrapped by errors returned by LoadHistory when the stored
// record cannot be decoded.
var ErrCorrupt = errors.New("corrupt history record")

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Error is a persistence error. It records the backend and the operation that
// failed.
type Error struct {
	Backend string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Open opens a store with the named backend. The path is ignored by the
// memory backend.
func Open(backend, path string) (storedefs.Store, error) {
	switch backend {
	case Bolt:
		return NewBoltStore(path)
	case SQLite:
		return NewSQLiteStore(path)
	case Memory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func marshalEntries(entries []storedefs.Entry) ([]byte, error) {
	if entries == nil {
		entries = []storedefs.Entry{}
	}
	return json.Marshal(entries)
}

func unmarshalEntries(data []byte) ([]storedefs.Entry, error) {
	var entries []storedefs.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return entries, nil
}
