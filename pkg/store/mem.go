package store

import (
	"sync"

	"src.calc.sh/pkg/store/storedefs"
)

// NewMemStore returns a Store that keeps the history log in memory. The log
// is kept in its encoded form, so that it goes through the same codec as the
// durable backends.
func NewMemStore() storedefs.Store {
	return &memStore{}
}

type memStore struct {
	mu   sync.Mutex
	data []byte
}

func (s *memStore) LoadHistory() ([]storedefs.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	entries, err := unmarshalEntries(s.data)
	if err != nil {
		return nil, &Error{Memory, "load", err}
	}
	return entries, nil
}

func (s *memStore) SaveHistory(entries []storedefs.Entry) error {
	data, err := marshalEntries(entries)
	if err != nil {
		return &Error{Memory, "save", err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *memStore) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

func (s *memStore) Close() error { return nil }
