package store

import (
	"path/filepath"

	"src.calc.sh/pkg/store/storedefs"
)

// Cleanuper is the subset of testing.TB needed by MustTempStore.
type Cleanuper interface {
	TempDir() string
	Cleanup(func())
}

// MustTempStore opens a store with the given backend in a temporary
// directory, and arranges for it to be closed when the test finishes. It
// panics if the store cannot be opened.
func MustTempStore(c Cleanuper, backend string) storedefs.Store {
	st, err := Open(backend, filepath.Join(c.TempDir(), "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
