// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementations.
package storedefs

// HistoryKey is the durable key under which the history log is stored.
const HistoryKey = "calculator_history"

// Store is an interface satisfied by the storage backends.
type Store interface {
	// LoadHistory returns the stored history log, newest first. It returns a
	// nil slice and a nil error if there is no stored log.
	LoadHistory() ([]Entry, error)
	// SaveHistory overwrites the stored history log.
	SaveHistory(entries []Entry) error
	// ClearHistory removes the stored history log. It is not an error if
	// there is none.
	ClearHistory() error
	Close() error
}

// Entry is an entry in the history log. Entries are never modified after
// they are created.
type Entry struct {
	// The buffer content that was evaluated.
	Expression string `json:"expression"`
	// The formatted result.
	Result string `json:"result"`
	// Creation time in milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}
