// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.calc.sh/pkg/store/storedefs"
)

var (
	entry1 = storedefs.Entry{Expression: "2+2", Result: "4", Timestamp: 1700000000000}
	entry2 = storedefs.Entry{Expression: "10!", Result: "3628800", Timestamp: 1700000001000}
	entry3 = storedefs.Entry{Expression: "sqrt(2)", Result: "1.4142135624", Timestamp: 1700000002000}
)

// TestHistory runs the history tests against a Store. The store must be empty
// initially.
func TestHistory(t *testing.T, st storedefs.Store) {
	t.Helper()

	entries, err := st.LoadHistory()
	if err != nil || entries != nil {
		t.Errorf("LoadHistory() on empty store -> (%v, %v), want (nil, nil)", entries, err)
	}

	saved := []storedefs.Entry{entry2, entry1}
	if err := st.SaveHistory(saved); err != nil {
		t.Errorf("SaveHistory() -> %v", err)
	}
	checkHistory(t, st, saved)

	// Saving overwrites.
	saved = []storedefs.Entry{entry3, entry2, entry1}
	if err := st.SaveHistory(saved); err != nil {
		t.Errorf("SaveHistory() -> %v", err)
	}
	checkHistory(t, st, saved)

	// Saving an empty log stores an empty log, not an absent one.
	if err := st.SaveHistory(nil); err != nil {
		t.Errorf("SaveHistory(nil) -> %v", err)
	}
	checkHistory(t, st, []storedefs.Entry{})

	if err := st.SaveHistory(saved); err != nil {
		t.Errorf("SaveHistory() -> %v", err)
	}
	if err := st.ClearHistory(); err != nil {
		t.Errorf("ClearHistory() -> %v", err)
	}
	entries, err = st.LoadHistory()
	if err != nil || entries != nil {
		t.Errorf("LoadHistory() after ClearHistory() -> (%v, %v), want (nil, nil)", entries, err)
	}

	// Clearing an absent log is not an error.
	if err := st.ClearHistory(); err != nil {
		t.Errorf("ClearHistory() on empty store -> %v", err)
	}
}

func checkHistory(t *testing.T, st storedefs.Store, want []storedefs.Entry) {
	t.Helper()
	got, err := st.LoadHistory()
	if err != nil {
		t.Errorf("LoadHistory() -> error %v", err)
		return
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadHistory() (-want +got):\n%s", diff)
	}
}
