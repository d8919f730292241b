// Package calc implements the calculator session: the expression buffer, the
// live preview of its value, the memory register and finalization of
// calculations into the history log.
package calc

import (
	"errors"
	"log"
	"math"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"src.calc.sh/pkg/diag"
	"src.calc.sh/pkg/eval"
	"src.calc.sh/pkg/history"
	"src.calc.sh/pkg/logutil"
	"src.calc.sh/pkg/store"
	"src.calc.sh/pkg/store/storedefs"
	"src.calc.sh/pkg/translate"
)

var logger = logutil.GetLogger("[calc] ")

// DefaultErrorMarker is what the buffer is set to when finalizing fails.
const DefaultErrorMarker = "Error"

// State is the state of a Session.
type State int

// Possible values of State.
const (
	// The buffer is empty.
	Idle State = iota
	// The buffer is not empty.
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Session is a calculator session. All its methods are safe for concurrent
// use; each operation is applied atomically.
type Session struct {
	mu sync.Mutex

	buffer     string
	preview    float64
	hasPreview bool
	// The most recent numeric value available to M+ and M-: the current
	// preview, or the result of the last finalization.
	last    float64
	hasLast bool
	memory  float64

	history *history.Log

	now         func() time.Time
	precision   int
	errorMarker string
	logger      *log.Logger

	// Error of the last failed finalization, cleared by the next edit.
	err *diag.Error
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the function used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithPrecision sets the number of decimal places of finalized results.
func WithPrecision(prec int) Option {
	return func(s *Session) { s.precision = prec }
}

// WithErrorMarker sets the text the buffer shows after a failed
// finalization.
func WithErrorMarker(marker string) Option {
	return func(s *Session) { s.errorMarker = marker }
}

// WithLogger sets the logger for failed finalizations. The default logger
// is obtained from logutil.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a new Session that records finalized calculations in h.
// If h is nil, an in-memory log is used.
func NewSession(h *history.Log, opts ...Option) *Session {
	if h == nil {
		h = history.Open(store.NewMemStore(), history.DefaultLimit)
	}
	s := &Session{
		history:     h,
		now:         time.Now,
		precision:   eval.Precision,
		errorMarker: DefaultErrorMarker,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append handles a key. Memory keys operate on the memory register; any other
// key is translated and appended to the buffer.
func (s *Session) Append(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch token {
	case translate.MemoryClear:
		s.memory = 0
	case translate.MemoryRecall:
		s.memoryRecall()
	case translate.MemoryAdd:
		s.memoryUpdate(1)
	case translate.MemorySubtract:
		s.memoryUpdate(-1)
	default:
		s.appendText(translate.Translate(token))
	}
}

// DeleteLast removes the last character of the buffer. If the buffer shows
// the error marker, it is cleared entirely.
func (s *Session) DeleteLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer == s.errorMarker {
		s.buffer = ""
	} else {
		_, size := utf8.DecodeLastRuneInString(s.buffer)
		s.buffer = s.buffer[:len(s.buffer)-size]
	}
	s.refresh()
}

// Clear empties the buffer. The memory register and the history log are not
// affected.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = ""
	s.refresh()
}

// Finalize evaluates the buffer. On success, the calculation is recorded in
// the history log and the formatted result becomes the new buffer. On
// failure, the buffer is set to the error marker and the history log is left
// unchanged. Finalize does nothing if the buffer is empty.
func (s *Session) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer == "" {
		return
	}
	expr := s.buffer
	v, err := eval.Evaluate(expr)
	s.hasPreview = false
	s.err = nil
	if err != nil {
		s.err = finalizeError(expr, err)
		s.logger.Printf("cannot finalize %q at %q: %v",
			expr, s.err.Context.Culprit(), err)
		s.buffer = s.errorMarker
		s.hasLast = false
		return
	}
	result := eval.FormatPrec(v, s.precision)
	s.history.Add(storedefs.Entry{
		Expression: expr,
		Result:     result,
		Timestamp:  s.now().UnixMilli(),
	})
	s.buffer = result
	// Use the value as displayed, so that M+ adds what the user sees.
	if shown, err := strconv.ParseFloat(result, 64); err == nil {
		v = shown
	}
	s.last, s.hasLast = v, true
}

// Err returns the error of the last finalization if it failed and the
// buffer has not been edited since, or nil otherwise. Parse errors are
// returned as they are; other errors are turned into a *diag.Error of type
// "domain error" pointing into the failed expression.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		return nil
	}
	return s.err
}

func finalizeError(expr string, err error) *diag.Error {
	var perr *diag.Error
	if errors.As(err, &perr) {
		return perr
	}
	var r diag.Ranger = diag.Ranging{From: 0, To: len(expr)}
	msg := err.Error()
	var derr *eval.DomainError
	if errors.As(err, &derr) {
		r, msg = derr, derr.Err.Error()
	}
	return &diag.Error{
		Type:    "domain error",
		Message: msg,
		Context: *diag.NewContext(expr, r),
	}
}

// MemoryAdd adds the most recent value to the memory register. The value is
// used up, so calling MemoryAdd again without a new value does nothing.
func (s *Session) MemoryAdd() { s.Append(translate.MemoryAdd) }

// MemorySubtract is like MemoryAdd, but subtracts the value.
func (s *Session) MemorySubtract() { s.Append(translate.MemorySubtract) }

// MemoryRecall appends the value of the memory register to the buffer. It is
// equivalent to appending the MR key.
func (s *Session) MemoryRecall() { s.Append(translate.MemoryRecall) }

// MemoryClear resets the memory register to zero.
func (s *Session) MemoryClear() { s.Append(translate.MemoryClear) }

// InsertFromHistory replaces the buffer with the given expression, usually
// one taken from a history entry.
func (s *Session) InsertFromHistory(expression string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = expression
	s.refresh()
}

// ClearHistory empties the history log, both in memory and in the store.
func (s *Session) ClearHistory() {
	s.history.Clear()
}

// Buffer returns the current buffer.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Preview returns the value of the buffer, and whether it is available.
func (s *Session) Preview() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview, s.hasPreview
}

// PreviewText returns the formatted preview, or "" if there is none.
func (s *Session) PreviewText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPreview {
		return ""
	}
	return eval.FormatPrec(s.preview, s.precision)
}

// Memory returns the value of the memory register.
func (s *Session) Memory() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory
}

// History returns the entries of the history log, newest first.
func (s *Session) History() []storedefs.Entry {
	return s.history.Entries()
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer == "" {
		return Idle
	}
	return Editing
}

func (s *Session) appendText(fragment string) {
	if s.buffer == s.errorMarker {
		s.buffer = ""
	}
	s.buffer += fragment
	s.refresh()
}

// Recomputes the preview from the buffer.
func (s *Session) refresh() {
	s.hasPreview, s.hasLast = false, false
	s.err = nil
	if s.buffer == "" {
		return
	}
	v, err := eval.Evaluate(s.buffer)
	if err != nil {
		return
	}
	s.preview, s.hasPreview = v, true
	s.last, s.hasLast = v, true
}

func (s *Session) memoryRecall() {
	s.appendText(eval.FormatPrec(s.memory, s.precision))
}

func (s *Session) memoryUpdate(sign float64) {
	if !s.hasLast {
		return
	}
	m := s.memory + sign*s.last
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return
	}
	s.memory = m
	s.hasLast = false
}
