package eval

import (
	"errors"
	"fmt"

	"src.calc.sh/pkg/diag"
)

// Sentinel errors wrapped by DomainError.
var (
	ErrDivideByZero  = errors.New("division by zero")
	ErrFactorial     = errors.New("factorial is only defined for non-negative integers")
	ErrOutOfDomain   = errors.New("argument out of domain")
	ErrNotFinite     = errors.New("result is not a finite number")
	ErrUnknownFunc   = errors.New("unknown function")
	ErrUnknownConst  = errors.New("unknown constant")
	errInternalPanic = errors.New("internal error")
)

// DomainError is returned when an expression is syntactically valid but
// denotes an undefined operation, like 1/0 or (-1)!.
type DomainError struct {
	diag.Ranging
	// The operator or function that failed.
	Op  string
	Err error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %d-%d: %s: %v", e.From, e.To, e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

func domainError(r diag.Ranger, op string, err error) *DomainError {
	return &DomainError{r.Range(), op, err}
}
