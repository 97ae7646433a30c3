package blocks

import (
	"errors"
	"fmt"
)

var (
	ErrOutputAndChaining  = errors.New("block declares both an output and statement chaining")
	ErrNoOutputOrChaining = errors.New("block declares neither an output nor statement chaining")
	ErrDuplicateSocket    = errors.New("duplicate socket name")
	ErrUnknownCategory    = errors.New("unknown colour category")
	ErrUnknownType        = errors.New("unknown type name")
	ErrCheckOnNonValue    = errors.New("type check on a socket that takes no value")
	ErrNotFound           = errors.New("block kind not found")
)

// SchemaError reports a malformed block definition. It is returned at
// construction time only; a BlockKind that was built never produces one.
//
// Reason is one of the sentinel errors above, possibly wrapped with detail,
// so callers can match with errors.Is.
type SchemaError struct {
	Block  string
	Reason error
}

func (e *SchemaError) Error() string {
	block := e.Block
	if block == "" {
		block = "<unnamed>"
	}
	return fmt.Sprintf("phase=schema block=%s: %v", block, e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Reason }

func schemaErrorf(block string, sentinel error, format string, args ...any) *SchemaError {
	if format == "" {
		return &SchemaError{Block: block, Reason: sentinel}
	}
	return &SchemaError{Block: block, Reason: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}
