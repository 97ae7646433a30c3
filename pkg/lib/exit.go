package lib

import (
	"errors"
	"fmt"
	"os"
)

// codedError carries the process exit status for an error.
type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// WithExitCode marks err so that Exit terminates with code instead of 1.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &codedError{err: err, code: code}
}

// ExitCode returns the status Exit would use for err.
func ExitCode(err error) int {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}

// Exit prints the error and exits the program with its exit code (1 unless
// set with WithExitCode).
func Exit(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(ExitCode(err))
}
