package commands

import (
	"errors"
	"net"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/mandala"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitProvider   = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
	// reported is set when the message was already written for the user.
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func reportedExit(code int, err error) error {
	return &exitError{code: code, err: err, reported: true}
}

// exitCodeFor maps a generation failure to the process exit code.
func exitCodeFor(f *mandala.Failure) int {
	if f.Kind.IsValidation() {
		return ExitValidation
	}
	if errors.Is(f, core.ErrNetwork) {
		return ExitNetwork
	}
	var netErr net.Error
	if errors.As(f, &netErr) {
		return ExitNetwork
	}
	return ExitProvider
}
