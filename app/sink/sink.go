// Package sink holds the shared failure vocabulary for the two data sinks.
package sink

import (
	"fmt"
)

const (
	Relational = "postgresql"
	Documents  = "mongodb"
)

// Error names the failing sink and wraps the underlying cause.
type Error struct {
	Sink string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s sink: %v", e.Sink, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf wraps a formatted cause as a sink error.
func Errorf(sinkName, format string, args ...any) *Error {
	return &Error{Sink: sinkName, Err: fmt.Errorf(format, args...)}
}
