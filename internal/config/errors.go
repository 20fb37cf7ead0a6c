package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is wrapped by every validation and environment error.
var ErrInvalidValue = errors.New("invalid config value")

// ParseError is a TOML syntax or type error. Line and Column are zero when
// the decoder did not report a position.
type ParseError struct {
	Path         string
	Line, Column int
	Err          error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func invalid(key string, value any, reason string) error {
	return fmt.Errorf("%w: %s = %v: %s", ErrInvalidValue, key, value, reason)
}
