package dispatcher

import "errors"

var (
	// ErrNoHandler is returned for actions no handler claims.
	ErrNoHandler = errors.New("no handler for action")

	// ErrActionCancelled is returned when a pre-hook vetoes an action.
	ErrActionCancelled = errors.New("action cancelled by hook")

	// ErrPanic wraps a recovered handler panic.
	ErrPanic = errors.New("handler panic")

	// ErrInvalidAction is returned for actions without a name.
	ErrInvalidAction = errors.New("invalid action")
)

// Config controls how the dispatcher runs handlers.
type Config struct {
	// EnableMetrics collects per-action counts and durations.
	EnableMetrics bool

	// RecoverFromPanic turns handler panics into error results.
	RecoverFromPanic bool

	// GroupUndo makes every dispatched command, including the edits list
	// editing advice adds around it, a single undo step.
	GroupUndo bool

	// MaxRepeatCount rejects actions with a larger count. Zero disables
	// the check.
	MaxRepeatCount int
}

// DefaultConfig recovers panics, groups undo per command and caps repeat
// counts at 10000.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		GroupUndo:        true,
		MaxRepeatCount:   10000,
	}
}

// WithMetrics returns a copy of c with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
