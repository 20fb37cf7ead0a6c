package handler

import (
	"errors"
	"fmt"
)

// ErrActionFailed stands in for an error result that carries no error.
var ErrActionFailed = errors.New("action failed")

// ResultStatus is the outcome of one action.
type ResultStatus uint8

const (
	StatusOK    ResultStatus = iota // the action did something
	StatusNoOp                      // nothing to do, e.g. undo with empty history
	StatusError                     // the action failed; see Result.Error
)

var statusNames = [...]string{StatusOK: "ok", StatusNoOp: "no-op", StatusError: "error"}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is what a handler returns. Message, when set, is shown in the
// status line.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string
}

func (r Result) IsOK() bool    { return r.Status == StatusOK }
func (r Result) IsError() bool { return r.Status == StatusError }

// Err returns nil unless the status is StatusError, and never nil when it
// is.
func (r Result) Err() error {
	switch {
	case r.Status != StatusError:
		return nil
	case r.Error == nil:
		return ErrActionFailed
	}
	return r.Error
}

func Success() Result                      { return Result{Status: StatusOK} }
func SuccessWithMessage(msg string) Result { return Result{Status: StatusOK, Message: msg} }
func NoOp() Result                         { return Result{Status: StatusNoOp} }
func NoOpWithMessage(msg string) Result    { return Result{Status: StatusNoOp, Message: msg} }
func Error(err error) Result               { return Result{Status: StatusError, Error: err} }

// Errorf is Error(fmt.Errorf(format, args...)).
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}
