package app

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit is returned once the user has asked to leave.
	ErrQuit = errors.New("quit requested")

	ErrAlreadyRunning = errors.New("application already running")

	// ErrUnsavedChanges is returned by the first quit on a modified buffer.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrNoFilePath is returned when saving a scratch buffer.
	ErrNoFilePath = errors.New("buffer has no file name")
)

// InitError names the component whose startup failed.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string { return fmt.Sprintf("init %s: %v", e.Component, e.Err) }
func (e *InitError) Unwrap() error { return e.Err }

// FileError is a failed document open or save.
type FileError struct {
	Op   string // "open" or "save"
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }
func (e *FileError) Unwrap() error { return e.Err }
