package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/listedit/internal/engine"
)

// Document is the file being edited and its engine.
type Document struct {
	mu    sync.Mutex
	path  string
	saved engine.RevisionID

	Engine *engine.Engine
}

// NewDocument creates a document holding content. An empty path makes a
// scratch buffer.
func NewDocument(path, content string, opts ...engine.Option) *Document {
	eng := engine.New(append([]engine.Option{engine.WithContent(content)}, opts...)...)
	return &Document{path: path, saved: eng.RevisionID(), Engine: eng}
}

// OpenDocument reads path into a document. A file that does not exist yet
// opens as an empty buffer that will be created on save.
func OpenDocument(path string, opts ...engine.Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	return NewDocument(path, string(data), opts...), nil
}

// Path returns the file path, or "" for a scratch buffer.
func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Name returns the display name.
func (d *Document) Name() string {
	if p := d.Path(); p != "" {
		return filepath.Base(p)
	}
	return "[scratch]"
}

// IsScratch returns true if the document has no file path.
func (d *Document) IsScratch() bool {
	return d.Path() == ""
}

// IsModified reports whether the buffer changed since it was opened or
// last saved.
func (d *Document) IsModified() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Engine.RevisionID() != d.saved
}

// Save writes the buffer to its file using the line ending it was read
// with.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.path == "" {
		return ErrNoFilePath
	}
	rev := d.Engine.RevisionID()
	if err := os.WriteFile(d.path, []byte(d.Engine.Export()), 0644); err != nil {
		return &FileError{Op: "save", Path: d.path, Err: err}
	}
	d.saved = rev
	return nil
}

// SaveAs writes the buffer to path and makes it the document's file.
func (d *Document) SaveAs(path string) error {
	d.mu.Lock()
	d.path = path
	d.mu.Unlock()
	return d.Save()
}
