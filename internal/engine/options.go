package engine

const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
)

// settings gathers options before the buffer exists.
type settings struct {
	content  string
	cursor   ByteOffset
	tabWidth int
	maxUndo  int
}

func collect(opts []Option) settings {
	s := settings{tabWidth: DefaultTabWidth, maxUndo: DefaultMaxUndoEntries}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures an Engine at creation.
type Option func(*settings)

// WithContent sets the initial text. CRLF and CR line endings are
// normalized to LF and restored by Export.
func WithContent(content string) Option {
	return func(s *settings) { s.content = content }
}

// WithCursor places the cursor, clamped to the text.
func WithCursor(offset ByteOffset) Option {
	return func(s *settings) { s.cursor = offset }
}

// WithTabWidth sets the width used for visual columns. Values below 1 keep
// the default.
func WithTabWidth(width int) Option {
	return func(s *settings) {
		if width > 0 {
			s.tabWidth = width
		}
	}
}

// WithMaxUndoEntries bounds the undo history. Values below 1 keep the
// default.
func WithMaxUndoEntries(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxUndo = n
		}
	}
}
