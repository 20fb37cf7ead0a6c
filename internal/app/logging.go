package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel parses a level name case-insensitively. "warning" is
// accepted for warn; anything unrecognized is info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	}
	return LogLevelInfo
}

// sink is the state every logger derived from one root shares.
type sink struct {
	mu    sync.Mutex
	level LogLevel
	out   io.Writer
}

// Logger writes one line per message:
//
//	2026-01-02T15:04:05.000 [INFO] listedit: opened document component=app path=notes.org
//
// Fields added with WithField come before the per-call key/value pairs.
// Loggers derived from the same root share its level and output.
type Logger struct {
	sink   *sink
	prefix string
	fields string // preformatted " k=v" pairs
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer // nil means os.Stderr
	Prefix string
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: LogLevelInfo, Output: os.Stderr, Prefix: "listedit"}
}

// NewLogger returns a root logger.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{sink: &sink{level: cfg.Level, out: out}, prefix: cfg.Prefix}
}

// NullLogger discards everything.
var NullLogger = NewLogger(LoggerConfig{Level: LogLevelError + 1, Output: io.Discard})

// WithField returns a child logger that appends key=value to every line.
func (l *Logger) WithField(key string, value any) *Logger {
	child := *l
	child.fields += fmt.Sprintf(" %s=%v", key, value)
	return &child
}

// WithComponent is WithField("component", name).
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// SetLevel changes the level of l, its root and all their children.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	l.sink.level = level
	l.sink.mu.Unlock()
}

func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

func (l *Logger) Debug(msg string, kv ...any) { l.log(LogLevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(LogLevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(LogLevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(LogLevelError, msg, kv) }

func (l *Logger) log(level LogLevel, msg string, kv []any) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < s.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [" + level.String() + "] ")
	if l.prefix != "" {
		b.WriteString(l.prefix + ": ")
	}
	b.WriteString(msg)
	b.WriteString(l.fields)
	for len(kv) >= 2 {
		fmt.Fprintf(&b, " %v=%v", kv[0], kv[1])
		kv = kv[2:]
	}
	if len(kv) == 1 {
		// A dangling value is still worth seeing.
		fmt.Fprintf(&b, " %v", kv[0])
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(s.out, b.String())
}
