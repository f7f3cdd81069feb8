package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger takes in a message and key/value tag pairs.
type Logger interface {
	Debug(msg string, tags ...interface{})
	Info(msg string, tags ...interface{})
	Warn(msg string, tags ...interface{})
	Error(msg string, tags ...interface{})
}

// Level orders log entries by severity.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	default:
		return "ERROR"
	}
}

type logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New creates a logger that writes info and above to stdout.
func New() Logger { return NewWriter(os.Stdout, InfoLevel) }

// NewWriter creates a logger that writes entries at or above level to out.
func NewWriter(out io.Writer, level Level) Logger {
	return &logger{out: out, level: level}
}

// Nop returns a logger that drops everything.
func Nop() Logger { return nop{} }

func (l *logger) print(level Level, msg string, tags ...interface{}) {
	if level < l.level {
		return
	}
	var b strings.Builder
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i < len(tags); i += 2 {
		if i+1 < len(tags) {
			fmt.Fprintf(&b, " %v=%v", tags[i], tags[i+1])
		} else {
			fmt.Fprintf(&b, " %v", tags[i])
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, b.String())
}

// Debug creates a debug log entry.
func (l *logger) Debug(msg string, tags ...interface{}) { l.print(DebugLevel, msg, tags...) }

// Info creates an info log entry.
func (l *logger) Info(msg string, tags ...interface{}) { l.print(InfoLevel, msg, tags...) }

// Warn creates a warn log entry.
func (l *logger) Warn(msg string, tags ...interface{}) { l.print(WarnLevel, msg, tags...) }

// Error creates an error log entry.
func (l *logger) Error(msg string, tags ...interface{}) { l.print(ErrorLevel, msg, tags...) }

type nop struct{}

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}
