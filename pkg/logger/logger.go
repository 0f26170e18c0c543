package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the edutask binaries.
// Output goes to stderr by default so that it never interleaves with the
// diagnostics the user controller prints on stdout.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger *log.Logger = log.New(os.Stderr, "", 0)
	level  Level       = LevelInfo
	exit               = os.Exit
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// ParseLevel maps a level name to a Level, falling back to LevelInfo.
func ParseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return LevelInfo
}

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return level.String()
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func output(lvl Level, component, msg string) {
	var b strings.Builder
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(lvl.String()))
	b.WriteString("] ")
	if component != "" {
		b.WriteString(component)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Print(b.String())
}

// Logger tags every line with a component name (e.g. "dao", "users").
type Logger struct {
	component string
}

// Named returns a component logger. The global level and output still apply.
func Named(component string) *Logger {
	return &Logger{component: component}
}

func (c *Logger) logf(lvl Level, format string, v ...interface{}) {
	if !shouldLog(lvl) {
		return
	}
	output(lvl, c.component, fmt.Sprintf(format, v...))
}

func (c *Logger) Debugf(format string, v ...interface{}) { c.logf(LevelDebug, format, v...) }
func (c *Logger) Infof(format string, v ...interface{})  { c.logf(LevelInfo, format, v...) }
func (c *Logger) Warnf(format string, v ...interface{})  { c.logf(LevelWarn, format, v...) }
func (c *Logger) Errorf(format string, v ...interface{}) { c.logf(LevelError, format, v...) }

var root = &Logger{}

func Debugf(format string, v ...interface{}) { root.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { root.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { root.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { root.Errorf(format, v...) }

// Fatalf logs regardless of level and exits with status 1.
func Fatalf(format string, v ...interface{}) {
	output(LevelFatal, "", fmt.Sprintf(format, v...))
	exit(1)
}
