package logger

import (
	"log"
	"sync"

	"github.com/fatih/color"
)

// Level represents the severity level of a log message.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	NoticeLevel
	ErrorLevel
)

type railGroup int

const (
	none railGroup = iota
	instant
	batch
	wire
	ledger
)

var categoryMap = map[string]railGroup{
	"domestic_fiat_instant": instant,
	"domestic_fiat_batch":   batch,
	"cross_border_wire":     wire,
	"ledger_asset":          ledger,
}

var railPrefixes = map[railGroup]string{
	none:    "",
	instant: "[INSTANT] ",
	batch:   "[BATCH]   ",
	wire:    "[WIRE]    ",
	ledger:  "[LEDGER]  ",
}

var colors = map[railGroup]color.Attribute{
	none:    color.FgWhite,
	instant: color.FgHiGreen,
	batch:   color.FgYellow,
	wire:    color.FgHiBlue,
	ledger:  color.FgMagenta,
}

// Logger is a simple interface for logging messages.
type Logger interface {
	// Info logs an informational message.
	Info(format string, args ...interface{})
	InfoWithRail(category string, format string, args ...interface{})

	// Error logs an error message.
	Error(format string, args ...interface{})
	ErrorWithRail(category string, format string, args ...interface{})

	// Debug logs a debug message.
	Debug(format string, args ...interface{})
	DebugWithRail(category string, format string, args ...interface{})

	// Notice logs a notice message.
	Notice(format string, args ...interface{})
	NoticeWithRail(category string, format string, args ...interface{})
}

// EmptyLogger is a simple implementation of the Logger interface that does nothing.
type EmptyLogger struct{}

var _ Logger = (*EmptyLogger)(nil)

func (l *EmptyLogger) Info(_ string, _ ...interface{})                     {}
func (l *EmptyLogger) InfoWithRail(_ string, _ string, _ ...interface{})   {}
func (l *EmptyLogger) Error(_ string, _ ...interface{})                    {}
func (l *EmptyLogger) ErrorWithRail(_ string, _ string, _ ...interface{})  {}
func (l *EmptyLogger) Debug(_ string, _ ...interface{})                    {}
func (l *EmptyLogger) DebugWithRail(_ string, _ string, _ ...interface{})  {}
func (l *EmptyLogger) Notice(_ string, _ ...interface{})                   {}
func (l *EmptyLogger) NoticeWithRail(_ string, _ string, _ ...interface{}) {}

// StdLogger is a standard implementation of the Logger interface that logs messages to the console.
type StdLogger struct {
	enableColoring bool
	level          Level
	mu             sync.Mutex
}

var _ Logger = (*StdLogger)(nil)

func NewStdLogger(enableColoring bool, level Level) *StdLogger {
	return &StdLogger{
		enableColoring: enableColoring,
		level:          level,
	}
}

// formatMessage formats the log message with the appropriate log level, rail prefix, and coloring if enabled.
func (l *StdLogger) formatMessage(level Level, group railGroup, format string) string {
	railPrefix := railPrefixes[group]
	if l.enableColoring {
		railPrefix = color.New(colors[group]).Sprint(railPrefix)
	}

	var levelStr string
	switch level {
	case DebugLevel:
		levelStr = "[DEBUG]  "
	case InfoLevel:
		levelStr = "[INFO]   "
	case NoticeLevel:
		levelStr = "[NOTICE] "
	case ErrorLevel:
		levelStr = "[ERROR]  "
	}

	return levelStr + railPrefix + format
}

func (l *StdLogger) logf(level Level, category string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level > level {
		return
	}
	log.Printf(l.formatMessage(level, categoryMap[category], format), args...)
}

func (l *StdLogger) Info(format string, args ...interface{}) {
	l.logf(InfoLevel, "", format, args...)
}

func (l *StdLogger) InfoWithRail(category string, format string, args ...interface{}) {
	l.logf(InfoLevel, category, format, args...)
}

func (l *StdLogger) Error(format string, args ...interface{}) {
	l.logf(ErrorLevel, "", format, args...)
}

func (l *StdLogger) ErrorWithRail(category string, format string, args ...interface{}) {
	l.logf(ErrorLevel, category, format, args...)
}

func (l *StdLogger) Debug(format string, args ...interface{}) {
	l.logf(DebugLevel, "", format, args...)
}

func (l *StdLogger) DebugWithRail(category string, format string, args ...interface{}) {
	l.logf(DebugLevel, category, format, args...)
}

func (l *StdLogger) Notice(format string, args ...interface{}) {
	l.logf(NoticeLevel, "", format, args...)
}

func (l *StdLogger) NoticeWithRail(category string, format string, args ...interface{}) {
	l.logf(NoticeLevel, category, format, args...)
}
