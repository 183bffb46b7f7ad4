// Package alog is a small leveled-logging wrapper used throughout the
// resolver engine and its worker process. It is grounded on the teacher's
// own log/logger.go (an io.Writer-backed Logger with Logf/Logln), extended
// with a structured backend (logrus) whose WithFields lets callers attach
// structured fields rather than free-form strings.
package alog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger the way the teacher's Logger wraps an
// io.Writer: a thin wrapper struct that exists so call sites don't import
// logrus directly.
type Logger struct {
	l *logrus.Logger
}

// New returns a Logger writing to w at the given level.
func New(w io.Writer, level logrus.Level) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{l: l}
}

// Nop returns a Logger that discards everything. Used as the default when
// no Logger is supplied, so call sites never need a nil check.
func Nop() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{l: l}
}

// WithFields returns an entry pre-populated with structured fields.
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return l.l.WithFields(fields)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.l.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.l.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.l.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.l.Errorf(format, args...) }
