package particles

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// DefaultLogger writes debug and info lines to stdout and warnings and errors
// to stderr, each tagged with an optional prefix.
type DefaultLogger struct {
	debug  atomic.Bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newDefaultLogger(prefix, debug, os.Stdout, os.Stderr, log.LstdFlags|log.Lmicroseconds)
}

func newDefaultLogger(prefix string, debug bool, out, err io.Writer, flags int) *DefaultLogger {
	l := &DefaultLogger{
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(err, "", flags),
	}
	l.debug.Store(debug)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool    { return l.debug.Load() }
func (l *DefaultLogger) SetDebug(enabled bool) { l.debug.Store(enabled) }

func (l *DefaultLogger) emit(level logLevel, format string, args ...any) {
	if level == levelDebug && !l.DebugEnabled() {
		return
	}
	w := l.out
	if level >= levelWarn {
		w = l.err
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		w.Printf("[%s] %s: %s", l.prefix, levelNames[level], msg)
		return
	}
	w.Printf("%s: %s", levelNames[level], msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.emit(levelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.emit(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.emit(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.emit(levelError, format, args...) }

// batchLogger tags every line with the batch it concerns.
type batchLogger struct {
	Logger
	id BatchId
}

func loggerForBatch(l Logger, b *Batch) Logger { return batchLogger{Logger: l, id: b.Id} }

func (l batchLogger) tag(format string, args []any) (string, []any) {
	return "batch %s: " + format, append([]any{l.id}, args...)
}

func (l batchLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	f, a := l.tag(format, args)
	l.Logger.Debugf(f, a...)
}

func (l batchLogger) Infof(format string, args ...any) {
	f, a := l.tag(format, args)
	l.Logger.Infof(f, a...)
}

func (l batchLogger) Warnf(format string, args ...any) {
	f, a := l.tag(format, args)
	l.Logger.Warnf(f, a...)
}

func (l batchLogger) Errorf(format string, args ...any) {
	f, a := l.tag(format, args)
	l.Logger.Errorf(f, a...)
}

// ZapLogger routes simulator logs into an existing zap logger. Debug output is
// gated by an atomic level so SetDebug takes effect without rebuilding it.
type ZapLogger struct {
	level zap.AtomicLevel
	s     *zap.SugaredLogger
}

func NewZapLogger(base *zap.Logger, debug bool) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}
	return &ZapLogger{
		level: level,
		s:     base.WithOptions(zap.IncreaseLevel(level)).Sugar(),
	}
}

func (l *ZapLogger) DebugEnabled() bool { return l.level.Enabled(zapcore.DebugLevel) }

func (l *ZapLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	l.level.SetLevel(zapcore.InfoLevel)
}

func (l *ZapLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

// NewNopLogger returns a logger that discards everything, debug included.
func NewNopLogger() Logger {
	l := newDefaultLogger("", false, io.Discard, io.Discard, 0)
	return nopLogger{l}
}

// nopLogger pins debug off so DebugEnabled guards skip formatting.
type nopLogger struct{ *DefaultLogger }

func (nopLogger) SetDebug(bool) {}
