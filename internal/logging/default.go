package logging

import (
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strings"
	"sync/atomic"
)

// DefaultLogger writes through the standard log package.
// Debug/Info go to stdout, Warn/Error to stderr.
type DefaultLogger struct {
	stdoutLogger *log.Logger
	stderrLogger *log.Logger
	level        *atomic.Int32
	fields       Fields
}

// NewDefaultLogger creates a logger at InfoLevel on os.Stdout and os.Stderr.
func NewDefaultLogger() *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, log.LstdFlags)
}

// NewWriterLogger creates a logger on arbitrary writers. flag is passed to
// log.New.
func NewWriterLogger(stdout, stderr io.Writer, flag int) *DefaultLogger {
	level := new(atomic.Int32)
	level.Store(int32(InfoLevel))

	return &DefaultLogger{
		stdoutLogger: log.New(stdout, "", flag),
		stderrLogger: log.New(stderr, "", flag),
		level:        level,
		fields:       make(Fields),
	}
}

func (d *DefaultLogger) formatMessage(level Level, err error, msg string, fields ...Fields) string {
	all := make(Fields, len(d.fields))
	maps.Copy(all, d.fields)
	for _, f := range fields {
		maps.Copy(all, f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, msg)

	if err != nil {
		fmt.Fprintf(&b, ": %v", err)
	}

	for _, k := range slices.Sorted(maps.Keys(all)) {
		fmt.Fprintf(&b, " %s=%v", k, all[k])
	}

	return b.String()
}

func (d *DefaultLogger) log(level Level, err error, msg string, fields ...Fields) {
	if level < Level(d.level.Load()) {
		return
	}

	line := d.formatMessage(level, err, msg, fields...)

	switch level {
	case DebugLevel, InfoLevel:
		d.stdoutLogger.Println(line)
	default:
		d.stderrLogger.Println(line)
	}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.log(DebugLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.log(InfoLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.log(WarnLevel, nil, msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.log(ErrorLevel, err, msg, fields...)
}

// WithFields returns a child logger. The child shares writers and level with
// its parent.
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(d.fields)+len(fields))
	maps.Copy(merged, d.fields)
	maps.Copy(merged, fields)

	return &DefaultLogger{
		stdoutLogger: d.stdoutLogger,
		stderrLogger: d.stderrLogger,
		level:        d.level,
		fields:       merged,
	}
}

func (d *DefaultLogger) SetLevel(level Level) {
	d.level.Store(int32(level))
}
