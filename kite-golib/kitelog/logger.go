package kitelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Basic logs to stderr at info level
var Basic = New(os.Stderr, zapcore.InfoLevel)

// Logger encapsulates a structured logger and a stage duration tracker
type Logger struct {
	Default   *zap.SugaredLogger
	Durations Durations
}

// Interface encapsulates the printf-style methods shared with log.Logger
type Interface interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// New returns a Logger writing human readable lines to w, with RFC3339
// timestamps and caller information.
func New(w io.Writer, level zapcore.Level) *Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), level)

	return &Logger{
		Default: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
	}
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return &Logger{Default: zap.NewNop().Sugar()}
}

// Printf implements Interface
func (l *Logger) Printf(format string, v ...interface{}) {
	l.Default.Infof(format, v...)
}

// Println implements Interface
func (l *Logger) Println(v ...interface{}) {
	l.Default.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Infow logs a message with key/value pairs
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.Default.Infow(msg, keysAndValues...)
}

// Warnw logs a warning with key/value pairs
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.Default.Warnw(msg, keysAndValues...)
}

// Errorw logs an error with key/value pairs
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.Default.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() error {
	return l.Default.Sync()
}
