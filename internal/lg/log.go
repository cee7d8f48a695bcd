// Package lg provides the leveled logger handed down through a backup run.
//
// Events go to two sinks: an append-only file that receives everything at
// debug level, and the console, filtered by the operator's verbosity.
package lg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field, aliasing zapcore.Field.
type Field = zapcore.Field

func String(key, value string) Field { return zap.String(key, value) }
func Int(key string, value int) Field { return zap.Int(key, value) }
func Strings(key string, value []string) Field { return zap.Strings(key, value) }
func Err(err error) Field { return zap.Error(err) }

// Logger is the minimal leveled logging interface used by the backup run.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

// Config holds logging options taken from the command line.
type Config struct {
	Name      string
	Verbosity int    // number of -v flags
	File      string // append-only log file; empty disables the file sink
	Console   io.Writer
}

// LevelForVerbosity maps a -v count to the console level:
// 0 error, 1 warning, 2 info, 3 and above debug.
func LevelForVerbosity(v int) zapcore.Level {
	switch {
	case v <= 0:
		return zapcore.ErrorLevel
	case v == 1:
		return zapcore.WarnLevel
	case v == 2:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	ec := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05,000"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return ec
}

// New builds a Logger from cfg. The returned close function releases the
// log file and must be called once the run is over.
func New(cfg Config) (Logger, func() error, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	color := false
	if f, ok := console.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(color)),
			zapcore.Lock(zapcore.AddSync(console)),
			LevelForVerbosity(cfg.Verbosity),
		),
	}

	closeFn := func() error { return nil }
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", cfg.File, err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(false)),
			zapcore.Lock(f),
			zapcore.DebugLevel,
		))
		closeFn = f.Close
	}

	l := zap.New(zapcore.NewTee(cores...)).Named(cfg.Name)
	return &zapLogger{l: l}, closeFn, nil
}

// FromCore wraps an arbitrary zap core, used by tests with zaptest/observer.
func FromCore(core zapcore.Core) Logger {
	return &zapLogger{l: zap.New(core)}
}

type zapLogger struct{ l *zap.Logger }

func (z *zapLogger) Debug(msg string, fields ...Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...Field) { z.l.Info(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...Field) { z.l.Warn(msg, fields...) }
func (z *zapLogger) Error(msg string, fields ...Field) { z.l.Error(msg, fields...) }
func (z *zapLogger) With(fields ...Field) Logger { return &zapLogger{l: z.l.With(fields...)} }
func (z *zapLogger) Sync() error { return z.l.Sync() }

type noopLogger struct{}

func (noopLogger) Debug(string, ...Field) {}
func (noopLogger) Info(string, ...Field) {}
func (noopLogger) Warn(string, ...Field) {}
func (noopLogger) Error(string, ...Field) {}
func (noopLogger) With(...Field) Logger { return noopLogger{} }
func (noopLogger) Sync() error { return nil }

// Discard drops every event. For tests only.
var Discard Logger = noopLogger{}

// Since is a convenience field for elapsed time.
func Since(start time.Time) Field { return zap.Duration("elapsed", time.Since(start)) }
