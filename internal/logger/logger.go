package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/samplegen/internal/env"
	"github.com/ekisa-team/samplegen/internal/envvar"
)

const (
	defaultLogFile    = "logs/samplegen.log"
	defaultMaxSizeMB  = 20
	defaultMaxBackups = 5
	defaultMaxAgeDays = 28
)

type options struct {
	level     slog.Leveler
	output    io.Writer
	logFile   string
	logToFile bool
}

// Option configures the logger.
type Option func(*options)

// WithLogToFile enables writing logs to a rotating file in addition to the console.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the path of the rotating log file.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithLevel overrides the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithOutput sets the console writer. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// New creates a logger for the given environment.
// Development logs are colorized with tint, production logs are JSON.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		output:  os.Stderr,
		logFile: defaultLogFile,
	}
	for _, opt := range opts {
		opt(o)
	}

	level := o.level
	if level == nil {
		level = defaultLevel(environment)
	}

	var handler slog.Handler
	if environment.IsProduction() {
		handler = slog.NewJSONHandler(o.output, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(o.output, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	if o.logToFile {
		file := &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
			Compress:   true,
		}
		handler = &fanout{handlers: []slog.Handler{
			handler,
			slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}),
		}}
	}

	return slog.New(handler)
}

// defaultLevel picks the level from SAMPLEGEN_LOG_LEVEL, falling back to the environment default.
func defaultLevel(environment env.Environment) slog.Level {
	if raw := os.Getenv(envvar.SamplegenLogLevel); raw != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.ToUpper(raw))); err == nil {
			return level
		}
	}

	if environment.IsProduction() {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
