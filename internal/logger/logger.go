package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level, encoding and destination of log output.
type Config struct {
	Level  string // debug, info, warn, error (default info)
	Format string // console or json (default console)
	File   string // append to this file instead of stderr
}

// New builds a logger from cfg. Output goes to stderr unless cfg.File is
// set; stdout is reserved for command output.
func New(cfg Config) (*zap.Logger, error) {
	ws := zapcore.Lock(os.Stderr)
	if cfg.File != "" {
		sink, _, err := zap.Open(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		ws = sink
	}
	return NewWithWriter(cfg, ws)
}

// NewWithWriter builds a logger that writes to ws.
func NewWithWriter(cfg Config, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("invalid log format %q: must be console or json", cfg.Format)
	}

	core := zapcore.NewCore(encoder, ws, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
