// Package logutil builds the zap logger shared by the command line and the
// benchmark runner.
package logutil

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig selects level, encoding and an optional rotating file sink.
// An empty Filename logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console or json
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxDays    int    `yaml:"max_days"`
	MaxBackups int    `yaml:"max_backups"`
}

func (c *LogConfig) level() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(c.Level))); err != nil {
		return lvl, fmt.Errorf("log level %q: %w", c.Level, err)
	}
	return lvl, nil
}

func (c *LogConfig) encoder() (zapcore.Encoder, error) {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	switch strings.ToLower(c.Format) {
	case "", "console":
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	case "json":
		return zapcore.NewJSONEncoder(ec), nil
	default:
		return nil, fmt.Errorf("log format %q: want console or json", c.Format)
	}
}

func (c *LogConfig) syncer() zapcore.WriteSyncer {
	if c.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   c.Filename,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxDays,
		MaxBackups: c.MaxBackups,
		LocalTime:  true,
	})
}

// New builds a logger from cfg.
func New(cfg LogConfig) (*zap.Logger, error) {
	lvl, err := cfg.level()
	if err != nil {
		return nil, err
	}
	enc, err := cfg.encoder()
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(enc, cfg.syncer(), zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.AddCaller()), nil
}
