// Package zlog builds the zap loggers used by the ngon commands.
package zlog

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by New.
const (
	Console = "console"
	JSON    = "json"
)

// ParseLevel parses a level name such as "debug" or "warn". The empty
// string is the info level.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zap.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return lvl, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a logger writing to stderr at the given level with the given
// encoding. The returned AtomicLevel changes the level of the running logger.
func New(level, encoding string) (*zap.Logger, zap.AtomicLevel, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	enc := zap.NewProductionEncoderConfig()
	switch encoding {
	case "", Console:
		encoding = Console
		enc = zap.NewDevelopmentEncoderConfig()
	case JSON:
	default:
		return nil, zap.AtomicLevel{}, fmt.Errorf("unknown log encoding %q", encoding)
	}
	atom := zap.NewAtomicLevelAt(lvl)
	config := zap.Config{
		Level:            atom,
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    enc,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	log, err := config.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return log, atom, nil
}

// SetLevel sets atom to the named level, leaving it unchanged on error.
func SetLevel(atom zap.AtomicLevel, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	atom.SetLevel(lvl)
	return nil
}
