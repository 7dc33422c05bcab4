package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a zap logger at the named level ("debug", "info", "warn", ...).
// Development loggers are human readable; production loggers emit JSON.
func New(level string, development bool) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevel()
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	return cfg.Build()
}
