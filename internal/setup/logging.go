package setup

import (
	"fmt"

	"github.com/runwayhq/runway/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLoggers builds the main and database loggers from the debug
// configuration. The database logger stays at warn unless debug logging is
// on, since query logging is noisy.
func newLoggers(cfg *config.Debug) (*zap.Logger, *zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	dbLevel := zapcore.WarnLevel
	if level == zapcore.DebugLevel {
		dbLevel = zapcore.DebugLevel
	}

	dbCfg := zap.NewProductionConfig()
	dbCfg.Level = zap.NewAtomicLevelAt(dbLevel)
	dbCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	dbLogger, err := dbCfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build database logger: %w", err)
	}

	return logger, dbLogger, nil
}
