package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kioskanalyzer/internal/config"
)

// New builds the process logger. Unknown levels fall back to info and
// unknown encodings to json.
func New(cfg config.LoggerConfig, development bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if development {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Encoding {
	case "console":
		zc.Encoding = "console"
	default:
		zc.Encoding = "json"
	}
	zc.DisableCaller = cfg.DisableCaller
	zc.DisableStacktrace = cfg.DisableStacktrace
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}
