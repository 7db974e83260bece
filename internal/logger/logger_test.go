package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"kioskanalyzer/internal/config"
)

func TestNewAppliesLevel(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "warn", Encoding: "console"}, false)
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected warn to be enabled")
	}
}

func TestNewFallsBackOnUnknownLevel(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "chatty", Encoding: "xml"}, false)
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) || log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected info level fallback")
	}
}
