package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pankajredekar/catalog/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		cfg     config.LogConfig
		enabled zapcore.Level
		skipped zapcore.Level
	}{
		{config.LogConfig{Level: "warn", Mode: "development"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{config.LogConfig{Level: "debug", Mode: "production"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{config.LogConfig{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			log, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !log.Core().Enabled(tt.enabled) {
				t.Errorf("Expected %s to be enabled", tt.enabled)
			}
			if log.Core().Enabled(tt.skipped) {
				t.Errorf("Expected %s to be disabled", tt.skipped)
			}
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "catalog.log")

	log, err := New(config.LogConfig{
		Level:      "info",
		Mode:       "production",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Info("product added")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"product added"`) {
		t.Errorf("Expected JSON entry in log file, got %q", data)
	}
}
