package logger

import (
	"os"
	"path/filepath"
	"testing"

	"remindly/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	if With(zap.String("key", "value")) == nil {
		t.Error("With() returned nil logger")
	}
	if WithRequestID("test-id") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync on nil logger: %v", err)
	}
}

func TestInitDevelopment(t *testing.T) {
	cfg := &config.LogConfig{Level: "debug", Output: "stdout"}
	if err := Init(cfg, "development"); err != nil {
		t.Fatalf("Init development: %v", err)
	}
	defer Sync()

	if !atomLevel.Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}
	Debug("debug message should appear")
	Info("info message", zap.String("component", "test"))
}

func TestUpdateLevel(t *testing.T) {
	if err := Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Sync()

	if !atomLevel.Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be enabled after Init with level=debug")
	}
	UpdateLevel("info")
	if atomLevel.Enabled(zapcore.DebugLevel) {
		t.Error("debug should be filtered after UpdateLevel(info)")
	}
	if !atomLevel.Enabled(zapcore.InfoLevel) {
		t.Error("info should still be enabled")
	}
	UpdateLevel("debug")
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test_file.log")

	cfg := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: testFile,
	}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init file logger: %v", err)
	}
	defer Sync()

	Info("file logger initialized")
	for i := 0; i < 10; i++ {
		Info("log entry", zap.Int("entry", i))
	}
	Sync()

	fileInfo, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if fileInfo.Size() == 0 {
		t.Fatal("log file is empty")
	}
}

func TestInitProduction(t *testing.T) {
	cfg := &config.LogConfig{Level: "info", Output: "stdout"}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init production: %v", err)
	}
	defer Sync()

	if atomLevel.Enabled(zapcore.DebugLevel) {
		t.Error("debug should be filtered at info level")
	}
	Info("production logger initialized", zap.String("env", "production"))
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != zapcore.InfoLevel {
		t.Errorf("parseLevel(nonsense) = %v, want info", got)
	}
}
