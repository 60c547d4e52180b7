package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInitializeFileOutput(t *testing.T) {
	prev := Logger
	defer Set(prev)

	path := filepath.Join(t.TempDir(), "poolcost.log")
	if err := Initialize(Config{Level: "debug", Format: "json", Output: path}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Debug("rate table loaded", zap.String("franchise", "default"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"franchise":"default"`) {
		t.Errorf("expected structured field in log, got %s", data)
	}
}

func TestInitializeBadLevelFallsBackToInfo(t *testing.T) {
	prev := Logger
	defer Set(prev)

	if err := Initialize(Config{Level: "loud", Output: "discard"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if Logger.Core().Enabled(zap.DebugLevel) {
		t.Error("debug should be disabled after falling back to info")
	}
}
