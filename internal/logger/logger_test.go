package logger

import "testing"

func TestDefaultLoggerIsUsable(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	Log.Info("no-op logger accepts entries")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("loud", false); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestInitLevels(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	for _, level := range []string{"", "debug", "warn", "error"} {
		if err := Init(level, false); err != nil {
			t.Errorf("Init(%q) failed: %v", level, err)
		}
	}

	if err := Init("debug", true); err != nil {
		t.Fatalf("development Init failed: %v", err)
	}
	if !Log.Core().Enabled(-1) {
		t.Error("debug level should be enabled")
	}
}
