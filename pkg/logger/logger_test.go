package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "debug", Format: "JSON"}, &buf)

	Log.WithField("cell", "0,0").Debug("spawn")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if entry["cell"] != "0,0" || entry["msg"] != "spawn" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestConfigure_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "chatty", Format: "text"}, &buf)

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}
}

func TestInit_ReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	Init()

	if Log.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", Log.GetLevel())
	}
	if _, ok := Log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSONFormatter", Log.Formatter)
	}
}
