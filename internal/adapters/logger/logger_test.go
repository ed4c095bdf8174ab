package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.trai.ch/mason/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("manifest loaded")
	l.Warn("cache snapshot missing")
	l.Error(errors.New("boom"))

	out := buf.String()
	for _, want := range []string{
		"level=INFO", "manifest loaded",
		"level=WARN", "cache snapshot missing",
		"level=ERROR", "boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
