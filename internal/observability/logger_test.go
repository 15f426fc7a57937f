package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, zerolog.DebugLevel)

	logger.Warn("skipping symbol",
		String("symbol", "BTCUSDT"),
		Int("attempt", 2),
		Err(errors.New("missing filter")))

	line := buf.String()
	for _, want := range []string{`"symbol":"BTCUSDT"`, `"attempt":2`, `"missing filter"`, `"level":"warn"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %s", want, line)
		}
	}
}

func TestZerologLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, zerolog.InfoLevel)

	logger.Debug("below threshold")
	if buf.Len() != 0 {
		t.Fatalf("expected debug suppressed at info level, got %s", buf.String())
	}
}

func TestGlobalLoggerSwap(t *testing.T) {
	capture := NewCaptureLogger()
	SetLogger(capture)
	defer SetLogger(nil)

	Log().Info("hello", String("k", "v"))
	if capture.CountLevel("info") != 1 {
		t.Fatalf("expected one captured info entry")
	}

	SetLogger(nil)
	Log().Error("goes nowhere")
	if capture.CountLevel("error") != 0 {
		t.Fatalf("expected noop logger after reset")
	}
}
