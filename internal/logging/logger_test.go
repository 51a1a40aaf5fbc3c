package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "test", zerolog.DebugLevel)
	logger.Info("served",
		String("kind", "uint32"),
		Int("count", 3),
		Uint64("index", 1000000),
		Float64("value", 1.25),
		Field{Key: "cached", Value: false},
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}

	checks := map[string]any{
		"level":     "info",
		"message":   "served",
		"component": "test",
		"kind":      "uint32",
		"count":     float64(3),
		"index":     float64(1000000),
		"value":     1.25,
		"cached":    false,
	}
	for key, want := range checks {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
}

func TestZerologAdapter_ErrorAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "test", zerolog.InfoLevel)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	logger.Error("failed", errors.New("boom"), Err(errors.New("cause")))
	out := buf.String()
	for _, want := range []string{`"level":"error"`, `"error":"boom"`, "cause", `"message":"failed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestZerologAdapter_Printf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "test", zerolog.InfoLevel)
	logger.Printf("listening on %s", ":8080")
	logger.Println("shutting", "down")

	out := buf.String()
	if !strings.Contains(out, "listening on :8080") || !strings.Contains(out, "shutting down") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewStdLoggerAdapter(stdlog.New(&buf, "", 0))
	logger.Info("start", String("kind", "int8"))
	logger.Error("stop", errors.New("exhausted"))
	logger.Debug("step")

	want := "[INFO] start kind=int8\n[ERROR] stop: exhausted\n[DEBUG] step\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"verbose", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
