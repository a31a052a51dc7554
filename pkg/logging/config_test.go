package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf).Level(zerolog.InfoLevel)

	logger.Info().Str("stage", "ingest").Msg("catalog loaded")

	out := buf.String()
	if !strings.Contains(out, `"stage":"ingest"`) {
		t.Errorf("expected structured field in output, got %q", out)
	}
	if !strings.Contains(out, "catalog loaded") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("default level = %q, want info", cfg.Level)
	}
	if cfg.Format != "auto" {
		t.Errorf("default format = %q, want auto", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("default output = %q, want stderr", cfg.Output)
	}
}
