package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_ReportsInvalidConfig(t *testing.T) {
	t.Setenv("SOURCE_KIND", "csv")

	var buf bytes.Buffer
	logger := newLogger(&buf)
	logger.Info("dataset generated")

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, `invalid SOURCE_KIND`) {
		t.Errorf("expected warning with config error, got %s", out)
	}
	if !strings.Contains(out, "component=datagen") {
		t.Errorf("expected datagen component, got %s", out)
	}
}

func TestNewLogger_ValidConfig(t *testing.T) {
	t.Setenv("SOURCE_KIND", "json")
	t.Setenv("TRANSACTIONS_PATH", "tx.json")
	t.Setenv("REPORT_FORMAT", "text")
	t.Setenv("REPORT_TIMEOUT", "")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_LEVEL", "info")

	var buf bytes.Buffer
	newLogger(&buf).Info("dataset generated")

	if strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected no warning, got %s", buf.String())
	}
}

func TestClampProbability(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0.3, 0.3},
		{1.7, 1},
	}
	for _, tc := range tests {
		if got := clampProbability(tc.in); got != tc.want {
			t.Errorf("clampProbability(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
