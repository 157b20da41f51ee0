package observability

import (
	"context"
	"testing"

	"trivia-coffee-backend/internal/config"
	"trivia-coffee-backend/internal/logger"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = abc ,broken,=x, team=coffee ")
	if len(got) != 2 || got["api-key"] != "abc" || got["team"] != "coffee" {
		t.Fatalf("unexpected headers: %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestClampRatio(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{-1, 0}, {0.25, 0.25}, {3, 1}} {
		if got := clampRatio(tt.in); got != tt.want {
			t.Fatalf("clampRatio(%v): got=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown := InitTracing(context.Background(), logger.Nop(), &config.Config{}, "trivia")
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitTracingStdout(t *testing.T) {
	cfg := &config.Config{OtelEnabled: true, OtelSampleRatio: 1}
	shutdown := InitTracing(context.Background(), logger.Nop(), cfg, "coffee")
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
