package cli

import (
	"strings"
	"testing"
	"time"
)

func TestUpdateWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)

	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress = %f, want 0.125", progress)
	}
	if eta != 0 {
		t.Errorf("ETA right after start = %v, want 0", eta)
	}

	progress, _ = p.UpdateWithETA(1, 0.5)
	if progress != 0.375 {
		t.Errorf("progress = %f, want 0.375", progress)
	}

	// Out-of-range slots are ignored.
	progress, _ = p.UpdateWithETA(5, 0.9)
	if progress != 0.375 {
		t.Errorf("progress after invalid slot = %f, want 0.375", progress)
	}
}

func TestGetETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	p.Update(0, 0.5)
	p.progressRate = 0.1
	if eta := p.GetETA(); eta < 4*time.Second || eta > 6*time.Second {
		t.Errorf("ETA = %v, want about 5s", eta)
	}

	p.progressRate = 1e-9
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v, want it capped at %v", eta, maxETA)
	}

	p.Update(0, 1.0)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA when complete = %v, want 0", eta)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "estimating..."},
		{-time.Second, "estimating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{2 * time.Hour, "2h"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 10)
	want := " 50.00% [█████░░░░░] ETA: 30s"
	if got != want {
		t.Errorf("FormatProgressBarWithETA = %q, want %q", got, want)
	}
	if !strings.Contains(FormatProgressBarWithETA(1.0, 0, 4), "100.00% [████]") {
		t.Error("complete bar should be full")
	}
}
