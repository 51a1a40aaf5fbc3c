package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ratenum/internal/rationals"
)

type mockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *mockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *mockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0.0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1.0, "██████████"},
		{1.2, "██████████"},
		{-0.1, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.progress, 10); got != tt.want {
			t.Errorf("progressBar(%f) = %s, want %s", tt.progress, got, tt.want)
		}
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(4)
	ps.Update(0, 1.0)
	ps.Update(3, 0.5)
	ps.Update(4, 1.0)
	if got := ps.CalculateAverage(); got != 0.375 {
		t.Errorf("CalculateAverage() = %v, want 0.375", got)
	}
	if NewProgressState(0).CalculateAverage() != 0 {
		t.Error("an empty state should average to 0")
	}
}

// DisplayProgress swaps the package-level spinner constructor, so these
// tests do not run in parallel.

func TestDisplayProgress(t *testing.T) {
	original := newSpinner
	defer func() { newSpinner = original }()

	mock := &mockSpinner{}
	newSpinner = func(...spinner.Option) Spinner { return mock }

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan rationals.ProgressUpdate)
	var out bytes.Buffer

	go func() {
		progressChan <- rationals.ProgressUpdate{Slot: 0, Value: 0.5}
		progressChan <- rationals.ProgressUpdate{Slot: 1, Value: 1.0}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	if !mock.started || !mock.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mock.started, mock.stopped)
	}
	if !strings.HasPrefix(out.String(), "Avg progress: 100.00%") || !strings.Contains(out.String(), "ETA: < 1s") {
		t.Errorf("unexpected final line %q", out.String())
	}
}

func TestDisplayProgress_NoSequences(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan rationals.ProgressUpdate, 1)
	progressChan <- rationals.ProgressUpdate{Value: 1}
	close(progressChan)

	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 0, &out)
	wg.Wait()
	if out.Len() != 0 {
		t.Errorf("nothing should be drawn, got %q", out.String())
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(&bytes.Buffer{}))}
	rs.Start()
	rs.UpdateSuffix(" working")
	rs.Stop()
}
