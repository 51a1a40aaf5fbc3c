package rationals

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

type recordingObserver struct {
	mu      sync.Mutex
	updates []ProgressUpdate
}

func (o *recordingObserver) Update(slot int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.updates = append(o.updates, ProgressUpdate{Slot: slot, Value: progress})
}

func TestProgressSubject(t *testing.T) {
	t.Parallel()

	subject := NewProgressSubject()
	first, second := &recordingObserver{}, &recordingObserver{}
	subject.Register(first)
	subject.Register(second)
	subject.Register(nil)

	if subject.ObserverCount() != 2 {
		t.Fatalf("ObserverCount() = %d, want 2", subject.ObserverCount())
	}

	subject.Notify(1, 0.5)
	subject.Unregister(second)
	subject.Unregister(&recordingObserver{})
	subject.AsProgressReporter(3)(1.0)

	if len(first.updates) != 2 || first.updates[1] != (ProgressUpdate{Slot: 3, Value: 1.0}) {
		t.Errorf("first observer updates = %v", first.updates)
	}
	if len(second.updates) != 1 || second.updates[0] != (ProgressUpdate{Slot: 1, Value: 0.5}) {
		t.Errorf("second observer updates = %v", second.updates)
	}
}

func TestChannelObserver(t *testing.T) {
	t.Parallel()

	ch := make(chan ProgressUpdate, 1)
	o := NewChannelObserver(ch)
	o.Update(2, 1.5)
	// The channel is full; this update is dropped instead of blocking.
	o.Update(2, 0.3)

	got := <-ch
	if got != (ProgressUpdate{Slot: 2, Value: 1.0}) {
		t.Errorf("received %+v, want slot 2 clamped to 1.0", got)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra update %+v", extra)
	default:
	}

	NewChannelObserver(nil).Update(0, 0.5)
}

func TestLoggingObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	o := NewLoggingObserver(logger, 0.25)

	o.Update(0, 0.1) // first movement
	o.Update(0, 0.2) // below threshold
	o.Update(0, 0.4) // threshold reached
	o.Update(0, 1.0) // completion

	lines := strings.Count(buf.String(), "skip progress")
	if lines != 3 {
		t.Errorf("logged %d lines, want 3:\n%s", lines, buf.String())
	}

	if NewLoggingObserver(logger, 0).threshold != 0.1 {
		t.Error("non-positive threshold should default to 0.1")
	}
}

func TestMetricsObserver(t *testing.T) {
	o := NewMetricsObserver()
	o.ResetMetrics()
	o.Update(7, 0.75)

	if got := testutil.ToFloat64(progressGauge.WithLabelValues("7")); got != 0.75 {
		t.Errorf("gauge = %v, want 0.75", got)
	}
	o.ResetMetrics()
	if got := testutil.CollectAndCount(progressGauge); got != 0 {
		t.Errorf("gauge series after reset = %d, want 0", got)
	}
}

func TestNoOpObserver(t *testing.T) {
	t.Parallel()
	var o ProgressObserver = NewNoOpObserver()
	o.Update(0, 1.0)
}
