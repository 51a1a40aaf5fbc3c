package rationals

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestSequence_Next(t *testing.T) {
	t.Parallel()

	seq := NewSequence[uint32]("uint32")
	if seq.Kind() != "uint32" {
		t.Errorf("Kind() = %q, want uint32", seq.Kind())
	}

	want := []Term{
		{Index: 0, Numerator: 1, Denominator: 1},
		{Index: 1, Numerator: 1, Denominator: 2},
		{Index: 2, Numerator: 2, Denominator: 1},
		{Index: 3, Numerator: 1, Denominator: 3},
	}
	for _, w := range want {
		got, err := seq.Next()
		if err != nil {
			t.Fatalf("Next() error at index %d: %v", w.Index, err)
		}
		if got != w {
			t.Errorf("Next() = %+v, want %+v", got, w)
		}
	}
	if seq.Index() != 4 {
		t.Errorf("Index() = %d, want 4", seq.Index())
	}
}

func TestSequence_Skip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seq := NewSequence[uint32]("uint32")
	term, err := seq.Skip(ctx, 10, nil)
	if err != nil {
		t.Fatalf("Skip(10) error: %v", err)
	}
	if term.String() != "5/2" || term.Index != 10 {
		t.Errorf("Skip(10) = %d:%s, want 10:5/2", term.Index, term)
	}

	next, _ := seq.Next()
	if next.String() != "2/5" || next.Index != 11 {
		t.Errorf("Next() after Skip(10) = %d:%s, want 11:2/5", next.Index, next)
	}

	// Skipping backwards restarts from a fresh enumerator.
	term, err = seq.Skip(ctx, 2, nil)
	if err != nil {
		t.Fatalf("Skip(2) error: %v", err)
	}
	if term.String() != "2/1" {
		t.Errorf("Skip(2) = %s, want 2/1", term)
	}

	// Skipping to the current index returns the next term.
	term, err = seq.Skip(ctx, 3, nil)
	if err != nil {
		t.Fatalf("Skip(3) error: %v", err)
	}
	if term.String() != "1/3" {
		t.Errorf("Skip(3) = %s, want 1/3", term)
	}
}

func TestSequence_SkipProgress(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var reports []float64
	reporter := func(p float64) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, p)
	}

	seq := NewSequence[uint64]("uint64")
	if _, err := seq.Skip(context.Background(), 3*ContextCheckInterval, reporter); err != nil {
		t.Fatalf("Skip error: %v", err)
	}

	if len(reports) < 2 {
		t.Fatalf("expected intermediate and final progress reports, got %v", reports)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] < reports[i-1] {
			t.Errorf("progress went backwards: %v", reports)
		}
	}
	if reports[len(reports)-1] != 1.0 {
		t.Errorf("final progress = %v, want 1.0", reports[len(reports)-1])
	}
}

func TestSequence_SkipCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := NewSequence[uint64]("uint64")
	if _, err := seq.Skip(ctx, 10, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Skip on canceled context error = %v, want context.Canceled", err)
	}
}

func TestSequence_SkipCanceledMidway(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seq := NewSequence[uint64]("uint64")
	reporter := func(p float64) {
		if p < 1.0 {
			cancel()
		}
	}
	_, err := seq.Skip(ctx, 10*ContextCheckInterval, reporter)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Skip error = %v, want context.Canceled", err)
	}
	if seq.Index() >= 10*ContextCheckInterval {
		t.Errorf("Skip ran to completion (index %d) despite cancellation", seq.Index())
	}
}

func TestSequence_RangeExhausted(t *testing.T) {
	t.Parallel()

	seq := NewSequence[int8]("int8")
	term, err := seq.Skip(context.Background(), 1320, nil)
	if err != nil {
		t.Fatalf("Skip(1320) error: %v", err)
	}
	if term.String() != "109/79" {
		t.Errorf("Skip(1320) = %s, want 109/79", term)
	}

	if _, err := seq.Next(); !errors.Is(err, ErrRangeExhausted) {
		t.Errorf("Next() after the last int8 value error = %v, want ErrRangeExhausted", err)
	}

	seq.Reset()
	if seq.Index() != 0 {
		t.Errorf("Index() after Reset = %d, want 0", seq.Index())
	}
	if _, err := seq.Skip(context.Background(), 5000, nil); !errors.Is(err, ErrRangeExhausted) {
		t.Errorf("Skip(5000) error = %v, want ErrRangeExhausted", err)
	}

	first, err := NewSequence[int8]("int8").Next()
	if err != nil || first.String() != "1/1" {
		t.Errorf("fresh sequence Next() = %s, %v; want 1/1, nil", first, err)
	}
}

func TestTerm_Float64(t *testing.T) {
	t.Parallel()

	term := Term{Numerator: 5, Denominator: 2}
	if term.Float64() != 2.5 {
		t.Errorf("Float64() = %v, want 2.5", term.Float64())
	}
}
