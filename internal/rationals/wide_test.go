package rationals

import (
	"context"
	"errors"
	"testing"

	"lukechampine.com/uint128"
)

func TestWideEnumerator_MatchesUint64(t *testing.T) {
	t.Parallel()

	const n = 20_000
	for _, wide := range []*WideEnumerator{NewInt128(), NewUint128()} {
		narrow := New[uint64]()
		for i := 0; i < n; i++ {
			want, _ := narrow.Next()
			got, err := wide.Next()
			if err != nil {
				t.Fatalf("%s: Next() error at index %d: %v", wide.Kind(), i, err)
			}
			if got.String() != want.String() {
				t.Fatalf("%s: index %d = %s, want %s", wide.Kind(), i, got, want)
			}
		}
		if wide.Position() != n || wide.Err() != nil {
			t.Errorf("%s: Position() = %d, Err() = %v", wide.Kind(), wide.Position(), wide.Err())
		}
	}
}

// With the bound lowered to 127 the wide enumerator must exhaust exactly
// where int8 does.
func TestWideEnumerator_ExhaustsAtBound(t *testing.T) {
	t.Parallel()

	wide := newWide("bounded", uint128.From64(127))
	var last WideRational
	for {
		r, err := wide.Next()
		if err != nil {
			break
		}
		last = r
	}

	var rangeErr *RangeError
	if !errors.As(wide.Err(), &rangeErr) || !errors.Is(wide.Err(), ErrRangeExhausted) {
		t.Fatalf("Err() = %v, want a *RangeError", wide.Err())
	}
	if last.String() != "109/79" || rangeErr.Position != 1321 || rangeErr.Kind != "bounded" {
		t.Errorf("last = %s, error = %+v; want 109/79 at position 1321", last, rangeErr)
	}
	if !errors.Is(rangeErr, ErrOverflow) {
		t.Errorf("cause = %v, want ErrOverflow", rangeErr.Cause)
	}
	if _, err := wide.Next(); !errors.Is(err, ErrRangeExhausted) {
		t.Errorf("Next() after exhaustion = %v", err)
	}
}

func TestWideEnumerator_Limits(t *testing.T) {
	t.Parallel()

	if got := NewUint128().limit; !got.Equals(uint128.Max) {
		t.Errorf("uint128 limit = %s", got)
	}
	if got := NewInt128().limit; got.Hi != 1<<63-1 || got.Lo != 1<<64-1 {
		t.Errorf("int128 limit = %s, want 2^127-1", got)
	}
}

func TestNewWideSequence(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"int128", "uint128"} {
		seq, err := NewWideSequence(kind)
		if err != nil {
			t.Fatalf("NewWideSequence(%s) error: %v", kind, err)
		}
		term, err := seq.Skip(context.Background(), 1_000_000, nil)
		if err != nil {
			t.Fatalf("%s: Skip error: %v", kind, err)
		}
		if term.String() != "1287/1096" || term.Index != 1_000_000 {
			t.Errorf("%s: Skip(1000000) = %d:%s", kind, term.Index, term)
		}
		seq.Reset()
		if first, _ := seq.Next(); first.String() != "1/1" {
			t.Errorf("%s: Next() after Reset = %s", kind, first)
		}
	}

	if _, err := NewWideSequence("int96"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("NewWideSequence(int96) error = %v, want ErrUnknownKind", err)
	}
}
