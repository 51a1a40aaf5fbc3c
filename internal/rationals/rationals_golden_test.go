package rationals

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

type goldenEntry struct {
	Index       uint64 `json:"index"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
}

func loadGoldenData(t *testing.T) []goldenEntry {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "rationals_golden.json"))
	if err != nil {
		t.Fatalf("Failed to read golden file: %v", err)
	}
	var entries []goldenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("Failed to parse golden file: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("Golden file is empty")
	}
	return entries
}

// TestEnumerator_Golden walks one enumerator per kind past every golden
// index, checking each value on the way.
func TestEnumerator_Golden(t *testing.T) {
	t.Parallel()
	entries := loadGoldenData(t)

	t.Run("uint32", func(t *testing.T) {
		t.Parallel()
		checkGolden(t, New[uint32](), entries)
	})
	t.Run("int64", func(t *testing.T) {
		t.Parallel()
		checkGolden(t, New[int64](), entries)
	})
}

func checkGolden[T Integer](t *testing.T, e *Enumerator[T], entries []goldenEntry) {
	t.Helper()
	for _, entry := range entries {
		skip := entry.Index - e.Position()
		r, err := e.Nth(skip)
		if err != nil {
			t.Fatalf("index %d: %v", entry.Index, err)
		}
		num := strconv.FormatUint(uint64(r.Numer()), 10)
		den := strconv.FormatUint(uint64(r.Denom()), 10)
		if num != entry.Numerator || den != entry.Denominator {
			t.Errorf("index %d: got %s/%s, want %s/%s", entry.Index, num, den, entry.Numerator, entry.Denominator)
		}
	}
}

// TestSequence_Golden checks the type-erased Skip against the same data.
func TestSequence_Golden(t *testing.T) {
	t.Parallel()
	entries := loadGoldenData(t)

	seq := NewSequence[uint64]("uint64")
	for _, entry := range entries {
		term, err := seq.Skip(t.Context(), entry.Index, nil)
		if err != nil {
			t.Fatalf("Skip(%d) error: %v", entry.Index, err)
		}
		if term.Index != entry.Index {
			t.Errorf("Skip(%d) returned index %d", entry.Index, term.Index)
		}
		num := strconv.FormatUint(term.Numerator, 10)
		den := strconv.FormatUint(term.Denominator, 10)
		if num != entry.Numerator || den != entry.Denominator {
			t.Errorf("Skip(%d) = %s, want %s/%s", entry.Index, term, entry.Numerator, entry.Denominator)
		}
	}
}
