// Package rationals enumerates the positive rational numbers.
// This file defines the type-erased Sequence used by the CLI, the
// orchestrator and the HTTP server.
package rationals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ContextCheckInterval is the number of steps Skip takes between context
// checks and progress reports.
const ContextCheckInterval = 1 << 16

var (
	termsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratenum_terms_total",
			Help: "The total number of rational terms produced",
		},
		[]string{"kind"},
	)
	exhaustionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratenum_range_exhaustions_total",
			Help: "The number of sequences that ran out of integer range",
		},
		[]string{"kind"},
	)
	skipDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratenum_skip_duration_seconds",
			Help:    "Duration of Skip operations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 9),
		},
		[]string{"kind"},
	)
)

// Term is one value of the enumeration with its zero-based index. Numerator
// and denominator are held as uint64: every value a uint64 index can reach
// fits, including for the 128-bit kinds.
type Term struct {
	Index       uint64 `json:"index" yaml:"index"`
	Numerator   uint64 `json:"numerator" yaml:"numerator"`
	Denominator uint64 `json:"denominator" yaml:"denominator"`
}

// String renders the term as "num/den".
func (t Term) String() string {
	return fmt.Sprintf("%d/%d", t.Numerator, t.Denominator)
}

// Float64 returns the decimal approximation of the term.
func (t Term) Float64() float64 {
	return float64(t.Numerator) / float64(t.Denominator)
}

// Sequence is an Enumerator with its integer kind erased.
//
// Implementations are NOT safe for concurrent use.
type Sequence interface {
	// Kind returns the integer type name backing the sequence.
	Kind() string

	// Next returns the term at Index() and advances.
	Next() (Term, error)

	// Index returns the index of the term the next call to Next returns.
	Index() uint64

	// Reset replaces the underlying enumerator with a fresh one.
	Reset()

	// Skip advances to index n and returns the term there, so that the
	// following Next returns index n+1. A target behind the current index
	// restarts from a fresh enumerator.
	//
	// Parameters:
	//   - ctx: Checked every ContextCheckInterval steps.
	//   - n: The zero-based target index.
	//   - progress: Optional progress callback.
	//
	// Returns:
	//   - Term: The term at index n.
	//   - error: A context error, or a *RangeError on exhaustion.
	Skip(ctx context.Context, n uint64, progress ProgressReporter) (Term, error)
}

// source is the stateful producer behind a Sequence: an Enumerator[T] or a
// WideEnumerator.
type source interface {
	next() (Term, error)
	Position() uint64
	Err() error
}

// instrumentedSequence adapts a source to Sequence and instruments it.
type instrumentedSequence struct {
	kind      string
	fresh     func() source
	enum      source
	exhausted bool
}

// NewSequence wraps a fresh Enumerator[T] under the given kind name.
func NewSequence[T Integer](kind string) Sequence {
	return newSequence(kind, func() source { return New[T]() })
}

// NewWideSequence wraps a fresh 128-bit enumerator; kind is "int128" or
// "uint128".
func NewWideSequence(kind string) (Sequence, error) {
	switch kind {
	case "int128":
		return newSequence(kind, func() source { return NewInt128() }), nil
	case "uint128":
		return newSequence(kind, func() source { return NewUint128() }), nil
	}
	return nil, &UnknownKindError{Name: kind}
}

func newSequence(kind string, fresh func() source) *instrumentedSequence {
	return &instrumentedSequence{kind: kind, fresh: fresh, enum: fresh()}
}

func (s *instrumentedSequence) Kind() string  { return s.kind }
func (s *instrumentedSequence) Index() uint64 { return s.enum.Position() }

func (s *instrumentedSequence) Reset() {
	s.enum = s.fresh()
	s.exhausted = false
}

func (s *instrumentedSequence) Next() (Term, error) {
	t, err := s.enum.next()
	if err != nil {
		return Term{}, err
	}
	termsTotal.WithLabelValues(s.kind).Inc()
	s.recordExhaustion()
	return t, nil
}

func (s *instrumentedSequence) Skip(ctx context.Context, n uint64, progress ProgressReporter) (result Term, err error) {
	tracer := otel.Tracer("rationals")
	ctx, span := tracer.Start(ctx, "Skip")
	defer span.End()
	span.SetAttributes(attribute.String("kind", s.kind), attribute.Int64("index", int64(n)))

	if err := ctx.Err(); err != nil {
		return Term{}, err
	}
	if progress == nil {
		progress = func(float64) {}
	}
	if n < s.enum.Position() {
		s.Reset()
	}

	start := time.Now()
	from := s.enum.Position()
	total := float64(n - from + 1)
	defer func() {
		steps := s.enum.Position() - from
		termsTotal.WithLabelValues(s.kind).Add(float64(steps))
		skipDuration.WithLabelValues(s.kind).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		log.Debug().
			Str("kind", s.kind).
			Uint64("index", n).
			Uint64("steps", steps).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("skip finished")
	}()

	for s.enum.Position() < n {
		done := s.enum.Position() - from
		if done%ContextCheckInterval == 0 && done > 0 {
			if err := ctx.Err(); err != nil {
				return Term{}, err
			}
			progress(float64(done) / total)
		}
		if _, err := s.enum.next(); err != nil {
			s.recordExhaustion()
			return Term{}, err
		}
	}

	t, err := s.enum.next()
	if err != nil {
		s.recordExhaustion()
		return Term{}, err
	}
	s.recordExhaustion()
	progress(1.0)
	return t, nil
}

// recordExhaustion counts the transition into the exhausted state once.
func (s *instrumentedSequence) recordExhaustion() {
	if !s.exhausted && errors.Is(s.enum.Err(), ErrRangeExhausted) {
		s.exhausted = true
		exhaustionsTotal.WithLabelValues(s.kind).Inc()
	}
}

func toTerm[T Integer](idx uint64, r Rational[T]) Term {
	return Term{Index: idx, Numerator: uint64(r.Numer()), Denominator: uint64(r.Denom())}
}
