// Package service exposes the rational enumeration to the HTTP server and the
// list mode of the CLI behind a small, mockable interface.
package service

import (
	"context"
	"errors"

	apperrors "github.com/agbru/ratenum/internal/errors"
	"github.com/agbru/ratenum/internal/rationals"
)

const (
	// DefaultMaxCount caps the number of terms one Terms call may return.
	DefaultMaxCount = 10_000
	// DefaultMaxIndex caps the highest index a request may reach.
	DefaultMaxIndex = 50_000_000
)

var (
	// ErrMaxCountExceeded is returned when count exceeds the configured limit.
	ErrMaxCountExceeded = errors.New("maximum count exceeded")
	// ErrMaxIndexExceeded is returned when the highest requested index exceeds
	// the configured limit.
	ErrMaxIndexExceeded = errors.New("maximum index exceeded")
)

// Service defines the operations served over HTTP.
type Service interface {
	// Terms returns count consecutive terms starting at offset. On failure
	// it returns the terms produced before the error alongside it.
	Terms(ctx context.Context, kind string, offset, count uint64) ([]rationals.Term, error)

	// Term returns the term at index.
	Term(ctx context.Context, kind string, index uint64) (rationals.Term, error)

	// Kinds returns the supported integer kinds, sorted.
	Kinds() []string
}

// Limits bounds the work of a single call. A zero field disables that limit.
type Limits struct {
	MaxCount uint64
	MaxIndex uint64
}

// DefaultLimits returns the limits used by the HTTP server.
func DefaultLimits() Limits {
	return Limits{MaxCount: DefaultMaxCount, MaxIndex: DefaultMaxIndex}
}

// EnumerationService creates a fresh sequence per call, so it is safe for
// concurrent use even though sequences are not.
type EnumerationService struct {
	factory rationals.Factory
	limits  Limits
}

var _ Service = (*EnumerationService)(nil)

// NewEnumerationService creates a service drawing sequences from factory.
func NewEnumerationService(factory rationals.Factory, limits Limits) *EnumerationService {
	return &EnumerationService{factory: factory, limits: limits}
}

// Limits returns the configured limits.
func (s *EnumerationService) Limits() Limits { return s.limits }

// Kinds returns the factory's kinds.
func (s *EnumerationService) Kinds() []string { return s.factory.List() }

// Term skips a fresh sequence of the given kind to index.
//
// Errors are an *rationals.UnknownKindError, ErrMaxIndexExceeded, a context
// error, or an apperrors.EnumerationError wrapping a *rationals.RangeError.
func (s *EnumerationService) Term(ctx context.Context, kind string, index uint64) (rationals.Term, error) {
	if s.limits.MaxIndex > 0 && index > s.limits.MaxIndex {
		return rationals.Term{}, ErrMaxIndexExceeded
	}
	seq, err := s.factory.Create(kind)
	if err != nil {
		return rationals.Term{}, err
	}
	term, err := seq.Skip(ctx, index, nil)
	if err != nil {
		return rationals.Term{}, wrap(kind, index, err)
	}
	return term, nil
}

// maxPrealloc bounds the capacity Terms reserves up front; count is caller
// controlled and the sequence is unbounded.
const maxPrealloc = 1024

// Terms skips to offset and then steps with Next, checking ctx before
// every term.
func (s *EnumerationService) Terms(ctx context.Context, kind string, offset, count uint64) ([]rationals.Term, error) {
	seq, err := s.open(kind, offset, count)
	if err != nil {
		return nil, err
	}
	terms := make([]rationals.Term, 0, min(count, maxPrealloc))
	err = stream(ctx, seq, kind, offset, count, func(t rationals.Term) error {
		terms = append(terms, t)
		return nil
	})
	return terms, err
}

// Stream passes up to count consecutive terms starting at offset to yield as
// they are produced, holding none of them. It stops at the first error from
// the sequence, ctx or yield; errors from yield are returned unchanged.
func (s *EnumerationService) Stream(ctx context.Context, kind string, offset, count uint64, yield func(rationals.Term) error) error {
	seq, err := s.open(kind, offset, count)
	if err != nil {
		return err
	}
	return stream(ctx, seq, kind, offset, count, yield)
}

// open checks the limits and creates a fresh sequence.
func (s *EnumerationService) open(kind string, offset, count uint64) (rationals.Sequence, error) {
	if s.limits.MaxCount > 0 && count > s.limits.MaxCount {
		return nil, ErrMaxCountExceeded
	}
	if count > 0 && s.limits.MaxIndex > 0 && (offset > s.limits.MaxIndex || count-1 > s.limits.MaxIndex-offset) {
		return nil, ErrMaxIndexExceeded
	}
	return s.factory.Create(kind)
}

func stream(ctx context.Context, seq rationals.Sequence, kind string, offset, count uint64, yield func(rationals.Term) error) error {
	if count == 0 {
		return nil
	}
	first, err := seq.Skip(ctx, offset, nil)
	if err != nil {
		return wrap(kind, offset, err)
	}
	if err := yield(first); err != nil {
		return err
	}

	for produced := uint64(1); produced < count; produced++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := seq.Index()
		term, err := seq.Next()
		if err != nil {
			return wrap(kind, idx, err)
		}
		if err := yield(term); err != nil {
			return err
		}
	}
	return nil
}

// wrap attaches kind and index to range errors; context errors pass through.
func wrap(kind string, index uint64, err error) error {
	if apperrors.IsContextError(err) {
		return err
	}
	return apperrors.NewEnumerationError(kind, index, err)
}
