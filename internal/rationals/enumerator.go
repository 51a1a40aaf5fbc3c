package rationals

import (
	"fmt"
	"iter"
)

// Enumerator produces every positive rational exactly once, in the order of
// the Calkin–Wilf tree read breadth-first:
//
//	1/1, 1/2, 2/1, 1/3, 3/2, 2/3, 3/1, 1/4, 4/3, 3/5, ...
//
// Each step applies the successor function of Gibbons, Lester and Bird,
// next = 1 / (trunc(r) + 1 - fract(r)), which only ever yields fractions in
// lowest terms, so no gcd is computed while enumerating.
//
// All arithmetic is overflow-checked for T. Once the successor of the current
// value is not representable, that value is still returned; every later call
// to Next fails with a *RangeError.
//
// Thread Safety:
// Enumerator is NOT safe for concurrent use. Give each goroutine its own
// instance; two instances of the same T always produce identical sequences.
//
// Example:
//
//	e := rationals.New[uint32]()
//	for r := range e.All() {
//	    fmt.Println(r)
//	}
type Enumerator[T Integer] struct {
	state Rational[T]
	// pos is the number of values produced so far.
	pos uint64
	err error
}

// New returns an enumerator positioned at 1/1.
func New[T Integer]() *Enumerator[T] {
	return &Enumerator[T]{state: fromInteger(T(1))}
}

// Next returns the current value and advances to its successor.
//
// Returns:
//   - Rational[T]: The value at index Position() before the call.
//   - error: A *RangeError (matching ErrRangeExhausted) once the integer
//     range of T has been exhausted.
func (e *Enumerator[T]) Next() (Rational[T], error) {
	if e.err != nil {
		return Rational[T]{}, e.err
	}
	r := e.state
	next, err := successor(r)
	e.pos++
	if err != nil {
		e.err = &RangeError{Kind: kindOf[T](), Position: e.pos, Last: r.String(), Cause: err}
	} else {
		e.state = next
	}
	return r, nil
}

// Position returns how many values have been produced, which is also the
// zero-based index of the value the next call to Next returns.
func (e *Enumerator[T]) Position() uint64 { return e.pos }

// Err returns the exhaustion error, or nil while the sequence can continue.
func (e *Enumerator[T]) Err() error { return e.err }

// Nth discards k values and returns the one after them. On a fresh
// enumerator, Nth(k) is the value at index k.
func (e *Enumerator[T]) Nth(k uint64) (Rational[T], error) {
	for i := uint64(0); i < k; i++ {
		if _, err := e.Next(); err != nil {
			return Rational[T]{}, err
		}
	}
	return e.Next()
}

// Take returns the next n values. On exhaustion it returns the values
// produced before the failure together with the error.
func (e *Enumerator[T]) Take(n int) ([]Rational[T], error) {
	out := make([]Rational[T], 0, max(n, 0))
	for len(out) < n {
		r, err := e.Next()
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// All returns a single-use iterator over the remaining values. It ends when
// the caller stops ranging or when T is exhausted; check Err afterwards to
// tell the two apart.
func (e *Enumerator[T]) All() iter.Seq[Rational[T]] {
	return func(yield func(Rational[T]) bool) {
		for {
			r, err := e.Next()
			if err != nil || !yield(r) {
				return
			}
		}
	}
}

// next yields the current value as a Term.
func (e *Enumerator[T]) next() (Term, error) {
	idx := e.pos
	r, err := e.Next()
	if err != nil {
		return Term{}, err
	}
	return toTerm(idx, r), nil
}

// successor computes 1 / (n + 1 - y) with n = trunc(r), y = fract(r).
func successor[T Integer](r Rational[T]) (Rational[T], error) {
	n := r.Trunc()
	y := r.Fract()
	oneMinusY, err := y.Complement()
	if err != nil {
		return Rational[T]{}, err
	}
	sum, err := oneMinusY.AddInt(n)
	if err != nil {
		return Rational[T]{}, err
	}
	return sum.Recip()
}

// kindOf returns the type name of T, e.g. "uint32".
func kindOf[T Integer]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
