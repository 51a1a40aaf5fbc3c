package rationals

import (
	"fmt"

	"lukechampine.com/uint128"
)

// WideRational is a strictly positive fraction with 128-bit parts, in lowest
// terms.
type WideRational struct {
	Num uint128.Uint128
	Den uint128.Uint128
}

// String renders r as "num/den".
func (r WideRational) String() string {
	return r.Num.String() + "/" + r.Den.String()
}

// WideEnumerator is the Calkin–Wilf enumeration over 128-bit integers.
//
// Values are held as unsigned 128-bit magnitudes and every intermediate result
// is checked against a bound: the largest uint128 for the "uint128" kind, and
// 2^127-1 for "int128", the largest positive value of a signed 128-bit
// integer. Exhaustion follows the same rules as Enumerator.
//
// WideEnumerator is NOT safe for concurrent use.
type WideEnumerator struct {
	kind  string
	limit uint128.Uint128
	state WideRational
	pos   uint64
	err   error
}

// NewUint128 returns an enumerator over unsigned 128-bit integers.
func NewUint128() *WideEnumerator {
	return newWide("uint128", uint128.Max)
}

// NewInt128 returns an enumerator over signed 128-bit integers.
func NewInt128() *WideEnumerator {
	return newWide("int128", uint128.Max.Rsh(1))
}

func newWide(kind string, limit uint128.Uint128) *WideEnumerator {
	one := uint128.From64(1)
	return &WideEnumerator{kind: kind, limit: limit, state: WideRational{Num: one, Den: one}}
}

// Kind returns "int128" or "uint128".
func (e *WideEnumerator) Kind() string { return e.kind }

// Next returns the current value and advances to its successor. See
// Enumerator.Next.
func (e *WideEnumerator) Next() (WideRational, error) {
	if e.err != nil {
		return WideRational{}, e.err
	}
	r := e.state
	next, err := e.successor(r)
	e.pos++
	if err != nil {
		e.err = &RangeError{Kind: e.kind, Position: e.pos, Last: r.String(), Cause: err}
	} else {
		e.state = next
	}
	return r, nil
}

// Position returns the zero-based index of the value the next call to Next
// returns.
func (e *WideEnumerator) Position() uint64 { return e.pos }

// Err returns the exhaustion error, or nil while the sequence can continue.
func (e *WideEnumerator) Err() error { return e.err }

// Nth discards k values and returns the one after them.
func (e *WideEnumerator) Nth(k uint64) (WideRational, error) {
	for i := uint64(0); i < k; i++ {
		if _, err := e.Next(); err != nil {
			return WideRational{}, err
		}
	}
	return e.Next()
}

// successor computes 1 / (n + 1 - y) with n = trunc(r), y = fract(r).
// 1 - y is (den-rem)/den, or 1/1 when r is an integer.
func (e *WideEnumerator) successor(r WideRational) (WideRational, error) {
	n, rem := r.Num.QuoRem(r.Den)
	num, den := r.Den.Sub(rem), r.Den
	if rem.IsZero() {
		num, den = uint128.From64(1), uint128.From64(1)
	}

	// n*den <= limit exactly when den <= limit/n.
	if !n.IsZero() && den.Cmp(e.limit.Div(n)) > 0 {
		return WideRational{}, fmt.Errorf("%w: %s*%s", ErrOverflow, n, den)
	}
	scaled := n.Mul(den)
	if num.Cmp(e.limit.Sub(scaled)) > 0 {
		return WideRational{}, fmt.Errorf("%w: %s+%s", ErrOverflow, scaled, num)
	}
	return WideRational{Num: den, Den: scaled.Add(num)}, nil
}

// next yields the current value as a Term. A uint64 index reaches at most
// depth 64 of the tree, where every part is bounded by Fib(66) < 2^46, so the
// high words are always zero.
func (e *WideEnumerator) next() (Term, error) {
	idx := e.pos
	r, err := e.Next()
	if err != nil {
		return Term{}, err
	}
	return Term{Index: idx, Numerator: r.Num.Lo, Denominator: r.Den.Lo}, nil
}
