// Package rationals enumerates the positive rational numbers in Calkin–Wilf
// order using only fixed-width integer arithmetic.
// This file defines the Rational value type and its arithmetic.
package rationals

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Integer is the capability set an enumerator is parameterized over: any
// built-in signed or unsigned integer type, or a type defined on one. The
// 128-bit kinds use WideEnumerator instead.
type Integer interface {
	constraints.Integer
}

// Rational is a strictly positive fraction num/den in lowest terms.
//
// NewRational and an Enumerator only produce strictly positive values. Fract
// is the one operation that can return 0/1, for an integer input. The zero
// value is not a valid rational; build values with NewRational or obtain them
// from an Enumerator.
type Rational[T Integer] struct {
	num T
	den T
}

// NewRational returns num/den reduced to lowest terms.
//
// Parameters:
//   - num: The numerator; must be strictly positive.
//   - den: The denominator; must be strictly positive.
//
// Returns:
//   - Rational[T]: The reduced value.
//   - error: ErrNotPositive if either part is zero or negative.
func NewRational[T Integer](num, den T) (Rational[T], error) {
	if num <= 0 || den <= 0 {
		return Rational[T]{}, fmt.Errorf("%w: %v/%v", ErrNotPositive, num, den)
	}
	g := gcd(num, den)
	return Rational[T]{num: num / g, den: den / g}, nil
}

// fromInteger returns n/1.
func fromInteger[T Integer](n T) Rational[T] {
	return Rational[T]{num: n, den: 1}
}

// Numer returns the numerator.
func (r Rational[T]) Numer() T { return r.num }

// Denom returns the denominator.
func (r Rational[T]) Denom() T { return r.den }

// Trunc returns the integer part of r, rounding toward zero.
func (r Rational[T]) Trunc() T {
	return r.num / r.den
}

// Fract returns r - Trunc(r), a value in [0, 1). A zero remainder is
// represented as 0/1.
func (r Rational[T]) Fract() Rational[T] {
	rem := r.num % r.den
	if rem == 0 {
		return Rational[T]{num: 0, den: 1}
	}
	return Rational[T]{num: rem, den: r.den}
}

// Complement returns 1 - r for r in [0, 1).
// gcd(den-num, den) == gcd(num, den), so a reduced input stays reduced.
func (r Rational[T]) Complement() (Rational[T], error) {
	if r.num < 0 || r.num >= r.den {
		return Rational[T]{}, fmt.Errorf("%w: complement of %s", ErrOutOfRange, r)
	}
	return Rational[T]{num: r.den - r.num, den: r.den}, nil
}

// AddInt returns r + n for a non-negative n. Adding an integer to a reduced
// fraction keeps it reduced.
//
// Returns:
//   - Rational[T]: The sum.
//   - error: ErrOverflow if the numerator is not representable in T.
func (r Rational[T]) AddInt(n T) (Rational[T], error) {
	if n < 0 {
		return Rational[T]{}, fmt.Errorf("%w: cannot add %v", ErrNotPositive, n)
	}
	scaled, ok := checkedMul(n, r.den)
	if !ok {
		return Rational[T]{}, fmt.Errorf("%w: %v*%v", ErrOverflow, n, r.den)
	}
	num, ok := checkedAdd(scaled, r.num)
	if !ok {
		return Rational[T]{}, fmt.Errorf("%w: %v+%v", ErrOverflow, scaled, r.num)
	}
	return Rational[T]{num: num, den: r.den}, nil
}

// Recip returns 1/r.
func (r Rational[T]) Recip() (Rational[T], error) {
	if r.num == 0 {
		return Rational[T]{}, ErrZeroDivision
	}
	return Rational[T]{num: r.den, den: r.num}, nil
}

// IsInteger reports whether the denominator is 1.
func (r Rational[T]) IsInteger() bool { return r.den == 1 }

// Equal reports whether r and o have the same numerator and denominator.
// Both sides are expected in lowest terms.
func (r Rational[T]) Equal(o Rational[T]) bool {
	return r.num == o.num && r.den == o.den
}

// Float64 returns the nearest float64 approximation of r.
func (r Rational[T]) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

// String renders r as "num/den", including integers ("3/1").
func (r Rational[T]) String() string {
	return fmt.Sprintf("%v/%v", r.num, r.den)
}
