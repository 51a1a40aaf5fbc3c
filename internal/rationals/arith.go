package rationals

// checkedAdd returns a+b and whether the sum is representable in T.
// Go integer arithmetic wraps, so an overflowing sum lands on the wrong side
// of a.
func checkedAdd[T Integer](a, b T) (T, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return s, false
	}
	return s, true
}

// checkedMul returns a*b and whether the product is representable in T.
func checkedMul[T Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return p, false
	}
	// MinInt * -1 wraps back to MinInt and survives the division test.
	if a < 0 && b < 0 && p < 0 {
		return p, false
	}
	return p, true
}

// gcd returns the greatest common divisor of two positive values.
func gcd[T Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
