package rationals

import (
	"math/bits"
)

// treeTerm walks the Calkin–Wilf tree along the binary digits of idx+1.
// It is independent from the successor function and serves as the oracle
// for the enumerator tests.
func treeTerm(idx uint64) (num, den uint64) {
	num, den = 1, 1
	k := idx + 1
	for i := bits.Len64(k) - 2; i >= 0; i-- {
		if k&(1<<uint(i)) == 0 {
			den += num
		} else {
			num += den
		}
	}
	return num, den
}

func gcdUint64(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// mustRational builds a reduced rational or panics; test inputs are constants.
func mustRational[T Integer](num, den T) Rational[T] {
	r, err := NewRational(num, den)
	if err != nil {
		panic(err)
	}
	return r
}
