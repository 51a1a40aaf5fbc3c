package rationals

import (
	"errors"
	"math"
	"testing"
)

func TestNewRational(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		num, den int32
		want     string
		wantErr  error
	}{
		{"AlreadyReduced", 3, 5, "3/5", nil},
		{"Reduces", 6, 4, "3/2", nil},
		{"Integer", 12, 3, "4/1", nil},
		{"One", 7, 7, "1/1", nil},
		{"ZeroNumerator", 0, 3, "", ErrNotPositive},
		{"NegativeDenominator", 1, -2, "", ErrNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := NewRational(tt.num, tt.den)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewRational(%d, %d) error = %v, want %v", tt.num, tt.den, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRational(%d, %d) unexpected error: %v", tt.num, tt.den, err)
			}
			if r.String() != tt.want {
				t.Errorf("NewRational(%d, %d) = %s, want %s", tt.num, tt.den, r, tt.want)
			}
		})
	}
}

func TestRational_TruncFract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r         Rational[uint16]
		wantTrunc uint16
		wantFract string
	}{
		{mustRational[uint16](1, 1), 1, "0/1"},
		{mustRational[uint16](1, 2), 0, "1/2"},
		{mustRational[uint16](7, 3), 2, "1/3"},
		{mustRational[uint16](5, 1), 5, "0/1"},
		{mustRational[uint16](1287, 1096), 1, "191/1096"},
	}

	for _, tt := range tests {
		if got := tt.r.Trunc(); got != tt.wantTrunc {
			t.Errorf("%s.Trunc() = %d, want %d", tt.r, got, tt.wantTrunc)
		}
		if got := tt.r.Fract().String(); got != tt.wantFract {
			t.Errorf("%s.Fract() = %s, want %s", tt.r, got, tt.wantFract)
		}
	}
}

func TestRational_Complement(t *testing.T) {
	t.Parallel()

	zero := mustRational[int8](3, 1).Fract()
	c, err := zero.Complement()
	if err != nil {
		t.Fatalf("Complement of 0 failed: %v", err)
	}
	if !c.Equal(fromInteger[int8](1)) {
		t.Errorf("1 - 0 = %s, want 1/1", c)
	}

	c, err = mustRational[int8](2, 5).Complement()
	if err != nil {
		t.Fatalf("Complement of 2/5 failed: %v", err)
	}
	if c.String() != "3/5" {
		t.Errorf("1 - 2/5 = %s, want 3/5", c)
	}

	if _, err := mustRational[int8](3, 2).Complement(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Complement of 3/2 error = %v, want ErrOutOfRange", err)
	}
}

func TestRational_AddInt(t *testing.T) {
	t.Parallel()

	r, err := mustRational[uint8](2, 5).AddInt(3)
	if err != nil {
		t.Fatalf("AddInt failed: %v", err)
	}
	if r.String() != "17/5" {
		t.Errorf("2/5 + 3 = %s, want 17/5", r)
	}

	if _, err := mustRational[uint8](1, 100).AddInt(3); !errors.Is(err, ErrOverflow) {
		t.Errorf("1/100 + 3 in uint8 error = %v, want ErrOverflow", err)
	}
	if _, err := fromInteger[int8](math.MaxInt8).AddInt(1); !errors.Is(err, ErrOverflow) {
		t.Errorf("127 + 1 in int8 error = %v, want ErrOverflow", err)
	}
	if _, err := fromInteger[int8](1).AddInt(-1); !errors.Is(err, ErrNotPositive) {
		t.Errorf("AddInt(-1) error = %v, want ErrNotPositive", err)
	}
}

func TestRational_Recip(t *testing.T) {
	t.Parallel()

	r, err := mustRational[int](3, 5).Recip()
	if err != nil {
		t.Fatalf("Recip failed: %v", err)
	}
	if r.Numer() != 5 || r.Denom() != 3 {
		t.Errorf("Recip(3/5) = %s, want 5/3", r)
	}

	zero := fromInteger[int](4).Fract()
	if _, err := zero.Recip(); !errors.Is(err, ErrZeroDivision) {
		t.Errorf("Recip(0) error = %v, want ErrZeroDivision", err)
	}
}

func TestRational_Accessors(t *testing.T) {
	t.Parallel()

	r := mustRational[uint64](3, 4)
	if r.IsInteger() {
		t.Error("3/4 should not be an integer")
	}
	if !fromInteger[uint64](9).IsInteger() {
		t.Error("9/1 should be an integer")
	}
	if got := r.Float64(); got != 0.75 {
		t.Errorf("Float64(3/4) = %v, want 0.75", got)
	}
	if r.Equal(mustRational[uint64](4, 3)) {
		t.Error("3/4 should not equal 4/3")
	}
}

func TestCheckedArithmetic(t *testing.T) {
	t.Parallel()

	if _, ok := checkedAdd[uint8](200, 55); !ok {
		t.Error("200+55 fits in uint8")
	}
	if _, ok := checkedAdd[uint8](200, 56); ok {
		t.Error("200+56 overflows uint8")
	}
	if _, ok := checkedAdd[int8](100, 27); !ok {
		t.Error("100+27 fits in int8")
	}
	if _, ok := checkedAdd[int8](100, 28); ok {
		t.Error("100+28 overflows int8")
	}
	if _, ok := checkedAdd[int8](-100, -29); ok {
		t.Error("-100-29 overflows int8")
	}

	if p, ok := checkedMul[uint16](255, 257); !ok || p != 65535 {
		t.Errorf("255*257 = %d, %v; want 65535, true", p, ok)
	}
	if _, ok := checkedMul[uint16](256, 256); ok {
		t.Error("256*256 overflows uint16")
	}
	if _, ok := checkedMul[int8](-128, -1); ok {
		t.Error("-128*-1 overflows int8")
	}
	if _, ok := checkedMul[int8](-1, -128); ok {
		t.Error("-1*-128 overflows int8")
	}
	if p, ok := checkedMul[int8](0, 100); !ok || p != 0 {
		t.Errorf("0*100 = %d, %v; want 0, true", p, ok)
	}

	if g := gcd[uint32](1287, 1096); g != 1 {
		t.Errorf("gcd(1287, 1096) = %d, want 1", g)
	}
	if g := gcd[int](84, 36); g != 12 {
		t.Errorf("gcd(84, 36) = %d, want 12", g)
	}
}
