package units

import (
	"fmt"
	"math/big"
)

// Rational is an exact rational number used everywhere a note value is
// computed; double-based duration math is not safe for exact column
// merging. It wraps math/big.Rat, the standard library type built for
// exactly this: overflow-checked numerator/denominator reduction via gcd,
// with no third-party exact-rational library anywhere in the pack.
type Rational struct {
	r big.Rat
}

// NewRational builds a Rational from numerator/denominator. Denominator
// must be positive; NewRational itself does not check it.
func NewRational(numerator, denominator int64) Rational {
	var out Rational
	out.r.SetFrac64(numerator, denominator)
	return out
}

// Zero is the additive identity.
var Zero = NewRational(0, 1)

// Add returns a + b.
func (a Rational) Add(b Rational) Rational {
	var out Rational
	out.r.Add(&a.r, &b.r)
	return out
}

// Sub returns a - b.
func (a Rational) Sub(b Rational) Rational {
	var out Rational
	out.r.Sub(&a.r, &b.r)
	return out
}

// Mul returns a * b.
func (a Rational) Mul(b Rational) Rational {
	var out Rational
	out.r.Mul(&a.r, &b.r)
	return out
}

// Div returns a / b. Division by zero panics, matching the internal
// invariant-violation class of error (§7 class 3): callers never pass a
// zero denominator in a valid pipeline.
func (a Rational) Div(b Rational) Rational {
	if b.r.Sign() == 0 {
		panic("units: Rational division by zero")
	}
	var out Rational
	out.r.Quo(&a.r, &b.r)
	return out
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Rational) Cmp(b Rational) int {
	return a.r.Cmp(&b.r)
}

// Equal reports exact equality.
func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

// Less reports a < b.
func (a Rational) Less(b Rational) bool {
	return a.Cmp(b) < 0
}

// IsZero reports whether the value is exactly zero.
func (a Rational) IsZero() bool {
	return a.r.Sign() == 0
}

// IsPositive reports whether the value is strictly greater than zero.
func (a Rational) IsPositive() bool {
	return a.r.Sign() > 0
}

// Float64 converts to a double; duration math stays in Rational until the
// final conversion to an x-position.
func (a Rational) Float64() float64 {
	f, _ := a.r.Float64()
	return f
}

// Num and Denom expose the reduced numerator and denominator.
func (a Rational) Num() int64   { return a.r.Num().Int64() }
func (a Rational) Denom() int64 { return a.r.Denom().Int64() }

// String renders "num/denom" for debugging and test failure messages.
func (a Rational) String() string {
	return fmt.Sprintf("%d/%d", a.Num(), a.Denom())
}
