package numeric

import (
	"math"
	"math/big"
)

// DefaultDigits is the decimal precision used when none is configured.
const DefaultDigits = 34

// Context carries the session-wide numeric settings.
// Arithmetic involving an Approximate operand is carried out at Precision bits.
type Context struct {
	Precision uint
}

// NewContext returns a context holding roughly the given number of decimal digits.
func NewContext(digits uint) Context {
	if digits == 0 {
		digits = DefaultDigits
	}
	return Context{Precision: DigitsToBits(digits)}
}

// DigitsToBits converts a decimal digit count to a binary mantissa size.
func DigitsToBits(digits uint) uint {
	return uint(math.Ceil(float64(digits)*math.Log2(10))) + 1
}

func (c Context) prec() uint {
	if c.Precision == 0 {
		return DigitsToBits(DefaultDigits)
	}
	return c.Precision
}

// anyApproximate implements contagion: the result of an operation involving
// at least one Approximate operand is itself Approximate.
func anyApproximate(vs ...Value) bool {
	for _, v := range vs {
		if v.IsApproximate() {
			return true
		}
	}
	return false
}

// One returns 1, Approximate if any operand is Approximate and Exact otherwise.
func (c Context) One(operands ...Value) Value {
	if anyApproximate(operands...) {
		return Value{f: new(big.Float).SetPrec(c.prec()).SetInt64(1)}
	}
	return Int(1)
}

// Zero returns 0 under the same contagion rule as One.
func (c Context) Zero(operands ...Value) Value {
	if anyApproximate(operands...) {
		return Value{f: new(big.Float).SetPrec(c.prec())}
	}
	return Int(0)
}

// ToApproximate converts v to the Approximate variant at the context precision.
func (c Context) ToApproximate(v Value) Value {
	return Value{f: v.bigFloat(c.prec())}
}

// Add returns a+b.
func (c Context) Add(a, b Value) Value {
	if !anyApproximate(a, b) {
		return Value{i: new(big.Int).Add(a.int(), b.int())}
	}
	return Value{f: new(big.Float).SetPrec(c.prec()).Add(a.bigFloat(c.prec()), b.bigFloat(c.prec()))}
}

// Mul returns a*b.
func (c Context) Mul(a, b Value) Value {
	if !anyApproximate(a, b) {
		return Value{i: new(big.Int).Mul(a.int(), b.int())}
	}
	return Value{f: new(big.Float).SetPrec(c.prec()).Mul(a.bigFloat(c.prec()), b.bigFloat(c.prec()))}
}

// Divides reports whether a/b stays Exact, that is, both operands are
// Exact and b is a nonzero divisor of a.
func Divides(a, b Value) bool {
	if anyApproximate(a, b) || b.IsZero() {
		return false
	}
	return new(big.Int).Rem(a.int(), b.int()).Sign() == 0
}

// Quo returns a/b. Two Exact operands give an Exact result when b divides a
// and an Approximate one otherwise.
// Quo panics with ErrDivisionByZero if b is zero.
func (c Context) Quo(a, b Value) Value {
	if b.IsZero() {
		panic(ErrDivisionByZero)
	}
	if Divides(a, b) {
		return Value{i: new(big.Int).Quo(a.int(), b.int())}
	}
	return Value{f: new(big.Float).SetPrec(c.prec()).Quo(a.bigFloat(c.prec()), b.bigFloat(c.prec()))}
}
