package numeric

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrDivisionByZero is raised (as a panic) when Quo is asked to divide by zero.
// Division nodes with a zero denominator must be special-cased by the caller.
var ErrDivisionByZero = errors.New("numeric: division by zero")

// Variant distinguishes the two representations of a Value.
type Variant int

const (
	// Exact values are arbitrary-precision integers.
	Exact Variant = iota
	// Approximate values are arbitrary-precision decimals.
	Approximate
)

// String returns the lowercase name of the variant, as used on the wire.
func (v Variant) String() string {
	if v == Approximate {
		return "approximate"
	}
	return "exact"
}

// Value is an immutable number in one of two variants.
// The zero Value is Exact 0.
type Value struct {
	i *big.Int
	f *big.Float
}

// Int returns an Exact value.
func Int(x int64) Value {
	return Value{i: big.NewInt(x)}
}

// BigInt returns an Exact value holding a copy of x.
func BigInt(x *big.Int) Value {
	return Value{i: new(big.Int).Set(x)}
}

// Float returns an Approximate value holding a copy of x.
func Float(x *big.Float) Value {
	return Value{f: new(big.Float).Copy(x)}
}

// Variant reports which representation v uses.
func (v Value) Variant() Variant {
	if v.f != nil {
		return Approximate
	}
	return Exact
}

// IsExact reports whether v is an integer value.
func (v Value) IsExact() bool { return v.f == nil }

// IsApproximate reports whether v is a decimal value.
func (v Value) IsApproximate() bool { return v.f != nil }

func (v Value) int() *big.Int {
	if v.i == nil {
		return new(big.Int)
	}
	return v.i
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	if v.f != nil {
		return v.f.Sign()
	}
	return v.int().Sign()
}

// IsZero reports whether v equals zero in either variant.
func (v Value) IsZero() bool { return v.Sign() == 0 }

// IsNegative reports whether v is strictly below zero.
func (v Value) IsNegative() bool { return v.Sign() < 0 }

// IsOne reports whether v equals one in either variant.
func (v Value) IsOne() bool {
	if v.f != nil {
		return v.f.Cmp(big.NewFloat(1)) == 0
	}
	return v.int().IsInt64() && v.int().Int64() == 1
}

// Negate returns -v in the same variant.
func (v Value) Negate() Value {
	if v.f != nil {
		return Value{f: new(big.Float).Neg(v.f)}
	}
	return Value{i: new(big.Int).Neg(v.int())}
}

// Cmp compares the signed values of v and w regardless of variant,
// returning -1, 0 or +1.
func (v Value) Cmp(w Value) int {
	if v.f == nil && w.f == nil {
		return v.int().Cmp(w.int())
	}
	return v.bigFloat(0).Cmp(w.bigFloat(0))
}

// Equal reports whether a and b share a variant and a value.
func (v Value) Equal(w Value) bool {
	return v.Variant() == w.Variant() && v.Cmp(w) == 0
}

// Float64 returns the nearest float64 to v.
func (v Value) Float64() float64 {
	f, _ := v.bigFloat(0).Float64()
	return f
}

// bigFloat returns v as a big.Float. A prec of 0 keeps the natural precision.
func (v Value) bigFloat(prec uint) *big.Float {
	if v.f != nil {
		if prec == 0 {
			return v.f
		}
		return new(big.Float).SetPrec(prec).Set(v.f)
	}
	f := new(big.Float)
	if prec != 0 {
		f.SetPrec(prec)
	}
	return f.SetInt(v.int())
}

// Text returns the value without a variant marker.
// Exact values print as integers; Approximate values use the shortest
// decimal form that round-trips at their precision.
func (v Value) Text() string {
	if v.f != nil {
		return v.f.Text('g', -1)
	}
	return v.int().String()
}

// String returns the value with approximate numbers always showing a
// decimal point, so that 1 and 1.0 stay distinguishable in logs.
func (v Value) String() string {
	s := v.Text()
	if v.f != nil && !strings.ContainsAny(s, ".eInf") {
		s += ".0"
	}
	return s
}

// Parse reads s as an Exact value when it is an integer literal and as an
// Approximate value otherwise.
func Parse(s string, ctx Context) (Value, error) {
	s = strings.TrimSpace(s)
	if i, ok := new(big.Int).SetString(s, 10); ok {
		return Value{i: i}, nil
	}
	return ParseApproximate(s, ctx)
}

// ErrNotFinite is returned when a number parses to an infinity.
var ErrNotFinite = errors.New("numeric: number is not finite")

// ParseApproximate reads s as an Approximate value at the context precision.
// Infinities are rejected.
func ParseApproximate(s string, ctx Context) (Value, error) {
	f, _, err := big.ParseFloat(strings.TrimSpace(s), 10, ctx.prec(), big.ToNearestEven)
	if err != nil {
		return Value{}, fmt.Errorf("numeric: invalid number %q: %w", s, err)
	}
	if f.IsInf() {
		return Value{}, fmt.Errorf("%w: %q", ErrNotFinite, s)
	}
	return Value{f: f}, nil
}
