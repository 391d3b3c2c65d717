package testutils

import (
	"fmt"
	"math"

	"github.com/aretw0/algebra/pkg/domain"
)

// Evaluate computes the float64 value of n with symbols bound by env.
// Undefined and divisions by zero evaluate to NaN.
func Evaluate(n *domain.Node, env map[string]float64) (float64, error) {
	switch n.Tag() {
	case domain.TagNumber:
		v, ok := n.Value()
		if !ok {
			return 0, fmt.Errorf("number without value")
		}
		return v.Float64(), nil
	case domain.TagSymbol:
		v, ok := env[n.Name()]
		if !ok {
			return 0, fmt.Errorf("unbound symbol %q", n.Name())
		}
		return v, nil
	case domain.TagUndefined:
		return math.NaN(), nil
	}

	args := make([]float64, n.Len())
	for i := range args {
		v, err := Evaluate(n.Child(i), env)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	switch n.Tag() {
	case domain.TagNegative:
		return -args[0], nil
	case domain.TagNumeric:
		return args[0], nil
	case domain.TagAddition:
		sum := 0.0
		for _, a := range args {
			sum += a
		}
		return sum, nil
	case domain.TagMultiplication:
		prod := 1.0
		for _, a := range args {
			prod *= a
		}
		return prod, nil
	case domain.TagDivision:
		if args[1] == 0 {
			return math.NaN(), nil
		}
		return args[0] / args[1], nil
	case domain.TagExponentiation:
		return math.Pow(args[0], args[1]), nil
	}
	return 0, fmt.Errorf("cannot evaluate %s", n.Tag())
}

// Close reports whether a and b agree to a relative tolerance.
// Two NaNs agree, as do two infinities of the same sign.
func Close(a, b float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 1e-6*scale
}
