package dsl

import (
	"fmt"
	"strconv"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
)

// Context is the precision used for float64 and decimal operands.
var Context = numeric.NewContext(numeric.DefaultDigits)

// N returns an Exact number.
func N(i int64) *domain.Node {
	return domain.Int(i)
}

// D returns an Approximate number parsed from its decimal text.
// It panics on malformed input; use domain.Decimal to handle errors.
func D(s string) *domain.Node {
	n, err := domain.Decimal(s, Context)
	if err != nil {
		panic(err)
	}
	return n
}

// Sym returns a symbol.
func Sym(name string) *domain.Node {
	return domain.Symbol(name)
}

// Neg returns -x.
func Neg(x any) *domain.Node {
	return domain.New(domain.TagNegative, operand(x))
}

// Add returns the sum of the terms.
func Add(terms ...any) *domain.Node {
	return domain.New(domain.TagAddition, operands(terms)...)
}

// Mul returns the product of the factors.
func Mul(factors ...any) *domain.Node {
	return domain.New(domain.TagMultiplication, operands(factors)...)
}

// Div returns num / den.
func Div(num, den any) *domain.Node {
	return domain.New(domain.TagDivision, operand(num), operand(den))
}

// Pow returns base ^ exponent.
func Pow(base, exponent any) *domain.Node {
	return domain.New(domain.TagExponentiation, operand(base), operand(exponent))
}

// Numeric asks for the numeric evaluation of x.
func Numeric(x any) *domain.Node {
	return domain.New(domain.TagNumeric, operand(x))
}

func operands(xs []any) []*domain.Node {
	out := make([]*domain.Node, len(xs))
	for i, x := range xs {
		out[i] = operand(x)
	}
	return out
}

func operand(x any) *domain.Node {
	switch v := x.(type) {
	case *domain.Node:
		return v
	case int:
		return domain.Int(int64(v))
	case int64:
		return domain.Int(v)
	case float64:
		return D(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		return domain.Symbol(v)
	}
	panic(fmt.Sprintf("dsl: unsupported operand %T", x))
}
