package rules

import (
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/aretw0/algebra/pkg/registry"
)

// Prefix is prepended to every rule name.
const Prefix = "Algebra."

// Register appends the algebra chains to reg.
// Calling it twice registers every rule twice; callers own a fresh registry.
func Register(reg *registry.Registry) {
	add := func(tag domain.Tag, rule registry.RuleFunc, name string, opts ...registry.Option) {
		reg.AddReducer(tag, rule, Prefix+name, opts...)
	}

	add(domain.TagNegative, NegativeOfNegative, "negativeOfNegative")
	add(domain.TagNegative, NegativeOfAddition, "negativeOfAddition")
	add(domain.TagNegative, NegativeOfMultiplication, "negativeOfMultiplication")

	add(domain.TagAddition, AdditionFlatten, "additionFlatten")

	add(domain.TagMultiplication, MultiplicationNegatives, "multiplicationNegatives", registry.WithSymbolic(false))
	add(domain.TagMultiplication, MultiplicationFlatten, "multiplicationFlatten")
	add(domain.TagMultiplication, MultiplicationDistributiveOverAddition, "multiplicationDistributiveOverAddition")

	add(domain.TagDivision, DivisionNegatives, "divisionNegatives")
	add(domain.TagDivision, DivisionZeroOne, "divisionZeroOne")
	add(domain.TagDivision, DivisionExtractNumerics, "divisionExtractNumerics")
	add(domain.TagDivision, DivisionExtractNumericsAlone, "divisionExtractNumericsAlone")

	add(domain.TagExponentiation, ExponentiationSpecials, "exponentiationSpecials")
	add(domain.TagExponentiation, ExponentiationMultiplicationOrDivision, "exponentiationMultiplicationOrDivision")

	add(domain.TagNumeric, NumericCoercion, "numericCoercion")
}

// NewRegistry returns a registry holding only the algebra chains.
func NewRegistry() *registry.Registry {
	reg := registry.NewRegistry()
	Register(reg)
	return reg
}

// valueOf returns the number held by n when n is a numeric leaf.
func valueOf(n *domain.Node) (numeric.Value, bool) {
	if !n.IsInternalNumber() {
		return numeric.Value{}, false
	}
	return n.Value()
}

// negateLeading flips the sign of a product: the leading numeric factor is
// negated, or Exact -1 is inserted in front when there is none.
func negateLeading(mul *domain.Node) {
	if v, ok := valueOf(mul.Child(0)); ok {
		mul.SetChild(0, domain.Number(v.Negate()))
		return
	}
	mul.AddChildAt(0, domain.Int(-1))
}
