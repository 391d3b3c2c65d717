/*
Package algebra is a term-rewriting engine for symbolic algebra.

Expressions are mutable trees of tagged nodes (Negative, Addition,
Multiplication, Division, Exponentiation, Numeric and numeric or symbolic
leaves). A reduction walks a tree bottom-up and, for every node, tries the
rules registered for its tag in priority order until one of them rewrites
the node. Reduced trees are in canonical form: reducing them again changes
nothing.

# Numbers

Numeric leaves are either Exact (arbitrary-precision integers) or Approximate
(arbitrary-precision floats at the engine's precision). Arithmetic mixing the
two yields an Approximate result, and so do the zeros and ones the rules
synthesize from an Approximate operand.

# Usage

	eng := algebra.New(algebra.WithPrecision(50))

	expr := dsl.Div(dsl.Mul(6, "x"), dsl.Mul(3, "y"))
	out, err := eng.Reduce(ctx, expr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out) // Multiplication(2, Division(x, y))

Custom rules are registered on a registry.Registry and passed with
WithRegistry. Results may be memoized with WithCache, using one of the
adapters under pkg/adapters.
*/
package algebra
