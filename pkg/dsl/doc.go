/*
Package dsl provides a small Go DSL for building expression trees.

It replaces nested domain.New calls with short constructors that read like the
expression itself, which is mostly useful in tests and examples:

	package main

	import (
		"github.com/aretw0/algebra/pkg/dsl"
	)

	func main() {
		// 2 (x + y) / 3
		expr := dsl.Div(
			dsl.Mul(dsl.N(2), dsl.Add(dsl.Sym("x"), dsl.Sym("y"))),
			dsl.N(3),
		)
		// ... pass expr to algebra.Engine.Reduce
	}

Operands may be *domain.Node values, Go integers (Exact numbers), float64
values (Approximate numbers) or strings (symbols).
*/
package dsl
