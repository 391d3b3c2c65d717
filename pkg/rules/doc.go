// Package rules contains the algebra rewrite rules for negation, addition,
// multiplication, division and exponentiation.
//
// Every rule receives a node whose children are already reduced. A rule that
// rewrites the tree re-reduces the subtrees it created or exposed before it
// reports registry.Applied, so the position it leaves behind is a fixpoint.
// A rule that reports registry.NotApplicable leaves the node's tag, child count
// and child identities untouched; MultiplicationNegatives is the one exception
// and says so.
//
// Use Register to install the whole set, in priority order, on a registry.
package rules
