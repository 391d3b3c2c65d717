package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/algebra/pkg/domain"
)

var operators = map[domain.Tag]string{
	domain.TagNegative:       "-",
	domain.TagAddition:       "+",
	domain.TagMultiplication: "×",
	domain.TagDivision:       "÷",
	domain.TagExponentiation: "^",
	domain.TagNumeric:        "N",
}

// GenerateMermaid produces a Mermaid flowchart of an expression tree.
// It applies semantic styling:
// - Number: ((Circle)), Approximate numbers get the approximate class
// - Symbol: [/Parallelogram/]
// - Undefined: [[Subroutine]]
// - Operator: [Rectangle]
// Edges are labelled with the child index when the operator is not commutative.
func GenerateMermaid(root *domain.Node) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var approximate []string
	next := 0
	var visit func(n *domain.Node) string
	visit = func(n *domain.Node) string {
		id := fmt.Sprintf("n%d", next)
		next++

		opener, closer := "[", "]"
		label := n.Tag().Short()
		switch n.Tag() {
		case domain.TagNumber:
			opener, closer = "((", "))"
			v, _ := n.Value()
			label = v.String()
			if v.IsApproximate() {
				approximate = append(approximate, id)
			}
		case domain.TagSymbol:
			opener, closer = "[/", "/]"
			label = n.Name()
		case domain.TagUndefined:
			opener, closer = "[[", "]]"
		default:
			if op, ok := operators[n.Tag()]; ok {
				label = op
			}
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escape(label), closer))

		ordered := n.Tag() == domain.TagDivision || n.Tag() == domain.TagExponentiation
		for i, c := range n.Children() {
			childID := visit(c)
			arrow := "-->"
			if ordered {
				arrow = fmt.Sprintf("-- \"%d\" -->", i)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, arrow, childID))
		}
		return id
	}
	visit(root)

	if len(approximate) > 0 {
		sb.WriteString("\n    classDef approximate fill:#fff3e0,stroke:#e65100,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s approximate;\n", strings.Join(approximate, ",")))
	}
	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
