package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/algebra/internal/presentation/graph"
	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		tree        *domain.Node
		contains    []string
		notContains []string
	}{
		{
			name:     "Leaf shapes",
			tree:     dsl.Add(2, "x"),
			contains: []string{`n0["+"]`, `n1(("2"))`, `n2[/"x"/]`, "n0 --> n1", "n0 --> n2"},
		},
		{
			name:        "Ordered operands",
			tree:        dsl.Div("x", "y"),
			contains:    []string{`n0["÷"]`, `n0 -- "0" --> n1`, `n0 -- "1" --> n2`},
			notContains: []string{"classDef"},
		},
		{
			name:     "Undefined",
			tree:     domain.Undefined(),
			contains: []string{`n0[["Undefined"]]`},
		},
		{
			name:     "Approximate numbers",
			tree:     dsl.Mul(1.5, "x", 2.0),
			contains: []string{`n1(("1.5"))`, `n3(("2.0"))`, "class n1,n3 approximate;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.tree)
			assert.True(t, strings.HasPrefix(got, "graph TD\n"))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}
