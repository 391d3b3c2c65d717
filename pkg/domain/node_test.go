package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(children ...*domain.Node) *domain.Node {
	return domain.New(domain.TagAddition, children...)
}

func TestNode_ChildEditing(t *testing.T) {
	x, y, z := domain.Symbol("x"), domain.Symbol("y"), domain.Symbol("z")
	add := sum(x, y)

	assert.Equal(t, 2, add.Len())
	assert.Same(t, add, x.Parent())

	add.AddChildAt(0, z)
	assert.Equal(t, "Addition(z, x, y)", add.String())

	add.AddChildAt(3, domain.Int(1))
	assert.Equal(t, "Addition(z, x, y, 1)", add.String())

	removed := add.RemoveChildAt(1)
	assert.Same(t, x, removed)
	assert.Nil(t, x.Parent())
	assert.Equal(t, "Addition(z, y, 1)", add.String())

	add.SetChild(0, x)
	assert.Nil(t, z.Parent())
	assert.Same(t, add, x.Parent())
	assert.Equal(t, "Addition(x, y, 1)", add.String())

	// Children returns a copy.
	kids := add.Children()
	kids[0] = z
	assert.Same(t, x, add.Child(0))
}

func TestNode_IndexOutOfRange(t *testing.T) {
	add := sum(domain.Symbol("x"))

	tests := []struct {
		name string
		fn   func()
	}{
		{"Child past end", func() { add.Child(1) }},
		{"Child negative", func() { add.Child(-1) }},
		{"SetChild past end", func() { add.SetChild(1, domain.Symbol("y")) }},
		{"AddChildAt beyond length", func() { add.AddChildAt(2, domain.Symbol("y")) }},
		{"RemoveChildAt past end", func() { add.RemoveChildAt(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected a panic")
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange))
				var idx *domain.IndexError
				assert.ErrorAs(t, err, &idx)
			}()
			tt.fn()
		})
	}
}

func TestNode_ReplaceBy(t *testing.T) {
	x := domain.Symbol("x")
	neg := domain.New(domain.TagNegative, x)
	add := sum(neg, domain.Symbol("y"))

	neg.ReplaceBy(x)

	assert.Equal(t, "Addition(x, y)", add.String())
	assert.Same(t, add, x.Parent())
	assert.Nil(t, neg.Parent())

	assert.PanicsWithValue(t, domain.ErrNoParent, func() {
		domain.Symbol("lonely").ReplaceBy(domain.Int(1))
	})
}

func TestNode_Slot(t *testing.T) {
	x := domain.Symbol("x")
	neg := domain.New(domain.TagNegative, domain.New(domain.TagNegative, x))

	release := domain.Slot(neg)
	assert.True(t, neg.Attached())
	assert.Nil(t, neg.Parent(), "the root slot is invisible")

	pos := neg.Position()
	neg.ReplaceBy(x)
	assert.Same(t, x, pos.Node())

	out := release()
	assert.Same(t, x, out)
	assert.False(t, out.Attached())
}

func TestNode_Clone(t *testing.T) {
	orig := domain.New(domain.TagMultiplication, domain.Int(2), sum(domain.Symbol("x"), domain.Symbol("y")))
	parent := sum(orig)

	c := orig.Clone()
	assert.True(t, domain.Equal(orig, c))
	assert.Nil(t, c.Parent())
	assert.Same(t, parent, orig.Parent())
	assert.NotSame(t, orig.Child(1), c.Child(1))
	assert.Same(t, c, c.Child(1).Parent())

	c.Child(0).SetValue(numeric.Int(3))
	assert.Equal(t, "Multiplication(2, Addition(x, y))", orig.String())
	assert.Equal(t, "Multiplication(3, Addition(x, y))", c.String())
}

func TestNode_Attributes(t *testing.T) {
	n := domain.Int(5)
	assert.True(t, n.IsInternalNumber())
	v, ok := n.Value()
	require.True(t, ok)
	assert.True(t, v.Equal(numeric.Int(5)))

	s := domain.Symbol("x")
	assert.False(t, s.IsInternalNumber())
	assert.Equal(t, "x", s.Name())
	_, ok = s.Get(domain.AttrValue)
	assert.False(t, ok)

	s.Set("Color", "red")
	got, ok := s.Get("Color")
	assert.True(t, ok)
	assert.Equal(t, "red", got)
}

func TestEqual(t *testing.T) {
	ctx := numeric.NewContext(0)
	approxTwo := domain.Number(ctx.ToApproximate(numeric.Int(2)))

	assert.True(t, domain.Equal(sum(domain.Int(2), domain.Symbol("x")), sum(domain.Int(2), domain.Symbol("x"))))
	assert.False(t, domain.Equal(sum(domain.Int(2), domain.Symbol("x")), sum(domain.Symbol("x"), domain.Int(2))))
	assert.False(t, domain.Equal(domain.Int(2), approxTwo), "variants differ")
	assert.False(t, domain.Equal(domain.Symbol("x"), domain.Symbol("y")))
	assert.True(t, domain.Equal(nil, nil))
	assert.False(t, domain.Equal(domain.Int(1), nil))
}

func TestSnapshot(t *testing.T) {
	x, y := domain.Symbol("x"), domain.Symbol("y")
	add := sum(x, y)
	snap := domain.Take(add)

	assert.True(t, snap.Same(add))

	x.Set(domain.AttrName, "renamed")
	assert.True(t, snap.Same(add), "attribute edits below the node do not change its shape")

	add.SetChild(0, domain.Symbol("x"))
	assert.False(t, snap.Same(add))
}

func TestParseTag(t *testing.T) {
	for _, tag := range domain.Tags {
		got, err := domain.ParseTag(string(tag))
		require.NoError(t, err)
		assert.Equal(t, tag, got)

		got, err = domain.ParseTag(tag.Short())
		require.NoError(t, err)
		assert.Equal(t, tag, got)
	}

	got, err := domain.ParseTag("number")
	require.NoError(t, err)
	assert.Equal(t, domain.TagNumber, got)

	_, err = domain.ParseTag("Math.Trigonometric.Sine")
	assert.ErrorIs(t, err, domain.ErrUnknownTag)
}
