package domain

import (
	"fmt"
	"strings"
)

// Tag names the operator or literal kind of a Node.
type Tag string

// Tags understood by the algebra core.
const (
	TagNumber         Tag = "Math.InternalNumber"
	TagSymbol         Tag = "Symbol"
	TagNegative       Tag = "Math.Arithmetic.Negative"
	TagAddition       Tag = "Math.Arithmetic.Addition"
	TagMultiplication Tag = "Math.Arithmetic.Multiplication"
	TagDivision       Tag = "Math.Arithmetic.Division"
	TagExponentiation Tag = "Math.Arithmetic.Exponentiation"

	// TagNumeric wraps a subtree whose numbers must become Approximate.
	TagNumeric Tag = "Math.Numeric"

	// TagUndefined is the sentinel produced by a division by zero.
	TagUndefined Tag = "Undefined"

	// tagRoot is the invisible slot holding a parentless node during a reduction.
	tagRoot Tag = "$root"
)

// Attribute keys.
const (
	AttrValue = "Value"
	AttrName  = "Name"
)

// Tags lists every public tag, in declaration order.
var Tags = []Tag{
	TagNumber,
	TagSymbol,
	TagNegative,
	TagAddition,
	TagMultiplication,
	TagDivision,
	TagExponentiation,
	TagNumeric,
	TagUndefined,
}

// Short returns the last dotted component of the tag ("Addition").
func (t Tag) Short() string {
	s := string(t)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// arity returns the fixed child count of a tag, or -1 for variadic tags
// (which need at least one child).
func (t Tag) arity() int {
	switch t {
	case TagNumber, TagSymbol, TagUndefined:
		return 0
	case TagNegative, TagNumeric, tagRoot:
		return 1
	case TagDivision, TagExponentiation:
		return 2
	default:
		return -1
	}
}

// ParseTag resolves either the full tag name or its short form
// ("Addition", "Number") to a Tag.
func ParseTag(s string) (Tag, error) {
	for _, t := range Tags {
		if string(t) == s || strings.EqualFold(t.Short(), s) {
			return t, nil
		}
	}
	if strings.EqualFold(s, "Number") {
		return TagNumber, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTag, s)
}
