package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"github.com/mitchellh/mapstructure"
)

// ErrInvalidDocument is returned for documents that do not describe a tree.
var ErrInvalidDocument = errors.New("invalid expression document")

// Document is the serialized form of a node.
type Document struct {
	Tag      string     `json:"tag" yaml:"tag"`
	Value    string     `json:"value,omitempty" yaml:"value,omitempty"`
	Variant  string     `json:"variant,omitempty" yaml:"variant,omitempty"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Children []Document `json:"children,omitempty" yaml:"children,omitempty"`
}

// Encode converts a tree into its document form.
func Encode(n *domain.Node) Document {
	doc := Document{Tag: tagName(n.Tag())}
	switch {
	case n.IsInternalNumber():
		v, _ := n.Value()
		doc.Value = v.Text()
		doc.Variant = v.Variant().String()
	case n.Tag() == domain.TagSymbol:
		doc.Name = n.Name()
	}
	for _, c := range n.Children() {
		doc.Children = append(doc.Children, Encode(c))
	}
	return doc
}

func tagName(t domain.Tag) string {
	if t == domain.TagNumber {
		return "Number"
	}
	return t.Short()
}

// literal is a numeric scalar kept as text so that large integers stay exact.
type literal string

// header is the mapping form of a node before its children are decoded.
type header struct {
	Tag      string `mapstructure:"tag"`
	Value    any    `mapstructure:"value"`
	Variant  string `mapstructure:"variant"`
	Name     string `mapstructure:"name"`
	Children []any  `mapstructure:"children"`
}

// Decode builds a tree from a generic document as produced by Unmarshal,
// parsing numbers at the precision of ctx. The result is validated.
func Decode(v any, ctx numeric.Context) (*domain.Node, error) {
	n, err := decode(v, ctx, "$")
	if err != nil {
		return nil, err
	}
	if err := domain.Validate(n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return n, nil
}

// DecodeDocument builds a tree from a typed document.
func DecodeDocument(doc Document, ctx numeric.Context) (*domain.Node, error) {
	return Decode(doc.Map(), ctx)
}

// Map returns the document as nested generic values, the shape Unmarshal
// produces. Empty fields are omitted.
func (d Document) Map() map[string]any {
	m := map[string]any{"tag": d.Tag}
	if d.Value != "" {
		m["value"] = d.Value
	}
	if d.Variant != "" {
		m["variant"] = d.Variant
	}
	if d.Name != "" {
		m["name"] = d.Name
	}
	if len(d.Children) > 0 {
		children := make([]any, len(d.Children))
		for i, c := range d.Children {
			children[i] = c.Map()
		}
		m["children"] = children
	}
	return m
}

func decode(v any, ctx numeric.Context, path string) (*domain.Node, error) {
	switch x := v.(type) {
	case map[string]any:
		return decodeMapping(x, ctx, path)
	case literal:
		return number(string(x), "", ctx, path)
	case int:
		return domain.Int(int64(x)), nil
	case int64:
		return domain.Int(x), nil
	case float64:
		return number(fmt.Sprint(x), numeric.Approximate.String(), ctx, path)
	case string:
		if x == "" {
			return nil, fmt.Errorf("%w: %s: empty symbol", ErrInvalidDocument, path)
		}
		if looksNumeric(x) {
			return number(x, "", ctx, path)
		}
		return domain.Symbol(x), nil
	case nil:
		return nil, fmt.Errorf("%w: %s: null node", ErrInvalidDocument, path)
	}
	return nil, fmt.Errorf("%w: %s: unexpected %T", ErrInvalidDocument, path, v)
}

func decodeMapping(m map[string]any, ctx numeric.Context, path string) (*domain.Node, error) {
	var h header
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &h,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}

	tag, err := domain.ParseTag(h.Tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}

	switch tag {
	case domain.TagNumber:
		if h.Value == nil {
			return nil, fmt.Errorf("%w: %s: number without value", ErrInvalidDocument, path)
		}
		return number(scalarText(h.Value), h.Variant, ctx, path)
	case domain.TagSymbol:
		if h.Name == "" {
			return nil, fmt.Errorf("%w: %s: symbol without name", ErrInvalidDocument, path)
		}
		return domain.Symbol(h.Name), nil
	}

	children := make([]*domain.Node, len(h.Children))
	for i, c := range h.Children {
		child, err := decode(c, ctx, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return domain.New(tag, children...), nil
}

// looksNumeric reports whether a bare string is meant as a number rather than
// a symbol name.
func looksNumeric(s string) bool {
	s = strings.TrimLeft(strings.TrimSpace(s), "+-")
	return s != "" && (s[0] == '.' || (s[0] >= '0' && s[0] <= '9'))
}

func scalarText(v any) string {
	if l, ok := v.(literal); ok {
		return string(l)
	}
	return fmt.Sprint(v)
}

func number(text, variant string, ctx numeric.Context, path string) (*domain.Node, error) {
	var (
		v   numeric.Value
		err error
	)
	switch strings.ToLower(variant) {
	case "":
		v, err = numeric.Parse(text, ctx)
	case numeric.Approximate.String():
		v, err = numeric.ParseApproximate(text, ctx)
	case numeric.Exact.String():
		v, err = numeric.Parse(text, ctx)
		if err == nil && !v.IsExact() {
			err = fmt.Errorf("%q is not an integer", text)
		}
	default:
		err = fmt.Errorf("unknown variant %q", variant)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}
	return domain.Number(v), nil
}
