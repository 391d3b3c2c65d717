package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/aretw0/algebra/pkg/numeric"
	"gopkg.in/yaml.v3"
)

// Format names a serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatText is the compact debug form; it can be written but not read.
	FormatText Format = "text"
)

// ParseFormat resolves a format name; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Marshal serializes a tree.
func Marshal(n *domain.Node, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(Encode(n), "", "  ")
	case FormatYAML:
		return yaml.Marshal(Encode(n))
	case FormatText:
		return []byte(n.String()), nil
	}
	return nil, fmt.Errorf("cannot marshal to %q", format)
}

// Unmarshal parses a JSON or YAML document into generic values suitable for
// Decode. Numbers are kept as text.
func Unmarshal(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return fromJSON(v), nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return fromYAML(&node)
	}
	return nil, fmt.Errorf("cannot unmarshal from %q", format)
}

// Parse is Unmarshal followed by Decode.
func Parse(data []byte, format Format, ctx numeric.Context) (*domain.Node, error) {
	v, err := Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	return Decode(v, ctx)
}

// Read parses a whole stream.
func Read(r io.Reader, format Format, ctx numeric.Context) (*domain.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, format, ctx)
}

func fromJSON(v any) any {
	switch x := v.(type) {
	case json.Number:
		return literal(x)
	case map[string]any:
		for k, e := range x {
			x[k] = fromJSON(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = fromJSON(e)
		}
		return x
	}
	return v
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		// Aliases may refer to their own ancestors or expand exponentially.
		return nil, fmt.Errorf("%w: YAML alias *%s at line %d is not supported", ErrInvalidDocument, n.Value, n.Line)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			return literal(n.Value), nil
		case "!!null":
			return nil, nil
		}
		return n.Value, nil
	}
	return nil, fmt.Errorf("%w: unsupported YAML node at line %d", ErrInvalidDocument, n.Line)
}
