// Package codec converts expression trees to and from JSON and YAML documents.
//
// A document node is a mapping with a tag and, depending on the tag, a value,
// a name or children:
//
//	{"tag": "Multiplication", "children": [
//	    {"tag": "Number", "value": "2", "variant": "exact"},
//	    {"tag": "Symbol", "name": "x"}
//	]}
//
// Decoding also accepts bare scalars in place of a node: numbers become
// numeric leaves and other strings become symbols, so the tree above may be
// written as {"tag": "Multiplication", "children": [2, "x"]}.
package codec
