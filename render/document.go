package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"restyle/rewrite"
)

// Decode reads style document: YAML mapping of rule and property names to
// values or nested mappings. Order of keys is kept and repeated keys are
// allowed. Sequences become lists (several @import values, for example),
// scalars keep their YAML type so bare numbers stay numbers.
func Decode(data []byte) (rewrite.Block, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return rewrite.Block{}, nil
		}
		return nil, fmt.Errorf("unable to decode style document: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: style document must be a mapping", root.Line)
	}
	return decodeBlock(root)
}

func decodeBlock(node *yaml.Node) (rewrite.Block, error) {
	block := make(rewrite.Block, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: name must be a scalar", k.Line)
		}
		value, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.Value, err)
		}
		block = append(block, rewrite.Decl{Name: k.Value, Value: value})
	}
	return block, nil
}

func decodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeValue(node.Alias)
	case yaml.MappingNode:
		return decodeBlock(node)
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			v, err := decodeValue(n)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unexpected node", node.Line)
}
