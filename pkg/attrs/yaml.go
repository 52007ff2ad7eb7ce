package attrs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into an ordered attribute map. The
// document root must be a mapping (or empty). Decoding goes through the
// yaml.v3 node API so key order survives into the Map.
func DecodeYAML(data []byte) (*Map, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("attrs: decode yaml: %w", err)
	}

	node := documentRoot(&root)
	if node == nil {
		return NewMap(), nil
	}

	value, err := valueFromYAMLNode(node)
	if err != nil {
		return nil, err
	}
	if value.Kind() == KindNil {
		return NewMap(), nil
	}
	if value.Kind() != KindMap {
		return nil, fmt.Errorf("attrs: decode yaml: document root is %s, expected mapping", value.Kind())
	}
	return value.Map(), nil
}

func documentRoot(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		return root.Content[0]
	}
	if root.Kind == 0 {
		return nil
	}
	return root
}

func valueFromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if node.Alias == nil {
			return Nil(), nil
		}
		return valueFromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		return scalarFromYAMLNode(node)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromYAMLNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Sequence(items...), nil
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return Value{}, fmt.Errorf("attrs: decode yaml key at line %d: %w", keyNode.Line, err)
			}
			value, err := valueFromYAMLNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m.Set(key, value)
		}
		return FromMap(m), nil
	default:
		return Value{}, fmt.Errorf("attrs: decode yaml: unsupported node kind %d at line %d", node.Kind, node.Line)
	}
}

func scalarFromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Nil(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("attrs: decode yaml bool at line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Value{}, fmt.Errorf("attrs: decode yaml int at line %d: %w", node.Line, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("attrs: decode yaml float at line %d: %w", node.Line, err)
		}
		return Float(f), nil
	default:
		// Timestamps and other scalar tags stay as their source text so the
		// rendering stage decides how to interpret them.
		return String(node.Value), nil
	}
}
