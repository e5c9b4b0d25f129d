package schemagrid

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ParseRecords parses a JSON or YAML array of objects.
// Numbers are returned as float64 like encoding/json does.
func ParseRecords(data []byte) ([]Record, error) {
	var doc yaml.Node
	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	root := documentRoot(&doc)
	if root == nil {
		return nil, nil
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("records must be an array, line %d", root.Line)
	}
	records := make([]Record, 0, len(root.Content))
	for _, item := range root.Content {
		value, err := nodeValue(item)
		if err != nil {
			return nil, err
		}
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record must be an object, line %d", item.Line)
		}
		records = append(records, Record(obj))
	}
	return records, nil
}

// documentRoot returns the root node of a parsed document
// or nil for an empty document.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == 0 {
		return nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	return doc
}

// mappingValue returns the value node for key
// or nil if node is not a mapping or has no such key.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// nodeValue converts a YAML node into JSON like values:
// nil, bool, float64, string, map[string]any and []any.
func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		root := documentRoot(node)
		if root == nil {
			return nil, nil
		}
		return nodeValue(root)

	case yaml.AliasNode:
		return nodeValue(node.Alias)

	case yaml.MappingNode:
		obj := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj[node.Content[i].Value] = value
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := make([]any, len(node.Content))
		for i, item := range node.Content {
			value, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			arr[i] = value
		}
		return arr, nil

	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			return strconv.ParseBool(node.Value)
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return nil, fmt.Errorf("invalid number %q, line %d: %w", node.Value, node.Line, err)
			}
			return f, nil
		default:
			return node.Value, nil
		}
	}
	return nil, fmt.Errorf("unsupported YAML node kind %d, line %d", node.Kind, node.Line)
}
