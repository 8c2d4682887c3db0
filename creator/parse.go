package creator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document into a configuration tree. Anchored nodes
// and their aliases decode to the same *Node, so identity-based caching sees
// every reference to an anchor as one node. Scalars are typed by their YAML
// tag: strings, int64, float64, bool or nil.
func ParseYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewScalar(nil), nil
	}
	return fromYAML(doc.Content[0], make(map[*yaml.Node]*Node))
}

func fromYAML(y *yaml.Node, seen map[*yaml.Node]*Node) (*Node, error) {
	if n, ok := seen[y]; ok {
		return n, nil
	}
	switch y.Kind {
	case yaml.AliasNode:
		n, err := fromYAML(y.Alias, seen)
		if err != nil {
			return nil, err
		}
		seen[y] = n
		return n, nil
	case yaml.MappingNode:
		n := &Node{kind: KindMapping}
		seen[y] = n
		for i := 0; i+1 < len(y.Content); i += 2 {
			var key string
			if err := y.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("mapping key at line %d: %w", y.Content[i].Line, err)
			}
			val, err := fromYAML(y.Content[i+1], seen)
			if err != nil {
				return nil, err
			}
			n.keys = append(n.keys, key)
			n.vals = append(n.vals, val)
		}
		return n, nil
	case yaml.SequenceNode:
		n := &Node{kind: KindSequence}
		seen[y] = n
		for _, c := range y.Content {
			item, err := fromYAML(c, seen)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, item)
		}
		return n, nil
	case yaml.ScalarNode:
		v, err := yamlScalar(y)
		if err != nil {
			return nil, err
		}
		n := NewScalar(v)
		seen[y] = n
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", y.Kind, y.Line)
	}
}

func yamlScalar(y *yaml.Node) (any, error) {
	switch y.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := y.Decode(&b)
		return b, err
	case "!!int":
		var i int64
		err := y.Decode(&i)
		return i, err
	case "!!float":
		var f float64
		err := y.Decode(&f)
		return f, err
	default:
		var s string
		err := y.Decode(&s)
		return s, err
	}
}

// ParseJSON decodes a JSON document into a configuration tree. Numbers with
// no fractional part become int64, the rest float64. JSON has no aliasing, so
// every node is distinct. Object keys are sorted.
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return fromJSON(v), nil
}

func fromJSON(v any) *Node {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return NewScalar(i)
		}
		if f, err := t.Float64(); err == nil {
			return NewScalar(f)
		}
		return NewScalar(t.String())
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &Node{kind: KindMapping}
		for _, k := range keys {
			n.keys = append(n.keys, k)
			n.vals = append(n.vals, fromJSON(t[k]))
		}
		return n
	case []any:
		items := make([]*Node, 0, len(t))
		for _, item := range t {
			items = append(items, fromJSON(item))
		}
		return NewSeq(items...)
	default:
		return NewScalar(v)
	}
}
