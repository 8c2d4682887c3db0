// Package flatten converts nested configuration trees to single-level
// mappings with joined keys and back. Sequences flatten under their decimal
// index, so a round trip through Flatten and Unflatten reconstructs them.
package flatten

import (
	"sort"
	"strconv"
	"strings"
)

// Flatten converts a nested value into a single-level mapping. Map entries
// flatten under their key, sequence items under their decimal index, and
// scalars map to themselves under the empty key. Keys are joined with sep;
// empty segments are dropped.
func Flatten(v any, sep string) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", v, sep)
	return out
}

func flattenInto(out map[string]any, prefix string, v any, sep string) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			flattenInto(out, join(prefix, k, sep), val, sep)
		}
	case []any:
		for i, val := range t {
			flattenInto(out, join(prefix, strconv.Itoa(i), sep), val, sep)
		}
	default:
		out[prefix] = v
	}
}

func join(prefix, key, sep string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + sep + key
}

// Unflatten rebuilds a nested value from a flattened mapping. Mappings whose
// keys are exactly the decimal indexes 0..n-1 become slices; the mapping
// {"": v} unwraps to the scalar v.
func Unflatten(m map[string]any, sep string) any {
	if v, ok := m[""]; ok && len(m) == 1 {
		return v
	}
	root := make(map[string]any)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		insert(root, splitKey(k, sep), m[k])
	}
	return liftSequences(root)
}

func splitKey(k, sep string) []string {
	parts := strings.Split(k, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func insert(node map[string]any, path []string, v any) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		node[path[0]] = v
		return
	}
	child, ok := node[path[0]].(map[string]any)
	if !ok {
		child = make(map[string]any)
		node[path[0]] = child
	}
	insert(child, path[1:], v)
}

// liftSequences walks bottom-up and converts index-keyed mappings to slices.
func liftSequences(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, val := range m {
		m[k] = liftSequences(val)
	}
	if len(m) == 0 {
		return m
	}
	items := make([]any, len(m))
	for k, val := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(m) || strconv.Itoa(i) != k {
			return m
		}
		items[i] = val
	}
	return items
}

// Clean returns a copy of m without nil-valued entries. Nested mappings are
// cleaned recursively; entries that become empty are kept.
func Clean(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			out[k] = Clean(sub)
			continue
		}
		out[k] = v
	}
	return out
}
