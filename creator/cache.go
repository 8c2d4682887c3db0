package creator

import "reflect"

// Cache memoizes interpretation results keyed by node identity. Keys are
// *Node pointers, so only genuinely shared subtrees (YAML aliases, one *Node
// referenced from several places) hit the cache; structurally equal but
// distinct nodes do not.
//
// A Cache is not safe for concurrent use. Interpret one tree at a time per
// cache, or give each goroutine its own.
type Cache struct {
	entries map[*Node]any
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[*Node]any)}
}

// Len reports the number of cached results.
func (c *Cache) Len() int { return len(c.entries) }

func (c *Cache) get(n *Node) (any, bool) {
	v, ok := c.entries[n]
	return v, ok
}

func (c *Cache) put(n *Node, v any) {
	if !cacheable(v) {
		return
	}
	c.entries[n] = v
}

// builtinTypes lists the primitive and builtin container types excluded from
// caching. Memoizing them would alias plain values that callers expect to own
// independently.
var builtinTypes = func() map[reflect.Type]struct{} {
	vals := []any{
		false,
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0), uintptr(0),
		float32(0), float64(0),
		complex64(0), complex128(0),
		"",
		[]any(nil), map[string]any(nil), []byte(nil),
	}
	m := make(map[reflect.Type]struct{}, len(vals))
	for _, v := range vals {
		m[reflect.TypeOf(v)] = struct{}{}
	}
	return m
}()

// cacheable reports whether a result should be memoized: non-nil values whose
// exact type is not a builtin.
func cacheable(v any) bool {
	if v == nil {
		return false
	}
	_, builtin := builtinTypes[reflect.TypeOf(v)]
	return !builtin
}
