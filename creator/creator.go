package creator

import (
	"fmt"
	"strings"

	"github.com/confectlab/confect/logs"
)

// Creator interprets configuration trees into live values. Plain mappings,
// sequences and scalars pass through with their children interpreted
// recursively. A mapping holding exactly one key that contains the registry
// separator is an instantiation spec: its value is interpreted first, then
// handed to the factory the key resolves to. Once a mapping matches the spec
// shape the engine commits to it; resolution and construction failures
// surface to the caller instead of degrading the spec to a plain mapping.
type Creator struct {
	reg   *Registry
	left  byte
	right byte
	log   logs.Logger
}

// Option configures a Creator.
type Option func(*Creator)

// WithDelimiters overrides the placeholder delimiters. The defaults are '<'
// and '>'.
func WithDelimiters(left, right byte) Option {
	return func(c *Creator) { c.left, c.right = left, right }
}

// WithLogger routes interpreter debug output to log.
func WithLogger(log logs.Logger) Option {
	return func(c *Creator) { c.log = log }
}

// New returns a Creator resolving names through reg.
func New(reg *Registry, opts ...Option) *Creator {
	c := &Creator{reg: reg, left: '<', right: '>', log: logs.NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create interprets node with a cache scoped to this call. Shared subtrees
// are built once within the call; nothing carries over to later calls.
func (c *Creator) Create(node *Node) (any, error) {
	return c.CreateCached(node, NewCache())
}

// CreateCached interprets node against a caller-owned cache. Cached results
// persist, so later calls over overlapping trees return the instances already
// built.
func (c *Creator) CreateCached(node *Node, cache *Cache) (any, error) {
	if cache == nil {
		cache = NewCache()
	}
	return c.create(node, cache)
}

func (c *Creator) create(node *Node, cache *Cache) (any, error) {
	if node == nil {
		return nil, nil
	}
	if v, ok := cache.get(node); ok {
		return v, nil
	}
	v, err := c.interpret(node, cache)
	if err != nil {
		return nil, err
	}
	cache.put(node, v)
	return v, nil
}

func (c *Creator) interpret(node *Node, cache *Cache) (any, error) {
	switch node.kind {
	case KindSequence:
		out := make([]any, len(node.items))
		for i, item := range node.items {
			v, err := c.create(item, cache)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindMapping:
		if key, arg, ok := c.specOf(node); ok {
			return c.instantiate(key, arg, cache)
		}
		out := make(map[string]any, len(node.keys))
		for i, key := range node.keys {
			v, err := c.create(node.vals[i], cache)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	default:
		if s, ok := node.value.(string); ok {
			p, ok, err := parsePlaceholder(s, c.left, c.right)
			if err != nil {
				return nil, err
			}
			if ok {
				return p, nil
			}
		}
		return node.value, nil
	}
}

// specOf reports whether node is an instantiation spec: exactly one key, and
// that key contains the registry separator. The empty mapping is never a
// spec.
func (c *Creator) specOf(node *Node) (key string, arg *Node, ok bool) {
	if len(node.keys) != 1 {
		return "", nil, false
	}
	if !strings.Contains(node.keys[0], c.reg.Separator()) {
		return "", nil, false
	}
	return node.keys[0], node.vals[0], true
}

// instantiate interprets the argument subtree bottom-up, resolves the factory
// and builds the value.
func (c *Creator) instantiate(key string, argNode *Node, cache *Cache) (any, error) {
	arg, err := c.create(argNode, cache)
	if err != nil {
		return nil, fmt.Errorf("%w: argument of %q: %w", ErrMalformedSpec, key, err)
	}
	f, err := c.reg.Resolve(key)
	if err != nil {
		return nil, err
	}
	args := shapeArgs(arg)
	c.log.Debugw("instantiate", map[string]any{"symbol": key, "shape": args.Kind().String()})
	v, err := f(args)
	if err != nil {
		return nil, &ConstructionError{Symbol: key, Args: arg, Err: err}
	}
	return v, nil
}

// shapeArgs selects the calling convention from an interpreted argument:
// mappings become named fields, sequences positional values and everything
// else, strings included, a single value.
func shapeArgs(arg any) Args {
	switch t := arg.(type) {
	case map[string]any:
		return NamedArgs(t)
	case []any:
		return PositionalArgs(t)
	default:
		return SingleArg(t)
	}
}
