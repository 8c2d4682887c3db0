package creator

import (
	"fmt"
	"sync"
)

// DirectCreator instantiates from a flat name registry: the single key of the
// spec mapping is looked up verbatim, with no namespace split. It covers
// configs where names are short handles rather than dotted paths. The
// argument mapping is passed through as named fields without recursive
// interpretation; a null argument counts as an empty field set.
type DirectCreator struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewDirectCreator returns an empty direct creator.
func NewDirectCreator() *DirectCreator {
	return &DirectCreator{factories: make(map[string]Factory)}
}

// Register adds a factory under a verbatim name.
func (d *DirectCreator) Register(name string, f Factory) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.factories[name]; ok {
		return fmt.Errorf("factory already registered for %s", name)
	}
	d.factories[name] = f
	return nil
}

// Create builds the value described by a single-key mapping node.
func (d *DirectCreator) Create(node *Node) (any, error) {
	if node == nil || node.Kind() != KindMapping || len(node.keys) != 1 {
		return nil, fmt.Errorf("%w: want a mapping with exactly one key", ErrMalformedSpec)
	}
	name := node.keys[0]
	d.mu.RLock()
	f, ok := d.factories[name]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	fields, err := directFields(node.vals[0])
	if err != nil {
		return nil, fmt.Errorf("%w: argument of %q: %w", ErrMalformedSpec, name, err)
	}
	v, err := f(NamedArgs(fields))
	if err != nil {
		return nil, &ConstructionError{Symbol: name, Args: fields, Err: err}
	}
	return v, nil
}

func directFields(arg *Node) (map[string]any, error) {
	if arg == nil {
		return map[string]any{}, nil
	}
	switch arg.Kind() {
	case KindMapping:
		fields, _ := arg.Plain().(map[string]any)
		return fields, nil
	case KindScalar:
		if arg.Value() == nil {
			return map[string]any{}, nil
		}
	}
	return nil, fmt.Errorf("want a mapping or null, have %s", arg.Kind())
}
