package creator

import (
	"fmt"
	"strings"
	"sync"
)

// Factory builds a value from interpreted arguments.
type Factory func(args Args) (any, error)

// Namespace groups factories and shared objects under one name prefix. A
// Namespace is handed to lazy loaders for population; its methods are not
// synchronized and must not be used outside the loader.
type Namespace struct {
	factories map[string]Factory
	objects   map[string]any
}

func newNamespace() *Namespace {
	return &Namespace{
		factories: make(map[string]Factory),
		objects:   make(map[string]any),
	}
}

// Register adds a factory under the given symbol.
func (ns *Namespace) Register(symbol string, f Factory) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", symbol)
	}
	if _, ok := ns.factories[symbol]; ok {
		return fmt.Errorf("factory already registered for %s", symbol)
	}
	ns.factories[symbol] = f
	return nil
}

// RegisterObject adds a plain value under the given symbol.
func (ns *Namespace) RegisterObject(symbol string, v any) error {
	if _, ok := ns.objects[symbol]; ok {
		return fmt.Errorf("object already registered for %s", symbol)
	}
	ns.objects[symbol] = v
	return nil
}

// Registry resolves dotted names to factories. Explicit registration replaces
// the dynamic imports of script-style configuration loaders: every
// constructible name is declared up front or through a lazy namespace loader.
// Names split on the LAST separator, so "a.b.C" resolves symbol "C" in
// namespace "a.b".
//
// Registry is safe for concurrent registration and resolution.
type Registry struct {
	sep string

	mu         sync.RWMutex
	namespaces map[string]*Namespace
	lazy       map[string]func(ns *Namespace) error
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSeparator overrides the namespace separator. The default is ".".
func WithSeparator(sep string) RegistryOption {
	return func(r *Registry) { r.sep = sep }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		sep:        ".",
		namespaces: make(map[string]*Namespace),
		lazy:       make(map[string]func(ns *Namespace) error),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Separator returns the string splitting namespace from symbol.
func (r *Registry) Separator() string { return r.sep }

// split cuts a name at the last separator. Names without the separator are
// rejected; no implicit default namespace exists.
func (r *Registry) split(name string) (namespace, symbol string, err error) {
	i := strings.LastIndex(name, r.sep)
	if i < 0 {
		return "", "", fmt.Errorf("%w: %q contains no %q", ErrInvalidKey, name, r.sep)
	}
	return name[:i], name[i+len(r.sep):], nil
}

// Register adds a factory under a fully qualified name such as
// "media.Widget".
func (r *Registry) Register(name string, f Factory) error {
	namespace, symbol, err := r.split(name)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ns, ok := r.namespaces[namespace]
	if !ok {
		ns = newNamespace()
		r.namespaces[namespace] = ns
	}
	return ns.Register(symbol, f)
}

// MustRegister is like Register but panics on error. Intended for package
// init blocks.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// RegisterObject adds a plain value under a fully qualified name. Objects are
// fetched with Object, not constructed.
func (r *Registry) RegisterObject(name string, v any) error {
	namespace, symbol, err := r.split(name)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ns, ok := r.namespaces[namespace]
	if !ok {
		ns = newNamespace()
		r.namespaces[namespace] = ns
	}
	return ns.RegisterObject(symbol, v)
}

// RegisterLazy installs a loader that populates the namespace on first
// resolution. The loader runs at most once; a failed load is retried on the
// next resolution. Loading a namespace is the only side effect resolution can
// have.
func (r *Registry) RegisterLazy(namespace string, load func(ns *Namespace) error) error {
	if load == nil {
		return fmt.Errorf("loader nil for namespace %s", namespace)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lazy[namespace]; ok {
		return fmt.Errorf("lazy loader already registered for namespace %s", namespace)
	}
	r.lazy[namespace] = load
	return nil
}

// lookup finds a namespace, running its lazy loader when one is pending.
func (r *Registry) lookup(namespace string) (*Namespace, error) {
	r.mu.RLock()
	ns, ok := r.namespaces[namespace]
	load, pending := r.lazy[namespace]
	r.mu.RUnlock()
	if ok && !pending {
		return ns, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if load, pending = r.lazy[namespace]; pending {
		ns, ok = r.namespaces[namespace]
		if !ok {
			ns = newNamespace()
		}
		if err := load(ns); err != nil {
			return nil, fmt.Errorf("load namespace %s: %w", namespace, err)
		}
		r.namespaces[namespace] = ns
		delete(r.lazy, namespace)
		return ns, nil
	}
	if ns, ok = r.namespaces[namespace]; ok {
		return ns, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNamespaceNotFound, namespace)
}

// Resolve splits name on the last separator and returns the factory
// registered for it.
func (r *Registry) Resolve(name string) (Factory, error) {
	namespace, symbol, err := r.split(name)
	if err != nil {
		return nil, err
	}
	ns, err := r.lookup(namespace)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	f, ok := ns.factories[symbol]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s in namespace %s", ErrSymbolNotFound, symbol, namespace)
	}
	return f, nil
}

// Object resolves a fully qualified name to a registered plain value.
func (r *Registry) Object(name string) (any, error) {
	namespace, symbol, err := r.split(name)
	if err != nil {
		return nil, err
	}
	ns, err := r.lookup(namespace)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	v, ok := ns.objects[symbol]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s in namespace %s", ErrSymbolNotFound, symbol, namespace)
	}
	return v, nil
}
