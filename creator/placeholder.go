package creator

import (
	"fmt"
	"go/token"
)

// Placeholder marks a position in an interpreted tree to be filled in later.
// The interpreter yields one *Placeholder per delimited scalar node; because
// placeholders are cached by node identity, an aliased scalar yields the same
// instance at every reference.
type Placeholder struct {
	Name string
}

func (p *Placeholder) String() string { return "placeholder:" + p.Name }

// parsePlaceholder reports whether s is delimited placeholder syntax. ok is
// false when s is not delimited at all; err is set when s is delimited but
// the inner text is not a valid identifier. Lookalike strings never pass
// silently.
func parsePlaceholder(s string, left, right byte) (p *Placeholder, ok bool, err error) {
	if len(s) < 2 || s[0] != left || s[len(s)-1] != right {
		return nil, false, nil
	}
	name := s[1 : len(s)-1]
	if !token.IsIdentifier(name) {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidPlaceholderName, name)
	}
	return &Placeholder{Name: name}, true, nil
}

// Binder is implemented by constructed values that take part in the
// substitution pass. Substitute calls BindPlaceholders on every non-container
// value it visits, so instances that captured placeholders at construction
// time can resolve them once bindings are known.
type Binder interface {
	BindPlaceholders(bindings map[string]any)
}

// Substitute walks an interpreted tree depth-first and swaps placeholders for
// their bound values. Containers are edited in place; the return value covers
// the case where the root itself is a placeholder. Unbound placeholders stay
// untouched, so the pass is idempotent and can run again when more bindings
// become known.
func Substitute(tree any, bindings map[string]any) any {
	switch t := tree.(type) {
	case *Placeholder:
		if v, ok := bindings[t.Name]; ok {
			return v
		}
		return t
	case map[string]any:
		for k, v := range t {
			t[k] = Substitute(v, bindings)
		}
		return t
	case []any:
		for i, v := range t {
			t[i] = Substitute(v, bindings)
		}
		return t
	default:
		if b, ok := tree.(Binder); ok {
			b.BindPlaceholders(bindings)
		}
		return tree
	}
}
