package creator

import (
	"errors"
	"testing"
)

func TestCreateParsesPlaceholders(t *testing.T) {
	cr, _ := testCreator(t)
	v, err := cr.Create(NewMap(E("input", NewScalar("<source>"))))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p, ok := v.(map[string]any)["input"].(*Placeholder)
	if !ok {
		t.Fatalf("v = %#v, want *Placeholder", v)
	}
	if p.Name != "source" {
		t.Fatalf("name = %s", p.Name)
	}
}

func TestPlaceholderIdentityFollowsNodes(t *testing.T) {
	cr, _ := testCreator(t)
	shared := NewScalar("<x>")
	v, err := cr.Create(NewSeq(shared, NewScalar("<x>"), shared))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	items := v.([]any)
	if items[0] != items[2] {
		t.Fatalf("one node must yield one placeholder instance")
	}
	if items[0] == items[1] {
		t.Fatalf("distinct nodes must yield distinct placeholder instances")
	}
}

func TestInvalidPlaceholderNames(t *testing.T) {
	cr, _ := testCreator(t)
	for _, s := range []string{"<not a name>", "<>", "<1abc>", "<func>", "<a-b>"} {
		_, err := cr.Create(NewScalar(s))
		if !errors.Is(err, ErrInvalidPlaceholderName) {
			t.Fatalf("%q: err = %v, want ErrInvalidPlaceholderName", s, err)
		}
	}
}

func TestNonDelimitedStringsPass(t *testing.T) {
	cr, _ := testCreator(t)
	for _, s := range []string{"plain", "a<b>", "<open", "close>", "x"} {
		v, err := cr.Create(NewScalar(s))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if v != s {
			t.Fatalf("%q interpreted to %v", s, v)
		}
	}
}

func TestCustomDelimiters(t *testing.T) {
	cr, _ := testCreator(t, WithDelimiters('%', '%'))
	v, err := cr.Create(NewScalar("%x%"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p, ok := v.(*Placeholder)
	if !ok || p.Name != "x" {
		t.Fatalf("v = %#v", v)
	}
	v, err = cr.Create(NewScalar("<x>"))
	if err != nil || v != "<x>" {
		t.Fatalf("default delimiters still active: %v, %v", v, err)
	}
}

func TestSubstitute(t *testing.T) {
	tree := map[string]any{
		"in":    &Placeholder{Name: "input"},
		"list":  []any{&Placeholder{Name: "input"}, "keep"},
		"other": &Placeholder{Name: "unbound"},
	}
	got := Substitute(tree, map[string]any{"input": 42}).(map[string]any)
	if got["in"] != 42 {
		t.Fatalf("in = %v", got["in"])
	}
	if got["list"].([]any)[0] != 42 {
		t.Fatalf("list[0] = %v", got["list"].([]any)[0])
	}
	if p, ok := got["other"].(*Placeholder); !ok || p.Name != "unbound" {
		t.Fatalf("unbound placeholder must stay: %#v", got["other"])
	}
	// The pass edits containers in place.
	if tree["in"] != 42 {
		t.Fatalf("substitution must be in place")
	}
}

func TestSubstituteRoot(t *testing.T) {
	p := &Placeholder{Name: "root"}
	if got := Substitute(p, map[string]any{"root": "done"}); got != "done" {
		t.Fatalf("got = %v", got)
	}
	if got := Substitute(p, nil); got != any(p) {
		t.Fatalf("unbound root must come back unchanged")
	}
}

func TestSubstituteIdempotent(t *testing.T) {
	tree := map[string]any{"a": &Placeholder{Name: "a"}, "b": &Placeholder{Name: "b"}}
	bindings := map[string]any{"a": 1}
	Substitute(tree, bindings)
	Substitute(tree, bindings)
	if tree["a"] != 1 {
		t.Fatalf("a = %v", tree["a"])
	}
	if _, ok := tree["b"].(*Placeholder); !ok {
		t.Fatalf("b must stay a placeholder")
	}
	// Late bindings resolve what earlier passes left.
	Substitute(tree, map[string]any{"b": 2})
	if tree["b"] != 2 {
		t.Fatalf("b = %v", tree["b"])
	}
}

// bindable records the bindings it was offered, standing in for constructed
// values that captured placeholders at build time.
type bindable struct {
	arg   any
	bound map[string]any
}

func (b *bindable) BindPlaceholders(bindings map[string]any) {
	b.bound = bindings
	if p, ok := b.arg.(*Placeholder); ok {
		if v, ok := bindings[p.Name]; ok {
			b.arg = v
		}
	}
}

func TestSubstituteRoundTripThroughConstruction(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("ui.Widget", SingleFactory(func(v any) (any, error) {
		return &bindable{arg: v}, nil
	}))
	cr := New(reg)

	node, err := ParseYAML([]byte("ui.Widget: <value>\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := cr.Create(node)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w := v.(*bindable)
	if _, ok := w.arg.(*Placeholder); !ok {
		t.Fatalf("widget should hold the placeholder, has %T", w.arg)
	}

	out := Substitute(v, map[string]any{"value": 42})
	if out != v {
		t.Fatalf("instance root must come back unchanged")
	}
	if w.arg != 42 {
		t.Fatalf("arg = %v, want the bound value", w.arg)
	}
}
