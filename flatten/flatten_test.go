package flatten

import (
	"reflect"
	"testing"
)

func TestFlatten(t *testing.T) {
	in := map[string]any{
		"db": map[string]any{
			"host":  "localhost",
			"ports": []any{5432, 5433},
		},
		"name": "svc",
	}
	got := Flatten(in, ".")
	want := map[string]any{
		"db.host":    "localhost",
		"db.ports.0": 5432,
		"db.ports.1": 5433,
		"name":       "svc",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestFlattenScalarRoot(t *testing.T) {
	got := Flatten(42, ".")
	if !reflect.DeepEqual(got, map[string]any{"": 42}) {
		t.Fatalf("got %#v", got)
	}
}

func TestUnflattenRebuildsSequences(t *testing.T) {
	in := map[string]any{
		"db.host":    "localhost",
		"db.ports.0": 5432,
		"db.ports.1": 5433,
		"name":       "svc",
	}
	got := Unflatten(in, ".")
	want := map[string]any{
		"db": map[string]any{
			"host":  "localhost",
			"ports": []any{5432, 5433},
		},
		"name": "svc",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestUnflattenIncompleteIndexesStayMappings(t *testing.T) {
	got := Unflatten(map[string]any{"a.0": "x", "a.2": "y"}, ".")
	want := map[string]any{"a": map[string]any{"0": "x", "2": "y"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestUnflattenScalarRoot(t *testing.T) {
	if got := Unflatten(map[string]any{"": "solo"}, "."); got != "solo" {
		t.Fatalf("got %v", got)
	}
}

func TestRoundTrip(t *testing.T) {
	in := map[string]any{
		"a": []any{map[string]any{"x": 1}, "two", []any{3, 4}},
		"b": map[string]any{"c": nil},
	}
	got := Unflatten(Flatten(in, "/"), "/")
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %#v, want %#v", got, in)
	}
}

func TestClean(t *testing.T) {
	in := map[string]any{
		"keep": 1,
		"drop": nil,
		"sub":  map[string]any{"also": nil, "ok": "v"},
	}
	got := Clean(in)
	want := map[string]any{
		"keep": 1,
		"sub":  map[string]any{"ok": "v"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	if _, ok := in["drop"]; !ok {
		t.Fatalf("Clean must not mutate its input")
	}
}
