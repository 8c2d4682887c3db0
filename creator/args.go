package creator

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ArgKind discriminates the calling convention selected by the interpreted
// argument.
type ArgKind int

const (
	// ArgSingle passes the interpreted value through as one argument.
	ArgSingle ArgKind = iota
	// ArgNamed expands a mapping into named fields.
	ArgNamed
	// ArgPositional expands a sequence into positional values.
	ArgPositional
)

func (k ArgKind) String() string {
	switch k {
	case ArgNamed:
		return "named"
	case ArgPositional:
		return "positional"
	default:
		return "single"
	}
}

// Args carries a factory's interpreted argument in one of three shapes.
// Mappings arrive as named fields, sequences as positional values and
// everything else, strings included, as a single value.
type Args struct {
	kind       ArgKind
	named      map[string]any
	positional []any
	single     any
}

// NamedArgs builds Args carrying named fields.
func NamedArgs(fields map[string]any) Args { return Args{kind: ArgNamed, named: fields} }

// PositionalArgs builds Args carrying positional values.
func PositionalArgs(values []any) Args { return Args{kind: ArgPositional, positional: values} }

// SingleArg builds Args carrying one value.
func SingleArg(v any) Args { return Args{kind: ArgSingle, single: v} }

// Kind reports the argument shape.
func (a Args) Kind() ArgKind { return a.kind }

// Named returns the named fields, or ErrArgShape for another shape.
func (a Args) Named() (map[string]any, error) {
	if a.kind != ArgNamed {
		return nil, fmt.Errorf("%w: want named, have %s", ErrArgShape, a.kind)
	}
	return a.named, nil
}

// Positional returns the positional values, or ErrArgShape for another shape.
func (a Args) Positional() ([]any, error) {
	if a.kind != ArgPositional {
		return nil, fmt.Errorf("%w: want positional, have %s", ErrArgShape, a.kind)
	}
	return a.positional, nil
}

// Single returns the single value, or ErrArgShape for another shape.
func (a Args) Single() (any, error) {
	if a.kind != ArgSingle {
		return nil, fmt.Errorf("%w: want single, have %s", ErrArgShape, a.kind)
	}
	return a.single, nil
}

// Raw returns the argument as a plain value regardless of shape.
func (a Args) Raw() any {
	switch a.kind {
	case ArgNamed:
		return a.named
	case ArgPositional:
		return a.positional
	default:
		return a.single
	}
}

// Decode fills out the provided struct from named fields using json tags.
func (a Args) Decode(out any) error {
	fields, err := a.Named()
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(fields)
}

// NamedFactory adapts a constructor taking a decoded settings struct. The
// factory rejects non-mapping arguments with ErrArgShape.
func NamedFactory[T any](build func(conf T) (any, error)) Factory {
	return func(args Args) (any, error) {
		var conf T
		if err := args.Decode(&conf); err != nil {
			return nil, err
		}
		return build(conf)
	}
}

// PositionalFactory adapts a constructor taking positional values.
func PositionalFactory(build func(values []any) (any, error)) Factory {
	return func(args Args) (any, error) {
		values, err := args.Positional()
		if err != nil {
			return nil, err
		}
		return build(values)
	}
}

// SingleFactory adapts a constructor taking one value.
func SingleFactory(build func(v any) (any, error)) Factory {
	return func(args Args) (any, error) {
		v, err := args.Single()
		if err != nil {
			return nil, err
		}
		return build(v)
	}
}
