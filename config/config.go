package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/confectlab/confect/creator"
	"github.com/confectlab/confect/logs"
	"github.com/confectlab/confect/resource"
)

type options struct {
	creator  *creator.Creator
	cache    *creator.Cache
	bindings map[string]any
	loadOpts []resource.LoadOption
	log      logs.Logger
}

// Option adjusts a single Load, FromMap, FromEnv or FromURL call.
type Option func(*options)

// WithCreator interprets the loaded tree instead of returning it as plain
// data. Instantiation specs in the tree become live objects.
func WithCreator(c *creator.Creator) Option {
	return func(o *options) { o.creator = c }
}

// WithCache carries construction results across calls. Only meaningful
// together with WithCreator and a shared *creator.Node source.
func WithCache(cache *creator.Cache) Option {
	return func(o *options) { o.cache = cache }
}

// WithBindings substitutes placeholders in the interpreted tree. Takes
// effect when a creator interprets the tree.
func WithBindings(b map[string]any) Option {
	return func(o *options) { o.bindings = b }
}

// WithResourceOptions forwards options to the resource layer when the
// source is a URL.
func WithResourceOptions(opts ...resource.LoadOption) Option {
	return func(o *options) { o.loadOpts = append(o.loadOpts, opts...) }
}

// WithLogger routes load diagnostics to l.
func WithLogger(l logs.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(opts []Option) *options {
	o := &options{log: logs.NopLogger{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) finish(node *creator.Node) (any, error) {
	if o.creator == nil {
		return node.Plain(), nil
	}
	v, err := o.creator.CreateCached(node, o.cache)
	if err != nil {
		return nil, err
	}
	if len(o.bindings) > 0 {
		v = creator.Substitute(v, o.bindings)
	}
	return v, nil
}

// Load resolves a configuration source into data, or into live objects when
// a creator is supplied. The source may be:
//
//   - a map[string]any, used directly
//   - a *creator.Node, used directly
//   - a string naming a set environment variable, holding the config URL
//   - any other string, fetched as a URL
func Load(ctx context.Context, source any, opts ...Option) (any, error) {
	switch v := source.(type) {
	case map[string]any:
		return FromMap(v, opts...)
	case *creator.Node:
		return newOptions(opts).finish(v)
	case string:
		if _, ok := os.LookupEnv(v); ok {
			return FromEnv(ctx, v, opts...)
		}
		return FromURL(ctx, v, opts...)
	case nil:
		return nil, errors.New("config: nil source")
	default:
		return nil, fmt.Errorf("config: unsupported source type %T", source)
	}
}

// FromMap loads configuration from an in-memory map. Keys pass through
// verbatim; a dotted key stays one key, it is never split into nested
// levels.
func FromMap(m map[string]any, opts ...Option) (any, error) {
	return newOptions(opts).finish(creator.FromAny(m))
}

// FromEnv loads configuration from the URL held in an environment variable.
func FromEnv(ctx context.Context, name string, opts ...Option) (any, error) {
	rawURL, ok := os.LookupEnv(name)
	if !ok {
		return nil, fmt.Errorf("config: environment variable %s is not set", name)
	}
	return FromURL(ctx, rawURL, opts...)
}

// FromURL loads configuration from the resource behind rawURL. Parsing goes
// through the creator parsers rather than the resource ones so YAML anchors
// keep their node identity for the construction cache. A .json extension
// picks the JSON parser; everything else is read as YAML.
func FromURL(ctx context.Context, rawURL string, opts ...Option) (any, error) {
	o := newOptions(opts)
	u, err := resource.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	rc, err := resource.Open(ctx, rawURL, o.loadOpts...)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}

	var node *creator.Node
	if u.Ext() == ".json" {
		node, err = creator.ParseJSON(data)
	} else {
		node, err = creator.ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	o.log.Debugw("config loaded", map[string]interface{}{"url": rawURL})
	return o.finish(node)
}
