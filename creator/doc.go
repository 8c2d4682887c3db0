// Package creator turns declarative configuration trees into live values.
//
// A configuration tree is built from mappings, sequences and scalars (see
// Node). Any mapping with exactly one key that contains the registry
// separator, "media.Decoder" for example, is an instantiation spec: the value
// under the key becomes the constructor argument and the key names the
// factory to call. Arguments are interpreted bottom-up, so specs nest freely.
//
// Example usage:
//
//	reg := creator.NewRegistry()
//	reg.MustRegister("media.Decoder", creator.NamedFactory(func(conf DecoderConf) (any, error) {
//	    return NewDecoder(conf)
//	}))
//
//	node, err := creator.ParseYAML(data)
//	if err != nil {
//	    return err
//	}
//	v, err := creator.New(reg).Create(node)
//
// Results are memoized by node identity: when a YAML anchor makes two parts
// of the tree reference the same node, both receive the same constructed
// instance. Values of builtin types are exempt. Create scopes the memo to one
// call; CreateCached shares a caller-owned Cache across calls.
//
// Scalar strings delimited like "<name>" interpret to *Placeholder markers
// that Substitute later swaps for bound values.
package creator
