// Package config loads configuration from maps, environment variables, files
// and URLs, and optionally runs it through a creator to turn instantiation
// specs into live objects.
//
// Example usage:
//
//	reg := creator.NewRegistry()
//	reg.MustRegister("db.Conn", creator.NamedFactory(NewConn))
//
//	v, err := config.Load(ctx, "file:///etc/app/conf.yaml",
//		config.WithCreator(creator.New(reg)),
//	)
//
// Without a creator the same call returns plain maps, slices and scalars.
// LoadTyped skips the creator entirely and decodes a file straight into a
// struct, with environment overrides.
package config
