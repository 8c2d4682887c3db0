package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type fileOptions struct {
	envPrefix string
}

// FileOption adjusts a LoadTyped call.
type FileOption func(*fileOptions)

// WithEnvPrefix changes the prefix of the override variables. The default is
// "CONFECT_".
func WithEnvPrefix(prefix string) FileOption {
	return func(o *fileOptions) { o.envPrefix = prefix }
}

type defaulter interface{ SetDefaults() }
type validator interface{ Validate() error }

// LoadTyped reads a YAML or JSON file straight into a struct, with
// environment overrides: CONFECT_SERVER__PORT=9 overrides the key
// server.port. After decoding, SetDefaults and Validate run on out when it
// implements them.
func LoadTyped(path string, out any, opts ...FileOption) error {
	o := fileOptions{envPrefix: "CONFECT_"}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return err
	}
	// Optional environment overrides
	lower := strings.ToLower(o.envPrefix)
	if err := k.Load(env.Provider(o.envPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), lower)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return err
	}
	if err := k.UnmarshalWithConf("", out, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return err
	}

	if d, ok := out.(defaulter); ok {
		d.SetDefaults()
	}
	if v, ok := out.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
