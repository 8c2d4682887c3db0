package config

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/confectlab/confect/timeutil"
)

// Decode copies a loosely typed value, as returned by Load, into out using
// json field tags. out must be a pointer. String fields decode into time.Time
// when they hold an ISO 8601 timestamp and into time.Duration when they hold
// a duration literal like "1m30s".
func Decode(v any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToTimeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(v)
}

var timeType = reflect.TypeOf(time.Time{})

func stringToTimeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}
	return timeutil.ParseISO8601(data.(string))
}

// DecodeMap loads a map into out, treating dots in keys as hierarchy: both
// {"server": {"port": 1}} and {"server.port": 1} set the same field. Use
// Decode when dotted keys must stay literal.
func DecodeMap(m map[string]any, out any) error {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return err
	}
	return k.UnmarshalWithConf("", out, koanf.UnmarshalConf{Tag: "json"})
}
