// Package config loads the data layer's configuration: a read-only view
// over decoded YAML or JSON, and extraction of the per-session site identity
// block the sequencer injects into the first event.
package config

// Config is a read-only view over decoded configuration data. Accessors take
// a fallback value that is returned when the key is absent or holds a
// different type, so lookups never fail.
type Config struct {
	data map[string]any
}

// New wraps data in a Config. A nil map yields an empty Config.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// Raw exposes the underlying map. Mutating it mutates the Config.
func (c Config) Raw() map[string]any {
	return c.data
}

// Has reports whether key is present, regardless of its type.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// String returns the string at key, or fallback when the key is absent or
// not a string.
func (c Config) String(key, fallback string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return fallback
}

// Bool returns the bool at key, or fallback when the key is absent or not a
// bool.
func (c Config) Bool(key string, fallback bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return fallback
}

// StringSlice returns the string list at key. Both []string and the []any
// shape YAML/JSON decoding produces are accepted; a list with a non-string
// element counts as absent.
func (c Config) StringSlice(key string, fallback []string) []string {
	switch list := c.data[key].(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return fallback
			}
			out = append(out, s)
		}
		return out
	}
	return fallback
}

// Sub returns the nested Config at key, or an empty Config when the value is
// absent or not a map.
func (c Config) Sub(key string) Config {
	if m, ok := c.data[key].(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}
