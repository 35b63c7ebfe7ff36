package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"key": "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"name": "alice"}, "name", "default", "alice"},
		{"key missing", map[string]any{"other": "value"}, "name", "default", "default"},
		{"empty string", map[string]any{"name": ""}, "name", "default", ""},
		{"wrong type", map[string]any{"name": 123}, "name", "default", "default"},
		{"nil map", nil, "name", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.String(tt.key, tt.defaultVal))
		})
	}
}

func TestBool(t *testing.T) {
	cfg := config.New(map[string]any{"enabled": true, "count": 3})
	assert.True(t, cfg.Bool("enabled", false))
	assert.False(t, cfg.Bool("missing", false))
	assert.True(t, cfg.Bool("count", true), "wrong type falls back to default")
}

func TestStringSlice(t *testing.T) {
	cfg := config.New(map[string]any{
		"strings": []string{"a", "b"},
		"anys":    []any{"c", "d"},
		"mixed":   []any{"e", 1},
	})

	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("strings", nil))
	assert.Equal(t, []string{"c", "d"}, cfg.StringSlice("anys", nil))
	assert.Equal(t, []string{"fallback"}, cfg.StringSlice("mixed", []string{"fallback"}))
	assert.Nil(t, cfg.StringSlice("missing", nil))
}

func TestSub(t *testing.T) {
	cfg := config.New(map[string]any{
		"site": map[string]any{"name": "store"},
		"flat": "value",
	})

	assert.Equal(t, "store", cfg.Sub("site").String("name", ""))
	assert.Equal(t, "", cfg.Sub("flat").String("name", ""), "non-map yields empty Config")
	assert.Equal(t, "", cfg.Sub("missing").String("name", ""))
}

const siteYAML = `
site:
  name: example-store
  experience: desktop
  currency: AUD
  division: retail
  domain: www.example.com
  env: prod
  version: "4.2.0"
`

func TestSiteFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(siteYAML))
	require.NoError(t, err)

	site, present := config.Site(cfg)
	require.True(t, present)
	assert.Equal(t, config.SiteInfo{
		Name:       "example-store",
		Experience: "desktop",
		Currency:   "AUD",
		Division:   "retail",
		Domain:     "www.example.com",
		Env:        "prod",
		Version:    "4.2.0",
	}, site)
	assert.False(t, site.IsZero())
}

func TestSiteMissing(t *testing.T) {
	cfg := config.New(map[string]any{"other": "x"})
	site, present := config.Site(cfg)
	assert.False(t, present)
	assert.True(t, site.IsZero())
}

func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"site": {"name": "store", "env": "dev"}}`))
	require.NoError(t, err)

	site, present := config.Site(cfg)
	require.True(t, present)
	assert.Equal(t, "store", site.Name)
	assert.Equal(t, "dev", site.Env)
}

func TestLoadSite(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml with site block", func(t *testing.T) {
		path := filepath.Join(dir, "datalayer.yaml")
		require.NoError(t, os.WriteFile(path, []byte(siteYAML), 0o644))

		site, err := config.LoadSite(path)
		require.NoError(t, err)
		assert.Equal(t, "example-store", site.Name)
		assert.Equal(t, "AUD", site.Currency)
	})

	t.Run("no site block", func(t *testing.T) {
		path := filepath.Join(dir, "other.yaml")
		require.NoError(t, os.WriteFile(path, []byte("other: value\n"), 0o644))

		_, err := config.LoadSite(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no site block")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadSite(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte(siteYAML), 0o644))

		cfg, err := config.FromFile(path)
		require.NoError(t, err)

		site, present := config.Site(cfg)
		require.True(t, present)
		assert.Equal(t, "example-store", site.Name)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "site.toml")
		require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

		_, err := config.FromFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("site: [unclosed"), 0o644))

		_, err := config.FromFile(path)
		assert.Error(t, err)
	})
}
