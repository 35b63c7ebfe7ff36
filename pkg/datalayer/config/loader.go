package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSite reads a config file and extracts its site block. Site identity is
// the only configuration the data layer consumes, so most integrators call
// this rather than FromFile.
func LoadSite(path string) (SiteInfo, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return SiteInfo{}, err
	}
	site, present := Site(cfg)
	if !present {
		return SiteInfo{}, fmt.Errorf("config %s: no site block", filepath.Base(path))
	}
	return site, nil
}

// FromFile loads a Config from path, picking the decoder by file extension.
// YAML (.yaml, .yml) and JSON (.json) are supported.
func FromFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", filepath.Base(path), err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(raw)
	case ".json":
		return FromJSON(raw)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", filepath.Base(path), ext)
	}
}

// FromYAML decodes YAML configuration data.
func FromYAML(raw []byte) (Config, error) {
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Config{}, fmt.Errorf("decode yaml config: %w", err)
	}
	return New(data), nil
}

// FromJSON decodes JSON configuration data.
func FromJSON(raw []byte) (Config, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Config{}, fmt.Errorf("decode json config: %w", err)
	}
	return New(data), nil
}
