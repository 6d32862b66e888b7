package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type decoder func([]byte) (Config, error)

// decoders maps a lower-cased file extension to its parser.
var decoders = map[string]decoder{
	".yaml": FromYAML,
	".yml":  FromYAML,
	".json": FromJSON,
}

// FromFile reads path and decodes it according to its extension
// (.yaml, .yml or .json).
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return Config{}, fmt.Errorf("unsupported config file extension: %q", ext)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := decode(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromFiles loads each path in order and merges them, later files taking
// precedence. With no paths it returns an empty Config.
func FromFiles(paths ...string) (Config, error) {
	cfg := New(nil)
	for _, p := range paths {
		next, err := FromFile(p)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(next)
	}
	return cfg, nil
}

// FromYAML decodes a YAML document. An empty document yields an empty Config.
func FromYAML(data []byte) (Config, error) {
	return decode(data, "yaml", yaml.Unmarshal)
}

// FromJSON decodes a JSON object.
func FromJSON(data []byte) (Config, error) {
	return decode(data, "json", json.Unmarshal)
}

func decode(data []byte, format string, unmarshal func([]byte, any) error) (Config, error) {
	var m map[string]any
	if err := unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", format, err)
	}
	return New(m), nil
}
