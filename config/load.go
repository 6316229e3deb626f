package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape: the base Config plus a symbol keyed override
// map.
type File struct {
	Config    Config               `yaml:",inline"`
	Overrides map[string]Override  `yaml:"overrides"`
}

// Load reads a YAML parameter file and validates it: this is where the
// "Config invalid" error taxonomy fires.
func Load(path string) (Config, map[string]Override, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Config{}, nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(f.Config); err != nil {
		return Config{}, nil, err
	}
	return f.Config, f.Overrides, nil
}
