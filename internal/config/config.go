// Package config is jmcc's project descriptor: the small YAML file
// (conventionally named jmc.yaml) that says which namespace a project
// compiles into and where its output goes. It plays the role the
// teacher's adapter.Config plays for a database connection, but
// loaded from a file rather than CLI flags, since a compiler has no
// connection to authenticate.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the decoded contents of a project's jmc.yaml.
type Config struct {
	Namespace   string `yaml:"namespace"`
	PackFormat  int    `yaml:"pack_format"`
	Output      string `yaml:"output"`
	Description string `yaml:"description"`
}

// Default returns the configuration assumed when no jmc.yaml is
// present: namespace "jmc", output the current directory.
func Default() Config {
	return Config{
		Namespace:  "jmc",
		PackFormat: 26,
		Output:     ".",
	}
}

// Load reads and decodes the YAML project descriptor at path. Fields
// left unset in the file keep Default's values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
