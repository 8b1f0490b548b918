package doclink

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the declarative site configuration, conventionally a
// doclink.yaml at the repository root.
type Config struct {
	Project    ProjectConfig     `yaml:"project"`
	Repository RepositoryConfig  `yaml:"repository"`
	External   map[string]string `yaml:"external,omitempty"`
	Exclude    []string          `yaml:"exclude,omitempty"`
	Hook       string            `yaml:"hook,omitempty"`
}

// ProjectConfig is display metadata consumed by the documentation pipeline.
type ProjectConfig struct {
	Name      string `yaml:"name"`
	Author    string `yaml:"author,omitempty"`
	Copyright string `yaml:"copyright,omitempty"`
	Version   string `yaml:"version,omitempty"`
	Release   string `yaml:"release,omitempty"`
}

// RepositoryConfig locates the source on GitHub. Package is the name
// segment a symbol's import path must contain to count as in-repository;
// it guards against linking a vendored copy as if it were project code.
type RepositoryConfig struct {
	Org     string `yaml:"org"`
	Repo    string `yaml:"repo"`
	Package string `yaml:"package"`
}

// LoadConfig reads and validates a YAML configuration file. Unknown keys
// are rejected so typos fail the build instead of silently dropping a
// setting.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("doclink: reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("doclink: parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("doclink: config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields the resolver cannot work without.
func (c *Config) Validate() error {
	if c.Repository.Org == "" {
		return fmt.Errorf("repository.org is required")
	}
	if c.Repository.Repo == "" {
		return fmt.Errorf("repository.repo is required")
	}
	if c.Repository.Package == "" {
		return fmt.Errorf("repository.package is required")
	}
	return nil
}

// ExternalURL returns the documentation URL for an out-of-repository import
// path, using the longest configured prefix match. Returns "" when no
// prefix matches.
func (c *Config) ExternalURL(importPath string) string {
	var base string
	bestLen := -1
	for prefix, b := range c.External {
		if importPath != prefix && !strings.HasPrefix(importPath, prefix+"/") {
			continue
		}
		if len(prefix) > bestLen {
			base = b
			bestLen = len(prefix)
		}
	}
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + importPath
}
