package deploy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a release. It ships as manifest.yaml at the package root.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Commit  string `yaml:"commit"`
	BuiltAt string `yaml:"built_at"`
}

// LoadManifest parses the manifest at path
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}
