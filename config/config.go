// Package config loads the importer's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/recolude/plymotion/scene"
	"gopkg.in/yaml.v3"
)

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	// File sends logs to a file instead of stderr.
	File     string `yaml:"file"`
	Encoding string `yaml:"encoding"`
}

type Import struct {
	// PLYPath is the point cloud to import.
	PLYPath    string `yaml:"ply_path"`
	ObjectName string `yaml:"object_name"`
	// Optional outputs written after the import.
	OutPLY   string `yaml:"out_ply"`
	OutRAP   string `yaml:"out_rap"`
	WritePLY string `yaml:"write_ply"`
	Log      Log    `yaml:"log"`
}

func Default() Import {
	return Import{
		ObjectName: scene.DefaultObjectName,
		Log:        Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Import, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func (c Import) Validate() error {
	if c.PLYPath == "" {
		return errors.New("ply_path is required")
	}
	if c.ObjectName == "" {
		return errors.New("object_name must not be empty")
	}
	return nil
}
