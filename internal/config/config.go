// Package config loads the YAML pipeline configuration: paths, identity
// naming, OCR tuning, similarity tuning, segmentation options and seeded
// assignments.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pagetrace/internal/assign"
)

//go:embed sample_config.yaml
var sampleConfig string

// Paths holds file locations. Relative paths are resolved against the
// config file's directory.
type Paths struct {
	InputDir    string `yaml:"input_dir"`    // source PDFs
	PreviewsDir string `yaml:"previews_dir"` // pre-rendered first-page bitmaps
	DBPath      string `yaml:"db_path"`
}

// Naming configures identity extraction from filenames.
type Naming struct {
	IDPattern string `yaml:"id_pattern"` // regexp with one digit capture group
}

// Slate tunes slate (cover sheet) detection.
type Slate struct {
	Region         string   `yaml:"region"`
	PSM            int      `yaml:"psm"`
	Keywords       []string `yaml:"keywords"`
	MinKeywords    int      `yaml:"min_keywords"`
	StrongKeywords []string `yaml:"strong_keywords"`
}

// Marker tunes room-marker detection.
type Marker struct {
	Whitelist string `yaml:"whitelist"`
}

// OCR groups the observation extractor settings.
type OCR struct {
	Enabled bool   `yaml:"enabled"`
	Slate   Slate  `yaml:"slate"`
	Marker  Marker `yaml:"marker"`
}

// Similarity tunes the keypoint similarity graph.
type Similarity struct {
	InlierThreshold int `yaml:"inlier_threshold"`
	MaxPairs        int `yaml:"max_pairs"` // 0 = no pair budget
}

// Segments tunes the segmentation post-pass.
type Segments struct {
	MinRun       int  `yaml:"min_run"`
	KeepUnmarked bool `yaml:"keep_unmarked"`
}

// Logging controls log output.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration.
type Config struct {
	Paths      Paths         `yaml:"paths"`
	Naming     Naming        `yaml:"naming"`
	OCR        OCR           `yaml:"ocr"`
	Similarity Similarity    `yaml:"similarity"`
	Segments   Segments      `yaml:"segments"`
	Logging    Logging       `yaml:"logging"`
	Seeds      []assign.Seed `yaml:"seed_assignments"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes config bytes without path resolution.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sample returns the embedded sample configuration.
func Sample() string { return sampleConfig }

func (c *Config) resolvePaths(base string) {
	c.Paths.InputDir = resolve(base, c.Paths.InputDir)
	c.Paths.PreviewsDir = resolve(base, c.Paths.PreviewsDir)
	c.Paths.DBPath = resolve(base, c.Paths.DBPath)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
