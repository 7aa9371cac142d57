package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

const (
	DefaultRegion       = "us-east-1"
	DefaultDiscoveryDir = "terraform_output"
	DefaultTerraformDir = "terraform"
)

// Config holds defaults for the discovery and generation runs. Every value can be
// overridden by a flag or environment variable; the file itself is optional.
type Config struct {
	AWS struct {
		Region  string `yaml:"region"`
		Profile string `yaml:"profile"`
	} `yaml:"aws"`
	Discovery struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"discovery"`
	Terraform struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"terraform"`
}

// Load reads the config file at path, falling back to defaults when the file does
// not exist. A file that exists but fails to parse is an error, not a fallback.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Re-apply defaults for anything the file left blank.
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = DefaultRegion
	}
	if cfg.Discovery.OutputDir == "" {
		cfg.Discovery.OutputDir = DefaultDiscoveryDir
	}
	if cfg.Terraform.OutputDir == "" {
		cfg.Terraform.OutputDir = DefaultTerraformDir
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.AWS.Region = DefaultRegion
	cfg.Discovery.OutputDir = DefaultDiscoveryDir
	cfg.Terraform.OutputDir = DefaultTerraformDir
	return cfg
}
