package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for leakscout.
// Pointer fields distinguish "unset" from zero values so the CLI can apply
// CLI > local > global precedence.
type FileConfig struct {
	APIURL       *string `yaml:"api_url"`
	BatchMaxSize *int    `yaml:"batch_max_size"`
	MaxBytes     *int64  `yaml:"max_bytes"`
	Include      *string `yaml:"include"`
	Exclude      *string `yaml:"exclude"`
	FailOn       *string `yaml:"fail_on"`
	NoColor      *bool   `yaml:"no_color"`
	Verbose      *bool   `yaml:"verbose"`
}

// TokenEnvVar is the environment variable holding the detection service
// token. Tokens are deliberately not read from config files.
const TokenEnvVar = "LEAKSCOUT_API_TOKEN"

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .leakscout.yml/.yaml and leakscout.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".leakscout.yml", ".leakscout.yaml", "leakscout.yml", "leakscout.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "leakscout", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
