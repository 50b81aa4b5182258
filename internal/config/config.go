// Package config loads the optional repo-level .skilldoctor.yaml file,
// which supplies defaults for the validate command's flags, plus a
// local .env file used when running outside GitHub Actions.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the repo-level configuration file looked up in the
// working directory.
const FileName = ".skilldoctor.yaml"

// Config is the in-memory representation of .skilldoctor.yaml. Boolean
// fields are pointers so an absent key is distinguishable from false.
type Config struct {
	Path        string `yaml:"path,omitempty"`
	Mode        string `yaml:"mode,omitempty"`
	BaseRef     string `yaml:"base_ref,omitempty"`
	FailOnError *bool  `yaml:"fail_on_error,omitempty"`
	CommentOnPR *bool  `yaml:"comment_on_pr,omitempty"`
	Annotations *bool  `yaml:"annotations,omitempty"`
	Suggestions *bool  `yaml:"suggestions,omitempty"`
	OutputJSON  *bool  `yaml:"output_json,omitempty"`
}

// Load reads dir/.skilldoctor.yaml. A missing file yields an empty
// config, not an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return &cfg, nil
}
