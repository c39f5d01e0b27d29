package sidecar

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	PostsFile    string `yaml:"posts_file"`
	MediaDir     string `yaml:"media_dir"`
	SidecarExt   string `yaml:"sidecar_extension"`
	MappingsFile string `yaml:"tag_mappings_file"`
}

func DefaultConfig() *Config {
	return &Config{
		PostsFile:  "posts.xml",
		MediaDir:   "media",
		SidecarExt: ".txt",
	}
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if config.SidecarExt == "" {
		config.SidecarExt = ".txt"
	} else if !strings.HasPrefix(config.SidecarExt, ".") {
		config.SidecarExt = "." + config.SidecarExt
	}

	return config, nil
}
