package core

import (
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "todos.config.yml"

type Config struct {
	TemplatesDir string `yaml:"templatesDir"`
	PublicDir    string `yaml:"publicDir"`
	TodosFile    string `yaml:"todosFile"`
	CacheEnabled bool   `yaml:"cache"`
	MinifyHTML   bool   `yaml:"minifyHTML"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
	LogFormat    string `yaml:"logFormat"`
}

func DefaultConfig() Config {
	return Config{
		LogFormat: "text",
	}
}

var LoadConfig = func(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return &cfg
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return &cfg
	}

	if err := mergo.Merge(&loaded, cfg); err != nil {
		return &cfg
	}

	return &loaded
}
