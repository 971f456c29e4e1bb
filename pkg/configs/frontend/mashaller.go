package frontend

import (
	"os"

	"gopkg.in/yaml.v3"
)

type FrontendConfig struct {
	ServerPort    string `yaml:"port"`
	DBURI         string `yaml:"database"`
	AdminUser     string `yaml:"adminUser"`
	AdminPassword string `yaml:"adminPassword"`

	// time to live of api tokens, in time.Duration expression. default = "1h"
	TokenTTL string `yaml:"tokenTTL,omitempty"`
}

func LoadFrontendConfig(filepath string) (*FrontendConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*FrontendConfig, error) {
	var out FrontendConfig
	err := yaml.Unmarshal(conf, &out)
	if err != nil {
		return nil, err
	}
	if out.TokenTTL == "" {
		out.TokenTTL = "1h"
	}
	return &out, nil
}
