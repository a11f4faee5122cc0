package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type GeneratorConfig struct {
	// "auto", an exact version or a constraint such as ^0.8.20
	SolidityVersion string   `yaml:"solidity_version" validate:"omitempty,pragma"`
	IgnorePaths     []string `yaml:"ignore_paths"`
	Selectors       bool     `yaml:"selectors"`
	Concurrency     int      `yaml:"concurrency" validate:"gte=0,lte=64"`
}

// TargetConfig 一组输入/输出目录
type TargetConfig struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input" validate:"required"`
	Output string `yaml:"output" validate:"required"`
}

type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver" validate:"omitempty,oneof=sqlite postgres"`
	// sqlite
	Path string `yaml:"path"`
	// postgres
	Host     string `yaml:"host"`
	Port     string `yaml:"port" validate:"omitempty,numeric"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

type LogConfig struct {
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

type ReportConfig struct {
	Dir string `yaml:"dir"`
}

type AppConfig struct {
	Generator GeneratorConfig `yaml:"generator"`
	Targets   []TargetConfig  `yaml:"targets" validate:"dive"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Report    ReportConfig    `yaml:"report"`
}

// LoadConfig 加载 YAML 配置；path 为空时按默认路径查找
func LoadConfig(path string) (*AppConfig, error) {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil, fmt.Errorf("the configuration file settings.yaml was not found")
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a settings document, applies environment overrides and
// validates the result.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile() string {
	possiblePaths := []string{
		"config/settings.yaml",
		"settings.yaml",
		"src/config/settings.yaml",
		"../config/settings.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func GetConfigPath() string {
	return findConfigFile()
}
