package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the rosetta configuration file (~/.config/rosetta/config.yaml).
// Numeric fields are pointers so "not set" is distinguishable from zero.
type Config struct {
	ModelsDir string `yaml:"models_dir"`

	// Backend
	Backend        string   `yaml:"backend"`
	BackendURL     string   `yaml:"backend_url"`
	LambdaFunction string   `yaml:"lambda_function"`
	AWSRegion      string   `yaml:"aws_region"`
	RequestRPS     *float64 `yaml:"request_rps"`
	MaxRetries     *int64   `yaml:"max_retries"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rosetta", "config.yaml")
}

// applyCommonConfig applies config file defaults to the shared flag
// variables when the corresponding CLI flag was not explicitly set.
func applyCommonConfig(c *cli.Command, cfg Config) {
	if cfg.ModelsDir != "" && !c.IsSet("models-path") {
		modelsPath = cfg.ModelsDir
	}
	if cfg.Backend != "" && !c.IsSet("backend") {
		backendName = cfg.Backend
	}
	if cfg.BackendURL != "" && !c.IsSet("backend-url") {
		backendURL = cfg.BackendURL
	}
	if cfg.LambdaFunction != "" && !c.IsSet("function") {
		functionName = cfg.LambdaFunction
	}
	if cfg.AWSRegion != "" && !c.IsSet("region") {
		awsRegion = cfg.AWSRegion
	}
	if cfg.RequestRPS != nil && !c.IsSet("rps") {
		requestRPS = *cfg.RequestRPS
	}
	if cfg.MaxRetries != nil && !c.IsSet("max-retries") {
		maxRetries = *cfg.MaxRetries
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	applyCommonConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
