package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete match server configuration
type Config struct {
	Server Settings `hcl:"server,block"`
}

// Settings contains server-level configuration
type Settings struct {
	Address       string `hcl:"address,optional"`
	Port          int    `hcl:"port,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	MoveTimeoutMs int    `hcl:"move_timeout_ms,optional"`
	MaxRounds     int    `hcl:"max_rounds,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:       "localhost",
			Port:          8080,
			LogLevel:      "info",
			MoveTimeoutMs: 5000,
			MaxRounds:     500,
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Server.MoveTimeoutMs == 0 {
		config.Server.MoveTimeoutMs = defaults.Server.MoveTimeoutMs
	}
	if config.Server.MaxRounds == 0 {
		config.Server.MaxRounds = defaults.Server.MaxRounds
	}
	return &config, nil
}
