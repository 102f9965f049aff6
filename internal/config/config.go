// Package config loads shelld's operating parameters, grounded on the
// teacher's config_load.go: a JSON5 file (so comments and trailing commas
// are allowed) unmarshalled over a struct of defaults, never failing hard
// when the file is simply absent.
package config

import (
	"fmt"
	"os"

	"github.com/titanous/json5"
)

// Config carries spec §6's "fixed constants" as overridable fields, plus
// the admin/monitor dashboard's bind address.
type Config struct {
	ListenAddr           string `json:"listen_addr"`
	MaxCommandLength     int    `json:"max_command_length"`
	MaxArgv              int    `json:"max_argv"`
	MaxPipelineStages    int    `json:"max_pipeline_stages"`
	InitialCaptureBuffer int    `json:"initial_capture_buffer"`
	FirstQuantumSeconds  int    `json:"first_quantum_seconds"`
	SubsequentQuantum    int    `json:"subsequent_quantum_seconds"`
	MonitorAddr          string `json:"monitor_addr"`
}

// Default returns the operating parameters spec §6 fixes as constants.
func Default() *Config {
	return &Config{
		ListenAddr:           ":8080",
		MaxCommandLength:     1024,
		MaxArgv:              64,
		MaxPipelineStages:    10,
		InitialCaptureBuffer: 4096,
		FirstQuantumSeconds:  3,
		SubsequentQuantum:    7,
		MonitorAddr:          ":9090",
	}
}

// Load reads a JSON5 config file at path, overlaying it on Default(). A
// missing file is not an error: Default() is returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
