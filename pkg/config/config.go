package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FromJSON parses a component config document.
func FromJSON(data []byte) (*ComponentConfig, error) {
	var cfg ComponentConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse component config: %w", err)
	}
	return &cfg, nil
}

// ToJSON serializes the config with two-space indentation.
func (c *ComponentConfig) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize component config: %w", err)
	}
	return data, nil
}

// LoadFromFile reads a component config JSON document from disk.
func LoadFromFile(path string) (*ComponentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes the config as indented JSON.
func (c *ComponentConfig) SaveToFile(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
