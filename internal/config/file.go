package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML overlay. Pointer fields distinguish "unset" from
// zero values; only set fields override the environment.
type fileConfig struct {
	Server struct {
		Port  *int  `yaml:"port"`
		Debug *bool `yaml:"debug"`
	} `yaml:"server"`
	Store struct {
		Backend      *string `yaml:"backend"`
		SQLitePath   *string `yaml:"sqlite_path"`
		PostgresURL  *string `yaml:"postgres_url"`
		SnapshotPath *string `yaml:"snapshot_path"`
		MaxKeySize   *int    `yaml:"max_key_size"`
		MaxValueSize *int    `yaml:"max_value_size"`
	} `yaml:"store"`
	Events struct {
		Enabled     *bool   `yaml:"enabled"`
		RabbitMQURL *string `yaml:"rabbitmq_url"`
	} `yaml:"events"`
	AI struct {
		CanisterURL     *string `yaml:"canister_url"`
		APIKey          *string `yaml:"api_key"`
		APIURL          *string `yaml:"api_url"`
		Model           *string `yaml:"model"`
		TimeoutSeconds  *int    `yaml:"timeout_seconds"`
		MaxRetries      *int    `yaml:"max_retries"`
		FallbackEnabled *bool   `yaml:"fallback_enabled"`
	} `yaml:"ai"`
}

func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setInt(&c.Port, f.Server.Port)
	setBool(&c.Debug, f.Server.Debug)

	setString(&c.StoreBackend, f.Store.Backend)
	setString(&c.SQLitePath, f.Store.SQLitePath)
	setString(&c.PostgresURL, f.Store.PostgresURL)
	setString(&c.SnapshotPath, f.Store.SnapshotPath)
	setInt(&c.MaxKeySize, f.Store.MaxKeySize)
	setInt(&c.MaxValueSize, f.Store.MaxValueSize)

	setBool(&c.EventsEnabled, f.Events.Enabled)
	setString(&c.RabbitMQURL, f.Events.RabbitMQURL)

	setString(&c.CanisterURL, f.AI.CanisterURL)
	setString(&c.ExternalAPIKey, f.AI.APIKey)
	setString(&c.ExternalAPIURL, f.AI.APIURL)
	setString(&c.ExternalAPIModel, f.AI.Model)
	setInt(&c.AITimeoutSeconds, f.AI.TimeoutSeconds)
	setInt(&c.AIMaxRetries, f.AI.MaxRetries)
	setBool(&c.FallbackEnabled, f.AI.FallbackEnabled)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
