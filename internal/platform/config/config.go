// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Directory) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the administration server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// License store (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) — login throttling
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret signs the session_token credential (HS256).
	SessionSecret string `env:"SESSION_SECRET,required"`

	// Identity Provider (external user directory).
	//
	// When DirectoryBaseURL is empty in development mode, the server falls
	// back to the in-memory directory. Password verification without an API
	// key fails closed.
	DirectoryBaseURL string `env:"DIRECTORY_BASE_URL"`
	DirectoryAPIKey  string `env:"DIRECTORY_API_KEY"`

	// Super-admin realm — a single fixed credential pair validated in-process.
	// The password is supplied as a bcrypt hash, never in plain text.
	SuperAdminUser     string `env:"SUPER_ADMIN_USER,required"`
	SuperAdminPassHash string `env:"SUPER_ADMIN_PASS_HASH,required"`

	// Codes-admin realm — the separate license-management credential pair.
	CodesAdminUser     string `env:"CODES_ADMIN_USER,required"`
	CodesAdminPassHash string `env:"CODES_ADMIN_PASS_HASH,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
