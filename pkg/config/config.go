// Package config reads the relay node's environment-variable
// configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the bridge relay node.
type Config struct {
	// Data directory
	DataDir        string // base directory for the storage engine and key material
	Ed25519KeyPath string // path to this node's authority key file

	// ZCHAIN watcher
	ZChainLightClientURL string
	ZChainUFVK           string // hex-encoded unified full viewing key
	ZChainPollInterval   time.Duration

	// SCHAIN watcher
	SChainRPCURL           string
	SChainBridgeContract   string // hex contract address emitting Burn logs

	// Bundler
	BundleWindow time.Duration

	// Authoring loop
	AuthorInterval time.Duration

	// FROST dealer group
	FrostMax       uint16
	FrostThreshold uint16

	// Server
	ListenAddr string

	// Chain identification
	NetworkName string // "mainnet" or "testnet"; only reported in the startup log

	// Timeouts
	OutboundTimeout time.Duration
}

// Load reads configuration from environment variables, applying the
// dev-friendly defaults a single-validator deployment needs.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:        getEnv("RELAY_DATA_DIR", "./data"),
		Ed25519KeyPath: getEnv("RELAY_ED25519_KEY_PATH", ""),

		ZChainLightClientURL: getEnv("ZCHAIN_LIGHT_CLIENT_URL", ""),
		ZChainUFVK:           getEnv("ZCHAIN_UFVK", ""),
		ZChainPollInterval:   getEnvDuration("ZCHAIN_POLL_INTERVAL", 30*time.Second),

		SChainRPCURL:         getEnv("SCHAIN_RPC_URL", ""),
		SChainBridgeContract: getEnv("SCHAIN_BRIDGE_CONTRACT", ""),

		BundleWindow: getEnvDuration("BUNDLE_WINDOW", 3*time.Second),

		AuthorInterval: getEnvDuration("AUTHOR_INTERVAL", 3*time.Second),

		FrostMax:       uint16(getEnvInt("FROST_MAX", 1)),
		FrostThreshold: uint16(getEnvInt("FROST_THRESHOLD", 1)),

		ListenAddr: getEnv("RELAY_LISTEN_ADDR", "0.0.0.0:8080"),

		NetworkName: getEnv("RELAY_NETWORK", "testnet"),

		OutboundTimeout: getEnvDuration("OUTBOUND_TIMEOUT", 30*time.Second),
	}
	return cfg, nil
}

// Validate enforces the minimum configuration a production deployment
// needs. Development nodes should use ValidateForDevelopment instead.
func (c *Config) Validate() error {
	var errors []string

	if c.ZChainLightClientURL == "" {
		errors = append(errors, "ZCHAIN_LIGHT_CLIENT_URL is required")
	}
	if c.SChainRPCURL == "" {
		errors = append(errors, "SCHAIN_RPC_URL is required")
	}
	if c.SChainBridgeContract == "" {
		errors = append(errors, "SCHAIN_BRIDGE_CONTRACT is required")
	}
	if c.FrostThreshold == 0 || c.FrostThreshold > c.FrostMax {
		errors = append(errors, "FROST_THRESHOLD must be between 1 and FROST_MAX")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// ValidateForDevelopment performs relaxed validation suitable for the
// single-validator dev node: only the data directory matters, since
// watchers can be pointed at stub endpoints.
func (c *Config) ValidateForDevelopment() error {
	if c.DataDir == "" {
		return fmt.Errorf("development configuration validation failed:\n  - RELAY_DATA_DIR is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
