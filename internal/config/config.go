// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all engine and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
	"time"
)

// =============================================================================
// ENGINE CONFIGURATION
// =============================================================================

// EngineConfig holds the combat simulation settings.
type EngineConfig struct {
	TickRate           int           // Simulation ticks per second
	BaseReactionWindow time.Duration // Unscaled threat window
	RespawnDelay       time.Duration // Dead actors come back after this long
	CombatExitDelay    time.Duration // Idle time before the combat flag drops
}

// DefaultEngine returns the default engine configuration.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		TickRate:           30,
		BaseReactionWindow: 3 * time.Second,
		RespawnDelay:       5 * time.Second,
		CombatExitDelay:    5 * time.Second,
	}
}

// EngineFromEnv returns engine configuration with environment variable
// overrides. Environment variables take precedence over defaults.
func EngineFromEnv() EngineConfig {
	cfg := DefaultEngine()

	if t := getEnvInt("TICK_RATE", 0); t > 0 {
		cfg.TickRate = t
	}
	if w := getEnvInt("BASE_REACTION_WINDOW_MS", 0); w > 0 {
		cfg.BaseReactionWindow = time.Duration(w) * time.Millisecond
	}
	if r := getEnvInt("RESPAWN_DELAY_MS", 0); r > 0 {
		cfg.RespawnDelay = time.Duration(r) * time.Millisecond
	}
	if c := getEnvInt("COMBAT_EXIT_DELAY_MS", 0); c > 0 {
		cfg.CombatExitDelay = time.Duration(c) * time.Millisecond
	}

	return cfg
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// ResourceLimits controls DoS protection caps. Field layout matches the
// engine's limits type so it converts directly.
type ResourceLimits struct {
	MaxTotalActors int // Hard cap on total spawned actors (logic)
	MaxActors      int // Hard cap on actors included per snapshot
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxTotalActors: 10_000,
		MaxActors:      200,
	}
}

// LimitsFromEnv returns resource limits with environment variable overrides.
func LimitsFromEnv() ResourceLimits {
	cfg := DefaultLimits()

	if m := getEnvInt("MAX_TOTAL_ACTORS", 0); m > 0 {
		cfg.MaxTotalActors = m
	}
	if m := getEnvInt("MAX_SNAPSHOT_ACTORS", 0); m > 0 {
		cfg.MaxActors = m
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	EventLogPath string

	// SnapshotSocket enables the local observer feed when non-empty.
	SnapshotSocket string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         3000,
		EventLogPath: "events.jsonl",
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if path := os.Getenv("EVENT_LOG_PATH"); path != "" {
		cfg.EventLogPath = path
	}
	if sock := os.Getenv("SNAPSHOT_SOCKET"); sock != "" {
		cfg.SnapshotSocket = sock
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Engine EngineConfig
	Server ServerConfig
	Limits ResourceLimits
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Engine: EngineFromEnv(),
		Server: ServerFromEnv(),
		Limits: LimitsFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
