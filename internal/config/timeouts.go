package config

import "time"

// TimeoutConfig holds timeout settings for request handling and shutdown.
// These can be configured via CLI flags to tune behavior for different environments.
type TimeoutConfig struct {
	// Request is the per-request deadline applied by the router.
	// A storage round trip that outlives it releases its slot. Default: 60s
	Request time.Duration

	// Shutdown is how long graceful shutdown waits for in-flight
	// requests to drain. Default: 30s
	Shutdown time.Duration
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		Request:  60 * time.Second,
		Shutdown: 30 * time.Second,
	}
}

// global instance that can be set at startup
var globalTimeouts = DefaultTimeoutConfig()

// SetGlobalTimeouts sets the global timeout configuration
func SetGlobalTimeouts(cfg *TimeoutConfig) {
	globalTimeouts = cfg
}

// GetTimeouts returns the global timeout configuration
func GetTimeouts() *TimeoutConfig {
	return globalTimeouts
}
