package validator

import "time"

// Config is a configuration for the card validation service
type Config struct {
	HTTPAddr string
	// ExpiryTZ is an IANA timezone name used to decide when a card expires (e.g. "America/Chicago").
	ExpiryTZ string
	// FingerprintKey keys the HMAC that stands in for card numbers in logs.
	FingerprintKey string
	// ShutdownTimeout bounds how long Shutdown waits for in-flight requests.
	ShutdownTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:        "localhost:9090",
		ExpiryTZ:        "UTC",
		FingerprintKey:  "dev-fingerprint-key",
		ShutdownTimeout: 5 * time.Second,
	}
}
