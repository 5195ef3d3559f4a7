// Package config provides shared configuration: environment lookups and
// the gameplay tuning every world is built from.
package config

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the environment variable parsed as an int64,
// or fallback if it is unset or malformed.
func GetEnvInt(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvDuration returns the environment variable parsed with time.ParseDuration,
// or fallback if it is unset or malformed.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// TuningFromEnv loads the tuning file named by the environment variable key.
// It returns Default when the variable is unset or empty.
func TuningFromEnv(key string) (Tuning, error) {
	path := GetEnv(key, "")
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
