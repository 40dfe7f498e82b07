package config

import (
	"github.com/charmbracelet/log"
)

// GetEnvLogLevel returns the log level named by the environment variable
// (debug, info, warn, error, fatal), or fallback if it is unset or unknown.
func GetEnvLogLevel(key string, fallback log.Level) log.Level {
	value := GetEnv(key, "")
	if value == "" {
		return fallback
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		return fallback
	}
	return level
}
