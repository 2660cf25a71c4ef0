// Package config loads hospitalcore settings from YAML with environment
// variable expansion, falling back to environment defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the domain store.
type Config struct {
	Attendance AttendanceConfig `yaml:"attendance"`
	Activity   ActivityConfig   `yaml:"activity"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AttendanceConfig holds attendance tracking configuration.
type AttendanceConfig struct {
	// WorkdayStart is the HH:MM lateness threshold for check-ins.
	WorkdayStart string `yaml:"workday_start"`
}

// StartClock parses WorkdayStart into hour and minute.
func (a AttendanceConfig) StartClock() (int, int, error) {
	t, err := time.Parse("15:04", a.WorkdayStart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid workday_start %q: %w", a.WorkdayStart, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ActivityConfig holds audit-trail configuration.
type ActivityConfig struct {
	// MaxEntries bounds the activity log; oldest entries are truncated.
	MaxEntries int `yaml:"max_entries"`
}

// LoggingConfig holds structured logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load loads configuration from a YAML file, expanding environment
// variables in the raw document before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := LoadFromEnv()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() *Config {
	return &Config{
		Attendance: AttendanceConfig{
			WorkdayStart: getEnv("HOSPITALCORE_WORKDAY_START", "08:00"),
		},
		Activity: ActivityConfig{
			MaxEntries: getEnvInt("HOSPITALCORE_ACTIVITY_MAX", 50),
		},
		Logging: LoggingConfig{
			Level:       getEnv("HOSPITALCORE_LOG_LEVEL", "info"),
			Development: getEnvBool("HOSPITALCORE_LOG_DEV", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
