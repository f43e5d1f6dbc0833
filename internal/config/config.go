package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the huffd settings. Every field has an environment variable.
type Config struct {
	Addr     string // HUFFD_ADDR
	MaxBody  int64  // HUFFD_MAX_BODY, bytes accepted per request
	LogLevel string // HUFFD_LOG_LEVEL
	Release  bool   // HUFFD_RELEASE, gin release mode
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		MaxBody:  64 << 20,
		LogLevel: "info",
	}
}

// Load reads the configuration from the environment on top of Default.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if v, ok := lookup("HUFFD_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("HUFFD_MAX_BODY"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("HUFFD_MAX_BODY: want a positive byte count, got %q", v)
		}
		cfg.MaxBody = n
	}
	if v, ok := lookup("HUFFD_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup("HUFFD_RELEASE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("HUFFD_RELEASE: %w", err)
		}
		cfg.Release = b
	}
	return cfg, nil
}
