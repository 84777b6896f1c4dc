package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process-level settings. Gameplay tuning lives in ArenaConfig.
type Config struct {
	Addr         string
	DefaultMode  GameMode
	LogLevel     string
	DBPath       string // empty disables telemetry
	TicketSecret string // empty means join tickets are not required
	MaxConns     int
	Seed         int64 // 0 seeds from the clock
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		DefaultMode: ModeTank,
		LogLevel:    "info",
		MaxConns:    maxTotalConns,
	}
}

// LoadConfig reads an optional .env file, then the environment, then flags.
// Later sources win.
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("arena", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Addr, "HTTP listen address")
	mode := fs.String("mode", cfg.DefaultMode.String(), "default arena for /ws without ?mode (tank|plane)")
	level := fs.String("log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	db := fs.String("db", cfg.DBPath, "sqlite telemetry database path (empty disables)")
	maxConns := fs.Int("max-conns", cfg.MaxConns, "maximum concurrent connections")
	seed := fs.Int64("seed", cfg.Seed, "random seed (0 = time based)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	m, err := ParseMode(*mode)
	if err != nil {
		return Config{}, fmt.Errorf("flag -mode: %w", err)
	}
	cfg.Addr = *addr
	cfg.DefaultMode = m
	cfg.LogLevel = *level
	cfg.DBPath = *db
	cfg.MaxConns = *maxConns
	cfg.Seed = *seed
	return cfg, nil
}

// applyEnv overlays ARENA_* variables
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("ARENA_ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv("ARENA_MODE"); v != "" {
		m, err := ParseMode(v)
		if err != nil {
			return fmt.Errorf("ARENA_MODE: %w", err)
		}
		c.DefaultMode = m
	}
	if v := getenv("ARENA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("ARENA_DB"); v != "" {
		c.DBPath = v
	}
	if v := getenv("ARENA_TICKET_SECRET"); v != "" {
		c.TicketSecret = v
	}
	if v := getenv("ARENA_MAX_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("ARENA_MAX_CONNS: invalid value %q", v)
		}
		c.MaxConns = n
	}
	if v := getenv("ARENA_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ARENA_SEED: %w", err)
		}
		c.Seed = n
	}
	return nil
}

// seed returns the configured seed or a time-based one
func (c Config) seed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
