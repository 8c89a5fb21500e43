package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddress    string        `envconfig:"SERVER_ADDRESS"`
	BaseURL          string        `envconfig:"BASE_URL"`
	GRPCAddress      string        `envconfig:"GRPC_ADDRESS"`
	LogLevel         string        `envconfig:"LOG_LEVEL"`
	DefaultValidity  int64         `envconfig:"DEFAULT_VALIDITY"`
	ShortcodeLength  int           `envconfig:"SHORTCODE_LENGTH"`
	MaxAllocAttempts int           `envconfig:"MAX_ALLOC_ATTEMPTS"`
	SweepInterval    time.Duration `envconfig:"SWEEP_INTERVAL"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
	ConfigPath       string        `envconfig:"CONFIG"`
}

// fileConfig mirrors Config for the JSON file. Durations are strings such as "30s".
type fileConfig struct {
	ServerAddress    *string `json:"server_address"`
	BaseURL          *string `json:"base_url"`
	GRPCAddress      *string `json:"grpc_address"`
	LogLevel         *string `json:"log_level"`
	DefaultValidity  *int64  `json:"default_validity"`
	ShortcodeLength  *int    `json:"shortcode_length"`
	MaxAllocAttempts *int    `json:"max_alloc_attempts"`
	SweepInterval    *string `json:"sweep_interval"`
	ShutdownTimeout  *string `json:"shutdown_timeout"`
}

func Default() *Config {
	return &Config{
		ServerAddress:    ":8080",
		BaseURL:          "",
		GRPCAddress:      "",
		LogLevel:         "info",
		DefaultValidity:  86400,
		ShortcodeLength:  6,
		MaxAllocAttempts: 100,
		SweepInterval:    0,
		ShutdownTimeout:  10 * time.Second,
	}
}

// NewConfig reads the configuration from the command line, an optional JSON
// file and the environment. Later sources override earlier ones:
// defaults, file, flags, environment.
func NewConfig() (*Config, error) {
	cfg := Default()
	flags := *cfg

	flag.StringVar(&flags.ServerAddress, "a", flags.ServerAddress, "HTTP server address (e.g. localhost:8888)")
	flag.StringVar(&flags.BaseURL, "b", flags.BaseURL, "Base URL for short URLs (e.g. http://sho.rt); derived from the request when empty")
	flag.StringVar(&flags.GRPCAddress, "g", flags.GRPCAddress, "gRPC server address; disabled when empty")
	flag.StringVar(&flags.LogLevel, "l", flags.LogLevel, "Log level (debug, info, warn, error)")
	flag.Int64Var(&flags.DefaultValidity, "v", flags.DefaultValidity, "Default validity in seconds")
	flag.IntVar(&flags.ShortcodeLength, "n", flags.ShortcodeLength, "Length of generated shortcodes")
	flag.IntVar(&flags.MaxAllocAttempts, "r", flags.MaxAllocAttempts, "Maximum attempts to find a free shortcode")
	flag.DurationVar(&flags.SweepInterval, "s", flags.SweepInterval, "Interval for removing expired entries; disabled when 0")
	flag.DurationVar(&flags.ShutdownTimeout, "t", flags.ShutdownTimeout, "Graceful shutdown timeout")
	flag.StringVar(&flags.ConfigPath, "c", flags.ConfigPath, "Path to JSON config file")

	flag.Parse()

	configPath := flags.ConfigPath
	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		configPath = envConfig
	}

	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return nil, err
		}
		cfg.ConfigPath = configPath
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerAddress = flags.ServerAddress
		case "b":
			cfg.BaseURL = flags.BaseURL
		case "g":
			cfg.GRPCAddress = flags.GRPCAddress
		case "l":
			cfg.LogLevel = flags.LogLevel
		case "v":
			cfg.DefaultValidity = flags.DefaultValidity
		case "n":
			cfg.ShortcodeLength = flags.ShortcodeLength
		case "r":
			cfg.MaxAllocAttempts = flags.MaxAllocAttempts
		case "s":
			cfg.SweepInterval = flags.SweepInterval
		case "t":
			cfg.ShutdownTimeout = flags.ShutdownTimeout
		}
	})

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile applies the values present in the JSON file at path.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ServerAddress != nil {
		c.ServerAddress = *fc.ServerAddress
	}
	if fc.BaseURL != nil {
		c.BaseURL = *fc.BaseURL
	}
	if fc.GRPCAddress != nil {
		c.GRPCAddress = *fc.GRPCAddress
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.DefaultValidity != nil {
		c.DefaultValidity = *fc.DefaultValidity
	}
	if fc.ShortcodeLength != nil {
		c.ShortcodeLength = *fc.ShortcodeLength
	}
	if fc.MaxAllocAttempts != nil {
		c.MaxAllocAttempts = *fc.MaxAllocAttempts
	}
	if fc.SweepInterval != nil {
		d, err := time.ParseDuration(*fc.SweepInterval)
		if err != nil {
			return fmt.Errorf("invalid sweep_interval: %w", err)
		}
		c.SweepInterval = d
	}
	if fc.ShutdownTimeout != nil {
		d, err := time.ParseDuration(*fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout: %w", err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.ShortcodeLength <= 0 {
		errs = append(errs, fmt.Errorf("shortcode length must be positive, got %d", c.ShortcodeLength))
	}
	if c.MaxAllocAttempts <= 0 {
		errs = append(errs, fmt.Errorf("max allocation attempts must be positive, got %d", c.MaxAllocAttempts))
	}
	if c.SweepInterval < 0 {
		errs = append(errs, fmt.Errorf("sweep interval must not be negative, got %s", c.SweepInterval))
	}
	if c.GRPCAddress != "" && c.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required when the gRPC server is enabled"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}
