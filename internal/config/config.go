package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/redis/go-redis/v9"

	"github.com/aescanero/dago-node-ftp/internal/eval/template"
	"github.com/aescanero/dago-node-ftp/internal/ftpserver"
)

// Config holds all configuration for the FTP node
type Config struct {
	// Node configuration
	NodeID string `env:"NODE_ID" envDefault:"ftp-node-1"`

	// FTP server configuration
	FTPAddress         string        `env:"FTP_ADDRESS" envDefault:"0.0.0.0"`
	FTPPort            int           `env:"FTP_PORT" envDefault:"2121"`
	FTPUsername        string        `env:"FTP_USERNAME"`
	FTPPassword        string        `env:"FTP_PASSWORD"`
	FTPHomeDir         string        `env:"FTP_HOME_DIR"`
	FTPAutostart       bool          `env:"FTP_AUTOSTART" envDefault:"true"`
	FTPMode            string        `env:"FTP_MODE" envDefault:"passive"`
	FTPPassivePorts    string        `env:"FTP_PASSIVE_PORTS" envDefault:""`
	FTPPublicIP        string        `env:"FTP_PUBLIC_IP" envDefault:""`
	FTPServerName      string        `env:"FTP_SERVER_NAME" envDefault:"dago ftp node"`
	FTPWelcomeTemplate string        `env:"FTP_WELCOME_TEMPLATE" envDefault:"Welcome to {{name}}"`
	FTPStopTimeout     time.Duration `env:"FTP_STOP_TIMEOUT" envDefault:"5s"`

	// Redis configuration, the control plane is disabled when REDIS_ADDR is empty
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	ControlStream string        `env:"CONTROL_STREAM" envDefault:"ftp.control"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"ftp-nodes"`
	EventStream   string        `env:"EVENT_STREAM" envDefault:"ftp.events"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`

	// Admission rules, CEL conditions separated by ";". Empty admits every request.
	AdmissionRules []string `env:"ADMISSION_RULES" envSeparator:";"`

	// Health check configuration
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"3s"`
	HealthPort   int           `env:"HEALTH_PORT" envDefault:"8082"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration. Missing FTP parameters are not an
// error here, the FTP service reports them when it is asked to start.
func (c *Config) Validate() error {
	if c.NodeID == "" {
		return fmt.Errorf("NODE_ID is required")
	}

	mode, err := ftpserver.ParseMode(c.FTPMode)
	if err != nil {
		return fmt.Errorf("FTP_MODE: %w", err)
	}

	if mode == ftpserver.Passive && c.FTPPassivePorts != "" {
		if err := validatePortRange(c.FTPPassivePorts); err != nil {
			return fmt.Errorf("FTP_PASSIVE_PORTS: %w", err)
		}
	}

	if c.FTPWelcomeTemplate != "" {
		if err := template.NewEngine().ValidateTemplate(c.FTPWelcomeTemplate); err != nil {
			return fmt.Errorf("FTP_WELCOME_TEMPLATE: %w", err)
		}
	}

	if c.FTPStopTimeout <= 0 {
		return fmt.Errorf("FTP_STOP_TIMEOUT must be positive")
	}

	if c.RedisAddr != "" {
		if c.ControlStream == "" {
			return fmt.Errorf("CONTROL_STREAM is required when REDIS_ADDR is set")
		}

		if c.ConsumerGroup == "" {
			return fmt.Errorf("CONSUMER_GROUP is required when REDIS_ADDR is set")
		}

		if c.EventStream == "" {
			return fmt.Errorf("EVENT_STREAM is required when REDIS_ADDR is set")
		}

		if c.BlockTime <= 0 {
			return fmt.Errorf("BLOCK_TIME must be positive")
		}
	}

	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("PROBE_TIMEOUT must be positive")
	}

	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// validatePortRange accepts "low-high" with 1 <= low <= high <= 65535.
func validatePortRange(s string) error {
	lowStr, highStr, ok := strings.Cut(s, "-")
	if !ok {
		return fmt.Errorf("%q is not a low-high range", s)
	}
	low, err := strconv.Atoi(strings.TrimSpace(lowStr))
	if err != nil {
		return fmt.Errorf("invalid low port in %q: %w", s, err)
	}
	high, err := strconv.Atoi(strings.TrimSpace(highStr))
	if err != nil {
		return fmt.Errorf("invalid high port in %q: %w", s, err)
	}
	if low < 1 || high > 65535 || low > high {
		return fmt.Errorf("%q must satisfy 1 <= low <= high <= 65535", s)
	}
	return nil
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// ControlEnabled reports whether the Redis control plane is configured.
func (c *Config) ControlEnabled() bool {
	return c.RedisAddr != ""
}

// RedisOptions returns Redis client options
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// FTPParams returns the startup parameters of the FTP server.
func (c *Config) FTPParams() ftpserver.Params {
	return ftpserver.Params{
		Address:  c.FTPAddress,
		Port:     c.FTPPort,
		Username: c.FTPUsername,
		Password: c.FTPPassword,
		HomeDir:  c.FTPHomeDir,
	}
}

// ServiceOptions returns the options shared by every FTP server instance.
func (c *Config) ServiceOptions() ftpserver.Options {
	// Validate already rejected unknown modes.
	mode, _ := ftpserver.ParseMode(c.FTPMode)
	return ftpserver.Options{
		NodeID:          c.NodeID,
		ServerName:      c.FTPServerName,
		Mode:            mode,
		PassivePorts:    c.FTPPassivePorts,
		PublicIP:        c.FTPPublicIP,
		WelcomeTemplate: c.FTPWelcomeTemplate,
		StopTimeout:     c.FTPStopTimeout,
		ProbeTimeout:    c.ProbeTimeout,
	}
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{NodeID=%s, FTP=%s, FTPMode=%s, Autostart=%v, RedisAddr=%s, RedisDB=%d, "+
			"ControlStream=%s, ConsumerGroup=%s, EventStream=%s, AdmissionRules=%d, HealthPort=%d, LogLevel=%s}",
		c.NodeID,
		c.FTPParams(),
		c.FTPMode,
		c.FTPAutostart,
		c.RedisAddr,
		c.RedisDB,
		c.ControlStream,
		c.ConsumerGroup,
		c.EventStream,
		len(c.AdmissionRules),
		c.HealthPort,
		c.LogLevel,
	)
}
