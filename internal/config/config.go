package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port                   string `yaml:"port"`
	TemplatePath           string `yaml:"template_path"`
	StaticDir              string `yaml:"static_dir"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// DefaultsConfig holds the values pre-filled in the calculator form
type DefaultsConfig struct {
	Spot         float64 `yaml:"spot"`
	Strike       float64 `yaml:"strike"`
	CallPrice    float64 `yaml:"call_price"`
	Rate         float64 `yaml:"rate"`
	DaysToExpiry int     `yaml:"days_to_expiry"`
}

// DisplayConfig controls how results are rendered
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	Title          string `yaml:"title"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Display  DisplayConfig  `yaml:"display"`
}

// fileConfig mirrors Config as read from YAML. Defaults use pointers so an
// explicit zero (rate: 0, days_to_expiry: 0) is told apart from a missing key.
type fileConfig struct {
	Server   ServerConfig  `yaml:"server"`
	Logging  LoggingConfig `yaml:"logging"`
	Defaults defaultsFile  `yaml:"defaults"`
	Display  DisplayConfig `yaml:"display"`
}

type defaultsFile struct {
	Spot         *float64 `yaml:"spot"`
	Strike       *float64 `yaml:"strike"`
	CallPrice    *float64 `yaml:"call_price"`
	Rate         *float64 `yaml:"rate"`
	DaysToExpiry *int     `yaml:"days_to_expiry"`
}

// ShutdownTimeout returns the graceful shutdown window
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   "8080",
			TemplatePath:           "web/templates/home.html",
			StaticDir:              "web/static/",
			ShutdownTimeoutSeconds: 5,
		},
		Logging: LoggingConfig{
			LogLevel: "info",
			LogFile:  "paritycalc.log",
		},
		Defaults: DefaultsConfig{
			Spot:         100.0,
			Strike:       100.0,
			CallPrice:    10.0,
			Rate:         0.05,
			DaysToExpiry: 365,
		},
		Display: DisplayConfig{
			CurrencySymbol: "₹",
			Title:          "Put-Call Parity: Fair Put Price Calculator",
		},
	}
}

// Load builds the configuration from defaults, then config.yaml (or the file
// named by PARITY_CONFIG), then environment variables.
func Load() *Config {
	cfg := Default()

	// Missing or broken YAML keeps the defaults
	if yamlCfg := loadYAMLConfig(getEnv("PARITY_CONFIG", "config.yaml")); yamlCfg != nil {
		mergeYAML(cfg, yamlCfg)
	}

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.TemplatePath = getEnv("TEMPLATE_PATH", cfg.Server.TemplatePath)
	cfg.Server.ShutdownTimeoutSeconds = getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", cfg.Server.ShutdownTimeoutSeconds)
	cfg.Logging.LogLevel = getEnv("LOG_LEVEL", cfg.Logging.LogLevel)
	cfg.Logging.LogFile = getEnv("LOG_FILE", cfg.Logging.LogFile)
	cfg.Defaults.Rate = getEnvFloat("DEFAULT_RATE", cfg.Defaults.Rate)
	cfg.Defaults.DaysToExpiry = getEnvInt("DEFAULT_DAYS_TO_EXPIRY", cfg.Defaults.DaysToExpiry)
	cfg.Display.CurrencySymbol = getEnv("CURRENCY_SYMBOL", cfg.Display.CurrencySymbol)

	return cfg
}

func loadYAMLConfig(path string) *fileConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var yamlCfg fileConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil
	}

	return &yamlCfg
}

// mergeYAML copies every set YAML value over the defaults. Out-of-range form
// defaults are ignored.
func mergeYAML(cfg *Config, yamlCfg *fileConfig) {
	if yamlCfg.Server.Port != "" {
		cfg.Server.Port = yamlCfg.Server.Port
	}
	if yamlCfg.Server.TemplatePath != "" {
		cfg.Server.TemplatePath = yamlCfg.Server.TemplatePath
	}
	if yamlCfg.Server.StaticDir != "" {
		cfg.Server.StaticDir = yamlCfg.Server.StaticDir
	}
	if yamlCfg.Server.ShutdownTimeoutSeconds > 0 {
		cfg.Server.ShutdownTimeoutSeconds = yamlCfg.Server.ShutdownTimeoutSeconds
	}

	if yamlCfg.Logging.LogLevel != "" {
		cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
	}
	if yamlCfg.Logging.LogFile != "" {
		cfg.Logging.LogFile = yamlCfg.Logging.LogFile
	}

	d := yamlCfg.Defaults
	if d.Spot != nil && *d.Spot >= 0 {
		cfg.Defaults.Spot = *d.Spot
	}
	if d.Strike != nil && *d.Strike >= 0 {
		cfg.Defaults.Strike = *d.Strike
	}
	if d.CallPrice != nil && *d.CallPrice >= 0 {
		cfg.Defaults.CallPrice = *d.CallPrice
	}
	if d.Rate != nil && *d.Rate >= 0 && *d.Rate <= 1 {
		cfg.Defaults.Rate = *d.Rate
	}
	if d.DaysToExpiry != nil && *d.DaysToExpiry >= 0 {
		cfg.Defaults.DaysToExpiry = *d.DaysToExpiry
	}

	if yamlCfg.Display.CurrencySymbol != "" {
		cfg.Display.CurrencySymbol = yamlCfg.Display.CurrencySymbol
	}
	if yamlCfg.Display.Title != "" {
		cfg.Display.Title = yamlCfg.Display.Title
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
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
