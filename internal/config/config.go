package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Data    DataConfig    `mapstructure:"data"`
	Ollama  OllamaConfig  `mapstructure:"ollama"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataConfig holds event-log data source configuration
type DataConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// OllamaConfig holds configuration for the optional local model.
// An empty URL means the model explainer is disabled and the
// rule-based explainer handles every request.
type OllamaConfig struct {
	URL            string `mapstructure:"url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout returns the request timeout for the model explainer
func (o OllamaConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("ollama.model", "llama3.2")
	v.SetDefault("ollama.timeout_seconds", 60)

	// Read from environment variables
	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for backward compatibility
	v.BindEnv("server.port", "PORT")
	v.BindEnv("data.csv_path", "CSV_PATH")
	v.BindEnv("ollama.url", "OLLAMA_URL")
	v.BindEnv("ollama.model", "OLLAMA_MODEL")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.Data.CSVPath == "" {
		return fmt.Errorf("CSV_PATH is required")
	}
	if c.Ollama.TimeoutSeconds <= 0 {
		return fmt.Errorf("ollama.timeout_seconds must be positive")
	}
	return nil
}
