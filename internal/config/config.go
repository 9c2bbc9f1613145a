package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration shared by both binaries.
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Client   ClientConfig
	History  HistoryConfig
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds the bundled backend's listen address and CORS origins.
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds the upstream model configuration used by the server.
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// ClientConfig holds the chat client's view of the world: where the
// inference endpoint lives.
type ClientConfig struct {
	ServerURL string `mapstructure:"server_url"`
}

// HistoryConfig holds the chat log database location.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads config.yaml from the working directory (or the file named by
// CONFIG_PATH) on top of defaults. A missing default config file is fine;
// every knob has a usable default.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("llm.base_url", "http://localhost:11434/v1")
	v.SetDefault("llm.api_key", "ollama")
	v.SetDefault("llm.model", "qwen2.5")
	v.SetDefault("client.server_url", "http://localhost:8000")
	v.SetDefault("history.path", "chatlite.db")
	v.SetDefault("log_level", "info")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
