package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. Mapstructure tags map both
// config-file keys and environment variables. The value is built once at
// startup and treated as immutable afterwards; components receive it (or
// slices of it) through their constructors and never read the environment
// themselves.
type Config struct {
	// Server
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g. ":8000"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" selects gin release mode
	LogLevel      string `mapstructure:"LOG_LEVEL"`      // debug|info|warn|error

	// Local provider (Ollama)
	OllamaHost        string `mapstructure:"OLLAMA_HOST"`
	OllamaChatModel   string `mapstructure:"OLLAMA_CHAT_MODEL"`
	OllamaCodeModel   string `mapstructure:"OLLAMA_CODE_MODEL"`
	OllamaRouterModel string `mapstructure:"OLLAMA_ROUTER_MODEL"`

	// Cloud provider (OpenRouter)
	OpenRouterBaseURL     string `mapstructure:"OPENROUTER_BASE_URL"`
	OpenRouterAPIKey      string `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterChatModel   string `mapstructure:"OPENROUTER_CHAT_MODEL"`
	OpenRouterCodeModel   string `mapstructure:"OPENROUTER_CODE_MODEL"`
	OpenRouterRouterModel string `mapstructure:"OPENROUTER_ROUTER_MODEL"`

	// Fallback policy
	FallbackToCloud bool `mapstructure:"FALLBACK_TO_CLOUD"` // include the cloud provider in the chain
	PreferCloud     bool `mapstructure:"PREFER_CLOUD"`      // cloud-first ordering for every chain

	// Per-call timeouts, seconds
	LocalTimeoutSeconds int `mapstructure:"LOCAL_TIMEOUT_SECONDS"`
	CloudTimeoutSeconds int `mapstructure:"CLOUD_TIMEOUT_SECONDS"`

	// Project store
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

func (c Config) LocalTimeout() time.Duration {
	return time.Duration(c.LocalTimeoutSeconds) * time.Second
}

func (c Config) CloudTimeout() time.Duration {
	return time.Duration(c.CloudTimeoutSeconds) * time.Second
}

// LoadConfig reads configuration from an optional config.yaml plus the
// environment. Defaults mirror a local development setup against a local
// Ollama and an unconfigured cloud key.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("SERVER_ADDRESS", ":8000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("OLLAMA_CHAT_MODEL", "mistral:7b")
	viper.SetDefault("OLLAMA_CODE_MODEL", "deepseek-coder:6.7b")
	viper.SetDefault("OLLAMA_ROUTER_MODEL", "llama3.2:3b")

	viper.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	viper.SetDefault("OPENROUTER_API_KEY", "")
	viper.SetDefault("OPENROUTER_CHAT_MODEL", "mistralai/mistral-7b-instruct")
	viper.SetDefault("OPENROUTER_CODE_MODEL", "deepseek/deepseek-coder-33b-instruct")
	viper.SetDefault("OPENROUTER_ROUTER_MODEL", "google/gemini-2.0-flash-exp:free")

	viper.SetDefault("FALLBACK_TO_CLOUD", true)
	viper.SetDefault("PREFER_CLOUD", false)

	viper.SetDefault("LOCAL_TIMEOUT_SECONDS", 120)
	viper.SetDefault("CLOUD_TIMEOUT_SECONDS", 180)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine; environment variables and defaults apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
