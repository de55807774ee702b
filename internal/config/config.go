package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servidor de chat.
type Config struct {
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"5000"`
	LLMAPIKey         string        `env:"LLM_API_KEY,required"`
	LLMBaseURL        string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTemperature    float64       `env:"LLM_TEMPERATURE" envDefault:"0.5"`
	LLMTopP           float64       `env:"LLM_TOP_P" envDefault:"0.5"`
	LLMMaxTokens      int           `env:"LLM_MAX_TOKENS" envDefault:"1500"`
	SystemPrompt      string        `env:"MAIN_SYSTEM_PROMPT" envDefault:"You are a helpful assistant."`
	MemSize           int           `env:"MEM_SIZE" envDefault:"200"`
	ContextTokenLimit int           `env:"CONTEXT_TOKEN_LIMIT" envDefault:"128000"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	ChatRateLimit     int           `env:"CHAT_RATE_LIMIT" envDefault:"30"`
	ChatRateWindow    time.Duration `env:"CHAT_RATE_WINDOW" envDefault:"1m"`
	CORSAllowOrigin   string        `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
}

// ClientConfig agrupa lo que necesita el widget para hablar con el servidor.
type ClientConfig struct {
	Endpoint       string `env:"CHAT_ENDPOINT" envDefault:"http://localhost:5000/chat"`
	Legacy         bool   `env:"CHAT_LEGACY" envDefault:"false"`
	LegacyEndpoint string `env:"CHAT_LEGACY_ENDPOINT" envDefault:"http://localhost:5000/chat/legacy"`
	MemSize        int    `env:"CHAT_MEM_SIZE" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClientConfig carga la configuración del cliente desde variables de entorno.
func LoadClientConfig() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
