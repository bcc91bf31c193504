package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/futig/mock-interview/internal/entity"
	pkgRetry "github.com/futig/mock-interview/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration. PORT wins over SERVER_ADDR when both are set.
	ServerAddr string `env:"SERVER_ADDR"`
	Port       string `env:"PORT" envDefault:"3001"`

	// Completion capability
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"GEMINI_"`
	LLMProxyCfg     LLMProxyConfig     `envPrefix:"LLM_PROXY_"`

	// Speech-to-text
	TranscriptionMode entity.TranscriptionMode `env:"TRANSCRIPTION_MODE" envDefault:"client"`
	ASRConnectorCfg   ASRConnectorConfig       `envPrefix:"ASR_"`

	// Interview sessions
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Requests per minute and client on model-backed routes, 0 disables
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	APIKey      string  `env:"API_KEY"`
	Model       string  `env:"MODEL" envDefault:"gemini-1.5-pro"`
	Temperature float32 `env:"TEMPERATURE" envDefault:"0"`
}

// LLMProxyConfig points at another instance of this service whose
// /api/gemini-proxy route is used as the completion capability.
type LLMProxyConfig struct {
	HTTPClientConfig
	ProxyEndpoint string `env:"ENDPOINT" envDefault:"/api/gemini-proxy"`
}

func (c LLMProxyConfig) Enabled() bool {
	return c.Url != ""
}

type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT" envDefault:"/transcribe"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"30s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	TLSHandshakeTimeout   time.Duration `env:"TLS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	MaxIdleConns          int           `env:"MAX_IDLE_CONNS" envDefault:"100"`
	MaxIdleConnsPerHost   int           `env:"MAX_IDLE_CONNS_PER_HOST" envDefault:"10"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

type SessionConfig struct {
	TTL               time.Duration `env:"TTL" envDefault:"2h"`
	CleanupInterval   time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	EvaluationTimeout time.Duration `env:"EVALUATION_TIMEOUT" envDefault:"2m"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxAudioFileSize int64 `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`     // 32 MiB
}

// ListenAddr is the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	if c.Port != "" {
		return ":" + strings.TrimPrefix(c.Port, ":")
	}
	return c.ServerAddr
}

func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	return parse(environment)
}

func parse(environment string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.ListenAddr() == "" {
		errors = append(errors, "either PORT or SERVER_ADDR must be set")
	}

	if err := cfg.TranscriptionMode.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("TRANSCRIPTION_MODE must be one of client, asr, off: %v", err))
	}

	if cfg.TranscriptionMode == entity.TranscriptionModeASR && !cfg.EnableMocks && cfg.ASRConnectorCfg.Url == "" {
		errors = append(errors, "ASR_SERVICE_URL is required when TRANSCRIPTION_MODE=asr")
	}

	if cfg.LLMConnectorCfg.Model == "" {
		errors = append(errors, "GEMINI_MODEL must not be empty")
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("GEMINI_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMConnectorCfg.Temperature))
	}

	if cfg.SessionCfg.TTL <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be positive, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.EvaluationTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_EVALUATION_TIMEOUT must be positive, got %s", cfg.SessionCfg.EvaluationTimeout))
	}

	if cfg.FileUploadCfg.MaxAudioFileSize <= 0 || cfg.FileUploadCfg.MaxAudioFileSize > cfg.FileUploadCfg.MaxUploadSize {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_MAX_AUDIO_FILE_SIZE must be between 1 and FILE_UPLOAD_MAX_UPLOAD_SIZE(%d), got %d",
			cfg.FileUploadCfg.MaxUploadSize, cfg.FileUploadCfg.MaxAudioFileSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
