package config

import (
	"testing"
	"time"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := parse("test")
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-pro", cfg.LLMConnectorCfg.Model)
	assert.Equal(t, entity.TranscriptionModeClient, cfg.TranscriptionMode)
	assert.Equal(t, 2*time.Hour, cfg.SessionCfg.TTL)
	assert.False(t, cfg.LLMProxyCfg.Enabled())
	assert.Equal(t, 10*time.Second, cfg.ASRConnectorCfg.TLSHandshakeTimeout)
	assert.Equal(t, 100, cfg.ASRConnectorCfg.MaxIdleConns)
	assert.Equal(t, 10, cfg.LLMProxyCfg.MaxIdleConnsPerHost)
	assert.Equal(t, "test", cfg.Environment)
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"port only", Config{Port: "8080"}, ":8080"},
		{"port wins", Config{Port: "8080", ServerAddr: "127.0.0.1:9000"}, ":8080"},
		{"addr only", Config{ServerAddr: "127.0.0.1:9000"}, "127.0.0.1:9000"},
		{"port with colon", Config{Port: ":7000"}, ":7000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ListenAddr())
		})
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-flash")
	t.Setenv("LLM_PROXY_SERVICE_URL", "http://upstream:3001")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := parse("test")
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.ListenAddr())
	assert.Equal(t, "gemini-1.5-flash", cfg.LLMConnectorCfg.Model)
	assert.True(t, cfg.LLMProxyCfg.Enabled())
	assert.Equal(t, "/api/gemini-proxy", cfg.LLMProxyCfg.ProxyEndpoint)
	assert.Equal(t, 30*time.Minute, cfg.SessionCfg.TTL)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown transcription mode": {"TRANSCRIPTION_MODE": "telepathy"},
		"asr without url":            {"TRANSCRIPTION_MODE": "asr", "ASR_SERVICE_URL": "", "ENABLE_MOCKS": "false"},
		"zero ttl":                   {"SESSION_TTL": "0s"},
		"temperature out of range":   {"GEMINI_TEMPERATURE": "3"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := parse("test")
			assert.Error(t, err)
		})
	}
}

func TestParse_ASRWithMocks(t *testing.T) {
	t.Setenv("TRANSCRIPTION_MODE", "asr")
	t.Setenv("ASR_SERVICE_URL", "")
	t.Setenv("ENABLE_MOCKS", "true")

	cfg, err := parse("test")
	require.NoError(t, err)
	assert.Equal(t, entity.TranscriptionModeASR, cfg.TranscriptionMode)
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
