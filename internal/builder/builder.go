package builder

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/api"
	"github.com/futig/mock-interview/internal/api/middleware"
	proxyapi "github.com/futig/mock-interview/internal/api/proxy"
	sessionapi "github.com/futig/mock-interview/internal/api/session"
	"github.com/futig/mock-interview/internal/config"
	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/integration/asr"
	"github.com/futig/mock-interview/internal/integration/llm"
	"github.com/futig/mock-interview/internal/integration/llmproxy"
	engine "github.com/futig/mock-interview/internal/interview"
	"github.com/futig/mock-interview/internal/pkg/formatter"
	"github.com/futig/mock-interview/internal/pkg/validator"
	"github.com/futig/mock-interview/internal/usecase/interview"
	"github.com/futig/mock-interview/internal/usecase/proxy"
)

// core is everything both front-ends share.
type core struct {
	cfg        *config.Config
	logger     *zap.Logger
	validator  *validator.Validator
	formatters *formatter.Factory
	interview  *interview.InterviewUsecase
	proxy      *proxy.ProxyUsecase
	closers    []func() error
}

func (c *core) close() {
	c.interview.Close()
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			c.logger.Warn("failed to release resource", zap.Error(err))
		}
	}
}

func buildCore(environment string) (*core, error) {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("listen_addr", cfg.ListenAddr()),
	)

	c := &core{
		cfg:        cfg,
		logger:     logger,
		validator:  validator.New(cfg.FileUploadCfg),
		formatters: formatter.NewFactory(),
	}

	completer := c.setupCompleter()
	recognizer := c.setupRecognizer()
	logger.Info("Connectors initialized",
		zap.String("transcription_mode", string(recognizer.Mode())),
		zap.Bool("transcription_available", recognizer.Available()),
	)

	c.interview = interview.NewUsecase(completer, recognizer, c.validator, cfg.SessionCfg, logger)
	c.proxy = proxy.NewUsecase(completer)
	logger.Info("Use cases initialized")

	return c, nil
}

type completer interface {
	interview.Completer
	proxy.Completer
}

func (c *core) setupCompleter() completer {
	switch {
	case c.cfg.EnableMocks:
		c.logger.Info("Using mock completion connector")
		return llm.NewMockConnector(c.logger)
	case c.cfg.LLMProxyCfg.Enabled():
		c.logger.Info("Using remote completion proxy", zap.String("url", c.cfg.LLMProxyCfg.Url))
		return llmproxy.NewConnector(c.cfg.LLMProxyCfg, c.logger)
	default:
		if c.cfg.LLMConnectorCfg.APIKey == "" {
			c.logger.Warn("GEMINI_API_KEY is not set, model calls will fail")
		}
		conn := llm.NewConnector(c.cfg.LLMConnectorCfg, c.logger)
		c.closers = append(c.closers, conn.Close)
		return conn
	}
}

func (c *core) setupRecognizer() engine.Recognizer {
	var transcriber engine.Transcriber
	if c.cfg.TranscriptionMode == entity.TranscriptionModeASR {
		switch {
		case c.cfg.EnableMocks:
			transcriber = asr.NewMockConnector(c.logger)
		case c.cfg.ASRConnectorCfg.Url != "":
			transcriber = asr.NewConnector(c.cfg.ASRConnectorCfg, c.logger)
		default:
			c.logger.Warn("ASR_SERVICE_URL is not set, speech input is disabled")
		}
	}
	return engine.NewRecognizer(c.cfg.TranscriptionMode, transcriber)
}

// Build assembles the HTTP service.
func Build(environment string) (*App, error) {
	c, err := buildCore(environment)
	if err != nil {
		return nil, err
	}

	proxyHandler := proxyapi.NewHandler(c.proxy)
	sessionHandler := sessionapi.NewHandler(c.interview, c.validator, c.formatters, c.cfg.FileUploadCfg.MaxUploadSize)
	c.logger.Info("API handlers initialized")

	limiter := middleware.NewRateLimiter(c.cfg.RateLimitPerMinute)
	router := api.SetupRouter(proxyHandler, sessionHandler, limiter, c.logger)

	// WriteTimeout leaves room for a follow-up or evaluation model call.
	server := &http.Server{
		Addr:              c.cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	c.logger.Info("Application built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return &App{
		server: server,
		core:   c,
		logger: c.logger,
	}, nil
}
