// Package llmproxy uses the /api/gemini-proxy route of another running
// instance as the completion capability.
package llmproxy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/config"
	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/integration/common"
	pkghttp "github.com/futig/mock-interview/pkg/http"
)

type Connector struct {
	config    config.LLMProxyConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMProxyConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) Complete(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "sending prompt to upstream proxy",
		zap.String("url", c.connector.BaseURL()+c.config.ProxyEndpoint),
		zap.Int("prompt_length", len(prompt)),
	)

	var resp entity.GeminiProxyResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ProxyEndpoint, entity.GeminiProxyRequest{Prompt: prompt}, &resp)
	if err != nil {
		return "", fmt.Errorf("upstream proxy: %w", err)
	}

	ctxzap.Info(ctx, "upstream proxy replied", zap.Int("reply_length", len(resp.Result)))
	return resp.Result, nil
}
