package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/futig/mock-interview/internal/config"
	"github.com/futig/mock-interview/internal/entity"
)

// Connector sends prompts to Gemini. The SDK client is created on first
// use so the service can start without an API key.
type Connector struct {
	config config.LLMConnectorConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		config: cfg,
		logger: logger,
	}
}

func (c *Connector) getClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.config.APIKey == "" {
		return nil, entity.ErrMissingAPIKey
	}

	client, err := genai.NewClient(context.WithoutCancel(ctx), option.WithAPIKey(c.config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Complete sends prompt as a single text turn and returns the reply text.
func (c *Connector) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(c.config.Model)
	if c.config.Temperature > 0 {
		model.SetTemperature(c.config.Temperature)
	}

	ctxzap.Debug(ctx, "sending prompt to gemini",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	ctxzap.Debug(ctx, "gemini replied", zap.Int("reply_length", len(text)))
	return text, nil
}

// Close releases resources held by the client
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response (finish reason %s)", candidate.FinishReason)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
