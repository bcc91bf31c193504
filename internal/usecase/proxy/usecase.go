package proxy

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/prompt"
)

// Completer sends one prompt to a generative model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProxyUsecase backs the stateless model routes used by older clients.
type ProxyUsecase struct {
	completer Completer
}

func NewUsecase(completer Completer) *ProxyUsecase {
	return &ProxyUsecase{
		completer: completer,
	}
}

// Complete forwards a raw prompt.
func (uc *ProxyUsecase) Complete(ctx context.Context, text string) (string, error) {
	ctxzap.Debug(ctx, "forwarding prompt", zap.Int("prompt_length", len(text)))
	return uc.complete(ctx, text)
}

// GenerateQuestion asks for one question on a topic.
func (uc *ProxyUsecase) GenerateQuestion(ctx context.Context, topic, difficulty string) (string, error) {
	ctxzap.Debug(ctx, "generating question", zap.String("topic", topic), zap.String("difficulty", difficulty))
	return uc.complete(ctx, prompt.BuildTopicQuestionPrompt(topic, difficulty))
}

// ReviewAnswer asks for a free-text review of one answer.
func (uc *ProxyUsecase) ReviewAnswer(ctx context.Context, question, answer string) (string, error) {
	return uc.complete(ctx, prompt.BuildAnswerReviewPrompt(question, answer))
}

func (uc *ProxyUsecase) complete(ctx context.Context, text string) (string, error) {
	result, err := uc.completer.Complete(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrModelCallFailed, err)
	}
	return result, nil
}
