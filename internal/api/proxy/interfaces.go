package proxy

import "context"

type ProxyUsecase interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GenerateQuestion(ctx context.Context, topic, difficulty string) (string, error)
	ReviewAnswer(ctx context.Context, question, answer string) (string, error)
}
