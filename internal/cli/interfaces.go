package cli

import (
	"context"

	"github.com/futig/mock-interview/internal/entity"
)

type InterviewUsecase interface {
	StartSession(ctx context.Context, cfg entity.InterviewConfig) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	SetAnswer(ctx context.Context, id, text string) (*entity.Session, error)
	Advance(ctx context.Context, id string) (*entity.Session, error)
	Retry(ctx context.Context, id string) (*entity.Session, error)
	CancelSession(ctx context.Context, id string) error
	GetEvaluation(ctx context.Context, id string) (*entity.EvaluationState, error)
	RetryEvaluation(ctx context.Context, id string) (*entity.EvaluationState, error)
	GetReport(ctx context.Context, id string) (*entity.Report, error)
}
