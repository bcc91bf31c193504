package session

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

	StartTranscription(ctx context.Context, id string) (*entity.Session, error)
	StopTranscription(ctx context.Context, id string) (*entity.Session, error)
	SubmitTranscript(ctx context.Context, id string, generation uint64, text string) (*entity.Session, bool, error)
	SubmitAudio(ctx context.Context, id string, generation uint64, audio []byte, filename string) (*entity.Session, bool, error)

	GetEvaluation(ctx context.Context, id string) (*entity.EvaluationState, error)
	RetryEvaluation(ctx context.Context, id string) (*entity.EvaluationState, error)
	GetReport(ctx context.Context, id string) (*entity.Report, error)
}
