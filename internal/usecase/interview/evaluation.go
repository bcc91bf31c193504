package interview

import (
	"context"
	"errors"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/pkg/logger"
	"github.com/futig/mock-interview/internal/prompt"
)

func (uc *InterviewUsecase) evaluateAsync(ctx context.Context, rec *SessionRecord) {
	ctx = logger.WithAction(ctx, "EvaluateAnswers-async")
	if !uc.trackEvaluation() {
		ctxzap.Warn(ctx, "shutting down, answer evaluation skipped")
		return
	}
	defer uc.evaluations.Done()

	if err := uc.evaluate(ctx, rec); err != nil && !errors.Is(err, entity.ErrEvaluationRunning) {
		ctxzap.Error(ctx, "answer evaluation failed", zap.Error(err))
	}
}

// trackEvaluation registers a background evaluation unless Close has begun.
func (uc *InterviewUsecase) trackEvaluation() bool {
	uc.evalMu.Lock()
	defer uc.evalMu.Unlock()

	if uc.closing {
		return false
	}
	uc.evaluations.Add(1)
	return true
}

// evaluate scores every answer of the finished session with one model call.
func (uc *InterviewUsecase) evaluate(ctx context.Context, rec *SessionRecord) error {
	final, err := rec.beginEvaluation()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.EvaluationTimeout)
	defer cancel()

	ctxzap.Info(ctx, "evaluating answers", zap.Int("questions", len(final.Questions)))

	evaluations, err := uc.requestEvaluations(ctx, final)
	rec.finishEvaluation(evaluations, err)
	if err != nil {
		return err
	}

	ctxzap.Info(ctx, "answers evaluated", zap.Int("evaluations", len(evaluations)))
	return nil
}

func (uc *InterviewUsecase) requestEvaluations(ctx context.Context, final entity.Session) ([]entity.Evaluation, error) {
	raw, err := uc.completer.Complete(ctx, prompt.BuildEvaluationPrompt(final.Questions, final.Answers))
	if err != nil {
		return nil, fmt.Errorf("%w: evaluate answers: %w", entity.ErrModelCallFailed, err)
	}
	return prompt.ParseEvaluations(raw, len(final.Questions))
}

// GetEvaluation returns the evaluation state of a session
func (uc *InterviewUsecase) GetEvaluation(ctx context.Context, id string) (*entity.EvaluationState, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	state := rec.evaluationState()
	return &state, nil
}

// RetryEvaluation re-runs a failed evaluation and waits for the outcome.
func (uc *InterviewUsecase) RetryEvaluation(ctx context.Context, id string) (*entity.EvaluationState, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithAction(logger.WithSession(ctx, id), "RetryEvaluation")

	if state := rec.evaluationState(); state.Status != entity.EvaluationFailed {
		switch state.Status {
		case entity.EvaluationRunning:
			return nil, entity.ErrEvaluationRunning
		case entity.EvaluationDone:
			return nil, entity.ErrEvaluationCompleted
		default:
			return nil, entity.ErrEvaluationNotReady
		}
	}

	uc.evaluations.Add(1)
	defer uc.evaluations.Done()

	if err := uc.evaluate(ctx, rec); err != nil {
		return nil, err
	}
	state := rec.evaluationState()
	return &state, nil
}
