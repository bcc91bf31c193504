package interview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/config"
	"github.com/futig/mock-interview/internal/entity"
	engine "github.com/futig/mock-interview/internal/interview"
	"github.com/futig/mock-interview/internal/pkg/logger"
	"github.com/futig/mock-interview/internal/pkg/validator"
	"github.com/futig/mock-interview/internal/prompt"
	"github.com/futig/mock-interview/internal/repository"
)

type Option func(*InterviewUsecase)

// WithTickSource replaces the per-session one-second ticker.
func WithTickSource(fn func(sessionID string) <-chan time.Time) Option {
	return func(uc *InterviewUsecase) {
		uc.tickSource = fn
	}
}

// InterviewUsecase implements interview session business logic
type InterviewUsecase struct {
	sessions   *repository.SessionCache[*SessionRecord]
	completer  Completer
	recognizer engine.Recognizer
	validator  *validator.Validator
	cfg        config.SessionConfig
	logger     *zap.Logger
	tickSource func(sessionID string) <-chan time.Time

	evalMu      sync.Mutex
	closing     bool
	evaluations sync.WaitGroup
}

// NewUsecase creates a new interview use case
func NewUsecase(
	completer Completer,
	recognizer engine.Recognizer,
	validator *validator.Validator,
	cfg config.SessionConfig,
	logger *zap.Logger,
	opts ...Option,
) *InterviewUsecase {
	uc := &InterviewUsecase{
		completer:  completer,
		recognizer: recognizer,
		validator:  validator,
		cfg:        cfg,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.sessions = repository.NewSessionCache[*SessionRecord](cfg.TTL, cfg.CleanupInterval, uc.onEvicted)
	return uc
}

func (uc *InterviewUsecase) onEvicted(id string, rec *SessionRecord) {
	rec.runner.Stop()
	uc.logger.Info("interview session closed", zap.String("session_id", id))
}

// Close stops every session and waits for running evaluations.
func (uc *InterviewUsecase) Close() {
	uc.evalMu.Lock()
	uc.closing = true
	uc.evalMu.Unlock()

	uc.sessions.Flush()
	uc.evaluations.Wait()
}

// StartSession generates the questions and starts the session. Nothing is
// stored when generation fails.
func (uc *InterviewUsecase) StartSession(ctx context.Context, cfg entity.InterviewConfig) (*entity.Session, error) {
	if err := uc.validator.ValidateInterviewConfig(cfg); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	ctx = logger.WithSession(ctx, id)

	questions, err := uc.generateQuestions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	machine := engine.NewMachine(cfg)
	if err := machine.Initialize(questions); err != nil {
		return nil, fmt.Errorf("initialize session: %w", err)
	}

	rec := &SessionRecord{
		ID:         id,
		Config:     cfg,
		CreatedAt:  time.Now().UTC(),
		evaluation: entity.EvaluationState{Status: entity.EvaluationPending},
	}

	bgCtx := logger.Detach(ctx)
	opts := []engine.RunnerOption{
		engine.WithFinishHook(func(s entity.Session) {
			rec.setFinal(s)
			uc.evaluateAsync(bgCtx, rec)
		}),
		engine.WithTransitionHook(func(t engine.Transition, s entity.Session) {
			ctxzap.Debug(bgCtx, "session transition",
				zap.Stringer("transition", t),
				zap.Int("index", s.CurrentIndex),
				zap.Bool("times_up", s.TimesUp),
			)
		}),
	}
	if uc.tickSource != nil {
		opts = append(opts, engine.WithTickSource(uc.tickSource(id)))
	}
	rec.runner = engine.NewRunner(machine, engine.NewBridge(uc.recognizer), opts...)

	if err := uc.sessions.Create(id, rec); err != nil {
		return nil, err
	}
	rec.runner.Start()

	ctxzap.Info(ctx, "interview session started",
		zap.String("job_role", cfg.JobRole),
		zap.String("interview_type", string(cfg.InterviewType)),
		zap.Int("questions", len(questions)),
		zap.Int("time_per_question", cfg.TimePerQuestion),
	)

	return uc.snapshot(ctx, rec)
}

// GetSession returns the current state of a session
func (uc *InterviewUsecase) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return uc.snapshot(ctx, rec)
}

// SetAnswer replaces the live answer buffer
func (uc *InterviewUsecase) SetAnswer(ctx context.Context, id, text string) (*entity.Session, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	s, err := rec.runner.SetAnswer(ctx, text)
	if err != nil {
		return nil, err
	}
	return uc.view(rec, s), nil
}

// Advance moves the session forward. A follow-up question is requested at
// most once per question, and only for a non-empty main answer.
func (uc *InterviewUsecase) Advance(ctx context.Context, id string) (*entity.Session, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithSession(ctx, id)

	candidate, err := rec.runner.FollowUpCandidate(ctx)
	if err != nil {
		return nil, err
	}

	var followUp *string
	if candidate.Needed {
		raw, err := uc.completer.Complete(ctx, prompt.BuildFollowUpPrompt(candidate.Question, candidate.Answer))
		if err != nil {
			ctxzap.Error(ctx, "follow-up generation failed", zap.Error(err))
			return nil, fmt.Errorf("%w: generate follow-up: %w", entity.ErrModelCallFailed, err)
		}
		if text, ok := prompt.ParseFollowUp(raw); ok {
			followUp = &text
		}
	}

	s, transition, err := rec.runner.Advance(ctx, candidate.Position, followUp)
	if err != nil {
		if errors.Is(err, entity.ErrStalePosition) {
			ctxzap.Info(ctx, "advance dropped, session already moved on",
				zap.Int("requested_index", candidate.Position.Index))
		}
		return nil, err
	}

	ctxzap.Info(ctx, "session advanced",
		zap.Stringer("transition", transition),
		zap.Int("index", s.CurrentIndex),
	)
	return uc.view(rec, s), nil
}

// Retry clears the live answer buffer
func (uc *InterviewUsecase) Retry(ctx context.Context, id string) (*entity.Session, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	s, err := rec.runner.Retry(ctx)
	if err != nil {
		return nil, err
	}
	return uc.view(rec, s), nil
}

// CancelSession stops and forgets a session
func (uc *InterviewUsecase) CancelSession(ctx context.Context, id string) error {
	if err := uc.sessions.Delete(id); err != nil {
		return err
	}
	ctxzap.Info(ctx, "interview session cancelled", zap.String("session_id", id))
	return nil
}

func (uc *InterviewUsecase) generateQuestions(ctx context.Context, cfg entity.InterviewConfig) ([]entity.Question, error) {
	raw, err := uc.completer.Complete(ctx, prompt.BuildQuestionPrompt(cfg))
	if err != nil {
		ctxzap.Error(ctx, "question generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: generate questions: %w", entity.ErrModelCallFailed, err)
	}

	questions, err := prompt.ParseQuestions(raw)
	if err != nil {
		ctxzap.Error(ctx, "question reply could not be parsed", zap.Error(err), zap.Int("reply_length", len(raw)))
		return nil, err
	}

	if len(questions) < cfg.NumQuestions {
		return nil, fmt.Errorf("%w: asked for %d questions, got %d",
			entity.ErrMalformedModelOutput, cfg.NumQuestions, len(questions))
	}
	if len(questions) > cfg.NumQuestions {
		ctxzap.Warn(ctx, "model returned extra questions, keeping the first ones",
			zap.Int("requested", cfg.NumQuestions), zap.Int("received", len(questions)))
		questions = questions[:cfg.NumQuestions]
	}
	return questions, nil
}

func (uc *InterviewUsecase) snapshot(ctx context.Context, rec *SessionRecord) (*entity.Session, error) {
	s, err := rec.runner.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return uc.view(rec, s), nil
}

func (uc *InterviewUsecase) view(rec *SessionRecord, s entity.Session) *entity.Session {
	s.ID = rec.ID
	s.CreatedAt = rec.CreatedAt
	s.Evaluation = rec.evaluationState()
	return &s
}
