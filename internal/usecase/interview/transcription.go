package interview

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/pkg/logger"
)

// StartTranscription turns speech input on and opens a new generation
func (uc *InterviewUsecase) StartTranscription(ctx context.Context, id string) (*entity.Session, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	s, err := rec.runner.StartTranscription(ctx)
	if err != nil {
		return nil, err
	}
	ctxzap.Info(ctx, "transcription started",
		zap.String("session_id", id),
		zap.Uint64("generation", s.Transcription.Generation),
	)
	return uc.view(rec, s), nil
}

// StopTranscription turns speech input off
func (uc *InterviewUsecase) StopTranscription(ctx context.Context, id string) (*entity.Session, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	s, err := rec.runner.StopTranscription(ctx)
	if err != nil {
		return nil, err
	}
	return uc.view(rec, s), nil
}

// SubmitTranscript delivers text recognized by the client. Text from a
// superseded generation is dropped and reported as not delivered.
func (uc *InterviewUsecase) SubmitTranscript(ctx context.Context, id string, generation uint64, text string) (*entity.Session, bool, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, false, err
	}
	s, delivered, err := rec.runner.DeliverTranscript(ctx, generation, text)
	if err != nil {
		return nil, false, err
	}
	if !delivered {
		ctxzap.Debug(ctx, "stale transcript dropped",
			zap.String("session_id", id),
			zap.Uint64("generation", generation),
			zap.Uint64("current_generation", s.Transcription.Generation),
		)
	}
	return uc.view(rec, s), delivered, nil
}

// SubmitAudio transcribes a recorded answer on the server and delivers the
// text like SubmitTranscript.
func (uc *InterviewUsecase) SubmitAudio(ctx context.Context, id string, generation uint64, audio []byte, filename string) (*entity.Session, bool, error) {
	rec, err := uc.sessions.Get(id)
	if err != nil {
		return nil, false, err
	}
	ctx = logger.WithSession(ctx, id)

	recognizer := rec.runner.Recognizer()
	if recognizer.Mode() != entity.TranscriptionModeASR || !recognizer.Available() {
		return nil, false, fmt.Errorf("%w: server-side transcription is disabled", entity.ErrTranscriptionUnavailable)
	}

	text, err := recognizer.Transcribe(ctx, audio, filename)
	if err != nil {
		ctxzap.Error(ctx, "audio transcription failed", zap.Error(err))
		return nil, false, fmt.Errorf("transcribe audio: %w", err)
	}

	return uc.SubmitTranscript(ctx, id, generation, text)
}
