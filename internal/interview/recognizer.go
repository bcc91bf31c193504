package interview

import (
	"context"
	"fmt"

	"github.com/futig/mock-interview/internal/entity"
)

// Recognizer is the speech-to-text capability a session can use.
type Recognizer interface {
	Mode() entity.TranscriptionMode
	Available() bool
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Transcriber turns recorded audio into text.
type Transcriber interface {
	TranscribeBytes(ctx context.Context, audio []byte, filename string) (string, error)
}

// ClientRecognizer is used when speech is recognized on the client and only
// the recognized text reaches the server.
type ClientRecognizer struct{}

func (ClientRecognizer) Mode() entity.TranscriptionMode { return entity.TranscriptionModeClient }
func (ClientRecognizer) Available() bool                { return true }

func (ClientRecognizer) Transcribe(context.Context, []byte, string) (string, error) {
	return "", fmt.Errorf("%w: audio is recognized on the client", entity.ErrTranscriptionUnavailable)
}

// ASRRecognizer sends uploaded audio to a transcription service.
type ASRRecognizer struct {
	transcriber Transcriber
}

func NewASRRecognizer(t Transcriber) *ASRRecognizer {
	return &ASRRecognizer{transcriber: t}
}

func (r *ASRRecognizer) Mode() entity.TranscriptionMode { return entity.TranscriptionModeASR }
func (r *ASRRecognizer) Available() bool                { return r.transcriber != nil }

func (r *ASRRecognizer) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if r.transcriber == nil {
		return "", entity.ErrTranscriptionUnavailable
	}
	return r.transcriber.TranscribeBytes(ctx, audio, filename)
}

// UnavailableRecognizer leaves the speech toggle inert.
type UnavailableRecognizer struct{}

func (UnavailableRecognizer) Mode() entity.TranscriptionMode { return entity.TranscriptionModeOff }
func (UnavailableRecognizer) Available() bool                { return false }

func (UnavailableRecognizer) Transcribe(context.Context, []byte, string) (string, error) {
	return "", entity.ErrTranscriptionUnavailable
}

// NewRecognizer picks the recognizer for the configured mode. The asr mode
// degrades to unavailable when no transcriber is wired.
func NewRecognizer(mode entity.TranscriptionMode, t Transcriber) Recognizer {
	switch mode {
	case entity.TranscriptionModeClient:
		return ClientRecognizer{}
	case entity.TranscriptionModeASR:
		if t == nil {
			return UnavailableRecognizer{}
		}
		return NewASRRecognizer(t)
	default:
		return UnavailableRecognizer{}
	}
}
