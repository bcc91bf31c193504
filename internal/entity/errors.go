package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotActive    = errors.New("session is not active")
	ErrSessionClosed       = errors.New("session is closed")
	ErrSessionInitialized  = errors.New("session is already initialized")
	ErrSessionNotFinished  = errors.New("session is not finished yet")
	ErrNoQuestions         = errors.New("no questions to ask")
	ErrAnswerRequired      = errors.New("answer is required before advancing")
	ErrStalePosition       = errors.New("session moved on while the request was in flight")
	ErrEvaluationNotReady  = errors.New("evaluation is not ready")
	ErrEvaluationRunning   = errors.New("evaluation is already running")
	ErrEvaluationCompleted = errors.New("evaluation is already completed")

	// Model errors
	ErrModelCallFailed      = errors.New("model call failed")
	ErrMalformedModelOutput = errors.New("malformed model output")
	ErrMissingAPIKey        = errors.New("model api key is not configured")

	// Transcription errors
	ErrTranscriptionUnavailable = errors.New("speech recognition is unavailable")
	ErrTranscriptionInactive    = errors.New("speech recognition is not active")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
