package entity

import (
	"mime/multipart"
	"time"
)

type StartSessionRequest struct {
	JobRole       string        `json:"jobRole" validate:"required,max=200"`
	InterviewType InterviewType `json:"interviewType,omitempty" validate:"omitempty,oneof=HR Technical"`
	NumQuestions  *int          `json:"numQuestions,omitempty" validate:"omitempty,min=1,max=5"`
	Minutes       *int          `json:"minutes,omitempty" validate:"omitempty,min=0,max=59"`
	Seconds       *int          `json:"seconds,omitempty" validate:"omitempty,min=0,max=59"`
}

type SetAnswerRequest struct {
	Text string `json:"text"`
}

type SubmitTranscriptRequest struct {
	Generation uint64 `json:"generation" validate:"required"`
	Text       string `json:"text"`
}

type SubmitAudioRequest struct {
	Generation uint64
	AudioFile  *multipart.FileHeader
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type QuestionDTO struct {
	Number         int    `json:"number"`
	Text           string `json:"text"`
	FollowUp       string `json:"followUp,omitempty"`
	Answer         string `json:"answer"`
	FollowUpAnswer string `json:"followUpAnswer,omitempty"`
}

type SessionDTO struct {
	ID             string             `json:"id"`
	Status         SessionPhase       `json:"status"`
	Step           AnswerStep         `json:"step,omitempty"`
	Config         InterviewConfig    `json:"config"`
	Questions      []QuestionDTO      `json:"questions"`
	CurrentIndex   int                `json:"currentIndex"`
	CurrentPrompt  string             `json:"currentPrompt,omitempty"`
	FollowUpActive bool               `json:"followUpActive"`
	FollowUpAnswer string             `json:"followUpAnswer"`
	TimeLeft       int                `json:"timeLeft"`
	TimesUp        bool               `json:"timesUp"`
	Transcription  TranscriptionState `json:"transcription"`
	Evaluation     EvaluationStatus   `json:"evaluationStatus"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type EvaluationDTO struct {
	SessionID   string           `json:"sessionId"`
	Status      EvaluationStatus `json:"status"`
	Evaluations []Evaluation     `json:"evaluations,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type TranscriptResultDTO struct {
	Delivered bool        `json:"delivered"`
	Session   *SessionDTO `json:"session"`
}
