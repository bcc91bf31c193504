package entity

import (
	"fmt"
	"strings"
	"time"
)

type InterviewType string

const (
	InterviewTypeHR        InterviewType = "HR"
	InterviewTypeTechnical InterviewType = "Technical"
)

func (t InterviewType) Validate() error {
	switch t {
	case InterviewTypeHR, InterviewTypeTechnical:
		return nil
	default:
		return fmt.Errorf("unknown interview type: %s", t)
	}
}

// Interview limits offered by the setup form.
const (
	MinQuestions     = 1
	MaxQuestions     = 5
	DefaultQuestions = 3
	DefaultTimeLimit = 120
)

// InterviewConfig is fixed for the lifetime of a session.
type InterviewConfig struct {
	JobRole         string        `json:"jobRole" validate:"required,max=200"`
	InterviewType   InterviewType `json:"interviewType" validate:"required,oneof=HR Technical"`
	NumQuestions    int           `json:"numQuestions" validate:"min=1,max=5"`
	TimePerQuestion int           `json:"timePerQuestion" validate:"min=0,max=3599"`
}

type Question struct {
	Text     string `json:"text"`
	FollowUp string `json:"followUp,omitempty"`
}

func (q Question) HasFollowUp() bool {
	return strings.TrimSpace(q.FollowUp) != ""
}

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentMixed    Sentiment = "Mixed"
)

type Evaluation struct {
	Sentiment    Sentiment `json:"sentiment"`
	Score        float64   `json:"score"`
	Strengths    []string  `json:"strengths"`
	Suggestions  []string  `json:"suggestions"`
	SampleAnswer string    `json:"sampleAnswer"`
}

type SessionPhase string

const (
	PhaseInitializing SessionPhase = "initializing"
	PhaseActive       SessionPhase = "active"
	PhaseFinished     SessionPhase = "finished"
)

type AnswerStep string

const (
	StepMainAnswer     AnswerStep = "awaiting_main_answer"
	StepFollowUpAnswer AnswerStep = "awaiting_follow_up_answer"
)

type TranscriptionMode string

const (
	TranscriptionModeClient TranscriptionMode = "client"
	TranscriptionModeASR    TranscriptionMode = "asr"
	TranscriptionModeOff    TranscriptionMode = "off"
)

func (m TranscriptionMode) Validate() error {
	switch m {
	case TranscriptionModeClient, TranscriptionModeASR, TranscriptionModeOff:
		return nil
	default:
		return fmt.Errorf("unknown transcription mode: %s", m)
	}
}

type TranscriptionState struct {
	Mode       TranscriptionMode `json:"mode"`
	Available  bool              `json:"available"`
	Active     bool              `json:"active"`
	Generation uint64            `json:"generation"`
}

type EvaluationStatus string

const (
	EvaluationPending EvaluationStatus = "pending"
	EvaluationRunning EvaluationStatus = "running"
	EvaluationDone    EvaluationStatus = "done"
	EvaluationFailed  EvaluationStatus = "failed"
)

type EvaluationState struct {
	Status      EvaluationStatus
	Evaluations []Evaluation
	Error       string
	UpdatedAt   time.Time
}

// Session is a point-in-time view of an interview session.
// Answers and FollowUpAnswers are index-aligned with Questions.
type Session struct {
	ID              string
	Config          InterviewConfig
	Phase           SessionPhase
	Step            AnswerStep
	Questions       []Question
	Answers         []string
	FollowUpAnswers []string
	CurrentIndex    int
	FollowUpActive  bool
	FollowUpAnswer  string
	TimeLeft        int
	TimesUp         bool
	Transcription   TranscriptionState
	Evaluation      EvaluationState
	CreatedAt       time.Time
}

// CurrentPrompt returns the text the participant is answering right now.
func (s *Session) CurrentPrompt() string {
	if s.Phase != PhaseActive || s.CurrentIndex >= len(s.Questions) {
		return ""
	}
	q := s.Questions[s.CurrentIndex]
	if s.FollowUpActive {
		return q.FollowUp
	}
	return q.Text
}
