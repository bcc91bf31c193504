package entity

import "time"

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatJSON     ResultFormat = "json"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatJSON, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

type ReportItem struct {
	Number         int         `json:"number"`
	Question       string      `json:"question"`
	Answer         string      `json:"answer"`
	FollowUp       string      `json:"followUp,omitempty"`
	FollowUpAnswer string      `json:"followUpAnswer,omitempty"`
	Evaluation     *Evaluation `json:"evaluation,omitempty"`
}

// Report is the printable outcome of a finished session.
type Report struct {
	SessionID        string           `json:"sessionId"`
	JobRole          string           `json:"jobRole"`
	InterviewType    InterviewType    `json:"interviewType"`
	EvaluationStatus EvaluationStatus `json:"evaluationStatus"`
	Items            []ReportItem     `json:"items"`
	AverageScore     *float64         `json:"averageScore,omitempty"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
