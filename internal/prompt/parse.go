package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/futig/mock-interview/internal/entity"
)

const nullToken = "null"

var (
	openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closingFence = regexp.MustCompile("\r?\n?[ \t]*```$")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// StripCodeFence removes a markdown code fence wrapped around the whole text.
// Text that does not start with a fence is only trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = openingFence.ReplaceAllString(text, "")
	text = closingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

type rawQuestion struct {
	Text string `json:"text"`
}

// ParseQuestions decodes the reply to BuildQuestionPrompt. A single object is
// accepted as a one-question list.
func ParseQuestions(raw string) ([]entity.Question, error) {
	payload := []byte(StripCodeFence(raw))
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty question list", entity.ErrMalformedModelOutput)
	}

	var items []rawQuestion
	switch payload[0] {
	case '[':
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("%w: decode questions: %v", entity.ErrMalformedModelOutput, err)
		}
	case '{':
		var single rawQuestion
		if err := json.Unmarshal(payload, &single); err != nil {
			return nil, fmt.Errorf("%w: decode question: %v", entity.ErrMalformedModelOutput, err)
		}
		items = []rawQuestion{single}
	default:
		return nil, fmt.Errorf("%w: questions are not a JSON array", entity.ErrMalformedModelOutput)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty question list", entity.ErrMalformedModelOutput)
	}

	questions := make([]entity.Question, 0, len(items))
	for i, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: question %d has no text", entity.ErrMalformedModelOutput, i+1)
		}
		questions = append(questions, entity.Question{Text: text})
	}
	return questions, nil
}

// ParseFollowUp reports whether the reply to BuildFollowUpPrompt carries a
// follow-up question. The exact token null means "no follow-up"; a blank
// reply is treated the same way since there is no question to ask.
func ParseFollowUp(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == nullToken || text == "" {
		return "", false
	}
	return text, true
}

// rawEvaluation mirrors entity.Evaluation with pointers so that a missing
// field is told apart from its zero value.
type rawEvaluation struct {
	Sentiment    *entity.Sentiment `json:"sentiment" validate:"required,oneof=Positive Negative Mixed"`
	Score        *float64          `json:"score" validate:"required,gte=0,lte=10"`
	Strengths    []string          `json:"strengths"`
	Suggestions  []string          `json:"suggestions"`
	SampleAnswer *string           `json:"sampleAnswer" validate:"required"`
}

func (r rawEvaluation) toEntity() entity.Evaluation {
	e := entity.Evaluation{
		Sentiment:    *r.Sentiment,
		Score:        *r.Score,
		Strengths:    r.Strengths,
		Suggestions:  r.Suggestions,
		SampleAnswer: *r.SampleAnswer,
	}
	if e.Strengths == nil {
		e.Strengths = []string{}
	}
	if e.Suggestions == nil {
		e.Suggestions = []string{}
	}
	return e
}

// ParseEvaluations decodes the reply to BuildEvaluationPrompt. The reply must
// be a single JSON array holding exactly expected well-formed evaluations.
func ParseEvaluations(raw string, expected int) ([]entity.Evaluation, error) {
	payload := []byte(StripCodeFence(raw))
	if len(payload) == 0 || payload[0] != '[' {
		return nil, fmt.Errorf("%w: evaluations are not a JSON array", entity.ErrMalformedModelOutput)
	}

	var items []rawEvaluation
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: decode evaluations: %v", entity.ErrMalformedModelOutput, err)
	}

	if len(items) != expected {
		return nil, fmt.Errorf("%w: got %d evaluations for %d answers",
			entity.ErrMalformedModelOutput, len(items), expected)
	}

	evaluations := make([]entity.Evaluation, 0, len(items))
	for i, item := range items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: evaluation %d: %v", entity.ErrMalformedModelOutput, i+1, err)
		}
		evaluations = append(evaluations, item.toEntity())
	}
	return evaluations, nil
}
