package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/entity"
)

var (
	mockQuestionCount  = regexp.MustCompile(`^Generate (\d+) `)
	mockQuestionPair   = regexp.MustCompile(`(?m)^Q: `)
	mockFollowUpAnswer = regexp.MustCompile(`(?s)and the answer: "(.*)",\n`)
)

var mockQuestions = []string{
	"Tell me about a project you are proud of and your role in it.",
	"How do you approach debugging a problem you have never seen before?",
	"Describe a time you disagreed with a teammate. How was it resolved?",
	"How do you keep your skills up to date?",
	"What would you improve in the last system you worked on?",
}

// MockConnector answers prompts with canned replies shaped like real model
// output, so the whole interview flow runs without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, prompt string) (string, error) {
	switch {
	case mockQuestionCount.MatchString(prompt):
		ctxzap.Info(ctx, "[MOCK] generating interview questions")
		return m.questions(prompt)
	case strings.HasPrefix(prompt, "Given the question:"):
		ctxzap.Info(ctx, "[MOCK] deciding on follow-up")
		return m.followUp(prompt), nil
	case strings.Contains(prompt, "analyze each answer"):
		ctxzap.Info(ctx, "[MOCK] evaluating answers")
		return m.evaluations(prompt)
	case strings.HasPrefix(prompt, "Generate an interview question about"):
		ctxzap.Info(ctx, "[MOCK] generating topic question")
		return mockQuestions[1], nil
	case strings.HasPrefix(prompt, "Evaluate this answer"):
		ctxzap.Info(ctx, "[MOCK] reviewing answer")
		return "1. Score: 7/10\n2. Strengths: clear structure\n3. Improvements: add a concrete example\n4. Sample answer: ...", nil
	default:
		ctxzap.Info(ctx, "[MOCK] free-form prompt", zap.Int("prompt_length", len(prompt)))
		return "This is a mock reply.", nil
	}
}

func (m *MockConnector) questions(prompt string) (string, error) {
	n := entity.DefaultQuestions
	if match := mockQuestionCount.FindStringSubmatch(prompt); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil && parsed > 0 {
			n = parsed
		}
	}

	items := make([]map[string]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]string{"text": mockQuestions[i%len(mockQuestions)]})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return "```json\n" + string(data) + "\n```", nil
}

// followUp asks for more detail only when the answer admits uncertainty.
func (m *MockConnector) followUp(prompt string) string {
	match := mockFollowUpAnswer.FindStringSubmatch(prompt)
	if match == nil {
		return "null"
	}
	lower := strings.ToLower(match[1])
	for _, marker := range []string{"i don't know", "i'm not sure", "not sure"} {
		if strings.Contains(lower, marker) {
			return "Could you walk me through what you would try first?"
		}
	}
	return "null"
}

func (m *MockConnector) evaluations(prompt string) (string, error) {
	n := len(mockQuestionPair.FindAllStringIndex(prompt, -1))
	items := make([]entity.Evaluation, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, entity.Evaluation{
			Sentiment:    entity.SentimentMixed,
			Score:        6,
			Strengths:    []string{"clear structure"},
			Suggestions:  []string{"add a concrete example"},
			SampleAnswer: fmt.Sprintf("A stronger answer to question %d would include a specific example and its outcome.", i+1),
		})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
