// Package prompt builds the model prompts used by an interview and parses
// the model's replies back into domain values.
package prompt

import (
	"fmt"
	"strings"

	"github.com/futig/mock-interview/internal/entity"
)

// BuildQuestionPrompt asks for cfg.NumQuestions questions as a bare JSON array.
func BuildQuestionPrompt(cfg entity.InterviewConfig) string {
	return fmt.Sprintf(`Generate %d %s interview questions for a %s position.
Return ONLY a JSON array of objects, each with a "text" field, and nothing else. Do not include any explanation, code block, or markdown. Example: [{"text": "What is ...?"}, {"text": "Explain ..."}]`,
		cfg.NumQuestions, cfg.InterviewType, cfg.JobRole)
}

// BuildFollowUpPrompt asks whether the answer needs a clarifying question.
// The model replies with the question as plain text or the token null.
func BuildFollowUpPrompt(question, answer string) string {
	return fmt.Sprintf(`Given the question: "%s" and the answer: "%s",
if the answer is vague, incomplete, or contains phrases like 'I don't know' or 'I'm not sure', generate a follow-up question to clarify or encourage a better response.
Return only the follow-up question as plain text, or "%s" if no follow-up is needed.`,
		question, answer, nullToken)
}

// BuildEvaluationPrompt embeds every question/answer pair in order and asks
// for one evaluation object per pair.
func BuildEvaluationPrompt(questions []entity.Question, answers []string) string {
	pairs := make([]string, 0, len(questions))
	for i, q := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		pairs = append(pairs, fmt.Sprintf("Q: %s\nA: %s", q.Text, answer))
	}

	var b strings.Builder
	b.WriteString("Given the following interview questions and answers, analyze each answer and return a JSON array where each item contains:\n")
	b.WriteString("- sentiment: \"Positive\", \"Negative\", or \"Mixed\"\n")
	b.WriteString("- score: number between 0-10\n")
	b.WriteString("- strengths: array of strings\n")
	b.WriteString("- suggestions: array of strings\n")
	b.WriteString("- sampleAnswer: a better answer\n\n")
	b.WriteString("Questions and Answers:\n")
	b.WriteString(strings.Join(pairs, "\n\n"))
	b.WriteString("\n\nReturn ONLY the JSON array, nothing else.\n")
	b.WriteString(`Example: [{"sentiment":"Positive","score":8,"strengths":["clear","concise"],"suggestions":["add more detail"],"sampleAnswer":"A better answer here."}]`)
	return b.String()
}

// BuildTopicQuestionPrompt is used by the single-question generation endpoint.
func BuildTopicQuestionPrompt(topic, difficulty string) string {
	return fmt.Sprintf(`Generate an interview question about %s with %s difficulty level.
The question should be clear, concise, and relevant to real-world scenarios.`, topic, difficulty)
}

// BuildAnswerReviewPrompt is used by the free-text answer review endpoint.
func BuildAnswerReviewPrompt(question, answer string) string {
	return fmt.Sprintf(`Evaluate this answer to the interview question: "%s"

Answer: %s

Please provide:
1. A score out of 10
2. Key strengths
3. Areas for improvement
4. A sample better answer`, question, answer)
}
