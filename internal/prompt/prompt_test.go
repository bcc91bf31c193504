package prompt

import (
	"strings"
	"testing"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestionPrompt(t *testing.T) {
	p := BuildQuestionPrompt(entity.InterviewConfig{
		JobRole:       "Backend Engineer",
		InterviewType: entity.InterviewTypeTechnical,
		NumQuestions:  4,
	})

	assert.Contains(t, p, "Generate 4 Technical interview questions for a Backend Engineer position.")
	assert.Contains(t, p, `Return ONLY a JSON array of objects, each with a "text" field`)
}

func TestBuildEvaluationPrompt_PairsInOrder(t *testing.T) {
	questions := []entity.Question{{Text: "First?"}, {Text: "Second?", FollowUp: "Why?"}}
	p := BuildEvaluationPrompt(questions, []string{"one", ""})

	first := strings.Index(p, "Q: First?\nA: one")
	second := strings.Index(p, "Q: Second?\nA: ")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.NotContains(t, p, "Why?")
	assert.Contains(t, p, "Return ONLY the JSON array, nothing else.")
}

func TestBuildFollowUpPrompt(t *testing.T) {
	p := BuildFollowUpPrompt("What is a goroutine?", "I'm not sure")
	assert.Contains(t, p, `Given the question: "What is a goroutine?" and the answer: "I'm not sure"`)
	assert.Contains(t, p, `or "null" if no follow-up is needed`)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `  [{"text":"a"}]  `, `[{"text":"a"}]`},
		{"json fence", "```json\n[{\"text\":\"a\"}]\n```", `[{"text":"a"}]`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"single line fence", "```json[1]```", `[1]`},
		{"fence without newline before close", "```json\n[1]```", `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "array", raw: `[{"text":"A?"},{"text":"B?"}]`, want: []string{"A?", "B?"}},
		{name: "fenced array", raw: "```json\n[{\"text\":\"A?\"}]\n```", want: []string{"A?"}},
		{name: "single object", raw: `{"text":"Only?"}`, want: []string{"Only?"}},
		{name: "empty array", raw: `[]`, wantErr: true},
		{name: "not json", raw: `Here are your questions`, wantErr: true},
		{name: "scalar", raw: `42`, wantErr: true},
		{name: "missing text", raw: `[{"text":"A?"},{"question":"B?"}]`, wantErr: true},
		{name: "empty reply", raw: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestions(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, entity.ErrMalformedModelOutput)
				return
			}
			require.NoError(t, err)
			texts := make([]string, 0, len(got))
			for _, q := range got {
				texts = append(texts, q.Text)
				assert.False(t, q.HasFollowUp())
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestParseFollowUp(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"null", "", false},
		{"  null\n", "", false},
		{"  \n", "", false},
		{"NULL", "NULL", true},
		{"Null", "Null", true},
		{"  Can you give an example?  ", "Can you give an example?", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseFollowUp(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFollowUp_Idempotent(t *testing.T) {
	for _, raw := range []string{"  Why?  ", "null", "Tell me more.\n"} {
		first, ok := ParseFollowUp(raw)
		if !ok {
			continue
		}
		second, ok := ParseFollowUp(first)
		require.True(t, ok)
		assert.Equal(t, first, second)
	}
}

func TestParseEvaluations(t *testing.T) {
	valid := `[{"sentiment":"Positive","score":8,"strengths":["clear"],"suggestions":["more detail"],"sampleAnswer":"Better."},
{"sentiment":"Mixed","score":4.5,"strengths":[],"suggestions":[],"sampleAnswer":"x"}]`

	t.Run("valid", func(t *testing.T) {
		got, err := ParseEvaluations(valid, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, entity.SentimentPositive, got[0].Sentiment)
		assert.Equal(t, 4.5, got[1].Score)
	})

	t.Run("fenced", func(t *testing.T) {
		got, err := ParseEvaluations("```json\n"+valid+"\n```", 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("missing lists become empty", func(t *testing.T) {
		got, err := ParseEvaluations(`[{"sentiment":"Negative","score":0,"sampleAnswer":"x"}]`, 1)
		require.NoError(t, err)
		assert.NotNil(t, got[0].Strengths)
		assert.NotNil(t, got[0].Suggestions)
	})

	failures := map[string]struct {
		raw      string
		expected int
	}{
		"count mismatch":    {valid, 3},
		"single object":     {`{"sentiment":"Positive","score":8}`, 1},
		"bad sentiment":     {`[{"sentiment":"Great","score":8}]`, 1},
		"score above range": {`[{"sentiment":"Positive","score":11}]`, 1},
		"negative score":    {`[{"sentiment":"Positive","score":-1}]`, 1},
		"score as string":   {`[{"sentiment":"Positive","score":"8"}]`, 1},
		"not json":          {`Great answers overall`, 1},
		"trailing text":     {`[{"sentiment":"Positive","score":8,"sampleAnswer":"x"}] oops, here is more {not json`, 1},
		"missing score":     {`[{"sentiment":"Mixed","strengths":[],"suggestions":[],"sampleAnswer":"x"}]`, 1},
		"missing sample":    {`[{"sentiment":"Mixed","score":5}]`, 1},
		"null score":        {`[{"sentiment":"Mixed","score":null,"sampleAnswer":"x"}]`, 1},
	}
	for name, tt := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEvaluations(tt.raw, tt.expected)
			assert.ErrorIs(t, err, entity.ErrMalformedModelOutput)
		})
	}
}
