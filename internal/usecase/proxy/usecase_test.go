package proxy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futig/mock-interview/internal/entity"
)

type recordingCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (c *recordingCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.reply, c.err
}

func TestProxyUsecase(t *testing.T) {
	ctx := context.Background()
	c := &recordingCompleter{reply: "ok"}
	uc := NewUsecase(c)

	got, err := uc.Complete(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	_, err = uc.GenerateQuestion(ctx, "databases", "hard")
	require.NoError(t, err)

	_, err = uc.ReviewAnswer(ctx, "What is an index?", "A lookup structure")
	require.NoError(t, err)

	require.Len(t, c.prompts, 3)
	assert.Equal(t, "hello", c.prompts[0])
	assert.Contains(t, c.prompts[1], "about databases with hard difficulty")
	assert.Contains(t, c.prompts[2], `question: "What is an index?"`)
	assert.Contains(t, c.prompts[2], "Answer: A lookup structure")
}

func TestProxyUsecase_Error(t *testing.T) {
	uc := NewUsecase(&recordingCompleter{err: errors.New("boom")})

	_, err := uc.GenerateQuestion(context.Background(), "go", "easy")
	assert.ErrorIs(t, err, entity.ErrModelCallFailed)
}
