package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/config"
	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/integration/llm"
	engine "github.com/futig/mock-interview/internal/interview"
	"github.com/futig/mock-interview/internal/pkg/formatter"
	"github.com/futig/mock-interview/internal/pkg/validator"
	"github.com/futig/mock-interview/internal/usecase/interview"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	uc *interview.InterviewUsecase

	mu    sync.Mutex
	ticks chan time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	f.uc = interview.NewUsecase(
		llm.NewMockConnector(zap.NewNop()),
		engine.ClientRecognizer{},
		validator.New(config.FileUploadConfig{MaxAudioFileSize: 1, MaxUploadSize: 1}),
		config.SessionConfig{TTL: time.Hour, CleanupInterval: time.Hour, EvaluationTimeout: time.Second},
		zap.NewNop(),
		interview.WithTickSource(func(string) <-chan time.Time {
			ch := make(chan time.Time)
			f.mu.Lock()
			f.ticks = ch
			f.mu.Unlock()
			return ch
		}),
	)
	t.Cleanup(f.uc.Close)
	return f
}

func (f *fixture) tickChan() chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticks
}

func (f *fixture) terminal(t *testing.T, in io.Reader, out io.Writer) (*Terminal, string) {
	t.Helper()
	dir := t.TempDir()
	return NewTerminal(f.uc, formatter.NewFactory(), in, out, Options{
		Format:       entity.FormatMarkdown,
		OutputDir:    dir,
		PollInterval: 5 * time.Millisecond,
	}), dir
}

func TestTerminal_FullInterview(t *testing.T) {
	f := newFixture(t)
	input := strings.Join([]string{
		"I'm not sure",
		"",
		"Check the logs first",
		"",
		"Use channels",
		"/next",
	}, "\n") + "\n"
	out := &safeBuffer{}
	term, dir := f.terminal(t, strings.NewReader(input), out)

	path, err := term.Run(context.Background(), entity.InterviewConfig{
		JobRole:         "Go developer",
		InterviewType:   entity.InterviewTypeTechnical,
		NumQuestions:    2,
		TimePerQuestion: 120,
	})
	require.NoError(t, err, out.String())

	assert.Equal(t, filepath.Join(dir, "interview-report.md"), path)
	text := out.String()
	assert.Contains(t, text, "Question 1 of 2")
	assert.Contains(t, text, "Follow-up:")
	assert.Contains(t, text, "Question 2 of 2")
	assert.Contains(t, text, "Interview complete.")
	assert.Contains(t, text, "Overall score: 6.0/10")
	assert.NotContains(t, text, "Time's up!")

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Check the logs first")
	assert.Contains(t, string(body), "Use channels")
}

func TestTerminal_AsksForRole(t *testing.T) {
	f := newFixture(t)
	out := &safeBuffer{}
	term, _ := f.terminal(t, strings.NewReader("Data engineer\nETL pipelines\n\n"), out)

	_, err := term.Run(context.Background(), entity.InterviewConfig{
		InterviewType:   entity.InterviewTypeHR,
		NumQuestions:    1,
		TimePerQuestion: 60,
	})
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "for Data engineer")
}

func TestTerminal_Quit(t *testing.T) {
	f := newFixture(t)
	out := &safeBuffer{}
	term, _ := f.terminal(t, strings.NewReader("/quit\n"), out)

	_, err := term.Run(context.Background(), entity.InterviewConfig{
		JobRole: "SRE", InterviewType: entity.InterviewTypeHR, NumQuestions: 1, TimePerQuestion: 60,
	})

	assert.ErrorIs(t, err, ErrQuit)
	assert.Contains(t, out.String(), MsgCancelled)
}

func TestTerminal_AnswerRequired(t *testing.T) {
	f := newFixture(t)
	out := &safeBuffer{}
	term, _ := f.terminal(t, strings.NewReader("\n/quit\n"), out)

	_, err := term.Run(context.Background(), entity.InterviewConfig{
		JobRole: "SRE", InterviewType: entity.InterviewTypeHR, NumQuestions: 1, TimePerQuestion: 60,
	})

	assert.ErrorIs(t, err, ErrQuit)
	assert.Contains(t, out.String(), ErrAnswerRequired)
}

func TestTerminal_TimerForcesProgress(t *testing.T) {
	f := newFixture(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	out := &safeBuffer{}
	term, _ := f.terminal(t, pr, out)

	done := make(chan error, 1)
	go func() {
		_, err := term.Run(context.Background(), entity.InterviewConfig{
			JobRole: "SRE", InterviewType: entity.InterviewTypeHR, NumQuestions: 1, TimePerQuestion: 1,
		})
		done <- err
	}()

	require.Eventually(t, func() bool { return f.tickChan() != nil }, time.Second, time.Millisecond)
	f.tickChan() <- time.Now()

	select {
	case err := <-done:
		require.NoError(t, err, out.String())
	case <-time.After(3 * time.Second):
		t.Fatal("terminal did not finish after the countdown expired")
	}
	assert.Contains(t, out.String(), MsgTimesUp)
	assert.Contains(t, out.String(), "Report saved to")
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{entity.ErrAnswerRequired, ErrAnswerRequired},
		{entity.ErrMalformedModelOutput, ErrModelOutput},
		{entity.ErrModelCallFailed, ErrModelUnavailable},
		{context.DeadlineExceeded, ErrTimeout},
		{entity.ErrSessionNotFound, ErrSessionExpired},
		{io.EOF, ErrGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyError(tt.err), tt.err.Error())
	}
}

func TestProgressNotifier(t *testing.T) {
	out := &safeBuffer{}
	pn := NewProgressNotifier(out, 5*time.Millisecond)
	pn.Start(context.Background())

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), MsgStillWorking)
	}, time.Second, time.Millisecond)

	pn.Stop()
	pn.Stop()
	printed := out.String()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, printed, out.String())
}
