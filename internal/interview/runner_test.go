package interview

import (
	"context"
	"testing"
	"time"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFixture struct {
	runner   *Runner
	ticks    chan time.Time
	finished chan entity.Session
}

func newRunnerFixture(t *testing.T, n, seconds int, rec Recognizer) *runnerFixture {
	t.Helper()
	f := &runnerFixture{
		ticks:    make(chan time.Time),
		finished: make(chan entity.Session, 1),
	}
	f.runner = NewRunner(
		newActiveMachine(t, n, seconds),
		NewBridge(rec),
		WithTickSource(f.ticks),
		WithFinishHook(func(s entity.Session) { f.finished <- s }),
	)
	f.runner.Start()
	t.Cleanup(f.runner.Stop)
	return f
}

func (f *runnerFixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.ticks <- time.Now()
	}
}

func (f *runnerFixture) waitFinished(t *testing.T) entity.Session {
	t.Helper()
	select {
	case s := <-f.finished:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("finish hook was not called")
		return entity.Session{}
	}
}

func TestRunner_TicksCountDown(t *testing.T) {
	f := newRunnerFixture(t, 2, 5, ClientRecognizer{})
	ctx := context.Background()

	f.tick(3)
	s, err := f.runner.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TimeLeft)
}

func TestRunner_AdvanceWithFollowUpRestartsTranscription(t *testing.T) {
	f := newRunnerFixture(t, 2, 60, ClientRecognizer{})
	ctx := context.Background()

	s, err := f.runner.StartTranscription(ctx)
	require.NoError(t, err)
	gen := s.Transcription.Generation

	s, delivered, err := f.runner.DeliverTranscript(ctx, gen, "I'm not sure")
	require.NoError(t, err)
	require.True(t, delivered)
	assert.Equal(t, "I'm not sure", s.Answers[0])

	c, err := f.runner.FollowUpCandidate(ctx)
	require.NoError(t, err)
	require.True(t, c.Needed)
	assert.Equal(t, "I'm not sure", c.Answer)

	followUp := "Which part is unclear?"
	s, tr, err := f.runner.Advance(ctx, c.Position, &followUp)
	require.NoError(t, err)
	assert.Equal(t, TransitionFollowUp, tr)
	assert.True(t, s.FollowUpActive)
	assert.True(t, s.Transcription.Active)
	assert.Greater(t, s.Transcription.Generation, gen)

	_, delivered, err = f.runner.DeliverTranscript(ctx, gen, "stale")
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestRunner_StaleAdvanceIsRejected(t *testing.T) {
	f := newRunnerFixture(t, 3, 2, ClientRecognizer{})
	ctx := context.Background()

	_, err := f.runner.SetAnswer(ctx, "vague")
	require.NoError(t, err)
	c, err := f.runner.FollowUpCandidate(ctx)
	require.NoError(t, err)

	// the timer moves the session while the follow-up is being generated
	f.tick(2)

	followUp := "Too late?"
	_, _, err = f.runner.Advance(ctx, c.Position, &followUp)
	assert.ErrorIs(t, err, entity.ErrStalePosition)

	s, err := f.runner.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.False(t, s.FollowUpActive)
	assert.False(t, s.Questions[0].HasFollowUp())
	assert.True(t, s.TimesUp)
}

func TestRunner_TimerFinishesSessionAndFiresHookOnce(t *testing.T) {
	f := newRunnerFixture(t, 1, 1, ClientRecognizer{})
	ctx := context.Background()

	_, err := f.runner.StartTranscription(ctx)
	require.NoError(t, err)

	f.tick(1)
	s := f.waitFinished(t)
	assert.Equal(t, entity.PhaseFinished, s.Phase)
	assert.False(t, s.Transcription.Active)

	_, err = f.runner.SetAnswer(ctx, "after the end")
	assert.ErrorIs(t, err, entity.ErrSessionNotActive)

	select {
	case <-f.finished:
		t.Fatal("finish hook fired twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunner_ManualFinish(t *testing.T) {
	f := newRunnerFixture(t, 1, 60, UnavailableRecognizer{})
	ctx := context.Background()

	_, err := f.runner.StartTranscription(ctx)
	assert.ErrorIs(t, err, entity.ErrTranscriptionUnavailable)

	_, err = f.runner.SetAnswer(ctx, "final answer")
	require.NoError(t, err)
	c, err := f.runner.FollowUpCandidate(ctx)
	require.NoError(t, err)

	_, tr, err := f.runner.Advance(ctx, c.Position, nil)
	require.NoError(t, err)
	assert.Equal(t, TransitionFinished, tr)

	s := f.waitFinished(t)
	assert.Equal(t, []string{"final answer"}, s.Answers)
}

func TestRunner_StoppedRejectsCommands(t *testing.T) {
	f := newRunnerFixture(t, 1, 60, ClientRecognizer{})
	f.runner.Stop()

	_, err := f.runner.Snapshot(context.Background())
	assert.ErrorIs(t, err, entity.ErrSessionClosed)

	select {
	case <-f.runner.Done():
	default:
		t.Fatal("runner loop still running")
	}
}

func TestRunner_StopWithoutStart(t *testing.T) {
	r := NewRunner(newActiveMachine(t, 1, 60), NewBridge(nil))
	r.Stop()
	<-r.Done()
}
