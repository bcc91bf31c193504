package interview

import (
	"testing"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveMachine(t *testing.T, n, seconds int) *Machine {
	t.Helper()
	m := NewMachine(entity.InterviewConfig{
		JobRole:         "Backend Engineer",
		InterviewType:   entity.InterviewTypeTechnical,
		NumQuestions:    n,
		TimePerQuestion: seconds,
	})
	questions := make([]entity.Question, n)
	for i := range questions {
		questions[i] = entity.Question{Text: "Question " + string(rune('A'+i))}
	}
	require.NoError(t, m.Initialize(questions))
	return m
}

func strPtr(s string) *string { return &s }

func TestMachine_Initialize(t *testing.T) {
	m := NewMachine(entity.InterviewConfig{NumQuestions: 2, TimePerQuestion: 30})
	assert.Equal(t, entity.PhaseInitializing, m.Phase())

	assert.ErrorIs(t, m.Initialize(nil), entity.ErrNoQuestions)
	assert.Equal(t, entity.PhaseInitializing, m.Phase())

	require.NoError(t, m.Initialize([]entity.Question{{Text: "a"}, {Text: "b"}}))
	s := m.Snapshot()
	assert.Equal(t, entity.PhaseActive, s.Phase)
	assert.Equal(t, entity.StepMainAnswer, s.Step)
	assert.Equal(t, []string{"", ""}, s.Answers)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, 30, s.TimeLeft)

	assert.ErrorIs(t, m.Initialize([]entity.Question{{Text: "c"}}), entity.ErrSessionInitialized)
}

func TestMachine_MutationsOutsideActive(t *testing.T) {
	m := NewMachine(entity.InterviewConfig{NumQuestions: 1})

	assert.ErrorIs(t, m.SetAnswer("x"), entity.ErrSessionNotActive)
	_, err := m.RequestAdvance(nil)
	assert.ErrorIs(t, err, entity.ErrSessionNotActive)
	_, err = m.ForceAdvance()
	assert.ErrorIs(t, err, entity.ErrSessionNotActive)
	assert.ErrorIs(t, m.RetryCurrent(), entity.ErrSessionNotActive)
}

func TestMachine_AdvanceRequiresAnswer(t *testing.T) {
	m := newActiveMachine(t, 2, 60)

	before := m.Snapshot()
	_, err := m.RequestAdvance(strPtr("Why?"))
	assert.ErrorIs(t, err, entity.ErrAnswerRequired)
	assert.Equal(t, before, m.Snapshot())

	require.NoError(t, m.SetAnswer("   "))
	_, err = m.RequestAdvance(nil)
	assert.ErrorIs(t, err, entity.ErrAnswerRequired)
}

func TestMachine_SingleQuestionWithoutFollowUpFinishes(t *testing.T) {
	m := newActiveMachine(t, 1, 60)
	require.NoError(t, m.SetAnswer("my answer"))

	tr, err := m.RequestAdvance(nil)
	require.NoError(t, err)
	assert.Equal(t, TransitionFinished, tr)

	s := m.Snapshot()
	assert.Equal(t, entity.PhaseFinished, s.Phase)
	assert.Equal(t, []string{"my answer"}, s.Answers)
	assert.False(t, s.Questions[0].HasFollowUp())
}

func TestMachine_FollowUpFlow(t *testing.T) {
	m := newActiveMachine(t, 2, 60)
	require.NoError(t, m.SetAnswer("I don't know"))
	for i := 0; i < 10; i++ {
		m.Tick()
	}

	tr, err := m.RequestAdvance(strPtr("  Can you give an example?  "))
	require.NoError(t, err)
	assert.Equal(t, TransitionFollowUp, tr)

	s := m.Snapshot()
	assert.True(t, s.FollowUpActive)
	assert.Equal(t, entity.StepFollowUpAnswer, s.Step)
	assert.Equal(t, "Can you give an example?", s.Questions[0].FollowUp)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, 50, s.TimeLeft, "entering a follow-up keeps the countdown running")

	require.NoError(t, m.SetAnswer("For example, channels"))
	s = m.Snapshot()
	assert.Equal(t, "I don't know", s.Answers[0], "follow-up text goes to its own buffer")
	assert.Equal(t, "For example, channels", s.FollowUpAnswer)

	tr, err = m.RequestAdvance(nil)
	require.NoError(t, err)
	assert.Equal(t, TransitionNextQuestion, tr)

	s = m.Snapshot()
	assert.Equal(t, 1, s.CurrentIndex)
	assert.False(t, s.FollowUpActive)
	assert.Empty(t, s.FollowUpAnswer)
	assert.Equal(t, "For example, channels", s.FollowUpAnswers[0])
	assert.Equal(t, 60, s.TimeLeft)
}

func TestMachine_FollowUpAnswerRequired(t *testing.T) {
	m := newActiveMachine(t, 1, 60)
	require.NoError(t, m.SetAnswer("vague"))
	_, err := m.RequestAdvance(strPtr("More?"))
	require.NoError(t, err)

	_, err = m.RequestAdvance(nil)
	assert.ErrorIs(t, err, entity.ErrAnswerRequired)
	assert.True(t, m.Snapshot().FollowUpActive)
}

func TestMachine_BlankFollowUpIsIgnored(t *testing.T) {
	m := newActiveMachine(t, 2, 60)
	require.NoError(t, m.SetAnswer("answer"))

	tr, err := m.RequestAdvance(strPtr("  "))
	require.NoError(t, err)
	assert.Equal(t, TransitionNextQuestion, tr)
}

func TestMachine_ForceAdvanceIgnoresEmptyAnswer(t *testing.T) {
	m := newActiveMachine(t, 2, 60)

	tr, err := m.ForceAdvance()
	require.NoError(t, err)
	assert.Equal(t, TransitionNextQuestion, tr)

	s := m.Snapshot()
	assert.Equal(t, "", s.Answers[0])
	assert.True(t, s.TimesUp)
	assert.False(t, s.Questions[0].HasFollowUp())

	require.NoError(t, m.SetAnswer("done"))
	tr, err = m.RequestAdvance(nil)
	require.NoError(t, err)
	assert.Equal(t, TransitionFinished, tr)
	assert.False(t, m.Snapshot().TimesUp)
}

func TestMachine_ForceAdvanceLeavesFollowUp(t *testing.T) {
	m := newActiveMachine(t, 2, 60)
	require.NoError(t, m.SetAnswer("hmm"))
	_, err := m.RequestAdvance(strPtr("Elaborate?"))
	require.NoError(t, err)

	tr, err := m.ForceAdvance()
	require.NoError(t, err)
	assert.Equal(t, TransitionNextQuestion, tr)

	s := m.Snapshot()
	assert.Equal(t, 1, s.CurrentIndex)
	assert.False(t, s.FollowUpActive)
	assert.Equal(t, "hmm", s.Answers[0])
}

func TestMachine_RetryMainAnswerResetsTimer(t *testing.T) {
	m := newActiveMachine(t, 1, 30)
	require.NoError(t, m.SetAnswer("draft"))
	for i := 0; i < 12; i++ {
		m.Tick()
	}
	require.Equal(t, 18, m.Snapshot().TimeLeft)

	require.NoError(t, m.RetryCurrent())
	s := m.Snapshot()
	assert.Equal(t, "", s.Answers[0])
	assert.Equal(t, 30, s.TimeLeft)
}

func TestMachine_RetryFollowUpKeepsTimer(t *testing.T) {
	m := newActiveMachine(t, 1, 30)
	require.NoError(t, m.SetAnswer("main"))
	_, err := m.RequestAdvance(strPtr("Follow?"))
	require.NoError(t, err)
	require.NoError(t, m.SetAnswer("partial"))
	for i := 0; i < 5; i++ {
		m.Tick()
	}

	require.NoError(t, m.RetryCurrent())
	s := m.Snapshot()
	assert.Equal(t, "", s.FollowUpAnswer)
	assert.Equal(t, "main", s.Answers[0])
	assert.Equal(t, 25, s.TimeLeft)
	assert.True(t, s.FollowUpActive)
}

func TestMachine_TickForcesAdvanceAtZero(t *testing.T) {
	m := newActiveMachine(t, 2, 2)

	tr, fired := m.Tick()
	assert.False(t, fired)
	assert.Equal(t, TransitionNone, tr)

	tr, fired = m.Tick()
	assert.True(t, fired)
	assert.Equal(t, TransitionNextQuestion, tr)
	assert.Equal(t, 2, m.Snapshot().TimeLeft)

	m.Tick()
	tr, fired = m.Tick()
	assert.True(t, fired)
	assert.Equal(t, TransitionFinished, tr)

	tr, fired = m.Tick()
	assert.False(t, fired)
	assert.Equal(t, TransitionNone, tr)
	assert.Equal(t, entity.PhaseFinished, m.Phase())
}

func TestMachine_ZeroTimeLimitAdvancesOnFirstTick(t *testing.T) {
	m := newActiveMachine(t, 1, 0)
	tr, fired := m.Tick()
	assert.True(t, fired)
	assert.Equal(t, TransitionFinished, tr)
}

func TestMachine_FollowUpGeneratedOncePerQuestion(t *testing.T) {
	m := newActiveMachine(t, 2, 60)
	require.NoError(t, m.SetAnswer("answer"))

	_, _, ok := m.FollowUpCandidate()
	require.True(t, ok)

	_, err := m.RequestAdvance(strPtr("First follow-up"))
	require.NoError(t, err)

	_, _, ok = m.FollowUpCandidate()
	assert.False(t, ok)
	assert.Equal(t, "First follow-up", m.Snapshot().Questions[0].FollowUp)
}

func TestMachine_Position(t *testing.T) {
	m := newActiveMachine(t, 2, 60)
	assert.Equal(t, Position{Index: 0, Step: entity.StepMainAnswer}, m.Position())

	require.NoError(t, m.SetAnswer("x"))
	_, err := m.RequestAdvance(strPtr("y?"))
	require.NoError(t, err)
	assert.Equal(t, Position{Index: 0, Step: entity.StepFollowUpAnswer}, m.Position())
}

func TestMachine_SnapshotIsACopy(t *testing.T) {
	m := newActiveMachine(t, 1, 60)
	s := m.Snapshot()
	s.Answers[0] = "mutated"
	s.Questions[0].Text = "mutated"

	fresh := m.Snapshot()
	assert.Equal(t, "", fresh.Answers[0])
	assert.NotEqual(t, "mutated", fresh.Questions[0].Text)
}
