// Package interview holds the interview session state machine, its
// countdown, the speech-to-text bridge and the runner that serializes
// everything that happens to one session.
package interview

import (
	"fmt"
	"strings"

	"github.com/futig/mock-interview/internal/entity"
)

// Transition describes what an advance did to the session.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionFollowUp
	TransitionNextQuestion
	TransitionFinished
)

func (t Transition) String() string {
	switch t {
	case TransitionFollowUp:
		return "follow_up"
	case TransitionNextQuestion:
		return "next_question"
	case TransitionFinished:
		return "finished"
	default:
		return "none"
	}
}

// Position identifies the question and sub-state a request was made against.
type Position struct {
	Index int
	Step  entity.AnswerStep
}

// Machine is the pure state of one interview. It is not safe for concurrent
// use; Runner owns it.
type Machine struct {
	config          entity.InterviewConfig
	phase           entity.SessionPhase
	questions       []entity.Question
	answers         []string
	followUpAnswers []string
	current         int
	followUpActive  bool
	followUpAnswer  string
	timer           Countdown
	timesUp         bool
}

func NewMachine(cfg entity.InterviewConfig) *Machine {
	return &Machine{
		config: cfg,
		phase:  entity.PhaseInitializing,
	}
}

// Initialize moves the machine to the first question.
func (m *Machine) Initialize(questions []entity.Question) error {
	if m.phase != entity.PhaseInitializing {
		return entity.ErrSessionInitialized
	}
	if len(questions) == 0 {
		return entity.ErrNoQuestions
	}

	m.questions = append([]entity.Question(nil), questions...)
	m.answers = make([]string, len(questions))
	m.followUpAnswers = make([]string, len(questions))
	m.current = 0
	m.followUpActive = false
	m.followUpAnswer = ""
	m.timer = NewCountdown(m.config.TimePerQuestion)
	m.phase = entity.PhaseActive
	return nil
}

// SetAnswer replaces the buffer for whichever sub-state is live.
func (m *Machine) SetAnswer(text string) error {
	if m.phase != entity.PhaseActive {
		return entity.ErrSessionNotActive
	}
	if m.followUpActive {
		m.followUpAnswer = text
	} else {
		m.answers[m.current] = text
	}
	return nil
}

// RequestAdvance is the participant-initiated advance. followUp carries the
// follow-up question generated for the current answer, nil when there is none.
func (m *Machine) RequestAdvance(followUp *string) (Transition, error) {
	if m.phase != entity.PhaseActive {
		return TransitionNone, entity.ErrSessionNotActive
	}

	if m.followUpActive {
		if isBlank(m.followUpAnswer) {
			return TransitionNone, entity.ErrAnswerRequired
		}
		m.timesUp = false
		return m.nextQuestion(), nil
	}

	if isBlank(m.answers[m.current]) {
		return TransitionNone, entity.ErrAnswerRequired
	}
	m.timesUp = false

	q := &m.questions[m.current]
	if followUp != nil && !isBlank(*followUp) && !q.HasFollowUp() {
		q.FollowUp = strings.TrimSpace(*followUp)
		m.followUpActive = true
		m.followUpAnswer = ""
		return TransitionFollowUp, nil
	}
	return m.nextQuestion(), nil
}

// ForceAdvance is the timer-initiated advance. It never asks for a follow-up
// and never requires an answer.
func (m *Machine) ForceAdvance() (Transition, error) {
	if m.phase != entity.PhaseActive {
		return TransitionNone, entity.ErrSessionNotActive
	}
	m.timesUp = true
	return m.nextQuestion(), nil
}

// RetryCurrent clears the live answer buffer. Retrying the main answer also
// restarts the countdown; retrying a follow-up answer does not.
func (m *Machine) RetryCurrent() error {
	if m.phase != entity.PhaseActive {
		return entity.ErrSessionNotActive
	}
	if m.followUpActive {
		m.followUpAnswer = ""
		return nil
	}
	m.answers[m.current] = ""
	m.timer.Reset(m.config.TimePerQuestion)
	return nil
}

// Tick advances the countdown by one second and force-advances on expiry.
func (m *Machine) Tick() (Transition, bool) {
	if m.phase != entity.PhaseActive {
		return TransitionNone, false
	}
	if !m.timer.Tick() {
		return TransitionNone, false
	}
	t, err := m.ForceAdvance()
	if err != nil {
		return TransitionNone, false
	}
	return t, true
}

// FollowUpCandidate returns the question and answer to ask a follow-up about.
// ok is false when the session is not waiting on a main answer that could
// earn one.
func (m *Machine) FollowUpCandidate() (question, answer string, ok bool) {
	if m.phase != entity.PhaseActive || m.followUpActive {
		return "", "", false
	}
	q := m.questions[m.current]
	a := m.answers[m.current]
	if q.HasFollowUp() || isBlank(a) {
		return "", "", false
	}
	return q.Text, a, true
}

func (m *Machine) Position() Position {
	return Position{Index: m.current, Step: m.step()}
}

func (m *Machine) Phase() entity.SessionPhase {
	return m.phase
}

// Snapshot copies the observable state.
func (m *Machine) Snapshot() entity.Session {
	s := entity.Session{
		Config:          m.config,
		Phase:           m.phase,
		Questions:       append([]entity.Question(nil), m.questions...),
		Answers:         append([]string(nil), m.answers...),
		FollowUpAnswers: append([]string(nil), m.followUpAnswers...),
		CurrentIndex:    m.current,
		FollowUpActive:  m.followUpActive,
		FollowUpAnswer:  m.followUpAnswer,
		TimeLeft:        m.timer.Remaining(),
		TimesUp:         m.timesUp,
	}
	if m.phase == entity.PhaseActive {
		s.Step = m.step()
	}
	return s
}

func (m *Machine) String() string {
	return fmt.Sprintf("phase=%s index=%d step=%s left=%d", m.phase, m.current, m.step(), m.timer.Remaining())
}

func (m *Machine) step() entity.AnswerStep {
	if m.followUpActive {
		return entity.StepFollowUpAnswer
	}
	return entity.StepMainAnswer
}

func (m *Machine) nextQuestion() Transition {
	if m.followUpActive {
		m.followUpAnswers[m.current] = m.followUpAnswer
	}
	m.followUpActive = false
	m.followUpAnswer = ""

	if m.current == len(m.questions)-1 {
		m.phase = entity.PhaseFinished
		return TransitionFinished
	}
	m.current++
	m.timer.Reset(m.config.TimePerQuestion)
	return TransitionNextQuestion
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
