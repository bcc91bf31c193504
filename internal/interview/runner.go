package interview

import (
	"context"
	"sync"
	"time"

	"github.com/futig/mock-interview/internal/entity"
)

// FollowUpCandidate is what an advance needs to decide on a follow-up.
type FollowUpCandidate struct {
	Position Position
	Question string
	Answer   string
	Needed   bool
}

type RunnerOption func(*Runner)

// WithTickSource replaces the one-second ticker, mainly for tests.
func WithTickSource(ticks <-chan time.Time) RunnerOption {
	return func(r *Runner) {
		r.ticks = ticks
		r.stopTicker = func() {}
	}
}

// WithFinishHook registers fn to run once, in its own goroutine, when the
// session reaches the finished phase.
func WithFinishHook(fn func(entity.Session)) RunnerOption {
	return func(r *Runner) {
		r.onFinish = fn
	}
}

// WithTransitionHook registers fn to run inside the session loop after every
// transition, including timer-driven ones. fn must not call back into the
// runner.
func WithTransitionHook(fn func(Transition, entity.Session)) RunnerOption {
	return func(r *Runner) {
		r.onTransition = fn
	}
}

// Runner serializes everything that happens to one session: participant
// commands, recognized speech and timer ticks are applied one at a time by a
// single goroutine.
type Runner struct {
	machine *Machine
	bridge  *Bridge

	commands     chan func()
	ticks        <-chan time.Time
	stopTicker   func()
	onFinish     func(entity.Session)
	onTransition func(Transition, entity.Session)
	finished     bool

	quit     chan struct{}
	done     chan struct{}
	startOne sync.Once
	stopOnce sync.Once
}

func NewRunner(machine *Machine, bridge *Bridge, opts ...RunnerOption) *Runner {
	r := &Runner{
		machine:  machine,
		bridge:   bridge,
		commands: make(chan func()),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the session loop. Calling it more than once is a no-op.
func (r *Runner) Start() {
	r.startOne.Do(func() {
		if r.ticks == nil {
			ticker := time.NewTicker(time.Second)
			r.ticks = ticker.C
			r.stopTicker = ticker.Stop
		}
		if r.machine.Phase() == entity.PhaseFinished {
			r.finish()
		}
		go r.loop()
	})
}

// Stop ends the loop and waits for it to exit.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.quit)
	})
	// a runner that never started has no loop to close done
	r.startOne.Do(func() { close(r.done) })
	<-r.done
}

// Done is closed once the loop has exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) loop() {
	defer close(r.done)
	defer func() {
		if r.stopTicker != nil {
			r.stopTicker()
		}
	}()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.commands:
			cmd()
		case <-r.ticks:
			if t, fired := r.machine.Tick(); fired {
				r.afterTransition(t)
			}
		}
	}
}

func (r *Runner) afterTransition(t Transition) {
	switch t {
	case TransitionFollowUp:
		r.bridge.Restart()
	case TransitionFinished:
		r.finish()
	}
	if t != TransitionNone && r.onTransition != nil {
		r.onTransition(t, r.snapshot())
	}
}

func (r *Runner) finish() {
	if r.finished {
		return
	}
	r.finished = true
	r.bridge.Stop()
	if r.stopTicker != nil {
		r.stopTicker()
	}
	r.ticks = nil
	if r.onFinish != nil {
		go r.onFinish(r.snapshot())
	}
}

func (r *Runner) snapshot() entity.Session {
	s := r.machine.Snapshot()
	s.Transcription = r.bridge.State()
	return s
}

// do runs fn on the session loop and waits for it.
func (r *Runner) do(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	cmd := func() { errCh <- fn() }

	select {
	case r.commands <- cmd:
	case <-r.quit:
		return entity.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current session state.
func (r *Runner) Snapshot(ctx context.Context) (entity.Session, error) {
	var s entity.Session
	err := r.do(ctx, func() error {
		s = r.snapshot()
		return nil
	})
	return s, err
}

func (r *Runner) SetAnswer(ctx context.Context, text string) (entity.Session, error) {
	var s entity.Session
	err := r.do(ctx, func() error {
		if err := r.machine.SetAnswer(text); err != nil {
			return err
		}
		s = r.snapshot()
		return nil
	})
	return s, err
}

// FollowUpCandidate captures the current position together with what a
// follow-up question would be generated from.
func (r *Runner) FollowUpCandidate(ctx context.Context) (FollowUpCandidate, error) {
	var c FollowUpCandidate
	err := r.do(ctx, func() error {
		if r.machine.Phase() != entity.PhaseActive {
			return entity.ErrSessionNotActive
		}
		c.Position = r.machine.Position()
		c.Question, c.Answer, c.Needed = r.machine.FollowUpCandidate()
		return nil
	})
	return c, err
}

// Advance applies a participant advance made against pos. If the session has
// moved since pos was captured the request is rejected unchanged.
func (r *Runner) Advance(ctx context.Context, pos Position, followUp *string) (entity.Session, Transition, error) {
	var (
		s entity.Session
		t Transition
	)
	err := r.do(ctx, func() error {
		if r.machine.Phase() != entity.PhaseActive {
			return entity.ErrSessionNotActive
		}
		if r.machine.Position() != pos {
			return entity.ErrStalePosition
		}
		var err error
		t, err = r.machine.RequestAdvance(followUp)
		if err != nil {
			return err
		}
		r.afterTransition(t)
		s = r.snapshot()
		return nil
	})
	return s, t, err
}

func (r *Runner) Retry(ctx context.Context) (entity.Session, error) {
	var s entity.Session
	err := r.do(ctx, func() error {
		if err := r.machine.RetryCurrent(); err != nil {
			return err
		}
		s = r.snapshot()
		return nil
	})
	return s, err
}

func (r *Runner) StartTranscription(ctx context.Context) (entity.Session, error) {
	var s entity.Session
	err := r.do(ctx, func() error {
		if r.machine.Phase() != entity.PhaseActive {
			return entity.ErrSessionNotActive
		}
		if _, err := r.bridge.Start(); err != nil {
			return err
		}
		s = r.snapshot()
		return nil
	})
	return s, err
}

func (r *Runner) StopTranscription(ctx context.Context) (entity.Session, error) {
	var s entity.Session
	err := r.do(ctx, func() error {
		r.bridge.Stop()
		s = r.snapshot()
		return nil
	})
	return s, err
}

// DeliverTranscript hands recognized text tagged with generation to the
// bridge. delivered is false when the text was stale and dropped.
func (r *Runner) DeliverTranscript(ctx context.Context, generation uint64, text string) (s entity.Session, delivered bool, err error) {
	err = r.do(ctx, func() error {
		var derr error
		delivered, derr = r.bridge.Deliver(r.machine, generation, text)
		if derr != nil {
			return derr
		}
		s = r.snapshot()
		return nil
	})
	return s, delivered, err
}

// Recognizer is immutable for the session's lifetime and safe to use
// outside the loop.
func (r *Runner) Recognizer() Recognizer {
	return r.bridge.Recognizer()
}
