// Package cli runs one interview in a terminal on top of the interview use
// case.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/futig/mock-interview/internal/entity"
	"github.com/futig/mock-interview/internal/pkg/formatter"
)

var (
	ErrQuit        = errors.New("interview abandoned")
	ErrInputClosed = errors.New("input closed")
)

const timeWarningAt = 10

type Options struct {
	Format           entity.ResultFormat
	OutputDir        string
	PollInterval     time.Duration
	ProgressInterval time.Duration
}

func (o *Options) setDefaults() {
	if o.Format == "" {
		o.Format = entity.FormatPDF
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 500 * time.Millisecond
	}
}

// Terminal drives a session from line-based input.
type Terminal struct {
	uc         InterviewUsecase
	formatters *formatter.Factory
	in         io.Reader
	out        io.Writer
	opts       Options
}

func NewTerminal(uc InterviewUsecase, formatters *formatter.Factory, in io.Reader, out io.Writer, opts Options) *Terminal {
	opts.setDefaults()
	return &Terminal{
		uc:         uc,
		formatters: formatters,
		in:         in,
		out:        &lockedWriter{w: out},
		opts:       opts,
	}
}

// Run conducts one interview and returns the path of the written report.
func (t *Terminal) Run(ctx context.Context, cfg entity.InterviewConfig) (string, error) {
	lines := t.readLines(ctx)

	t.println(MsgWelcome)

	if strings.TrimSpace(cfg.JobRole) == "" {
		t.println(MsgAskRole)
		role, err := t.nextLine(ctx, lines)
		if err != nil {
			return "", err
		}
		cfg.JobRole = strings.TrimSpace(role)
	}

	t.printf(MsgGenerating+"\n", cfg.NumQuestions, cfg.InterviewType, cfg.JobRole)
	s, err := withProgress(ctx, t, func() (*entity.Session, error) {
		return t.uc.StartSession(ctx, cfg)
	})
	if err != nil {
		t.println(ClassifyError(err))
		return "", err
	}
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("session_id", s.ID)))

	if err := t.interview(ctx, s, lines); err != nil {
		if cancelErr := t.uc.CancelSession(context.WithoutCancel(ctx), s.ID); cancelErr != nil {
			ctxzap.Warn(ctx, "failed to cancel session", zap.Error(cancelErr))
		}
		t.println(MsgCancelled)
		return "", err
	}

	t.evaluate(ctx, s.ID, lines)

	path, err := t.writeReport(ctx, s.ID)
	if err != nil {
		t.println(ClassifyError(err))
		return "", err
	}
	return path, nil
}

type position struct {
	index int
	step  entity.AnswerStep
	phase entity.SessionPhase
}

func positionOf(s *entity.Session) position {
	return position{index: s.CurrentIndex, step: s.Step, phase: s.Phase}
}

type interviewState struct {
	session *entity.Session
	last    position
	buffer  []string
	warned  bool
}

func (t *Terminal) interview(ctx context.Context, s *entity.Session, lines <-chan string) error {
	st := &interviewState{session: s, last: positionOf(s)}
	t.printPrompt(s)

	poll := time.NewTicker(t.opts.PollInterval)
	defer poll.Stop()

	for st.session.Phase != entity.PhaseFinished {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				return ErrInputClosed
			}
			next, err := t.handleLine(ctx, st, line)
			if errors.Is(err, ErrQuit) {
				return err
			}
			if err != nil {
				t.println(ClassifyError(err))
				if errors.Is(err, entity.ErrSessionNotFound) {
					return err
				}
				continue
			}
			if next != nil {
				t.observe(st, next)
			}

		case <-poll.C:
			next, err := t.uc.GetSession(ctx, st.session.ID)
			if err != nil {
				t.println(ClassifyError(err))
				return err
			}
			t.observe(st, next)
		}
	}

	t.println(MsgFinished)
	return nil
}

func (t *Terminal) handleLine(ctx context.Context, st *interviewState, line string) (*entity.Session, error) {
	id := st.session.ID

	switch strings.TrimSpace(line) {
	case "", "/next":
		return withProgress(ctx, t, func() (*entity.Session, error) {
			return t.uc.Advance(ctx, id)
		})
	case "/retry":
		s, err := t.uc.Retry(ctx, id)
		if err != nil {
			return nil, err
		}
		st.buffer = nil
		t.println(MsgCleared)
		return s, nil
	case "/time":
		s, err := t.uc.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		t.printf(MsgTimeLeft+"\n", formatClock(s.TimeLeft))
		return s, nil
	case "/quit":
		return nil, ErrQuit
	}

	st.buffer = append(st.buffer, strings.TrimRight(line, "\r"))
	return t.uc.SetAnswer(ctx, id, strings.Join(st.buffer, "\n"))
}

// observe reports what changed since the last known state, including moves
// made by the countdown.
func (t *Terminal) observe(st *interviewState, next *entity.Session) {
	st.session = next
	pos := positionOf(next)

	if pos != st.last {
		st.last = pos
		st.buffer = nil
		st.warned = false
		if next.TimesUp {
			t.println(MsgTimesUp)
		}
		if next.Phase == entity.PhaseActive {
			t.printPrompt(next)
		}
		return
	}

	if next.Phase == entity.PhaseActive && !st.warned &&
		next.Config.TimePerQuestion > timeWarningAt && next.TimeLeft <= timeWarningAt {
		st.warned = true
		t.println(MsgTimeWarning)
	}
}

func (t *Terminal) printPrompt(s *entity.Session) {
	if s.Phase != entity.PhaseActive {
		return
	}
	if s.FollowUpActive {
		t.printf(MsgFollowUp+"\n", s.CurrentPrompt())
	} else {
		t.printf(MsgQuestion+"\n", s.CurrentIndex+1, len(s.Questions), s.CurrentPrompt())
	}
	t.printf(MsgTimeLeft+"\n", formatClock(s.TimeLeft))
}

func (t *Terminal) evaluate(ctx context.Context, id string, lines <-chan string) {
	t.println(MsgEvaluating)

	for {
		state, err := withProgress(ctx, t, func() (*entity.EvaluationState, error) {
			return t.waitEvaluation(ctx, id)
		})
		if err != nil {
			t.println(ClassifyError(err))
			return
		}
		if state.Status == entity.EvaluationDone {
			return
		}

		ctxzap.Warn(ctx, "evaluation failed", zap.String("error", state.Error))
		t.println(MsgRetryPrompt)
		answer, err := t.nextLine(ctx, lines)
		if err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return
		}

		if _, err := t.uc.RetryEvaluation(ctx, id); err != nil && !errors.Is(err, entity.ErrMalformedModelOutput) && !errors.Is(err, entity.ErrModelCallFailed) {
			t.println(ClassifyError(err))
			return
		}
	}
}

// waitEvaluation polls until the evaluation settles.
func (t *Terminal) waitEvaluation(ctx context.Context, id string) (*entity.EvaluationState, error) {
	poll := time.NewTicker(t.opts.PollInterval)
	defer poll.Stop()

	for {
		state, err := t.uc.GetEvaluation(ctx, id)
		if err != nil {
			return nil, err
		}
		if state.Status == entity.EvaluationDone || state.Status == entity.EvaluationFailed {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-poll.C:
		}
	}
}

func (t *Terminal) writeReport(ctx context.Context, id string) (string, error) {
	report, err := t.uc.GetReport(ctx, id)
	if err != nil {
		return "", err
	}

	fmtr, err := t.formatters.Create(t.opts.Format)
	if err != nil {
		return "", err
	}
	body, err := fmtr.Format(report)
	if err != nil {
		return "", fmt.Errorf("format report: %w", err)
	}

	path := filepath.Join(t.opts.OutputDir, formatter.Filename(fmtr))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	t.printSummary(report)
	t.printf(MsgReportSaved+"\n", path)
	return path, nil
}

func (t *Terminal) printSummary(r *entity.Report) {
	if r.AverageScore == nil {
		return
	}
	t.printf(MsgOverall+"\n", *r.AverageScore)
	for _, item := range r.Items {
		if item.Evaluation == nil {
			continue
		}
		t.printf(MsgItemScore+"\n", item.Number,
			fmt.Sprintf("%g/10", item.Evaluation.Score), item.Evaluation.Sentiment)
	}
}

func (t *Terminal) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func (t *Terminal) nextLine(ctx context.Context, lines <-chan string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", ErrInputClosed
		}
		return line, nil
	}
}

func (t *Terminal) println(msg string) {
	fmt.Fprintln(t.out, msg)
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// lockedWriter serializes progress lines with the main loop's output.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func withProgress[T any](ctx context.Context, t *Terminal, fn func() (T, error)) (T, error) {
	pn := NewProgressNotifier(t.out, t.opts.ProgressInterval)
	pn.Start(ctx)
	defer pn.Stop()
	return fn()
}
