package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/futig/mock-interview/internal/entity"
)

const (
	MsgWelcome = `Mock interview
Type your answer, one or more lines. Commands:
  (empty line) or /next   submit the answer
  /retry                  clear the answer and start it over
  /time                   show the time left
  /quit                   leave the interview`

	MsgAskRole      = "Which job role are you interviewing for?"
	MsgGenerating   = "Generating %d %s questions for %s..."
	MsgQuestion     = "\nQuestion %d of %d: %s"
	MsgFollowUp     = "\nFollow-up: %s"
	MsgTimeLeft     = "Time left: %s"
	MsgTimeWarning  = "10 seconds left."
	MsgTimesUp      = "Time's up! Moving on."
	MsgAnswerSaved  = "(answer saved, submit with an empty line)"
	MsgCleared      = "Answer cleared."
	MsgFinished     = "\nInterview complete."
	MsgEvaluating   = "Evaluating your answers..."
	MsgRetryPrompt  = "Evaluation failed. Try again? [y/N]"
	MsgReportSaved  = "Report saved to %s"
	MsgOverall      = "Overall score: %.1f/10"
	MsgItemScore    = "  Q%d: %s (%s)"
	MsgCancelled    = "Interview cancelled."
	MsgStillWorking = "Still working..."

	ErrGeneric            = "Something went wrong. Please try again."
	ErrTimeout            = "The model took too long to answer. Please try again."
	ErrNetworkIssue       = "Could not reach the model service. Check your connection."
	ErrModelUnavailable   = "The model service failed. Please try again."
	ErrModelOutput        = "The model returned something unexpected. Please try again."
	ErrMissingAPIKey      = "GEMINI_API_KEY is not set."
	ErrAnswerRequired     = "Please type an answer before moving on."
	ErrSessionExpired     = "This interview is no longer available."
	ErrInvalidInput       = "Invalid interview settings: %s"
	ErrEvaluationNotReady = "The evaluation is not ready yet."
)

var progressMessages = []string{
	MsgStillWorking,
	"This takes a little longer than usual...",
	"Almost there...",
}

// ClassifyError turns an error into a message for the participant.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, entity.ErrAnswerRequired):
		return ErrAnswerRequired
	case errors.Is(err, entity.ErrMissingAPIKey):
		return ErrMissingAPIKey
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, entity.ErrMalformedModelOutput):
		return ErrModelOutput
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrSessionClosed):
		return ErrSessionExpired
	case errors.Is(err, entity.ErrEvaluationNotReady), errors.Is(err, entity.ErrEvaluationRunning):
		return ErrEvaluationNotReady
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField):
		return fmt.Sprintf(ErrInvalidInput, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	if errors.Is(err, entity.ErrModelCallFailed) {
		if strings.Contains(err.Error(), "connection refused") {
			return ErrNetworkIssue
		}
		return ErrModelUnavailable
	}
	return ErrGeneric
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
