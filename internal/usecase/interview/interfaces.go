package interview

import (
	"context"
)

// Completer sends one prompt to a generative model and returns its text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
