package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions(ctx context.Context) []retry.Option {
	attempts := rc.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	}
}

// Do runs fn until it succeeds, ctx ends or the attempts run out. Errors
// marked with Unrecoverable stop immediately.
func Do[T any](ctx context.Context, rc RetryConfig, fn func() (T, error), onRetry func(n uint, err error)) (T, error) {
	opts := rc.ToRetryOptions(ctx)
	if onRetry != nil {
		opts = append(opts, retry.OnRetry(onRetry))
	}
	return retry.DoWithData(fn, opts...)
}

// Unrecoverable wraps err so that Do gives up on it.
func Unrecoverable(err error) error {
	return retry.Unrecoverable(err)
}
