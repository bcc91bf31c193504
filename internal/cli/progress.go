package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

const progressInterval = 10 * time.Second

// ProgressNotifier prints a reassuring line at an interval while a long
// model call is in flight.
type ProgressNotifier struct {
	out      io.Writer
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewProgressNotifier(out io.Writer, interval time.Duration) *ProgressNotifier {
	if interval <= 0 {
		interval = progressInterval
	}
	return &ProgressNotifier{
		out:      out,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (pn *ProgressNotifier) Start(ctx context.Context) {
	pn.wg.Add(1)
	go func() {
		defer pn.wg.Done()

		ticker := time.NewTicker(pn.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-ticker.C:
				fmt.Fprintln(pn.out, progressMessages[i%len(progressMessages)])
			case <-pn.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop is safe to call more than once. No line is printed after it returns.
func (pn *ProgressNotifier) Stop() {
	pn.stopOnce.Do(func() {
		close(pn.done)
	})
	pn.wg.Wait()
}
