package kernel

import (
	"time"

	"github.com/benbjohnson/clock"
)

const _defaultInterval = 50 * time.Millisecond

// Awaiter turns a StatusProber into the blocking AwaitIdle call that
// [Kernel] requires. Drivers embed or delegate to it rather than writing
// their own bounded polling loop.
type Awaiter struct {
	Prober StatusProber // required

	// Time between polls. Defaults to 50 milliseconds.
	Interval time.Duration

	Clock clock.Clock
}

// AwaitIdle polls the prober until the request reports idle. It gives up
// with ErrIdleTimeout once the timeout has elapsed.
func (a *Awaiter) AwaitIdle(msgID string, timeout time.Duration) error {
	interval := a.Interval
	if interval == 0 {
		interval = _defaultInterval
	}
	clk := a.Clock
	if clk == nil {
		clk = clock.New()
	}

	deadline := clk.Timer(timeout)
	defer deadline.Stop()

	ticker := clk.Ticker(interval)
	defer ticker.Stop()

	for {
		status, err := a.Prober.Status(msgID)
		if err != nil {
			return err
		}
		if status == StatusIdle {
			return nil
		}

		select {
		case <-deadline.C:
			return ErrIdleTimeout
		case <-ticker.C:
		}
	}
}
