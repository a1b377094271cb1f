package kernel

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type proberFunc func(msgID string) (Status, error)

func (f proberFunc) Status(msgID string) (Status, error) { return f(msgID) }

func TestAwaiterImmediatelyIdle(t *testing.T) {
	t.Parallel()

	a := Awaiter{
		Prober: proberFunc(func(string) (Status, error) {
			return StatusIdle, nil
		}),
	}
	assert.NoError(t, a.AwaitIdle("msg-1", time.Second))
}

func TestAwaiterProberError(t *testing.T) {
	t.Parallel()

	a := Awaiter{
		Prober: proberFunc(func(string) (Status, error) {
			return StatusBusy, errors.New("great sadness")
		}),
	}
	err := a.AwaitIdle("msg-1", time.Second)
	require.Error(t, err)
	assert.ErrorContains(t, err, "great sadness")
}

func TestAwaiterEventuallyIdle(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()

	polls := 0
	a := Awaiter{
		Prober: proberFunc(func(string) (Status, error) {
			polls++
			if polls >= 3 {
				return StatusIdle, nil
			}
			return StatusBusy, nil
		}),
		Interval: time.Second,
		Clock:    clk,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- a.AwaitIdle("msg-1", time.Minute)
	}()

	for {
		select {
		case err := <-errc:
			require.NoError(t, err)
			return
		default:
			clk.Add(time.Second)
		}
	}
}

// A kernel that never reports idle must not hang the test run: the awaiter
// gives up once the timeout has elapsed.
func TestAwaiterTimeout(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()

	a := Awaiter{
		Prober: proberFunc(func(string) (Status, error) {
			return StatusBusy, nil
		}),
		Interval: time.Second,
		Clock:    clk,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- a.AwaitIdle("msg-1", time.Second)
	}()

	for {
		select {
		case err := <-errc:
			assert.ErrorIs(t, err, ErrIdleTimeout)
			return
		default:
			clk.Add(time.Second)
		}
	}
}
