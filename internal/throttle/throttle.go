package throttle

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBackoffBase = 2 * time.Second
	defaultBackoffMax  = 60 * time.Second
	defaultJitterSpan  = time.Second
)

// Throttle is a pure time-gate in front of outbound requests: a minimum
// spacing between calls plus random jitter, and exponential backoff when
// the site pushes back. It knows nothing about HTTP.
type Throttle struct {
	limiter *rate.Limiter
	base    time.Duration
	max     time.Duration

	// Jitter and Sleep are swappable so tests can run on a fake clock.
	Jitter func() time.Duration
	Sleep  func(ctx context.Context, d time.Duration) error
}

// New builds a throttle enforcing at least `every` between calls.
// every <= 0 disables the spacing (and the jitter with it).
func New(every time.Duration) *Throttle {
	t := &Throttle{
		limiter: rate.NewLimiter(rate.Every(every), 1),
		base:    defaultBackoffBase,
		max:     defaultBackoffMax,
		Sleep:   sleepCtx,
	}
	if every > 0 {
		t.Jitter = func() time.Duration {
			return time.Duration(rand.Int63n(int64(defaultJitterSpan)))
		}
	} else {
		t.Jitter = func() time.Duration { return 0 }
	}
	return t
}

// SetBackoff overrides the exponential backoff base and cap.
func (t *Throttle) SetBackoff(base, max time.Duration) {
	if base > 0 {
		t.base = base
	}
	if max > 0 {
		t.max = max
	}
}

// Wait blocks until at least the configured interval has passed since
// the previous Wait returned. The jitter sleep happens before the
// limiter token is taken: returns line up with the token grants, which
// are always at least the interval apart, so jitter is only ever added
// to the spacing, never subtracted from it.
func (t *Throttle) Wait(ctx context.Context) error {
	if j := t.Jitter(); j > 0 {
		if err := t.Sleep(ctx, j); err != nil {
			return err
		}
	}
	return t.limiter.Wait(ctx)
}

// Backoff blocks for base << attempt, capped. attempt counts from 1.
func (t *Throttle) Backoff(ctx context.Context, attempt int) error {
	if attempt < 1 {
		attempt = 1
	}
	d := t.base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= t.max {
			d = t.max
			break
		}
	}
	if d > t.max {
		d = t.max
	}
	return t.Sleep(ctx, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
