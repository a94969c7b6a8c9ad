package subscription

import (
	"context"
	rand "math/rand/v2"
	"time"

	"github.com/arloliu/edgepart/types"
)

// retryBackoff produces decorrelated jitter delays with a cap.
// See: https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/
//
// Given the previous delay prev, the next delay is drawn from
// [base, prev*mult) and clamped to capDur. The first delay is base.
type retryBackoff struct {
	base   time.Duration
	capDur time.Duration
	mult   float64
	rng    types.Rand
	prev   time.Duration
}

func newRetryBackoff(base, capDur time.Duration, rng types.Rand) *retryBackoff {
	if base <= 0 {
		base = DefaultRetryBase
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // non-crypto backoff jitter
	}

	return &retryBackoff{base: base, capDur: capDur, mult: retryMultiplier, rng: rng}
}

// next returns the next delay and remembers it.
func (b *retryBackoff) next() time.Duration {
	d := b.base
	if b.prev > 0 {
		span := time.Duration(float64(b.prev)*b.mult) - b.base
		if span <= 0 {
			span = b.base
		}
		d = b.base + time.Duration(b.rng.IntN(int(span)))
	}
	if b.capDur > 0 && d > b.capDur {
		d = b.capDur
	}
	b.prev = d

	return d
}

// reset starts the sequence over from base.
func (b *retryBackoff) reset() {
	b.prev = 0
}

// wait sleeps for the next delay or until ctx is done.
func (b *retryBackoff) wait(ctx context.Context) error {
	timer := time.NewTimer(b.next())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
