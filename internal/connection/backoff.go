package connection

import (
	"math"
	"time"
)

// Backoff computes the delay before a reconnect attempt.
type Backoff interface {
	// Delay returns the wait before attempt n, counting from 1.
	Delay(attempt int) time.Duration
}

// ExponentialBackoff grows the delay by Factor per attempt, capped at Max:
// min(Base * Factor^(attempt-1), Max).
type ExponentialBackoff struct {
	Base   time.Duration
	Factor float64
	Max    time.Duration
}

// DefaultBackoff returns 3s growing by 1.5x up to 30s.
func DefaultBackoff() ExponentialBackoff {
	return ExponentialBackoff{
		Base:   3 * time.Second,
		Factor: 1.5,
		Max:    30 * time.Second,
	}
}

// Delay implements Backoff.
func (b ExponentialBackoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(b.Base) * math.Pow(b.Factor, float64(attempt-1))
	if b.Max > 0 && d > float64(b.Max) {
		return b.Max
	}
	return time.Duration(d)
}

// FixedBackoff waits the same interval before every attempt.
type FixedBackoff struct {
	Interval time.Duration
}

// Delay implements Backoff.
func (b FixedBackoff) Delay(int) time.Duration {
	return b.Interval
}

// Retry policy names.
const (
	PolicyExponential = "exponential"
	PolicyFixed       = "fixed"
)

// NewBackoff builds the backoff for a retry policy name. The fixed policy
// waits base before every attempt; any other name is exponential.
func NewBackoff(policy string, base time.Duration, factor float64, max time.Duration) Backoff {
	if policy == PolicyFixed {
		return FixedBackoff{Interval: base}
	}
	return ExponentialBackoff{Base: base, Factor: factor, Max: max}
}
