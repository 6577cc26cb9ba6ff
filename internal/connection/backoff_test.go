package connection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Delay(t *testing.T) {
	b := DefaultBackoff()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 3 * time.Second},
		{1, 3 * time.Second},
		{2, 4500 * time.Millisecond},
		{3, 6750 * time.Millisecond},
		{4, 10125 * time.Millisecond},
		{5, 15187500 * time.Microsecond},
		{6, 22781250 * time.Microsecond},
		{7, 30 * time.Second},
		{20, 30 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestExponentialBackoff_Monotonic(t *testing.T) {
	b := ExponentialBackoff{Base: time.Second, Factor: 2, Max: time.Minute}

	prev := time.Duration(0)
	for n := 1; n <= 12; n++ {
		d := b.Delay(n)
		assert.GreaterOrEqual(t, d, prev)
		assert.LessOrEqual(t, d, time.Minute)
		prev = d
	}
}

func TestExponentialBackoff_NoMax(t *testing.T) {
	b := ExponentialBackoff{Base: time.Second, Factor: 2}
	assert.Equal(t, 8*time.Second, b.Delay(4))
}

func TestFixedBackoff_Delay(t *testing.T) {
	b := FixedBackoff{Interval: 3 * time.Second}
	for n := 1; n <= 5; n++ {
		assert.Equal(t, 3*time.Second, b.Delay(n))
	}
}

func TestReconnectingStatus(t *testing.T) {
	tests := []struct {
		delay time.Duration
		want  string
	}{
		{3 * time.Second, "Reconnecting in 3s..."},
		{4500 * time.Millisecond, "Reconnecting in 5s..."},
		{6750 * time.Millisecond, "Reconnecting in 7s..."},
		{10125 * time.Millisecond, "Reconnecting in 10s..."},
		{30 * time.Second, "Reconnecting in 30s..."},
	}

	for _, tt := range tests {
		s := ReconnectingStatus(tt.delay)
		assert.Equal(t, tt.want, s.Text)
		assert.Equal(t, "orange", s.Tone.String())
	}
}

func TestNewBackoff(t *testing.T) {
	exp := NewBackoff(PolicyExponential, 3*time.Second, 1.5, 30*time.Second)
	assert.Equal(t, DefaultBackoff(), exp)

	fixed := NewBackoff(PolicyFixed, 2*time.Second, 1.5, 30*time.Second)
	assert.Equal(t, FixedBackoff{Interval: 2 * time.Second}, fixed)
	assert.Equal(t, 2*time.Second, fixed.Delay(4))
}
