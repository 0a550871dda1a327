package wsconn

import (
	"math"
	"math/rand"
	"time"
)

// ReconnectPolicy parameterizes the exponential-backoff-with-jitter
// reconnect loop. MaxAttempts of 0 means unlimited.
type ReconnectPolicy struct {
	Enabled       bool
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Multiplier    float64
	MaxAttempts   int
	JitterPercent float64
}

// DefaultPolicy: 500ms -> 30s, x2, unlimited attempts.
func DefaultPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		Enabled:       true,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		Multiplier:    2,
		JitterPercent: 0.2,
	}
}

// AggressivePolicy: 100ms -> 5s, x1.5, unlimited attempts. Favors fast
// reconnection over backoff headroom, for callers willing to tolerate
// more reconnect churn against the provider.
func AggressivePolicy() ReconnectPolicy {
	return ReconnectPolicy{
		Enabled:       true,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		Multiplier:    1.5,
		JitterPercent: 0.2,
	}
}

// ConservativePolicy: 1s -> 60s, x2, capped at 10 attempts.
func ConservativePolicy() ReconnectPolicy {
	return ReconnectPolicy{
		Enabled:       true,
		InitialDelay:  time.Second,
		MaxDelay:      60 * time.Second,
		Multiplier:    2,
		MaxAttempts:   10,
		JitterPercent: 0.2,
	}
}

// DisabledPolicy turns off automatic reconnection entirely; a dropped
// connection transitions straight to Disconnected.
func DisabledPolicy() ReconnectPolicy {
	return ReconnectPolicy{Enabled: false}
}

// delayForAttempt returns min(initial * multiplier^attempt, max), the pure
// function spec's testable property is stated against. attempt is
// 1-indexed: the first retry uses attempt=1.
func (p ReconnectPolicy) delayForAttempt(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt))
	d := time.Duration(delay)
	if p.MaxDelay != 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// withJitter scales a base delay by a uniform random factor in
// [1, 1+JitterPercent), matching the teacher's jitter application.
func (p ReconnectPolicy) withJitter(base time.Duration) time.Duration {
	if p.JitterPercent <= 0 {
		return base
	}
	jitter := rand.Float64() * p.JitterPercent
	return time.Duration(float64(base) * (1.0 + jitter))
}

// exhausted reports whether attempt has reached MaxAttempts (0 = unlimited).
func (p ReconnectPolicy) exhausted(attempt int) bool {
	return p.MaxAttempts > 0 && attempt >= p.MaxAttempts
}
