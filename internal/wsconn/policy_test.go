package wsconn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReconnectPolicy_DelayForAttemptMonotonicUpToCap(t *testing.T) {
	p := ReconnectPolicy{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
	}

	var prev time.Duration
	for attempt := 1; attempt <= 10; attempt++ {
		d := p.delayForAttempt(attempt)
		require.GreaterOrEqual(t, d, prev)
		require.LessOrEqual(t, d, p.MaxDelay)
		prev = d
	}
}

func TestReconnectPolicy_DelayForAttemptFormula(t *testing.T) {
	p := ReconnectPolicy{
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
	}

	require.Equal(t, time.Second, p.delayForAttempt(1))
	require.Equal(t, 2*time.Second, p.delayForAttempt(2))
	require.Equal(t, 4*time.Second, p.delayForAttempt(3))
}

func TestReconnectPolicy_ExhaustedRespectsMaxAttempts(t *testing.T) {
	p := ConservativePolicy()
	require.False(t, p.exhausted(9))
	require.True(t, p.exhausted(10))
}

func TestReconnectPolicy_UnlimitedNeverExhausted(t *testing.T) {
	p := DefaultPolicy()
	require.False(t, p.exhausted(1_000_000))
}

func TestReconnectPolicy_WithJitterStaysWithinBounds(t *testing.T) {
	p := DefaultPolicy()
	base := 500 * time.Millisecond

	for i := 0; i < 50; i++ {
		d := p.withJitter(base)
		require.GreaterOrEqual(t, d, base)
		require.LessOrEqual(t, d, time.Duration(float64(base)*(1+p.JitterPercent)))
	}
}

func TestDisabledPolicy_IsNotEnabled(t *testing.T) {
	require.False(t, DisabledPolicy().Enabled)
}
