package httpapi

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_DisabledWhenZero(t *testing.T) {
	limiter := NewRateLimiter(0)

	assert.True(t, math.IsInf(limiter.Rate(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	for i := 0; i < 100; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
}

func TestRateLimiter_SetRate(t *testing.T) {
	limiter := NewRateLimiter(4)
	assert.InDelta(t, 4.0, limiter.Rate(), 1e-9)

	limiter.SetRate(-1)
	assert.True(t, math.IsInf(limiter.Rate(), 1))

	limiter.SetRate(0.5)
	assert.InDelta(t, 0.5, limiter.Rate(), 1e-9)
}

func TestRateLimiter_Wait_RespectsContext(t *testing.T) {
	limiter := NewRateLimiter(0.001)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, limiter.Wait(ctx))
}
