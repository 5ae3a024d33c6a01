package notion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewClientReturnsClient(t *testing.T) {
	c := NewClient("test-token")
	require.NotNil(t, c)
	var _ Client = c //nolint:staticcheck // interface compliance check
}

func TestWithRateLimit(t *testing.T) {
	t.Run("defaults to 3 rps", func(t *testing.T) {
		c := NewClient("test-token").(*notionClient)
		require.NotNil(t, c.limiter)
		assert.Equal(t, rate.Limit(3), c.limiter.Limit())
		assert.Equal(t, 1, c.limiter.Burst())
	})

	t.Run("overrides the default", func(t *testing.T) {
		c := NewClient("test-token", WithRateLimit(10)).(*notionClient)
		require.NotNil(t, c.limiter)
		assert.Equal(t, rate.Limit(10), c.limiter.Limit())
		assert.Equal(t, 10, c.limiter.Burst())
	})

	t.Run("zero rate disables throttling", func(t *testing.T) {
		c := NewClient("test-token", WithRateLimit(0)).(*notionClient)
		assert.Nil(t, c.limiter)
	})

	t.Run("fractional rate gets burst of 1", func(t *testing.T) {
		c := NewClient("test-token", WithRateLimit(0.5)).(*notionClient)
		require.NotNil(t, c.limiter)
		assert.Equal(t, 1, c.limiter.Burst())
	})
}

func TestRateLimiter_CancelledContext(t *testing.T) {
	// Zero burst so Wait always blocks.
	c := &notionClient{
		limiter: rate.NewLimiter(rate.Every(time.Hour), 0),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.wait(ctx)
	assert.Error(t, err)
}
