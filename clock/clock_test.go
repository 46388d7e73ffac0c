package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/clock"
)

func TestTestClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewTestClock(start)
	require.Equal(t, start, c.Now())

	c.Advance(time.Hour)
	require.Equal(t, start.Add(time.Hour), c.Now())

	later := start.Add(24 * time.Hour)
	c.SetTime(later)
	require.Equal(t, later, c.Now())
}

func TestDefaultClock(t *testing.T) {
	c := clock.NewDefaultClock()
	before := time.Now()
	now := c.Now()
	require.False(t, now.Before(before))
}
