package rpcretry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/rpcretry"
)

func TestRetriesUntilSuccess(t *testing.T) {
	cfg := rpcretry.Config{
		Timeout:    50 * time.Millisecond,
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		JitterMax:  0,
	}

	calls := 0
	err := rpcretry.Do(context.Background(), "test", cfg, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("fail")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestExhaustsRetriesOnPersistentError(t *testing.T) {
	cfg := rpcretry.Config{
		Timeout:    50 * time.Millisecond,
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		JitterMax:  0,
	}

	calls := 0
	err := rpcretry.Do(context.Background(), "test", cfg, func(ctx context.Context) error {
		calls++
		return errors.New("permanent failure")
	})
	require.Error(t, err)
	require.Equal(t, 2, calls)
}

func TestTimesOutAndExhaustsRetries(t *testing.T) {
	cfg := rpcretry.Config{
		Timeout:    5 * time.Millisecond,
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		JitterMax:  0,
	}

	calls := 0
	err := rpcretry.Do(context.Background(), "timeout", cfg, func(ctx context.Context) error {
		calls++
		select {
		case <-time.After(20 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	require.Error(t, err)
	require.Equal(t, 2, calls)
}

func TestOuterContextCancellationStopsRetries(t *testing.T) {
	cfg := rpcretry.Config{
		Timeout:    50 * time.Millisecond,
		MaxRetries: 5,
		BaseDelay:  20 * time.Millisecond,
		MaxDelay:   20 * time.Millisecond,
		JitterMax:  0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	err := rpcretry.Do(ctx, "cancel", cfg, func(ctx context.Context) error {
		calls++
		return errors.New("fail")
	})
	require.Error(t, err)
	require.Less(t, calls, 6)
}
