package healthcheck_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/clock"
	"github.com/lightninglabs/xmrswap/healthcheck"
	"github.com/lightninglabs/xmrswap/rpcretry"
)

func TestMonitorTracksFailureThreshold(t *testing.T) {
	failing := true
	probes := []healthcheck.Probe{
		{
			Name: "l1-rpc",
			Check: func(ctx context.Context) error {
				if failing {
					return errors.New("down")
				}
				return nil
			},
		},
	}

	cfg := rpcretry.Config{
		Timeout:    10 * time.Millisecond,
		MaxRetries: 0,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		JitterMax:  0,
	}

	mon := healthcheck.NewMonitor(probes, cfg, time.Hour, 2)
	mon.SetClock(clock.NewTestClock(time.Unix(1000, 0)))

	mon.Run(ctxWithImmediateCancel(t))
	obs, ok := mon.Observe("l1-rpc")
	require.True(t, ok)
	require.True(t, obs.Healthy, "single failure must not yet flip health")
}

func ctxWithImmediateCancel(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestMonitorHealthyWithNoFailures(t *testing.T) {
	probes := []healthcheck.Probe{
		{Name: "l2-wallet", Check: func(ctx context.Context) error { return nil }},
	}
	cfg := rpcretry.DefaultConfig()
	mon := healthcheck.NewMonitor(probes, cfg, time.Hour, 1)

	// The probe must run under a live context: an already-cancelled
	// one makes the retry harness report the attempt as failed.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		mon.Run(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool {
		_, ok := mon.Observe("l2-wallet")
		return ok
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	require.True(t, mon.Healthy())
}
