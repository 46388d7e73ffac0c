// swapd is the daemon that supervises every active swap: it polls
// each swap's driver forward, watches the L2 side for locked funds,
// runs periodic health probes against the configured RPC backends,
// and at shutdown records a signed daemon_stopped audit envelope in
// the sqlite audit log (also delivered to a webhook when one is
// configured). Driver transitions themselves are not sealed into
// audit envelopes. A single entry point loads config
// via go-flags and coordinates shutdown over a channel plus an
// errgroup.
package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/lightninglabs/xmrswap/audit"
	"github.com/lightninglabs/xmrswap/healthcheck"
	"github.com/lightninglabs/xmrswap/internal/logging"
	"github.com/lightninglabs/xmrswap/kvdb"
	"github.com/lightninglabs/xmrswap/rpcretry"
	"github.com/lightninglabs/xmrswap/swapdriver"
	"github.com/lightninglabs/xmrswap/swapmgr"
	"github.com/lightninglabs/xmrswap/ticker"
	"github.com/lightninglabs/xmrswap/watcher"
)

var swapdLog = logging.SubLogger("SWAPD", btclog.LevelInfo)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[swapd] %v\n", err)
	os.Exit(1)
}

func main() {
	if err := swapdMain(); err != nil {
		fatal(err)
	}
}

// swapdMain is the true entry point; it is a separate function from
// main so deferred cleanups always run before the process exits.
func swapdMain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Init(filepath.Join(cfg.LogDir, defaultLogFilename), cfg.MaxLogRolls); err != nil {
		return fmt.Errorf("unable to initialize logging: %v", err)
	}
	defer logging.Flush()

	logging.SetLevel(swapdLog, parseLogLevel(cfg.DebugLevel))
	swapdLog.Info("starting swapd")

	store, closeStore, err := openSwapStore(cfg)
	if err != nil {
		return fmt.Errorf("unable to open swap store: %v", err)
	}
	defer closeStore()

	obs, err := swapdriver.NewPrometheusObserver(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("unable to register metrics: %v", err)
	}

	l1 := newUnconfiguredL1Client()
	driver := swapdriver.NewDriver(l1, store, obs)

	secrets := newMemorySecretSource()
	mgr := swapmgr.NewManager(driver, store, secrets, cfg.PollInterval)

	auditDB, err := audit.OpenSQLiteStore(cfg.AuditDBPath)
	if err != nil {
		return fmt.Errorf("unable to open audit database: %v", err)
	}
	defer auditDB.Close()

	var auditKey ed25519.PrivateKey
	_, auditKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("unable to generate audit signing key: %v", err)
	}

	var webhook *audit.WebhookDeliverer
	if cfg.WebhookURL != "" {
		webhookRetry := rpcretry.DefaultConfig()
		webhook = audit.NewWebhookDeliverer(
			cfg.WebhookURL, webhookRetry,
			logging.SubLogger("AUDIT", btclog.LevelInfo),
		)
	}

	healthMonitor := healthcheck.NewMonitor(
		defaultProbes(l1), rpcretry.DefaultConfig(),
		cfg.HealthCheckInterval, cfg.HealthCheckThreshold,
	)

	lockWatcher := watcher.New(cfg.ReorgBuffer, cfg.ConfirmationsRequired)
	l2Wallet := newUnconfiguredWalletSource()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		healthMonitor.Run(egCtx)
		return nil
	})

	eg.Go(func() error {
		runLockWatcher(egCtx, lockWatcher, l2Wallet, cfg.PollInterval)
		return nil
	})

	activeSwapIDs, err := listKnownSwapIDs(store)
	if err != nil {
		return fmt.Errorf("unable to enumerate known swaps: %v", err)
	}
	for _, swapID := range activeSwapIDs {
		mgr.Start(egCtx, eg, swapID)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		swapdLog.Infof("received %v, shutting down", sig)
	case <-egCtx.Done():
		swapdLog.Warnf("supervised task exited: %v", egCtx.Err())
	}

	cancel()
	if err := eg.Wait(); err != nil && err != context.Canceled {
		swapdLog.Errorf("shutdown error: %v", err)
	}

	env, sealErr := audit.Seal(audit.Payload{
		SwapID:        "",
		EventKind:     "daemon_stopped",
		Detail:        "swapd shut down cleanly",
		TimestampUnix: time.Now().Unix(),
	}, auditKey)
	if sealErr != nil {
		swapdLog.Errorf("unable to seal shutdown envelope: %v", sealErr)
	} else {
		if err := auditDB.Append(env); err != nil {
			swapdLog.Errorf("unable to record shutdown envelope: %v", err)
		}
		if webhook != nil {
			webhook.Deliver(context.Background(), env)
		}
	}

	swapdLog.Info("swapd shutdown complete")
	return nil
}

func openSwapStore(cfg *config) (swapdriver.Store, func() error, error) {
	if cfg.PostgresDSN != "" {
		if err := swapdriver.MigratePostgres(cfg.PostgresDSN); err != nil {
			return nil, nil, fmt.Errorf("migrating postgres: %v", err)
		}
		store, err := swapdriver.NewPostgresStore(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { store.Close(); return nil }, nil
	}

	db, err := kvdb.Open(filepath.Join(cfg.SwapDBHome, "swapd.db"))
	if err != nil {
		return nil, nil, err
	}
	store, err := swapdriver.NewBoltStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db.Close, nil
}

// runLockWatcher drives w.PollForLock on a ticker until ctx is done,
// logging every non-trivial event. Like the L1 backend, the concrete
// L2 wallet RPC is out of scope, so src is an unconfiguredWalletSource
// until a real one is plugged in. One Watcher here stands in for the
// per-swap watcher a multi-swap deployment would keep in a registry
// keyed by swap_id, same as swapmgr.Manager keys its driver tasks.
func runLockWatcher(ctx context.Context, w *watcher.Watcher, src watcher.WalletSource, interval time.Duration) {
	t := ticker.New(interval)
	t.Resume()
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Ticks():
			event, err := w.PollForLock(src, 0)
			if err != nil {
				swapdLog.Debugf("lock watcher poll failed: %v", err)
				continue
			}
			switch event.(type) {
			case watcher.NoLockObserved:
			default:
				swapdLog.Infof("lock watcher: %+v", event)
			}
		}
	}
}

func defaultProbes(l1 swapdriver.L1Client) []healthcheck.Probe {
	return []healthcheck.Probe{
		{
			Name: "l1-clock",
			Check: func(ctx context.Context) error {
				_, err := l1.Now()
				return err
			},
		},
	}
}

// listKnownSwapIDs is a placeholder enumeration hook that always
// returns no IDs: the bolt and postgres Store implementations are
// keyed by swap_id with no native "list all" operation. swapd
// therefore starts no driver task at startup, and a swap written to
// the store by swapctl seed is not driven by swapd.
func listKnownSwapIDs(store swapdriver.Store) ([]string, error) {
	return nil, nil
}

// memorySecretSource is a placeholder SecretSource with no delivery
// channel wired in yet; the off-ledger mechanism that learns the
// unlock secret from the counterparty's L2 spend has no transport
// here, so this always reports no secret available and callers must
// supply one via a future RPC surface.
type memorySecretSource struct{}

func newMemorySecretSource() *memorySecretSource { return &memorySecretSource{} }

func (*memorySecretSource) Secret(swapID string) ([]byte, bool) { return nil, false }
