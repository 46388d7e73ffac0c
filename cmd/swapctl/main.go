// swapctl is the operator control-plane CLI for a swapd instance,
// mirroring lncli's shape: a urfave/cli app whose subcommands act
// directly on swapd's durable bolt store rather than over a network
// RPC, since a swap's authoritative state is the store itself.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli"

	"github.com/lightninglabs/xmrswap/kvdb"
	"github.com/lightninglabs/xmrswap/swapdriver"
)

const defaultDBPath = "swapd.db"

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[swapctl] %v\n", err)
	os.Exit(1)
}

func openStore(ctx *cli.Context) (*swapdriver.BoltStore, func() error, error) {
	db, err := kvdb.Open(ctx.GlobalString("db"))
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

var statusCommand = cli.Command{
	Name:      "status",
	Usage:     "show the persisted state of a single swap",
	ArgsUsage: "swap-id",
	Action:    status,
}

func status(ctx *cli.Context) error {
	swapID := ctx.Args().First()
	if swapID == "" {
		return fmt.Errorf("swap-id is required")
	}

	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	state, err := store.Get(swapID)
	if err != nil {
		return err
	}

	printState(state)
	return nil
}

func printState(state swapdriver.State) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"field", "value"})
	t.AppendRow(table.Row{"swap_id", state.SwapID()})
	t.AppendRow(table.Row{"kind", state.Kind.String()})

	switch state.Kind {
	case swapdriver.KindCreated:
		t.AppendRow(table.Row{"hashlock", hex.EncodeToString(state.Created.Hashlock[:])})
		t.AppendRow(table.Row{"lock_until", state.Created.LockUntil.Format(time.RFC3339)})
	case swapdriver.KindInitialized:
		t.AppendRow(table.Row{"hashlock", hex.EncodeToString(state.Initialized.Hashlock[:])})
		t.AppendRow(table.Row{"lock_until", state.Initialized.LockUntil.Format(time.RFC3339)})
		t.AppendRow(table.Row{"escrow_address", hex.EncodeToString(state.Initialized.EscrowAddress[:])})
	case swapdriver.KindDleqVerified:
		t.AppendRow(table.Row{"hashlock", hex.EncodeToString(state.DleqVerified.Hashlock[:])})
		t.AppendRow(table.Row{"lock_until", state.DleqVerified.LockUntil.Format(time.RFC3339)})
		t.AppendRow(table.Row{"escrow_address", hex.EncodeToString(state.DleqVerified.EscrowAddress[:])})
	case swapdriver.KindUnlocked:
		t.AppendRow(table.Row{"unlock_tx", state.Unlocked.UnlockTx})
	case swapdriver.KindRefunded:
		t.AppendRow(table.Row{"reason", state.Refunded.Reason})
		t.AppendRow(table.Row{"refund_tx", state.Refunded.RefundTx})
	}

	t.Render()
}

var seedCommand = cli.Command{
	Name:      "seed",
	Usage:     "persist a freshly Created swap in swapd's store",
	ArgsUsage: "swap-id hashlock-hex lock-until-unix",
	Action:    seed,
}

func seed(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 3 {
		return fmt.Errorf("expected swap-id hashlock-hex lock-until-unix")
	}
	swapID, hashlockHex, lockUntilStr := args[0], args[1], args[2]

	hashlockBytes, err := hex.DecodeString(hashlockHex)
	if err != nil {
		return fmt.Errorf("invalid hashlock: %v", err)
	}
	if len(hashlockBytes) != 32 {
		return fmt.Errorf("hashlock must be 32 bytes, got %d", len(hashlockBytes))
	}
	var hashlock [32]byte
	copy(hashlock[:], hashlockBytes)

	var lockUntilUnix int64
	if _, err := fmt.Sscanf(lockUntilStr, "%d", &lockUntilUnix); err != nil {
		return fmt.Errorf("invalid lock-until-unix: %v", err)
	}

	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	state := swapdriver.NewCreated(swapID, hashlock, time.Unix(lockUntilUnix, 0))
	if err := store.Put(state); err != nil {
		return err
	}

	fmt.Printf("seeded swap %s\n", swapID)
	return nil
}

var removeCommand = cli.Command{
	Name:      "remove",
	Usage:     "delete a swap's persisted state",
	ArgsUsage: "swap-id",
	Action:    remove,
}

func remove(ctx *cli.Context) error {
	swapID := ctx.Args().First()
	if swapID == "" {
		return fmt.Errorf("swap-id is required")
	}

	store, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Delete(swapID); err != nil {
		return err
	}

	fmt.Printf("removed swap %s\n", swapID)
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "swapctl"
	app.Version = "0.1"
	app.Usage = "operator control plane for swapd"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "db",
			Value: defaultDBPath,
			Usage: "path to swapd's bolt database",
		},
	}
	app.Commands = []cli.Command{
		statusCommand,
		seedCommand,
		removeCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
