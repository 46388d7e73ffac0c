package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/btcsuite/btclog"
)

const (
	defaultConfigFilename  = "swapd.conf"
	defaultLogFilename     = "swapd.log"
	defaultLogLevel        = "info"
	defaultPollInterval    = 5 * time.Second
	defaultReorgBuffer     = int64(5)
	defaultConfirmations   = int64(10)
	defaultHealthInterval  = 30 * time.Second
	defaultHealthThreshold = 3
	defaultMaxLogRolls     = 3
)

var swapdHomeDir = defaultHomeDir()

func defaultHomeDir() string {
	if dir := os.Getenv("SWAPD_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".swapd")
}

// config mirrors lnd's top-level config struct: one flat struct of
// go-flags tagged fields, loaded from the default config file plus
// any command-line overrides.
type config struct {
	SwapDBHome  string `long:"swapdbhome" description:"Directory holding the bolt swap-state database"`
	AuditDBPath string `long:"auditdbpath" description:"Path to the sqlite audit log database"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	DebugLevel  string `long:"debuglevel" description:"Logging level for all subsystems"`
	MaxLogRolls int    `long:"maxlogrolls" description:"Number of historical log files to keep"`

	PostgresDSN string `long:"postgresdsn" description:"Postgres DSN; when set, swap state is stored in Postgres instead of bolt"`

	WebhookURL string `long:"webhookurl" description:"Endpoint audit envelopes are POSTed to; disabled if empty"`

	PollInterval time.Duration `long:"pollinterval" description:"How often each swap's driver is polled"`

	ReorgBuffer           int64 `long:"reorgbuffer" description:"L2 heights the reported height may fall below the last seen height before a reorg is declared"`
	ConfirmationsRequired int64 `long:"confirmationsrequired" description:"L2 confirmations required before a lock is final"`

	HealthCheckInterval  time.Duration `long:"healthcheckinterval" description:"Interval between health probes"`
	HealthCheckThreshold int           `long:"healthcheckthreshold" description:"Consecutive failures before a probe is marked unhealthy"`

	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
}

func defaultConfig() config {
	return config{
		SwapDBHome:            swapdHomeDir,
		AuditDBPath:           filepath.Join(swapdHomeDir, "audit.db"),
		LogDir:                filepath.Join(swapdHomeDir, "logs"),
		DebugLevel:            defaultLogLevel,
		MaxLogRolls:           defaultMaxLogRolls,
		PollInterval:          defaultPollInterval,
		ReorgBuffer:           defaultReorgBuffer,
		ConfirmationsRequired: defaultConfirmations,
		HealthCheckInterval:   defaultHealthInterval,
		HealthCheckThreshold:  defaultHealthThreshold,
		ConfigFile:            filepath.Join(swapdHomeDir, defaultConfigFilename),
	}
}

// loadConfig parses the default config file, if present, then
// command-line flags on top, matching lnd's loadConfig precedence.
func loadConfig() (*config, error) {
	cfg := defaultConfig()

	preCfg := cfg
	if _, err := flags.NewParser(&preCfg, flags.Default).Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
	}
	if preCfg.ConfigFile != "" {
		cfg.ConfigFile = preCfg.ConfigFile
	}

	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		fileParser := flags.NewParser(&cfg, flags.Default)
		if err := flags.NewIniParser(fileParser).ParseFile(cfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("unable to parse config file: %v", err)
		}
	}

	flagParser := flags.NewParser(&cfg, flags.Default)
	if _, err := flagParser.Parse(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.SwapDBHome, 0700); err != nil {
		return nil, fmt.Errorf("unable to create swap db dir: %v", err)
	}
	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		return nil, fmt.Errorf("unable to create log dir: %v", err)
	}

	return &cfg, nil
}

func parseLogLevel(s string) btclog.Level {
	level, ok := btclog.LevelFromString(s)
	if !ok {
		return btclog.LevelInfo
	}
	return level
}
