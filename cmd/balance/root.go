package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"solana-starter/internal/balance"
	"solana-starter/internal/cluster"
	"solana-starter/internal/config"
	"solana-starter/internal/report"
	"solana-starter/internal/util"
)

var errTimeoutTooShort = errors.New("timeout must be at least 1ms")

type options struct {
	configPath string
	envFile    string
	cluster    string
	rpcURL     string
	address    string
	commitment string
	logLevel   string
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "balance [address]",
		Short:         "Print the lamport balance of a Solana account",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("address", args[0]); err != nil {
					return err
				}
			}
			return run(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", defaultConfigPath, "path to YAML config")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file with SOLANA_* settings to load")
	flags.StringVar(&opts.cluster, "cluster", "", "cluster tier: devnet|testnet|mainnet-beta|localnet")
	flags.StringVar(&opts.rpcURL, "rpc-url", "", "explicit RPC endpoint, overrides the cluster tier")
	flags.StringVar(&opts.address, "address", "", "account address (base58)")
	flags.StringVar(&opts.commitment, "commitment", "", "processed|confirmed|finalized")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (default from config)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout (default from config)")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return err
	}
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	config.ApplyEnv(cfg, envFiles...)

	flags := cmd.Flags()
	if flags.Changed("cluster") {
		cfg.Network.Cluster = opts.cluster
	}
	if flags.Changed("rpc-url") {
		cfg.Network.RpcURL = opts.rpcURL
	}
	if flags.Changed("address") {
		cfg.Account.Address = opts.address
	}
	if flags.Changed("commitment") {
		cfg.Network.Commitment = opts.commitment
	}
	if flags.Changed("timeout") {
		if opts.timeout < time.Millisecond {
			return fmt.Errorf("%w: %s", errTimeoutTooShort, opts.timeout)
		}
		cfg.Network.TimeoutMs = int(opts.timeout / time.Millisecond)
	}
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}
	log := util.NewLogger(cfg.App.LogLevel)

	endpoint, err := cluster.Resolve(cfg.Network.Cluster, cfg.Network.RpcURL)
	if err != nil {
		return err
	}
	log.Debug().Str("cluster", endpoint.Name).Str("rpc", endpoint.RPC).Msg("connecting")

	reader := balance.NewReader(endpoint, cfg.Network.Commitment, cfg.Network.Timeout(), log)
	b, err := reader.Lookup(cmd.Context(), cfg.Account.Address)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.Balance(out, b); err != nil {
		return err
	}
	return report.Finished(out)
}
