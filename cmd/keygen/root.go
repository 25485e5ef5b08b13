package main

import (
	"github.com/spf13/cobra"

	"solana-starter/internal/config"
	"solana-starter/internal/report"
	"solana-starter/internal/util"
	"solana-starter/internal/wallet"
)

type options struct {
	configPath  string
	envFile     string
	secretFile  string
	secretKey   string
	logLevel    string
	force       bool
	printSecret bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "keygen",
		Short:         "Generate a Solana keypair",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", defaultConfigPath, "path to YAML config")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file with SOLANA_* settings to load")
	flags.StringVar(&opts.secretFile, "out", "", "dotenv file receiving the secret (default from config)")
	flags.StringVar(&opts.secretKey, "key", "", "variable name for the secret (default from config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (default from config)")
	flags.BoolVar(&opts.force, "force", false, "replace a secret already present in the store")
	flags.BoolVar(&opts.printSecret, "print-secret", false, "print the raw secret to stdout instead of storing it")
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
	if opts.secretFile != "" {
		cfg.Wallet.SecretFile = opts.secretFile
	}
	if opts.secretKey != "" {
		cfg.Wallet.SecretKey = opts.secretKey
	}
	if cfg.Wallet.SecretKey == "" {
		cfg.Wallet.SecretKey = config.DefaultSecretKey
	}
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}
	log := util.NewLogger(cfg.App.LogLevel)

	kp, err := wallet.Generate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.PublicKey(out, kp); err != nil {
		return err
	}

	if opts.printSecret {
		log.Warn().Msg("printing secret key to stdout; move it to a private store and clear terminal history")
		if err := report.SecretBytes(out, kp); err != nil {
			return err
		}
	} else {
		if err := wallet.StoreSecret(cfg.Wallet.SecretFile, cfg.Wallet.SecretKey, kp.PrivateKey, opts.force); err != nil {
			return err
		}
		log.Info().Str("file", cfg.Wallet.SecretFile).Str("address", kp.Address()).Msg("secret stored")
		if err := report.SecretStored(out, cfg.Wallet.SecretFile, cfg.Wallet.SecretKey); err != nil {
			return err
		}
	}
	return report.Finished(out)
}
