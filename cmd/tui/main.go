package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"solana-starter/internal/balance"
	"solana-starter/internal/cluster"
	"solana-starter/internal/config"
	"solana-starter/internal/metrics"
	"solana-starter/internal/report"
	"solana-starter/internal/util"
	"solana-starter/internal/wallet"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	reader := bufio.NewReader(os.Stdin)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := util.NewLogger(cfg.App.LogLevel)

	if cfg.App.MetricsAddr != "" {
		srv := metrics.Serve(cfg.App.MetricsAddr)
		defer srv.Close()
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	for {
		fmt.Println("\n=== Solana Starter ===")
		fmt.Println("1) Show configuration summary")
		fmt.Println("2) Edit network and account")
		fmt.Println("3) Save config")
		fmt.Println("4) Generate keypair")
		fmt.Println("5) Check balance")
		fmt.Println("6) Reload config from disk")
		fmt.Println("0) Exit")
		fmt.Print("Select option: ")

		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			return
		}
		choice := strings.TrimSpace(input)

		switch choice {
		case "1":
			printSummary(os.Stdout, cfg)
		case "2":
			if err := editNetwork(reader, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "edit rejected, config unchanged: %v\n", err)
			}
		case "3":
			if err := saveConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			} else {
				fmt.Println("config saved")
			}
		case "4":
			if err := generate(os.Stdout, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "keygen failed: %v\n", err)
			}
		case "5":
			if err := checkBalance(os.Stdout, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "balance failed: %v\n", err)
			}
		case "6":
			reloaded, err := loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			} else {
				cfg = reloaded
				fmt.Println("config reloaded")
			}
		case "0":
			return
		default:
			fmt.Println("unknown option")
		}
	}
}

func printSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "\n--- Configuration Summary ---")
	fmt.Fprintf(w, "Cluster: %s\n", cfg.Network.Cluster)
	if cfg.Network.RpcURL != "" {
		fmt.Fprintf(w, "RPC override: %s\n", cfg.Network.RpcURL)
	} else if endpoint, err := cluster.APIURL(cfg.Network.Cluster); err == nil {
		fmt.Fprintf(w, "RPC endpoint: %s\n", endpoint)
	} else {
		fmt.Fprintf(w, "RPC endpoint: %v\n", err)
	}
	fmt.Fprintf(w, "Commitment: %s | timeout: %s\n", cfg.Network.Commitment, cfg.Network.Timeout())
	fmt.Fprintf(w, "Account: %s\n", cfg.Account.Address)
	fmt.Fprintf(w, "Secret store: %s (%s)\n", cfg.Wallet.SecretFile, cfg.Wallet.SecretKey)
}

// editNetwork applies the answers only when the cluster and address both
// validate; otherwise cfg is left untouched.
func editNetwork(reader *bufio.Reader, cfg *config.Config) error {
	fmt.Println("\n--- Edit Network / Account ---")
	clusterName := promptString(reader, "Cluster (devnet|testnet|mainnet-beta|localnet)", cfg.Network.Cluster, false)
	rpcURL := promptString(reader, "RPC URL override ('-' to clear)", cfg.Network.RpcURL, true)
	commitment := promptString(reader, "Commitment", cfg.Network.Commitment, false)
	address := promptString(reader, "Account address", cfg.Account.Address, false)

	if _, err := cluster.Resolve(clusterName, rpcURL); err != nil {
		return err
	}
	if _, err := balance.ParseAddress(address); err != nil {
		return err
	}
	cfg.Network.Cluster = clusterName
	cfg.Network.RpcURL = rpcURL
	cfg.Network.Commitment = commitment
	cfg.Account.Address = address
	return nil
}

func generate(w io.Writer, cfg *config.Config) error {
	kp, err := wallet.Generate()
	if err != nil {
		return err
	}
	if err := wallet.StoreSecret(cfg.Wallet.SecretFile, cfg.Wallet.SecretKey, kp.PrivateKey, false); err != nil {
		return err
	}
	if err := report.PublicKey(w, kp); err != nil {
		return err
	}
	return report.SecretStored(w, cfg.Wallet.SecretFile, cfg.Wallet.SecretKey)
}

func checkBalance(w io.Writer, cfg *config.Config) error {
	endpoint, err := cluster.Resolve(cfg.Network.Cluster, cfg.Network.RpcURL)
	if err != nil {
		return err
	}
	log := util.NewLogger(cfg.App.LogLevel)
	reader := balance.NewReader(endpoint, cfg.Network.Commitment, cfg.Network.Timeout(), log)
	b, err := reader.Lookup(context.Background(), cfg.Account.Address)
	if err != nil {
		return err
	}
	return report.Balance(w, b)
}

// promptString keeps current on blank input; "-" clears only when clearable.
func promptString(reader *bufio.Reader, label, current string, clearable bool) string {
	fmt.Printf("%s [%s]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return current
	case line == "-" && clearable:
		return ""
	}
	return line
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(locateConfig())
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)
	return cfg, nil
}

func saveConfig(cfg *config.Config) error {
	return config.Save(locateConfig(), cfg)
}

func locateConfig() string {
	if filepath.IsAbs(defaultConfigPath) {
		return defaultConfigPath
	}
	return filepath.Clean(defaultConfigPath)
}
