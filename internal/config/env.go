package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvCluster    = "SOLANA_CLUSTER"
	EnvRpcURL     = "SOLANA_RPC_URL"
	EnvCommitment = "SOLANA_COMMITMENT"
	EnvTimeoutMs  = "SOLANA_TIMEOUT_MS"
	EnvAddress    = "SOLANA_ADDRESS"
	EnvSecretFile = "SOLANA_SECRET_FILE"
	EnvLogLevel   = "LOG_LEVEL"
)

// ApplyEnv loads the named dotenv files (best-effort) and lets the process
// environment override the matching config fields. Nothing is loaded when no
// file is named, so the default ./.env secret store never reaches the
// environment implicitly.
func ApplyEnv(cfg *Config, dotenvFiles ...string) {
	if len(dotenvFiles) > 0 {
		_ = godotenv.Load(dotenvFiles...) // best effort, existing env wins
	}

	cfg.Network.Cluster = getEnv(EnvCluster, cfg.Network.Cluster)
	cfg.Network.RpcURL = getEnv(EnvRpcURL, cfg.Network.RpcURL)
	cfg.Network.Commitment = getEnv(EnvCommitment, cfg.Network.Commitment)
	cfg.Account.Address = getEnv(EnvAddress, cfg.Account.Address)
	cfg.Wallet.SecretFile = getEnv(EnvSecretFile, cfg.Wallet.SecretFile)
	cfg.App.LogLevel = getEnv(EnvLogLevel, cfg.App.LogLevel)
	if v := os.Getenv(EnvTimeoutMs); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Network.TimeoutMs = ms
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
