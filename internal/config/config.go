// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddress is the account the balance reader queries when nothing else is configured.
	DefaultAddress = "AMSy4Ls18VveJkYYNNEoTvA1PNd5iqiC6WQQTK8JXRXv"
	// DefaultCluster is the network tier used when nothing else is configured.
	DefaultCluster = "devnet"
	// DefaultSecretKey names the dotenv entry holding the base58 secret key.
	DefaultSecretKey = "SOLANA_PRIVATE_KEY_BASE58"

	defaultTimeoutMs = 15000
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Network selects the remote cluster and how requests against it behave.
type Network struct {
	Cluster    string `yaml:"cluster"`    // devnet|testnet|mainnet-beta|localnet
	RpcURL     string `yaml:"rpc_url"`    // overrides the cluster endpoint when set
	Commitment string `yaml:"commitment"` // processed|confirmed|finalized
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// Timeout converts TimeoutMs into a duration, falling back to the default for non-positive values.
func (n Network) Timeout() time.Duration {
	if n.TimeoutMs <= 0 {
		return defaultTimeoutMs * time.Millisecond
	}
	return time.Duration(n.TimeoutMs) * time.Millisecond
}

// Account names the address looked up by the balance reader.
type Account struct {
	Address string `yaml:"address"`
}

// Wallet describes where generated secret material is stored.
type Wallet struct {
	SecretFile string `yaml:"secret_file"`
	SecretKey  string `yaml:"secret_key"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App     App     `yaml:"app"`
	Network Network `yaml:"network"`
	Account Account `yaml:"account"`
	Wallet  Wallet  `yaml:"wallet"`
}

// Default returns the configuration the scripts run with when no file is present.
func Default() *Config {
	return &Config{
		App: App{
			Name:     "solana-starter",
			Env:      "dev",
			LogLevel: "info",
		},
		Network: Network{
			Cluster:    DefaultCluster,
			Commitment: "confirmed",
			TimeoutMs:  defaultTimeoutMs,
		},
		Account: Account{Address: DefaultAddress},
		Wallet: Wallet{
			SecretFile: ".env",
			SecretKey:  DefaultSecretKey,
		},
	}
}

// Load reads a YAML file from disk and hydrates a Config struct on top of Default.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return config, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
