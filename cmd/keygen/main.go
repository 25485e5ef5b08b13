// Binary keygen creates a new Solana keypair, prints the public key and stores
// the secret in a 0600 dotenv file.
package main

import "solana-starter/internal/util"

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := util.NewLogger("info")
		log.Fatal().Err(err).Msg("keygen")
	}
}
