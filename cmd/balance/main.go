// Binary balance prints the lamport balance of an account on a Solana cluster.
package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"

	"solana-starter/internal/util"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		log := util.NewLogger("info")
		log.Fatal().Err(err).Msg("balance")
	}
}
