// Package report renders command results as labelled lines.
package report

import (
	"fmt"
	"io"

	"solana-starter/internal/balance"
	"solana-starter/internal/wallet"
)

// PublicKey prints the base58 address of a freshly generated keypair.
func PublicKey(w io.Writer, kp wallet.Keypair) error {
	_, err := fmt.Fprintf(w, "The public key is: %s\n", kp.Address())
	return err
}

// SecretBytes prints the raw secret. Only used when the operator asked for it.
func SecretBytes(w io.Writer, kp wallet.Keypair) error {
	_, err := fmt.Fprintf(w, "The secret key is: %v\n", kp.SecretBytes())
	return err
}

// SecretStored tells the operator where the secret went, without echoing it.
func SecretStored(w io.Writer, path, key string) error {
	_, err := fmt.Fprintf(w, "The secret key was saved to %s as %s\n", path, key)
	return err
}

func Balance(w io.Writer, b balance.Balance) error {
	_, err := fmt.Fprintf(w, "The balance of the account at %s is %d lamports (%.9f SOL)\n", b.Address, b.Lamports, b.SOL())
	return err
}

func Finished(w io.Writer) error {
	_, err := fmt.Fprintln(w, "✅ Finished!")
	return err
}
