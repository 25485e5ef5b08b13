// Package wallet generates Solana keypairs and keeps their secrets out of
// stdout by writing them to a restricted dotenv store.
package wallet

import (
	"fmt"

	solana "github.com/gagliardetto/solana-go"

	"solana-starter/internal/metrics"
)

// Keypair pairs a public key with the 64-byte ed25519 secret (seed || public).
type Keypair struct {
	PublicKey  solana.PublicKey
	PrivateKey solana.PrivateKey
}

// Generate draws a fresh keypair from crypto/rand.
func Generate() (Keypair, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return Keypair{}, fmt.Errorf("generate keypair: %w", err)
	}
	metrics.KeypairsGenerated.Inc()
	return Keypair{PublicKey: priv.PublicKey(), PrivateKey: priv}, nil
}

// Address is the base58 form of the public key.
func (k Keypair) Address() string { return k.PublicKey.String() }

// SecretBytes returns a copy of the raw secret.
func (k Keypair) SecretBytes() []byte {
	out := make([]byte, len(k.PrivateKey))
	copy(out, k.PrivateKey)
	return out
}
