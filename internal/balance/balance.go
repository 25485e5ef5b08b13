// Package balance resolves account balances against a Solana RPC endpoint.
package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"

	"solana-starter/internal/cluster"
	"solana-starter/internal/metrics"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

var (
	ErrEmptyAddress   = errors.New("empty address")
	ErrInvalidAddress = errors.New("invalid address")
)

// Client is the slice of the RPC API the reader needs; *rpc.Client satisfies it.
type Client interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
}

// Balance is a point-in-time snapshot of an account's lamports.
type Balance struct {
	Address  solana.PublicKey
	Lamports uint64
	Slot     uint64
	Cluster  string
}

// SOL converts the lamport amount for display.
func (b Balance) SOL() float64 {
	return float64(b.Lamports) / LamportsPerSOL
}

// ParseAddress validates a base58 account address locally.
func ParseAddress(address string) (solana.PublicKey, error) {
	if address == "" {
		return solana.PublicKey{}, ErrEmptyAddress
	}
	raw, err := base58.Decode(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w %q: %v", ErrInvalidAddress, address, err)
	}
	if len(raw) != solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("%w %q: decoded to %d bytes, want %d", ErrInvalidAddress, address, len(raw), solana.PublicKeyLength)
	}
	return solana.PublicKeyFromBytes(raw), nil
}

// Reader issues one getBalance call per lookup.
type Reader struct {
	RPC     Client
	Cluster string
	Commit  rpc.CommitmentType
	Timeout time.Duration
	log     zerolog.Logger
}

// NewReader connects to the cluster's RPC endpoint. timeout bounds every lookup;
// zero leaves it to the caller's context.
func NewReader(c rpc.Cluster, commit string, timeout time.Duration, log zerolog.Logger) *Reader {
	return &Reader{
		RPC:     rpc.New(c.RPC),
		Cluster: c.Name,
		Commit:  cluster.ParseCommitment(commit),
		Timeout: timeout,
		log:     log,
	}
}

// Lookup fetches the current balance of address. Malformed addresses fail
// before any request is sent.
func (r *Reader) Lookup(ctx context.Context, address string) (Balance, error) {
	pk, err := ParseAddress(address)
	if err != nil {
		metrics.BalanceLookups.WithLabelValues(r.Cluster, "invalid").Inc()
		return Balance{}, err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := r.RPC.GetBalance(ctx, pk, r.Commit)
	elapsed := time.Since(start)
	metrics.BalanceLookupSeconds.WithLabelValues(r.Cluster).Observe(elapsed.Seconds())
	if err != nil {
		metrics.BalanceLookups.WithLabelValues(r.Cluster, "error").Inc()
		return Balance{}, fmt.Errorf("get balance %s: %w", pk, err)
	}
	if out == nil {
		metrics.BalanceLookups.WithLabelValues(r.Cluster, "error").Inc()
		return Balance{}, fmt.Errorf("get balance %s: empty response", pk)
	}
	metrics.BalanceLookups.WithLabelValues(r.Cluster, "ok").Inc()

	b := Balance{Address: pk, Lamports: out.Value, Slot: out.Context.Slot, Cluster: r.Cluster}
	r.log.Debug().Str("cluster", r.Cluster).Str("address", pk.String()).Uint64("lamports", b.Lamports).
		Uint64("slot", b.Slot).Dur("took", elapsed).Msg("balance fetched")
	return b, nil
}
