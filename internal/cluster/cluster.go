// Package cluster maps named Solana network tiers onto RPC endpoints.
package cluster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

// ErrUnknownCluster is returned for tier names that have no well-known endpoint.
var ErrUnknownCluster = errors.New("unknown cluster")

var known = map[string]rpc.Cluster{
	rpc.DevNet.Name:      rpc.DevNet,
	rpc.TestNet.Name:     rpc.TestNet,
	rpc.MainNetBeta.Name: rpc.MainNetBeta,
	rpc.LocalNet.Name:    rpc.LocalNet,
}

// Resolve returns the endpoint set for a tier. A non-empty rpcURL replaces the
// RPC endpoint and keeps the tier name for labelling.
func Resolve(name, rpcURL string) (rpc.Cluster, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "mainnet" {
		name = rpc.MainNetBeta.Name
	}
	c, ok := known[name]
	if !ok {
		if rpcURL == "" {
			return rpc.Cluster{}, fmt.Errorf("%w: %q", ErrUnknownCluster, name)
		}
		c = rpc.Cluster{Name: name}
		if c.Name == "" {
			c.Name = "custom"
		}
	}
	if rpcURL != "" {
		c.RPC = rpcURL
		c.WS = ""
	}
	return c, nil
}

// APIURL is the RPC endpoint for a well-known tier.
func APIURL(name string) (string, error) {
	c, err := Resolve(name, "")
	if err != nil {
		return "", err
	}
	return c.RPC, nil
}

// ParseCommitment defaults to confirmed for empty or unrecognised values.
func ParseCommitment(commit string) rpc.CommitmentType {
	switch strings.ToLower(commit) {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	}
	return rpc.CommitmentConfirmed
}
