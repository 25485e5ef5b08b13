package balance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
)

const devnetAddress = "AMSy4Ls18VveJkYYNNEoTvA1PNd5iqiC6WQQTK8JXRXv"

type fakeClient struct {
	calls    int
	lamports uint64
	err      error
}

func (f *fakeClient) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := &rpc.GetBalanceResult{Value: f.lamports}
	out.Context.Slot = 9
	return out, nil
}

// rpcServer answers getBalance with a fixed value, echoing the request id.
func rpcServer(t *testing.T, lamports uint64, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Method != "getBalance" {
			t.Errorf("unexpected method %s", req.Method)
		}
		var addr string
		if len(req.Params) == 0 || json.Unmarshal(req.Params[0], &addr) != nil || addr != devnetAddress {
			t.Errorf("unexpected params %s", req.Params)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"context":{"slot":77},"value":%d}}`, req.ID, lamports)
	}))
}

func TestParseAddress(t *testing.T) {
	pk, err := ParseAddress(devnetAddress)
	if err != nil {
		t.Fatalf("ParseAddress returned error: %v", err)
	}
	if pk.String() != devnetAddress {
		t.Fatalf("round trip mismatch: %s", pk)
	}

	if _, err := ParseAddress(""); !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("expected ErrEmptyAddress, got %v", err)
	}
	for _, bad := range []string{"0OIl", "abc", devnetAddress + "1"} {
		if _, err := ParseAddress(bad); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("ParseAddress(%q): expected ErrInvalidAddress, got %v", bad, err)
		}
	}
}

func TestLookupRejectsBadAddressBeforeRequest(t *testing.T) {
	client := &fakeClient{lamports: 1}
	reader := &Reader{RPC: client, Cluster: "devnet", log: zerolog.Nop()}

	if _, err := reader.Lookup(context.Background(), ""); !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("expected ErrEmptyAddress, got %v", err)
	}
	if _, err := reader.Lookup(context.Background(), "not-base58!"); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no RPC calls, got %d", client.calls)
	}
}

func TestLookupPropagatesClientError(t *testing.T) {
	boom := errors.New("boom")
	reader := &Reader{RPC: &fakeClient{err: boom}, Cluster: "devnet", log: zerolog.Nop()}
	if _, err := reader.Lookup(context.Background(), devnetAddress); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
}

func TestLookupOverJSONRPC(t *testing.T) {
	var hits int32
	server := rpcServer(t, 1_500_000_000, &hits)
	defer server.Close()

	reader := NewReader(rpc.Cluster{Name: "test", RPC: server.URL}, "finalized", 5*time.Second, zerolog.Nop())
	if reader.Commit != rpc.CommitmentFinalized {
		t.Fatalf("expected finalized commitment, got %v", reader.Commit)
	}

	b, err := reader.Lookup(context.Background(), devnetAddress)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if b.Lamports != 1_500_000_000 || b.Slot != 77 || b.Cluster != "test" {
		t.Fatalf("unexpected balance %+v", b)
	}
	if b.SOL() != 1.5 {
		t.Fatalf("expected 1.5 SOL, got %v", b.SOL())
	}

	again, err := reader.Lookup(context.Background(), devnetAddress)
	if err != nil {
		t.Fatalf("second Lookup returned error: %v", err)
	}
	if again.Lamports != b.Lamports {
		t.Fatalf("repeated lookup changed: %d vs %d", again.Lamports, b.Lamports)
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("expected one request per lookup, got %d", hits)
	}
}

func TestLookupTimesOutOnStalledEndpoint(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	reader := NewReader(rpc.Cluster{Name: "stalled", RPC: server.URL}, "", 100*time.Millisecond, zerolog.Nop())

	start := time.Now()
	_, err := reader.Lookup(context.Background(), devnetAddress)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("lookup did not honour timeout")
	}
}

func TestLookupUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	reader := NewReader(rpc.Cluster{Name: "gone", RPC: url}, "", time.Second, zerolog.Nop())
	if _, err := reader.Lookup(context.Background(), devnetAddress); err == nil {
		t.Fatalf("expected error for closed endpoint")
	}
}
