package report

import (
	"bytes"
	"strings"
	"testing"

	solana "github.com/gagliardetto/solana-go"

	"solana-starter/internal/balance"
	"solana-starter/internal/wallet"
)

func TestPublicKeyOmitsSecret(t *testing.T) {
	kp, err := wallet.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := PublicKey(&buf, kp); err != nil {
		t.Fatalf("PublicKey returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, kp.Address()) {
		t.Fatalf("missing address in %q", out)
	}
	if strings.Contains(out, kp.PrivateKey.String()) {
		t.Fatalf("secret leaked into %q", out)
	}
}

func TestSecretBytesFormat(t *testing.T) {
	kp, err := wallet.Generate()
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	var buf bytes.Buffer
	if err := SecretBytes(&buf, kp); err != nil {
		t.Fatalf("SecretBytes returned error: %v", err)
	}
	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "The secret key is: [") || !strings.HasSuffix(line, "]") {
		t.Fatalf("unexpected secret line %q", line)
	}
	if n := len(strings.Fields(line[strings.Index(line, "[")+1 : len(line)-1])); n != 64 {
		t.Fatalf("expected 64 secret bytes, got %d", n)
	}
}

func TestBalanceLine(t *testing.T) {
	b := balance.Balance{
		Address:  solana.MustPublicKeyFromBase58("AMSy4Ls18VveJkYYNNEoTvA1PNd5iqiC6WQQTK8JXRXv"),
		Lamports: 2_500_000_000,
	}
	var buf bytes.Buffer
	if err := Balance(&buf, b); err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	want := "The balance of the account at AMSy4Ls18VveJkYYNNEoTvA1PNd5iqiC6WQQTK8JXRXv is 2500000000 lamports (2.500000000 SOL)\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestSecretStoredAndFinished(t *testing.T) {
	var buf bytes.Buffer
	_ = SecretStored(&buf, ".env", "SOLANA_PRIVATE_KEY_BASE58")
	_ = Finished(&buf)
	out := buf.String()
	if !strings.Contains(out, ".env") || !strings.Contains(out, "Finished") {
		t.Fatalf("unexpected output %q", out)
	}
}
