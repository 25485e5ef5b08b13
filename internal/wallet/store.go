package wallet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	solana "github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"

	"solana-starter/internal/metrics"
)

var (
	// ErrSecretExists guards against silently replacing a stored key.
	ErrSecretExists = errors.New("secret already stored")
	// ErrSecretMissing is returned when neither the store nor the environment holds the key.
	ErrSecretMissing = errors.New("secret not set")
)

const secretFileMode = 0o600

// StoreSecret writes priv as base58 under key into the dotenv file at path.
// Every other byte of an existing file is kept as is: only lines assigning key
// are replaced, or one assignment is appended. The file ends up with mode 0600
// and is replaced atomically.
func StoreSecret(path, key string, priv solana.PrivateKey, force bool) error {
	original, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	env, err := godotenv.Unmarshal(string(original))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if env[key] != "" && !force {
		return fmt.Errorf("%w: %s in %s", ErrSecretExists, key, path)
	}

	content := setAssignment(original, key, priv.String())

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create secret dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".secret-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write secret: %w", err)
	}
	if err := tmp.Chmod(secretFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod secret: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync secret: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close secret: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename secret: %w", err)
	}
	metrics.SecretsStored.Inc()
	return nil
}

// setAssignment replaces each line assigning key with key="value", or appends
// one when none exists.
func setAssignment(content []byte, key, value string) []byte {
	line := fmt.Sprintf("%s=%q", key, value)
	lines := strings.SplitAfter(string(content), "\n")
	found := false
	for i, l := range lines {
		if !assigns(l, key) {
			continue
		}
		found = true
		lines[i] = line
		if strings.HasSuffix(l, "\n") {
			lines[i] += "\n"
		}
	}
	out := strings.Join(lines, "")
	if !found {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += line + "\n"
	}
	return []byte(out)
}

func assigns(line, key string) bool {
	l := strings.TrimSpace(line)
	l = strings.TrimPrefix(l, "export ")
	if !strings.HasPrefix(l, key) {
		return false
	}
	rest := strings.TrimLeft(l[len(key):], " \t")
	return strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, ":")
}

// LoadPrivateKey reads key from the dotenv file at path, falling back to the
// process environment.
func LoadPrivateKey(path, key string) (solana.PrivateKey, error) {
	env, err := readStore(path)
	if err != nil {
		return nil, err
	}
	b58 := env[key]
	if b58 == "" {
		b58 = os.Getenv(key)
	}
	if b58 == "" {
		return nil, fmt.Errorf("%w: %s", ErrSecretMissing, key)
	}
	priv, err := solana.PrivateKeyFromBase58(b58)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return priv, nil
}

func readStore(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}
