package seed

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/glharness/schema"
)

func TestLoadOrGenerateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "seed")
	first, err := LoadOrGenerate(path, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first) != Size {
		t.Fatalf("seed length = %d, want %d", len(first), Size)
	}
	second, err := LoadOrGenerate(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("seed changed across runs")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("seed mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadRejectsTruncatedSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed")
	if err := os.WriteFile(path, []byte("short"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadOrGenerate(path, nil)
	if err == nil {
		t.Fatal("expected error for truncated seed")
	}
	if !errors.Is(err, schema.ErrInvalidSeed) {
		t.Fatalf("expected ErrInvalidSeed, got %v", err)
	}
	if schema.KindOf(err) != schema.KindProvisioning {
		t.Fatalf("expected provisioning kind, got %s", schema.KindOf(err))
	}
}

func TestLoadOrGenerateDistinctSeeds(t *testing.T) {
	dir := t.TempDir()
	a, err := LoadOrGenerate(filepath.Join(dir, "a"), nil)
	if err != nil {
		t.Fatalf("generate a: %v", err)
	}
	b, err := LoadOrGenerate(filepath.Join(dir, "b"), nil)
	if err != nil {
		t.Fatalf("generate b: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("independent seeds are identical")
	}
}
