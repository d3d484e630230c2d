// Package seed manages the 32-byte wallet seed used when registering a
// node. The seed is derived from a fresh 24-word mnemonic with an empty
// passphrase and persisted raw, so a registered node survives re-runs.
package seed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bip39 "github.com/tyler-smith/go-bip39"
	"pkt.systems/glharness/schema"
	"pkt.systems/pslog"
)

// Size is the seed length in bytes.
const Size = 32

// LoadOrGenerate returns the seed at path, creating it on first use.
func LoadOrGenerate(path string, logger pslog.Logger) ([]byte, error) {
	if path == "" {
		return nil, schema.NewError(schema.KindProvisioning, "seed load",
			errors.New("seed path is required"))
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != Size {
			return nil, schema.NewError(schema.KindProvisioning, "seed load",
				fmt.Errorf("%w: %d bytes, want %d", schema.ErrInvalidSeed, len(data), Size))
		}
		if logger != nil {
			logger.Debug("seed load ok", "path", path)
		}
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, schema.NewError(schema.KindProvisioning, "seed load", err)
	}

	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return nil, schema.NewError(schema.KindProvisioning, "seed generate", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, schema.NewError(schema.KindProvisioning, "seed generate", err)
	}
	value := bip39.NewSeed(mnemonic, "")[:Size]
	if err := writeSeed(path, value); err != nil {
		return nil, schema.NewError(schema.KindProvisioning, "seed write", err)
	}
	if logger != nil {
		logger.Info("seed generated", "path", path)
	}
	return value, nil
}

func writeSeed(path string, value []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "seed-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
