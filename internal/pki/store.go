package pki

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pkt.systems/kryptograf"
	"pkt.systems/kryptograf/keymgmt"
	"pkt.systems/pslog"
)

const (
	caKeyFile        = "ca-key.enc"
	descriptorPrefix = "glharness:pki:"
)

// keyStore encrypts the authority private key at rest. The key material
// descriptor lives in a keymgmt bundle next to the certificate directory.
type keyStore struct {
	bundlePath string
	log        pslog.Logger
}

func newKeyStore(bundlePath string, logger pslog.Logger) (*keyStore, error) {
	if bundlePath == "" {
		return nil, fmt.Errorf("pki key store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(bundlePath), 0o700); err != nil {
		return nil, err
	}
	store, err := keymgmt.LoadProto(bundlePath)
	if err != nil {
		return nil, err
	}
	if _, err := store.EnsureRootKey(); err != nil {
		return nil, err
	}
	if err := store.Commit(); err != nil {
		return nil, err
	}
	return &keyStore{bundlePath: bundlePath, log: logger}, nil
}

func (s *keyStore) material(name string) (keymgmt.Material, keymgmt.RootKey, error) {
	store, err := keymgmt.LoadProto(s.bundlePath)
	if err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	root, err := store.EnsureRootKey()
	if err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	descName := descriptorPrefix + name
	material, err := store.EnsureDescriptor(descName, root, []byte(descName))
	if err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	if err := store.Commit(); err != nil {
		return keymgmt.Material{}, keymgmt.RootKey{}, err
	}
	return material, root, nil
}

// seal encrypts plain and writes it to path atomically with mode 0600.
func (s *keyStore) seal(path, name string, plain []byte) error {
	material, root, err := s.material(name)
	if err != nil {
		if s.log != nil {
			s.log.Warn("pki key seal failed", "name", name, "err", err)
		}
		return err
	}
	kg := kryptograf.New(root)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "key-*.enc")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	writer, err := kg.EncryptWriter(tmp, material)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := io.Copy(writer, bytes.NewReader(plain)); err != nil {
		_ = writer.Close()
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := writer.Close(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	_ = tmp.Close()
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if s.log != nil {
		s.log.Debug("pki key seal ok", "name", name, "path", path)
	}
	return nil
}

// open decrypts the key material stored at path.
func (s *keyStore) open(path, name string) ([]byte, error) {
	material, root, err := s.material(name)
	if err != nil {
		if s.log != nil {
			s.log.Warn("pki key open failed", "name", name, "err", err)
		}
		return nil, err
	}
	kg := kryptograf.New(root)
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	reader, err := kg.DecryptReader(file, material)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}
