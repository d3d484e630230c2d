package schedulergrpc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pkt.systems/glharness/schema"
)

// LoadDeviceCreds reads previously stored device credentials for nodeID
// from dir. Returns schema.ErrNotRegistered when none exist yet.
func LoadDeviceCreds(dir, nodeID string) (DeviceCreds, error) {
	certPath, keyPath := deviceCredPaths(dir, nodeID)
	certPEM, err := os.ReadFile(certPath)
	if errors.Is(err, os.ErrNotExist) {
		return DeviceCreds{}, fmt.Errorf("%s: %w", certPath, schema.ErrNotRegistered)
	}
	if err != nil {
		return DeviceCreds{}, schema.NewError(schema.KindConfiguration, "device creds load", err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if errors.Is(err, os.ErrNotExist) {
		return DeviceCreds{}, fmt.Errorf("%s: %w", keyPath, schema.ErrNotRegistered)
	}
	if err != nil {
		return DeviceCreds{}, schema.NewError(schema.KindConfiguration, "device creds load", err)
	}
	return DeviceCreds{CertPEM: certPEM, KeyPEM: keyPEM}, nil
}

// StoreDeviceCreds writes device credentials for nodeID into dir with
// owner-only permissions.
func StoreDeviceCreds(dir, nodeID string, creds DeviceCreds) error {
	certPath, keyPath := deviceCredPaths(dir, nodeID)
	if err := writeFileAtomic(certPath, creds.CertPEM); err != nil {
		return schema.NewError(schema.KindConfiguration, "device creds store", err)
	}
	if err := writeFileAtomic(keyPath, creds.KeyPEM); err != nil {
		return schema.NewError(schema.KindConfiguration, "device creds store", err)
	}
	return nil
}

func deviceCredPaths(dir, nodeID string) (certPath, keyPath string) {
	base := filepath.Join(dir, "device-"+nodeID)
	return base + ".crt", base + "-key.pem"
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
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
