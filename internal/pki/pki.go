// Package pki provisions the certificate authority and leaf certificates
// the test environment hands out. Provisioning is idempotent: material that
// already exists on disk and still verifies is reused unchanged, so repeated
// runs see a byte-identical authority certificate.
package pki

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkt.systems/glharness/schema"
	"pkt.systems/pslog"
)

const (
	caCertFile    = "ca.crt"
	serverCrtFile = "server.crt"
	serverKeyFile = "server-key.pem"

	caValidity   = 10 * 365 * 24 * time.Hour
	leafValidity = 365 * 24 * time.Hour
)

// Material describes the provisioned certificate tree on disk.
type Material struct {
	Dir           string
	CACrtPath     string
	ServerCrtPath string
	ServerKeyPath string
	Identities    map[string]schema.Identity
}

// Provisioner creates and reuses the authority and its leaf certificates.
type Provisioner struct {
	dir   string
	store *keyStore
	log   pslog.Logger

	caCert *x509.Certificate
	caKey  *ecdsa.PrivateKey
	caPEM  []byte
}

// NewProvisioner prepares a provisioner writing into dir. The authority
// private key is kept encrypted in the keymgmt bundle at bundlePath.
func NewProvisioner(dir, bundlePath string, logger pslog.Logger) (*Provisioner, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("certificate directory is required")
	}
	store, err := newKeyStore(bundlePath, logger)
	if err != nil {
		return nil, schema.NewError(schema.KindProvisioning, "pki store init", err)
	}
	if logger != nil {
		logger = logger.With("cert_dir", dir)
	}
	return &Provisioner{dir: dir, store: store, log: logger}, nil
}

// Ensure provisions the authority, a server certificate valid for hosts and
// a client certificate per identity name. Existing material that still
// verifies is left untouched.
func (p *Provisioner) Ensure(hosts []string, identities ...string) (*Material, error) {
	if p.log != nil {
		p.log.Info("pki ensure start", "hosts", strings.Join(hosts, ","), "identities", strings.Join(identities, ","))
	}
	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return nil, p.fail("pki ensure", err)
	}
	if err := p.ensureCA(); err != nil {
		return nil, p.fail("pki ca ensure", err)
	}
	if err := p.ensureServer(hosts); err != nil {
		return nil, p.fail("pki server ensure", err)
	}
	material := &Material{
		Dir:           p.dir,
		CACrtPath:     filepath.Join(p.dir, caCertFile),
		ServerCrtPath: filepath.Join(p.dir, serverCrtFile),
		ServerKeyPath: filepath.Join(p.dir, serverKeyFile),
		Identities:    make(map[string]schema.Identity, len(identities)),
	}
	for _, name := range identities {
		identity, err := p.ensureClient(name)
		if err != nil {
			return nil, p.fail("pki client ensure", err)
		}
		material.Identities[name] = identity
	}
	if p.log != nil {
		p.log.Info("pki ensure ok", "ca", material.CACrtPath)
	}
	return material, nil
}

// CACertPEM returns the authority certificate after Ensure has run.
func (p *Provisioner) CACertPEM() []byte {
	return append([]byte(nil), p.caPEM...)
}

// IssueClientPEM mints a fresh client certificate signed by the authority
// without writing it to disk. Used when registering devices over the wire.
func (p *Provisioner) IssueClientPEM(name string) (certPEM, keyPEM []byte, err error) {
	if p.caCert == nil || p.caKey == nil {
		return nil, nil, schema.NewError(schema.KindProvisioning, "pki issue client",
			errors.New("authority not provisioned"))
	}
	if strings.TrimSpace(name) == "" {
		return nil, nil, schema.NewError(schema.KindProvisioning, "pki issue client",
			fmt.Errorf("%w: empty name", schema.ErrInvalidIdentity))
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, schema.NewError(schema.KindProvisioning, "pki issue client", err)
	}
	der, err := p.signLeaf(name, &key.PublicKey, x509.ExtKeyUsageClientAuth, nil, nil)
	if err != nil {
		return nil, nil, schema.NewError(schema.KindProvisioning, "pki issue client", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, nil, schema.NewError(schema.KindProvisioning, "pki issue client", err)
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	if p.log != nil {
		p.log.Debug("pki issue client ok", "name", name)
	}
	return certPEM, keyPEM, nil
}

func (p *Provisioner) fail(op string, err error) error {
	if p.log != nil {
		p.log.Warn(op+" failed", "err", err)
	}
	var classified *schema.Error
	if errors.As(err, &classified) {
		return err
	}
	return schema.NewError(schema.KindProvisioning, op, err)
}

func (p *Provisioner) ensureCA() error {
	certPath := filepath.Join(p.dir, caCertFile)
	keyPath := filepath.Join(p.dir, caKeyFile)
	certPEM, certErr := os.ReadFile(certPath)
	if certErr == nil {
		keyPEM, err := p.store.open(keyPath, "ca")
		if err != nil {
			return fmt.Errorf("authority key for existing %s: %w", certPath, err)
		}
		cert, key, err := parseAuthority(certPEM, keyPEM)
		if err != nil {
			return fmt.Errorf("existing authority %s is unusable: %w", certPath, err)
		}
		p.caCert, p.caKey, p.caPEM = cert, key, certPEM
		if p.log != nil {
			p.log.Debug("pki ca reuse", "path", certPath)
		}
		return nil
	}
	if !errors.Is(certErr, os.ErrNotExist) {
		return certErr
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}
	serial, err := newSerial()
	if err != nil {
		return err
	}
	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: "glharness test CA", Organization: []string{"glharness"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(caValidity),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLen:            1,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return err
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return err
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	if err := p.store.seal(keyPath, "ca", keyPEM); err != nil {
		return err
	}
	if err := writeFileAtomic(certPath, certPEM, 0o644); err != nil {
		return err
	}
	p.caCert, p.caKey, p.caPEM = cert, key, certPEM
	if p.log != nil {
		p.log.Info("pki ca generated", "path", certPath)
	}
	return nil
}

func (p *Provisioner) ensureServer(hosts []string) error {
	if len(hosts) == 0 {
		hosts = []string{"localhost", "127.0.0.1"}
	}
	certPath := filepath.Join(p.dir, serverCrtFile)
	keyPath := filepath.Join(p.dir, serverKeyFile)
	var dnsNames []string
	var ips []net.IP
	for _, host := range hosts {
		if ip := net.ParseIP(host); ip != nil {
			ips = append(ips, ip)
		} else {
			dnsNames = append(dnsNames, host)
		}
	}
	if p.leafValid(certPath, keyPath, x509.ExtKeyUsageServerAuth, dnsNames) {
		if p.log != nil {
			p.log.Debug("pki server reuse", "path", certPath)
		}
		return nil
	}
	return p.writeLeaf("scheduler", certPath, keyPath, x509.ExtKeyUsageServerAuth, dnsNames, ips)
}

func (p *Provisioner) ensureClient(name string) (schema.Identity, error) {
	if strings.TrimSpace(name) == "" {
		return schema.Identity{}, fmt.Errorf("%w: empty name", schema.ErrInvalidIdentity)
	}
	certPath := filepath.Join(p.dir, name+".crt")
	keyPath := filepath.Join(p.dir, name+"-key.pem")
	identity := schema.Identity{Name: name, CrtPath: certPath, KeyPath: keyPath}
	if p.leafValid(certPath, keyPath, x509.ExtKeyUsageClientAuth, nil) {
		if p.log != nil {
			p.log.Debug("pki client reuse", "name", name)
		}
		return identity, nil
	}
	if err := p.writeLeaf(name, certPath, keyPath, x509.ExtKeyUsageClientAuth, nil, nil); err != nil {
		return schema.Identity{}, err
	}
	return identity, nil
}

// leafValid reports whether an existing leaf pair parses, chains to the
// current authority and covers the wanted usage and names.
func (p *Provisioner) leafValid(certPath, keyPath string, usage x509.ExtKeyUsage, dnsNames []string) bool {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return false
	}
	if _, err := os.Stat(keyPath); err != nil {
		return false
	}
	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return false
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return false
	}
	roots := x509.NewCertPool()
	roots.AddCert(p.caCert)
	opts := x509.VerifyOptions{Roots: roots, KeyUsages: []x509.ExtKeyUsage{usage}}
	if _, err := cert.Verify(opts); err != nil {
		return false
	}
	for _, name := range dnsNames {
		if err := cert.VerifyHostname(name); err != nil {
			return false
		}
	}
	return true
}

func (p *Provisioner) writeLeaf(name, certPath, keyPath string, usage x509.ExtKeyUsage, dnsNames []string, ips []net.IP) error {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}
	der, err := p.signLeaf(name, &key.PublicKey, usage, dnsNames, ips)
	if err != nil {
		return err
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return err
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	if err := writeFileAtomic(keyPath, keyPEM, 0o600); err != nil {
		return err
	}
	if err := writeFileAtomic(certPath, certPEM, 0o644); err != nil {
		return err
	}
	if p.log != nil {
		p.log.Info("pki leaf generated", "name", name, "path", certPath)
	}
	return nil
}

func (p *Provisioner) signLeaf(commonName string, pub *ecdsa.PublicKey, usage x509.ExtKeyUsage, dnsNames []string, ips []net.IP) ([]byte, error) {
	serial, err := newSerial()
	if err != nil {
		return nil, err
	}
	template := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: commonName, Organization: []string{"glharness"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(leafValidity),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{usage},
		DNSNames:     dnsNames,
		IPAddresses:  ips,
	}
	return x509.CreateCertificate(rand.Reader, template, p.caCert, pub, p.caKey)
}

func newSerial() (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	return rand.Int(rand.Reader, limit)
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(mode); err != nil {
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

func parseAuthority(certPEM, keyPEM []byte) (*x509.Certificate, *ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, nil, errors.New("authority certificate is not PEM encoded")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, nil, err
	}
	if !cert.IsCA {
		return nil, nil, errors.New("authority certificate is not a CA")
	}
	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil || keyBlock.Type != "EC PRIVATE KEY" {
		return nil, nil, errors.New("authority key is not PEM encoded")
	}
	key, err := x509.ParseECPrivateKey(keyBlock.Bytes)
	if err != nil {
		return nil, nil, err
	}
	if !key.PublicKey.Equal(cert.PublicKey) {
		return nil, nil, errors.New("authority key does not match certificate")
	}
	return cert, key, nil
}
