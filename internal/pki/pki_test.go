package pki

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/glharness/schema"
)

func newTestProvisioner(t *testing.T, dir string) *Provisioner {
	t.Helper()
	p, err := NewProvisioner(filepath.Join(dir, "certs"), filepath.Join(dir, "pki.bundle"), nil)
	if err != nil {
		t.Fatalf("new provisioner: %v", err)
	}
	return p
}

func TestEnsureProvisionsTree(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvisioner(t, dir)
	material, err := p.Ensure([]string{"localhost", "127.0.0.1"}, "nobody")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	for _, path := range []string{material.CACrtPath, material.ServerCrtPath, material.ServerKeyPath} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
	}
	identity, ok := material.Identities["nobody"]
	if !ok {
		t.Fatal("missing nobody identity")
	}
	if _, err := tls.LoadX509KeyPair(identity.CrtPath, identity.KeyPath); err != nil {
		t.Fatalf("load nobody pair: %v", err)
	}
	if _, err := tls.LoadX509KeyPair(material.ServerCrtPath, material.ServerKeyPath); err != nil {
		t.Fatalf("load server pair: %v", err)
	}

	// CA private key must never hit disk in the clear.
	raw, err := os.ReadFile(filepath.Join(material.Dir, caKeyFile))
	if err != nil {
		t.Fatalf("read ca key: %v", err)
	}
	if bytes.Contains(raw, []byte("EC PRIVATE KEY")) {
		t.Fatal("ca key is stored unencrypted")
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvisioner(t, dir)
	first, err := p.Ensure(nil, "nobody")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	caBefore, err := os.ReadFile(first.CACrtPath)
	if err != nil {
		t.Fatalf("read ca: %v", err)
	}
	leafBefore, err := os.ReadFile(first.Identities["nobody"].CrtPath)
	if err != nil {
		t.Fatalf("read leaf: %v", err)
	}

	p2 := newTestProvisioner(t, dir)
	second, err := p2.Ensure(nil, "nobody")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	caAfter, err := os.ReadFile(second.CACrtPath)
	if err != nil {
		t.Fatalf("read ca again: %v", err)
	}
	if !bytes.Equal(caBefore, caAfter) {
		t.Fatal("authority certificate changed across runs")
	}
	leafAfter, err := os.ReadFile(second.Identities["nobody"].CrtPath)
	if err != nil {
		t.Fatalf("read leaf again: %v", err)
	}
	if !bytes.Equal(leafBefore, leafAfter) {
		t.Fatal("client certificate changed across runs")
	}
}

func TestEnsureRejectsMalformedAuthority(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvisioner(t, dir)
	material, err := p.Ensure(nil, "nobody")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	garbage := []byte("not a certificate\n")
	if err := os.WriteFile(material.CACrtPath, garbage, 0o644); err != nil {
		t.Fatalf("corrupt ca: %v", err)
	}

	p2 := newTestProvisioner(t, dir)
	if _, err := p2.Ensure(nil, "nobody"); err == nil {
		t.Fatal("expected ensure to fail on malformed authority")
	} else if schema.KindOf(err) != schema.KindProvisioning {
		t.Fatalf("expected provisioning kind, got %s", schema.KindOf(err))
	}

	// The broken material must be left in place, never regenerated over.
	after, err := os.ReadFile(material.CACrtPath)
	if err != nil {
		t.Fatalf("read ca: %v", err)
	}
	if !bytes.Equal(after, garbage) {
		t.Fatal("malformed authority was rewritten")
	}
}

func TestLeafChainsToAuthority(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvisioner(t, dir)
	material, err := p.Ensure([]string{"localhost"}, "nobody")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	caPEM, err := os.ReadFile(material.CACrtPath)
	if err != nil {
		t.Fatalf("read ca: %v", err)
	}
	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(caPEM) {
		t.Fatal("ca pem did not parse")
	}
	leafPEM, err := os.ReadFile(material.Identities["nobody"].CrtPath)
	if err != nil {
		t.Fatalf("read leaf: %v", err)
	}
	block, _ := pem.Decode(leafPEM)
	if block == nil {
		t.Fatal("leaf pem did not decode")
	}
	leaf, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("parse leaf: %v", err)
	}
	opts := x509.VerifyOptions{Roots: roots, KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}}
	if _, err := leaf.Verify(opts); err != nil {
		t.Fatalf("leaf does not chain to authority: %v", err)
	}
	if leaf.Subject.CommonName != "nobody" {
		t.Fatalf("unexpected leaf subject %q", leaf.Subject.CommonName)
	}
}

func TestIssueClientPEM(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvisioner(t, dir)
	material, err := p.Ensure(nil, "nobody")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	certPEM, keyPEM, err := p.IssueClientPEM("device-1")
	if err != nil {
		t.Fatalf("issue client: %v", err)
	}
	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		t.Fatalf("issued pair does not load: %v", err)
	}
	caPEM, err := os.ReadFile(material.CACrtPath)
	if err != nil {
		t.Fatalf("read ca: %v", err)
	}
	roots := x509.NewCertPool()
	roots.AppendCertsFromPEM(caPEM)
	block, _ := pem.Decode(certPEM)
	leaf, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("parse issued leaf: %v", err)
	}
	opts := x509.VerifyOptions{Roots: roots, KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}}
	if _, err := leaf.Verify(opts); err != nil {
		t.Fatalf("issued leaf does not chain: %v", err)
	}
}

func TestIssueClientBeforeEnsureFails(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvisioner(t, dir)
	if _, _, err := p.IssueClientPEM("device-1"); err == nil {
		t.Fatal("expected error before ensure")
	} else if schema.KindOf(err) != schema.KindProvisioning {
		t.Fatalf("expected provisioning kind, got %s", schema.KindOf(err))
	}
}

func TestEnsureUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0o500); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p, err := NewProvisioner(filepath.Join(blocked, "certs"), filepath.Join(dir, "pki.bundle"), nil)
	if err != nil {
		t.Fatalf("new provisioner: %v", err)
	}
	if _, err := p.Ensure(nil, "nobody"); err == nil {
		t.Fatal("expected ensure to fail in unwritable directory")
	} else if schema.KindOf(err) != schema.KindProvisioning {
		t.Fatalf("expected provisioning kind, got %s", schema.KindOf(err))
	}
}
