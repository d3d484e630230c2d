package schedulergrpc

import (
	"context"
	"crypto/tls"
	"net"
	"path/filepath"
	"testing"
	"time"

	"pkt.systems/glharness/internal/pki"
	"pkt.systems/glharness/schema"
)

type testEnv struct {
	provisioner *pki.Provisioner
	material    *pki.Material
	addr        string
	cancel      context.CancelFunc
}

// startMock provisions certificates, starts a mock scheduler on a loopback
// listener and returns the connection details.
func startMock(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	provisioner, err := pki.NewProvisioner(filepath.Join(dir, "certs"), filepath.Join(dir, "pki.bundle"), nil)
	if err != nil {
		t.Fatalf("new provisioner: %v", err)
	}
	material, err := provisioner.Ensure([]string{"localhost", "127.0.0.1"}, "nobody")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	serverTLS, err := ServerTLS(material.CACrtPath, material.ServerCrtPath, material.ServerKeyPath)
	if err != nil {
		t.Fatalf("server tls: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	mock := NewMockScheduler(provisioner, "v0.0.1-test", "https://node.localhost:9736", nil)
	go func() {
		_ = mock.Serve(ctx, listener, serverTLS)
	}()
	env := &testEnv{
		provisioner: provisioner,
		material:    material,
		addr:        listener.Addr().String(),
		cancel:      cancel,
	}
	t.Cleanup(cancel)
	return env
}

func (e *testEnv) clientConfig() Config {
	nobody := e.material.Identities["nobody"]
	return Config{
		URI:         "https://" + e.addr,
		CACrtPath:   e.material.CACrtPath,
		CrtPath:     nobody.CrtPath,
		KeyPath:     nobody.KeyPath,
		CallTimeout: 5 * time.Second,
	}
}

func dialMock(t *testing.T, env *testEnv) *Client {
	t.Helper()
	client, err := Dial(context.Background(), env.clientConfig())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPingReturnsVersion(t *testing.T) {
	env := startMock(t)
	client := dialMock(t, env)
	version, err := client.Ping(context.Background())
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if version != "v0.0.1-test" {
		t.Fatalf("version = %q", version)
	}
}

func TestRegisterMintsDeviceCreds(t *testing.T) {
	env := startMock(t)
	client := dialMock(t, env)
	creds, err := client.Register(context.Background(), "node-1", "regtest")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := tls.X509KeyPair(creds.CertPEM, creds.KeyPEM); err != nil {
		t.Fatalf("device creds do not load: %v", err)
	}
}

func TestRegisterTwiceIsProtocolError(t *testing.T) {
	env := startMock(t)
	client := dialMock(t, env)
	if _, err := client.Register(context.Background(), "node-1", "regtest"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := client.Register(context.Background(), "node-1", "regtest")
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if schema.KindOf(err) != schema.KindProtocol {
		t.Fatalf("expected protocol kind, got %s (%v)", schema.KindOf(err), err)
	}
}

func TestScheduleUnregisteredIsProtocolError(t *testing.T) {
	env := startMock(t)
	client := dialMock(t, env)
	_, err := client.Schedule(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected schedule of unregistered node to fail")
	}
	if schema.KindOf(err) != schema.KindProtocol {
		t.Fatalf("expected protocol kind, got %s (%v)", schema.KindOf(err), err)
	}
}

func TestScheduleAndNodeInfo(t *testing.T) {
	env := startMock(t)
	client := dialMock(t, env)
	if _, err := client.Register(context.Background(), "node-1", "regtest"); err != nil {
		t.Fatalf("register: %v", err)
	}
	info, err := client.Schedule(context.Background(), "node-1")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if info.GRPCURI == "" {
		t.Fatal("schedule returned empty endpoint")
	}
	again, err := client.GetNodeInfo(context.Background(), "node-1", false)
	if err != nil {
		t.Fatalf("node info: %v", err)
	}
	if again.GRPCURI != info.GRPCURI {
		t.Fatalf("endpoint mismatch: %q vs %q", again.GRPCURI, info.GRPCURI)
	}
}

func TestNodeInfoWaitSchedulesLazily(t *testing.T) {
	env := startMock(t)
	client := dialMock(t, env)
	if _, err := client.Register(context.Background(), "node-1", "regtest"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := client.GetNodeInfo(context.Background(), "node-1", false); err == nil {
		t.Fatal("expected unscheduled node info to fail without wait")
	}
	info, err := client.GetNodeInfo(context.Background(), "node-1", true)
	if err != nil {
		t.Fatalf("node info with wait: %v", err)
	}
	if info.GRPCURI == "" {
		t.Fatal("empty endpoint after lazy schedule")
	}
}

func TestForeignAuthorityIsConnectionError(t *testing.T) {
	env := startMock(t)

	// Separate authority, same identity name. The handshake must fail.
	foreignDir := t.TempDir()
	foreign, err := pki.NewProvisioner(filepath.Join(foreignDir, "certs"), filepath.Join(foreignDir, "pki.bundle"), nil)
	if err != nil {
		t.Fatalf("foreign provisioner: %v", err)
	}
	foreignMaterial, err := foreign.Ensure(nil, "nobody")
	if err != nil {
		t.Fatalf("foreign ensure: %v", err)
	}
	nobody := foreignMaterial.Identities["nobody"]
	client, err := Dial(context.Background(), Config{
		URI:         "https://" + env.addr,
		CACrtPath:   foreignMaterial.CACrtPath,
		CrtPath:     nobody.CrtPath,
		KeyPath:     nobody.KeyPath,
		CallTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = client.Close() }()
	_, err = client.Ping(context.Background())
	if err == nil {
		t.Fatal("expected handshake against foreign authority to fail")
	}
	if kind := schema.KindOf(err); kind != schema.KindConnection && kind != schema.KindTimeout {
		t.Fatalf("expected connection kind, got %s (%v)", kind, err)
	}
}

func TestUnreachableEndpointIsConnectionError(t *testing.T) {
	env := startMock(t)
	cfg := env.clientConfig()
	// Grab a port with no listener behind it.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	deadAddr := listener.Addr().String()
	_ = listener.Close()
	cfg.URI = "https://" + deadAddr
	cfg.CallTimeout = 2 * time.Second
	client, err := Dial(context.Background(), cfg)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = client.Close() }()
	_, err = client.Ping(context.Background())
	if err == nil {
		t.Fatal("expected ping against dead endpoint to fail")
	}
	if kind := schema.KindOf(err); kind != schema.KindConnection && kind != schema.KindTimeout {
		t.Fatalf("expected connection kind, got %s (%v)", kind, err)
	}
}

func TestMissingClientCertIsConfigurationError(t *testing.T) {
	env := startMock(t)
	cfg := env.clientConfig()
	cfg.CrtPath = filepath.Join(t.TempDir(), "missing.crt")
	_, err := Dial(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected dial with missing certificate to fail")
	}
	if schema.KindOf(err) != schema.KindConfiguration {
		t.Fatalf("expected configuration kind, got %s (%v)", schema.KindOf(err), err)
	}
}

func TestGRPCTargetStripsScheme(t *testing.T) {
	cases := map[string]string{
		"https://localhost:39095": "localhost:39095",
		"http://127.0.0.1:8080":   "127.0.0.1:8080",
		"grpc://host:1":           "host:1",
		"localhost:39095":         "localhost:39095",
	}
	for in, want := range cases {
		if got := grpcTarget(in); got != want {
			t.Fatalf("grpcTarget(%q) = %q, want %q", in, got, want)
		}
	}
}
