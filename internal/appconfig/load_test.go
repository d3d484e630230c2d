package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRejectsUnsupportedConfigVersion(t *testing.T) {
	path := writeConfig(t, `
config_version: 99
runtime:
  runtime: docker
  docker:
    address: unix:///var/run/docker.sock
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported config_version") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadRejectsMissingConfigVersion(t *testing.T) {
	path := writeConfig(t, `
runtime:
  runtime: docker
  docker:
    address: unix:///var/run/docker.sock
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "config_version is required") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadRejectsUnsupportedRuntime(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
runtime:
  runtime: nope
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported runtime.runtime") {
		t.Fatalf("expected runtime error, got %v", err)
	}
}

func TestLoadRejectsInvalidSchedulerURI(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
runtime:
  runtime: docker
  docker:
    address: unix:///var/run/docker.sock
scheduler:
  grpc_uri: "://broken"
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "scheduler.grpc_uri") {
		t.Fatalf("expected scheduler uri error, got %v", err)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
runtime:
  runtime: containerd
  containerd:
    address: unix:///run/containerd/containerd.sock
    namespace: testsuite
bitcoind:
  network: signet
harness:
  readiness_timeout_seconds: 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Runtime.Runtime != "containerd" {
		t.Fatalf("runtime = %q", cfg.Runtime.Runtime)
	}
	if cfg.Runtime.Containerd.Namespace != "testsuite" {
		t.Fatalf("namespace = %q", cfg.Runtime.Containerd.Namespace)
	}
	if cfg.Bitcoind.Network != "signet" {
		t.Fatalf("network = %q", cfg.Bitcoind.Network)
	}
	if cfg.Harness.ReadinessTimeoutSeconds != 30 {
		t.Fatalf("readiness timeout = %d", cfg.Harness.ReadinessTimeoutSeconds)
	}
	if cfg.Scheduler.Identity != "nobody" {
		t.Fatalf("identity default = %q", cfg.Scheduler.Identity)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("config version = %d", cfg.ConfigVersion)
	}
	if cfg.Runtime.Runtime != "docker" {
		t.Fatalf("runtime default = %q", cfg.Runtime.Runtime)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	value := expandEnv("$FOO/$UID/$GID/$MISSING")
	if !strings.HasPrefix(value, "bar/") {
		t.Fatalf("expected env expansion, got %q", value)
	}
	if strings.Contains(value, "$UID") || strings.Contains(value, "$GID") {
		t.Fatalf("expected UID/GID expansion, got %q", value)
	}
	if !strings.HasSuffix(value, "/$MISSING") {
		t.Fatalf("expected missing vars to remain, got %q", value)
	}
}

func TestWriteDefaultRespectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected path %q, got %q", path, written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config to exist: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
