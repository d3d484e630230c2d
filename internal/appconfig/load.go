package appconfig

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("work_dir", cfg.WorkDir)
	v.SetDefault("harness.env_file", cfg.Harness.EnvFile)
	v.SetDefault("harness.seed_file", cfg.Harness.SeedFile)
	v.SetDefault("harness.cert_dir", cfg.Harness.CertDir)
	v.SetDefault("harness.key_bundle", cfg.Harness.KeyBundle)
	v.SetDefault("harness.readiness_timeout_seconds", cfg.Harness.ReadinessTimeoutSeconds)
	v.SetDefault("harness.poll_interval_millis", cfg.Harness.PollIntervalMillis)
	v.SetDefault("harness.log_tail_lines", cfg.Harness.LogTailLines)
	v.SetDefault("harness.call_timeout_seconds", cfg.Harness.CallTimeoutSeconds)
	v.SetDefault("harness.keep_environment", cfg.Harness.KeepEnvironment)
	v.SetDefault("scheduler.image", cfg.Scheduler.Image)
	v.SetDefault("scheduler.container", cfg.Scheduler.Container)
	v.SetDefault("scheduler.grpc_uri", cfg.Scheduler.GRPCURI)
	v.SetDefault("scheduler.grpc_web_uri", cfg.Scheduler.GRPCWebURI)
	v.SetDefault("scheduler.node_grpc_uri", cfg.Scheduler.NodeGRPCURI)
	v.SetDefault("scheduler.identity", cfg.Scheduler.Identity)
	v.SetDefault("bitcoind.image", cfg.Bitcoind.Image)
	v.SetDefault("bitcoind.container", cfg.Bitcoind.Container)
	v.SetDefault("bitcoind.rpc_uri", cfg.Bitcoind.RPCURI)
	v.SetDefault("bitcoind.network", cfg.Bitcoind.Network)
	v.SetDefault("runtime.runtime", cfg.Runtime.Runtime)
	v.SetDefault("runtime.pull_timeout_minutes", cfg.Runtime.PullTimeout)
	v.SetDefault("runtime.docker.address", cfg.Runtime.Docker.Address)
	v.SetDefault("runtime.containerd.address", cfg.Runtime.Containerd.Address)
	v.SetDefault("runtime.containerd.namespace", cfg.Runtime.Containerd.Namespace)
	v.SetDefault("fleet.name_prefix", cfg.Fleet.NamePrefix)
	v.SetDefault("fleet.memory_mb", cfg.Fleet.MemoryMB)
	v.SetDefault("fleet.milli_cpus", cfg.Fleet.MilliCPUs)
	v.SetDefault("fleet.host_network", cfg.Fleet.HostNetwork)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
		switch v.GetString("runtime.runtime") {
		case "docker":
			if !v.IsSet("runtime.docker.address") {
				return Config{}, fmt.Errorf("runtime.docker.address is required for config_version %d", CurrentConfigVersion)
			}
		case "containerd":
			if !v.IsSet("runtime.containerd.address") {
				return Config{}, fmt.Errorf("runtime.containerd.address is required for config_version %d", CurrentConfigVersion)
			}
			if !v.IsSet("runtime.containerd.namespace") {
				return Config{}, fmt.Errorf("runtime.containerd.namespace is required for config_version %d", CurrentConfigVersion)
			}
		default:
			return Config{}, fmt.Errorf("unsupported runtime.runtime %q", v.GetString("runtime.runtime"))
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validateEndpoints(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateEndpoints(cfg Config) error {
	for key, value := range map[string]string{
		"scheduler.grpc_uri":     cfg.Scheduler.GRPCURI,
		"scheduler.grpc_web_uri": cfg.Scheduler.GRPCWebURI,
		"bitcoind.rpc_uri":       cfg.Bitcoind.RPCURI,
	} {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		parsed, err := url.Parse(value)
		if err != nil || parsed.Host == "" {
			return fmt.Errorf("%s must include scheme and host (e.g. https://localhost:2601)", key)
		}
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.WorkDir = expandEnv(cfg.WorkDir)
	cfg.Harness.EnvFile = expandEnv(cfg.Harness.EnvFile)
	cfg.Harness.SeedFile = expandEnv(cfg.Harness.SeedFile)
	cfg.Harness.CertDir = expandEnv(cfg.Harness.CertDir)
	cfg.Harness.KeyBundle = expandEnv(cfg.Harness.KeyBundle)
	cfg.Scheduler.GRPCURI = expandEnv(cfg.Scheduler.GRPCURI)
	cfg.Scheduler.GRPCWebURI = expandEnv(cfg.Scheduler.GRPCWebURI)
	cfg.Scheduler.NodeGRPCURI = expandEnv(cfg.Scheduler.NodeGRPCURI)
	cfg.Bitcoind.RPCURI = expandEnv(cfg.Bitcoind.RPCURI)
	cfg.Runtime.Docker.Address = expandEnv(cfg.Runtime.Docker.Address)
	cfg.Runtime.Containerd.Address = expandEnv(cfg.Runtime.Containerd.Address)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
