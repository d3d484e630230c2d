// Package glharness drives an integration test environment for a
// Greenlight-style scheduler: it provisions certificates and seed
// material, launches the environment containers, waits for the
// environment descriptor to appear in their logs, persists the
// descriptor and exercises the scheduler over mutual TLS gRPC.
package glharness

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pkt.systems/glharness/internal/appconfig"
	"pkt.systems/glharness/internal/envfile"
	"pkt.systems/glharness/internal/pki"
	"pkt.systems/glharness/internal/schedulergrpc"
	"pkt.systems/glharness/internal/seed"
	"pkt.systems/glharness/internal/slipway"
	"pkt.systems/glharness/schema"
	"pkt.systems/pslog"
)

// State names a phase of a harness run.
type State string

// Harness run states. Transitions are one-way; a harness instance
// performs exactly one run.
const (
	StateStarting            State = "starting"
	StateWaitingForReadiness State = "waiting_for_readiness"
	StateReady               State = "ready"
	StateRunningClient       State = "running_client"
	StateCompleted           State = "completed"
	StateFailed              State = "failed"
)

var stateRank = map[State]int{
	StateStarting:            0,
	StateWaitingForReadiness: 1,
	StateReady:               2,
	StateRunningClient:       3,
	StateCompleted:           4,
	StateFailed:              4,
}

// ClientFunc runs the test client against a ready environment.
type ClientFunc func(ctx context.Context, desc schema.EnvDescriptor) error

// Deps carries harness dependencies.
type Deps struct {
	Runtime slipway.Runtime
	// Client overrides the default gRPC client flow when set.
	Client ClientFunc
}

// Harness executes a single environment run.
type Harness struct {
	cfg     appconfig.Config
	runtime slipway.Runtime
	client  ClientFunc

	mu    sync.Mutex
	state State
	desc  schema.EnvDescriptor
	done  bool
}

// New constructs a harness. The runtime dependency is required.
func New(cfg appconfig.Config, deps Deps) (*Harness, error) {
	if deps.Runtime == nil {
		return nil, errors.New("runtime dependency is required")
	}
	h := &Harness{
		cfg:     cfg,
		runtime: deps.Runtime,
		client:  deps.Client,
		state:   StateStarting,
	}
	if h.client == nil {
		h.client = h.runClientFlow
	}
	return h, nil
}

// State returns the current run state.
func (h *Harness) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Descriptor returns the collected environment descriptor.
func (h *Harness) Descriptor() schema.EnvDescriptor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.desc
}

func (h *Harness) advance(to State) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	from := h.state
	if stateRank[to] <= stateRank[from] && to != StateFailed {
		return fmt.Errorf("cannot transition from %s to %s", from, to)
	}
	if from == StateCompleted || from == StateFailed {
		return fmt.Errorf("run already finished in state %s", from)
	}
	h.state = to
	return nil
}

// Run executes the full harness lifecycle and blocks until it completes
// or fails. It may be called at most once.
func (h *Harness) Run(ctx context.Context) error {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return errors.New("harness already ran")
	}
	h.done = true
	h.mu.Unlock()

	log := pslog.Ctx(ctx).With("component", "harness")
	log.Info("harness run start", "state", StateStarting)

	fleet, schedulerContainer, err := h.start(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}
	if fleet != nil && !h.cfg.Harness.KeepEnvironment {
		defer fleet.RetireAll(context.WithoutCancel(ctx))
	}

	if err := h.advance(StateWaitingForReadiness); err != nil {
		return h.fail(ctx, err)
	}
	log.Info("harness waiting for readiness", "state", StateWaitingForReadiness)
	desc, err := h.waitForReadiness(ctx, fleet, schedulerContainer)
	if err != nil {
		return h.fail(ctx, err)
	}

	if err := h.advance(StateReady); err != nil {
		return h.fail(ctx, err)
	}
	h.mu.Lock()
	h.desc = desc
	h.mu.Unlock()
	log.Info("harness environment ready", "state", StateReady, "env_file", h.cfg.Harness.EnvFile)
	if err := envfile.Write(h.cfg.Harness.EnvFile, desc); err != nil {
		return h.fail(ctx, err)
	}

	if err := h.advance(StateRunningClient); err != nil {
		return h.fail(ctx, err)
	}
	log.Info("harness running client", "state", StateRunningClient)
	if err := h.client(ctx, desc); err != nil {
		return h.fail(ctx, err)
	}

	if err := h.advance(StateCompleted); err != nil {
		return h.fail(ctx, err)
	}
	log.Info("harness run ok", "state", StateCompleted)
	return nil
}

func (h *Harness) fail(ctx context.Context, err error) error {
	h.mu.Lock()
	h.state = StateFailed
	h.mu.Unlock()
	pslog.Ctx(ctx).Error("harness run failed", "state", StateFailed, "kind", string(schema.KindOf(err)), "err", err)
	return err
}

// start provisions local material and launches the environment
// containers. The returned container is the one whose logs carry the
// environment descriptor.
func (h *Harness) start(ctx context.Context) (*slipway.Fleet, slipway.Container, error) {
	log := pslog.Ctx(ctx).With("component", "harness")

	provisioner, err := pki.NewProvisioner(h.cfg.Harness.CertDir, h.cfg.Harness.KeyBundle, log)
	if err != nil {
		return nil, nil, err
	}
	identity := strings.TrimSpace(h.cfg.Scheduler.Identity)
	if identity == "" {
		identity = schema.DefaultIdentity
	}
	if _, err := provisioner.Ensure(nil, identity); err != nil {
		return nil, nil, err
	}
	if _, err := seed.LoadOrGenerate(h.cfg.Harness.SeedFile, log); err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(h.cfg.Scheduler.Image) == "" {
		log.Info("harness start ok", "containers", 0)
		return nil, nil, nil
	}

	plan := slipway.FleetPlan{
		NamePrefix: h.cfg.Fleet.NamePrefix,
		ResourceCaps: slipway.ResourceCaps{
			MemoryBytes: h.cfg.Fleet.MemoryMB << 20,
			NanoCPUs:    h.cfg.Fleet.MilliCPUs * 1_000_000,
		},
	}
	fleet := slipway.NewFleet(plan, h.runtime)

	var containers []slipway.Container
	if strings.TrimSpace(h.cfg.Bitcoind.Image) != "" {
		bitcoind := &slipway.GenericContainer{SpecValue: slipway.ContainerSpec{
			Name:        h.cfg.Bitcoind.Container,
			Image:       h.cfg.Bitcoind.Image,
			HostNetwork: h.cfg.Fleet.HostNetwork,
		}}
		fleet.Add(bitcoind)
		containers = append(containers, bitcoind)
	}
	scheduler := &slipway.GenericContainer{SpecValue: slipway.ContainerSpec{
		Name:        h.cfg.Scheduler.Container,
		Image:       h.cfg.Scheduler.Image,
		HostNetwork: h.cfg.Fleet.HostNetwork,
		Mounts: []slipway.Mount{
			{Source: h.cfg.Harness.CertDir, Target: "/workdir/certs"},
		},
	}}
	fleet.Add(scheduler)
	containers = append(containers, scheduler)

	for _, c := range containers {
		if err := h.runtime.EnsureImage(ctx, c.Spec().Image); err != nil {
			return nil, nil, err
		}
	}
	if err := fleet.LaunchAll(ctx); err != nil {
		return nil, nil, err
	}
	log.Info("harness start ok", "containers", len(containers))
	return fleet, scheduler, nil
}

// waitForReadiness polls container logs for the descriptor fields until
// all seven are observed or the timeout elapses.
func (h *Harness) waitForReadiness(ctx context.Context, fleet *slipway.Fleet, container slipway.Container) (schema.EnvDescriptor, error) {
	log := pslog.Ctx(ctx).With("component", "harness")
	collector := envfile.NewCollector()

	if fleet == nil || container == nil {
		return schema.EnvDescriptor{}, schema.NewError(schema.KindConfiguration, "readiness wait",
			errors.New("no environment container to observe"))
	}
	handle := fleet.Handle(container)
	if handle == nil {
		return schema.EnvDescriptor{}, schema.NewError(schema.KindConfiguration, "readiness wait",
			errors.New("environment container has no handle"))
	}

	timeout := time.Duration(h.cfg.Harness.ReadinessTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	interval := time.Duration(h.cfg.Harness.PollIntervalMillis) * time.Millisecond
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	tail := h.cfg.Harness.LogTailLines
	if tail <= 0 {
		tail = 200
	}

	deadline := time.Now().Add(timeout)
	for {
		stdout, stderr, err := h.runtime.TailLogs(ctx, handle, tail)
		if err != nil {
			log.Warn("harness log tail failed", "err", err)
		}
		for _, line := range stdout {
			collector.Scan(line)
		}
		for _, line := range stderr {
			collector.Scan(line)
		}
		if collector.Complete() {
			log.Info("harness readiness observed")
			return collector.Descriptor(), nil
		}
		if time.Now().After(deadline) {
			missing := collector.Missing()
			return schema.EnvDescriptor{}, schema.NewError(schema.KindTimeout, "readiness wait",
				fmt.Errorf("environment not ready within %s: %w: %s",
					timeout, schema.ErrMissingField, strings.Join(missing, ", ")))
		}
		select {
		case <-ctx.Done():
			return schema.EnvDescriptor{}, schema.NewError(schema.KindTimeout, "readiness wait", ctx.Err())
		case <-time.After(interval):
		}
	}
}

// runClientFlow is the default test client: dial the scheduler with the
// nobody identity and exercise the API end to end.
func (h *Harness) runClientFlow(ctx context.Context, desc schema.EnvDescriptor) error {
	log := pslog.Ctx(ctx).With("component", "client")

	client, err := schedulergrpc.Dial(ctx, schedulergrpc.Config{
		URI:         desc.SchedulerGRPCURI,
		CACrtPath:   desc.CACrtPath,
		CrtPath:     desc.NobodyCrtPath,
		KeyPath:     desc.NobodyKeyPath,
		CallTimeout: time.Duration(h.cfg.Harness.CallTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	version, err := client.Ping(ctx)
	if err != nil {
		return err
	}
	log.Info("client ping ok", "version", version)

	nodeID, err := h.nodeID(log)
	if err != nil {
		return err
	}
	creds, err := schedulergrpc.LoadDeviceCreds(h.cfg.Harness.CertDir, nodeID)
	switch {
	case err == nil:
		log.Info("client register skipped", "node_id", nodeID, "device_cert_bytes", len(creds.CertPEM))
	case errors.Is(err, schema.ErrNotRegistered):
		creds, err = client.Register(ctx, nodeID, h.cfg.Bitcoind.Network)
		if err != nil {
			return err
		}
		if err := schedulergrpc.StoreDeviceCreds(h.cfg.Harness.CertDir, nodeID, creds); err != nil {
			return err
		}
		log.Info("client register ok", "node_id", nodeID, "device_cert_bytes", len(creds.CertPEM))
	default:
		return err
	}

	scheduled, err := client.Schedule(ctx, nodeID)
	if err != nil {
		return err
	}
	log.Info("client schedule ok", "node_id", nodeID, "grpc_uri", scheduled.GRPCURI)

	info, err := client.GetNodeInfo(ctx, nodeID, true)
	if err != nil {
		return err
	}
	if info.GRPCURI != scheduled.GRPCURI {
		return schema.NewError(schema.KindProtocol, "node info",
			fmt.Errorf("scheduled endpoint %q does not match node info %q", scheduled.GRPCURI, info.GRPCURI))
	}
	log.Info("client node info ok", "node_id", info.NodeID, "grpc_uri", info.GRPCURI)
	return nil
}

// nodeID derives a stable node identifier from the signer seed.
func (h *Harness) nodeID(log pslog.Logger) (string, error) {
	value, err := seed.LoadOrGenerate(h.cfg.Harness.SeedFile, log)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(value[:16]), nil
}
