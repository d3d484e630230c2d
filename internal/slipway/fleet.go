package slipway

import (
	"context"
	"sync"

	"pkt.systems/pslog"
)

// Fleet manages a set of containers using a runtime backend.
type Fleet struct {
	runtime Runtime
	plan    FleetPlan

	mu         sync.Mutex
	handles    map[Container]Handle
	containers []Container
}

// NewFleet creates a fleet with the given plan.
func NewFleet(plan FleetPlan, runtime Runtime) *Fleet {
	return &Fleet{
		runtime: runtime,
		plan:    plan,
		handles: make(map[Container]Handle),
	}
}

// Add registers a container with the fleet.
func (f *Fleet) Add(c Container) Container {
	log := pslog.Ctx(context.Background())
	if c != nil {
		log = log.With("container", c.Name())
	}
	log.Debug("fleet add")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.containers = append(f.containers, c)
	return c
}

// Launch ensures the container is running.
func (f *Fleet) Launch(ctx context.Context, c Container) (Handle, error) {
	log := pslog.Ctx(ctx)
	if c != nil {
		log = log.With("container", c.Name())
	}
	log.Info("fleet launch start")
	spec := mergeSpec(c.Spec(), f.plan)
	handle, err := f.runtime.EnsureRunning(ctx, spec)
	if err != nil {
		log.Warn("fleet launch failed", "err", err)
		return nil, err
	}
	f.mu.Lock()
	f.handles[c] = handle
	f.mu.Unlock()
	log.Info("fleet launch ok")
	return handle, nil
}

// Handle returns the runtime handle for a launched container.
func (f *Fleet) Handle(c Container) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handles[c]
}

// Retire stops and removes a container.
func (f *Fleet) Retire(ctx context.Context, c Container) error {
	log := pslog.Ctx(ctx)
	if c != nil {
		log = log.With("container", c.Name())
	}
	log.Info("fleet retire start")
	f.mu.Lock()
	handle := f.handles[c]
	delete(f.handles, c)
	f.mu.Unlock()
	if handle == nil {
		log.Info("fleet retire skipped", "reason", "no handle")
		return nil
	}
	if err := f.runtime.Stop(ctx, handle); err != nil {
		log.Warn("fleet retire stop failed", "err", err)
		return err
	}
	if err := f.runtime.Remove(ctx, handle); err != nil {
		log.Warn("fleet retire remove failed", "err", err)
		return err
	}
	log.Info("fleet retire ok")
	return nil
}

// LaunchAll starts all registered containers in registration order.
func (f *Fleet) LaunchAll(ctx context.Context) error {
	log := pslog.Ctx(ctx)
	f.mu.Lock()
	containers := append([]Container(nil), f.containers...)
	f.mu.Unlock()
	log.Info("fleet launch all start", "count", len(containers))
	for _, c := range containers {
		if _, err := f.Launch(ctx, c); err != nil {
			log.Warn("fleet launch all failed", "err", err)
			return err
		}
	}
	log.Info("fleet launch all ok", "count", len(containers))
	return nil
}

// RetireAll stops all registered containers.
func (f *Fleet) RetireAll(ctx context.Context) {
	log := pslog.Ctx(ctx)
	f.mu.Lock()
	containers := append([]Container(nil), f.containers...)
	f.mu.Unlock()
	log.Info("fleet retire all start", "count", len(containers))
	for _, c := range containers {
		_ = f.Retire(ctx, c)
	}
	log.Info("fleet retire all ok", "count", len(containers))
}
