package slipway

import (
	"io"
	"time"
)

// FleetPlan sets defaults applied to every container in a fleet.
type FleetPlan struct {
	NamePrefix   string
	Env          map[string]string
	Labels       map[string]string
	ResourceCaps ResourceCaps
}

// ResourceCaps sets optional resource limits (0 means default).
type ResourceCaps struct {
	MemoryBytes int64
	NanoCPUs    int64
}

// Mount describes a host mount to place inside a container.
type Mount struct {
	Source      string
	Target      string
	ReadOnly    bool
	Propagation string
}

// TmpfsMount describes a tmpfs mount inside the container.
type TmpfsMount struct {
	Target  string
	Options []string
}

// ContainerSpec describes a container.
type ContainerSpec struct {
	Name           string
	Image          string
	Snapshotter    string
	Env            map[string]string
	Labels         map[string]string
	Command        []string
	WorkingDir     string
	Mounts         []Mount
	Tmpfs          []TmpfsMount
	ReadOnlyRootfs bool
	AutoRemove     bool
	ResourceCaps   *ResourceCaps
	HostNetwork    bool
	LogBufferBytes int
}

// ExecSpec describes a command execution inside a running container.
type ExecSpec struct {
	Command    []string
	Env        map[string]string
	WorkingDir string
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Timeout    time.Duration
}

// ExecResult captures exec completion metadata.
type ExecResult struct {
	ExitCode int
	Started  time.Time
	Finished time.Time
}

// LogStream selects which logs to search.
type LogStream int

const (
	// LogStdout selects stdout logs.
	LogStdout LogStream = iota
	// LogStderr selects stderr logs.
	LogStderr
	// LogBoth selects both stdout and stderr logs.
	LogBoth
)

// WaitLogSpec waits for a log substring.
type WaitLogSpec struct {
	Text     string
	Stream   LogStream
	Timeout  time.Duration
	Interval time.Duration
}

// WaitPortSpec waits for a TCP port to accept connections.
type WaitPortSpec struct {
	Address  string
	Port     int
	Timeout  time.Duration
	Interval time.Duration
}

// JanitorSpec prunes managed containers.
type JanitorSpec struct {
	LabelSelector map[string]string
	MinAge        time.Duration
}

// Container is implemented by runtime-specific adapters.
type Container interface {
	Name() string
	Spec() ContainerSpec
}

// GenericContainer is a minimal Container implementation.
type GenericContainer struct {
	SpecValue ContainerSpec
}

// Name returns the container name.
func (c *GenericContainer) Name() string { return c.SpecValue.Name }

// Spec returns the container spec.
func (c *GenericContainer) Spec() ContainerSpec { return c.SpecValue }

// mergeSpec overlays fleet defaults onto a container spec. The input
// spec is never modified; maps and caps are copied before overlaying.
func mergeSpec(spec ContainerSpec, plan FleetPlan) ContainerSpec {
	out := spec
	out.Env = make(map[string]string, len(spec.Env)+len(plan.Env))
	for k, v := range spec.Env {
		out.Env[k] = v
	}
	out.Labels = make(map[string]string, len(spec.Labels)+len(plan.Labels))
	for k, v := range spec.Labels {
		out.Labels[k] = v
	}
	for k, v := range plan.Env {
		if _, ok := out.Env[k]; !ok {
			out.Env[k] = v
		}
	}
	for k, v := range plan.Labels {
		if _, ok := out.Labels[k]; !ok {
			out.Labels[k] = v
		}
	}
	if plan.NamePrefix != "" {
		out.Name = plan.NamePrefix + out.Name
	}
	caps := plan.ResourceCaps
	if spec.ResourceCaps != nil {
		caps = *spec.ResourceCaps
		if caps.MemoryBytes == 0 {
			caps.MemoryBytes = plan.ResourceCaps.MemoryBytes
		}
		if caps.NanoCPUs == 0 {
			caps.NanoCPUs = plan.ResourceCaps.NanoCPUs
		}
	}
	out.ResourceCaps = &caps
	return out
}
