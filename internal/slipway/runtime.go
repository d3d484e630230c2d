// Package slipway manages the containers that make up the test
// environment. A Runtime backend launches and supervises them; the Fleet
// applies shared defaults and tracks what is afloat.
package slipway

import "context"

// Runtime manages container lifecycles.
type Runtime interface {
	EnsureImage(ctx context.Context, image string) error
	EnsureRunning(ctx context.Context, spec ContainerSpec) (Handle, error)
	Stop(ctx context.Context, handle Handle) error
	Remove(ctx context.Context, handle Handle) error
	Exec(ctx context.Context, handle Handle, spec ExecSpec) (ExecResult, error)
	WaitForPort(ctx context.Context, handle Handle, spec WaitPortSpec) error
	WaitForLog(ctx context.Context, handle Handle, spec WaitLogSpec) error
	TailLogs(ctx context.Context, handle Handle, limit int) (stdout, stderr []string, err error)
	Janitor(ctx context.Context, spec JanitorSpec) (int, error)
}

// Handle represents a running container.
type Handle interface {
	Name() string
	ID() string
}
