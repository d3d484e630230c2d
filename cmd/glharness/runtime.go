package main

import (
	"context"
	"fmt"
	"time"

	"pkt.systems/glharness/internal/appconfig"
	"pkt.systems/glharness/internal/slipway"
	"pkt.systems/glharness/internal/slipway/containerd"
	"pkt.systems/glharness/internal/slipway/docker"
)

func selectRuntime(ctx context.Context, cfg appconfig.Config) (slipway.Runtime, func() error, error) {
	switch cfg.Runtime.Runtime {
	case "docker":
		rt, err := docker.New(ctx, docker.Config{
			Address:     cfg.Runtime.Docker.Address,
			PullTimeout: time.Duration(cfg.Runtime.PullTimeout) * time.Minute,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("docker connection failed (%s): %w", cfg.Runtime.Docker.Address, err)
		}
		return rt, rt.Close, nil
	case "containerd":
		rt, err := containerd.New(ctx, containerd.Config{
			Address:     cfg.Runtime.Containerd.Address,
			Namespace:   cfg.Runtime.Containerd.Namespace,
			PullTimeout: time.Duration(cfg.Runtime.PullTimeout) * time.Minute,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("containerd connection failed (%s): %w", cfg.Runtime.Containerd.Address, err)
		}
		return rt, rt.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported runtime.runtime %q", cfg.Runtime.Runtime)
	}
}
