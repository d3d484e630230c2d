package slipway

import "testing"

func TestMergeSpecAppliesPlanDefaults(t *testing.T) {
	plan := FleetPlan{
		NamePrefix: "glh-",
		Env:        map[string]string{"TZ": "UTC", "MODE": "plan"},
		Labels:     map[string]string{"suite": "integration"},
		ResourceCaps: ResourceCaps{
			MemoryBytes: 512 << 20,
			NanoCPUs:    2_000_000_000,
		},
	}
	spec := ContainerSpec{
		Name:  "bitcoind",
		Image: "bitcoind:27.0",
		Env:   map[string]string{"MODE": "container"},
	}
	merged := mergeSpec(spec, plan)

	if merged.Name != "glh-bitcoind" {
		t.Fatalf("name = %q", merged.Name)
	}
	if merged.Env["MODE"] != "container" {
		t.Fatalf("container env should win, got %q", merged.Env["MODE"])
	}
	if merged.Env["TZ"] != "UTC" {
		t.Fatalf("plan env missing, env = %v", merged.Env)
	}
	if merged.Labels["suite"] != "integration" {
		t.Fatalf("plan label missing, labels = %v", merged.Labels)
	}
	if merged.ResourceCaps == nil || merged.ResourceCaps.MemoryBytes != 512<<20 {
		t.Fatalf("resource caps = %+v", merged.ResourceCaps)
	}
}

func TestMergeSpecKeepsContainerCaps(t *testing.T) {
	plan := FleetPlan{ResourceCaps: ResourceCaps{MemoryBytes: 1 << 30, NanoCPUs: 4_000_000_000}}
	spec := ContainerSpec{
		Name:         "scheduler",
		Image:        "scheduler:dev",
		ResourceCaps: &ResourceCaps{MemoryBytes: 256 << 20},
	}
	merged := mergeSpec(spec, plan)
	if merged.ResourceCaps.MemoryBytes != 256<<20 {
		t.Fatalf("container memory cap should win, got %d", merged.ResourceCaps.MemoryBytes)
	}
	if merged.ResourceCaps.NanoCPUs != 4_000_000_000 {
		t.Fatalf("plan cpu cap should fill zero value, got %d", merged.ResourceCaps.NanoCPUs)
	}
}

func TestMergeSpecNoPlan(t *testing.T) {
	spec := ContainerSpec{Name: "proxy", Image: "envoy:latest"}
	merged := mergeSpec(spec, FleetPlan{})
	if merged.Name != "proxy" {
		t.Fatalf("name = %q", merged.Name)
	}
	if merged.Env == nil || merged.Labels == nil {
		t.Fatal("merge should initialize env and label maps")
	}
}

func TestMergeSpecDoesNotMutateInput(t *testing.T) {
	plan := FleetPlan{
		NamePrefix: "glh-",
		Env:        map[string]string{"TZ": "UTC"},
		Labels:     map[string]string{"suite": "integration"},
		ResourceCaps: ResourceCaps{
			MemoryBytes: 512 << 20,
			NanoCPUs:    2_000_000_000,
		},
	}
	caps := ResourceCaps{MemoryBytes: 1 << 30}
	spec := ContainerSpec{
		Name:         "scheduler",
		Image:        "scheduler:v1",
		Env:          map[string]string{"MODE": "container"},
		Labels:       map[string]string{"role": "scheduler"},
		ResourceCaps: &caps,
	}

	merged := mergeSpec(spec, plan)

	if len(spec.Env) != 1 || spec.Env["TZ"] != "" {
		t.Fatalf("input env was modified: %v", spec.Env)
	}
	if len(spec.Labels) != 1 || spec.Labels["suite"] != "" {
		t.Fatalf("input labels were modified: %v", spec.Labels)
	}
	if caps.NanoCPUs != 0 {
		t.Fatalf("input caps were modified: %+v", caps)
	}
	if spec.Name != "scheduler" {
		t.Fatalf("input name was modified: %q", spec.Name)
	}
	if merged.ResourceCaps == &caps {
		t.Fatal("merged spec aliases the input caps")
	}
	if merged.ResourceCaps.NanoCPUs != plan.ResourceCaps.NanoCPUs {
		t.Fatalf("merged caps = %+v", merged.ResourceCaps)
	}
}
