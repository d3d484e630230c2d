package containerd

import (
	"bytes"
	"reflect"
	"sort"
	"testing"

	"pkt.systems/glharness/internal/slipway"
)

func TestRingBufferKeepsTail(t *testing.T) {
	rb := newRingBuffer(8)
	if _, err := rb.Write([]byte("abcd")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := rb.Snapshot(); !bytes.Equal(got, []byte("abcd")) {
		t.Fatalf("snapshot = %q", got)
	}
	if _, err := rb.Write([]byte("efghij")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := rb.Snapshot(); !bytes.Equal(got, []byte("cdefghij")) {
		t.Fatalf("snapshot after wrap = %q", got)
	}
}

func TestRingBufferLargeWrite(t *testing.T) {
	rb := newRingBuffer(4)
	if _, err := rb.Write([]byte("0123456789")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := rb.Snapshot(); !bytes.Equal(got, []byte("6789")) {
		t.Fatalf("snapshot = %q", got)
	}
}

func TestRingBufferZeroSizeDiscards(t *testing.T) {
	rb := newRingBuffer(0)
	if _, err := rb.Write([]byte("dropped")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := rb.Snapshot(); got != nil {
		t.Fatalf("snapshot = %q", got)
	}
}

func TestLogCaptureContains(t *testing.T) {
	capture := &logCapture{stdout: newRingBuffer(64), stderr: newRingBuffer(64)}
	_, _ = capture.stdout.Write([]byte("scheduler_grpc_uri=localhost:50051\n"))
	_, _ = capture.stderr.Write([]byte("warning: something\n"))

	if !capture.contains(slipway.LogStdout, []byte("scheduler_grpc_uri=")) {
		t.Fatal("stdout text not found")
	}
	if capture.contains(slipway.LogStdout, []byte("warning:")) {
		t.Fatal("stderr text leaked into stdout")
	}
	if !capture.contains(slipway.LogBoth, []byte("warning:")) {
		t.Fatal("both streams should match stderr text")
	}
	if !capture.contains(slipway.LogStderr, nil) {
		t.Fatal("empty text should always match")
	}
}

func TestTailLines(t *testing.T) {
	lines := tailLines([]byte("one\ntwo\nthree\n"), 2)
	if !reflect.DeepEqual(lines, []string{"two", "three"}) {
		t.Fatalf("tailLines = %v", lines)
	}
	if got := tailLines(nil, 3); got != nil {
		t.Fatalf("tailLines nil = %v", got)
	}
}

func TestMergeLabelsBaseWins(t *testing.T) {
	merged := mergeLabels(map[string]string{labelManaged: "false"}, map[string]string{labelManaged: "true", "extra": "1"})
	if merged[labelManaged] != "false" {
		t.Fatalf("base label should win, got %q", merged[labelManaged])
	}
	if merged["extra"] != "1" {
		t.Fatalf("merged = %v", merged)
	}
}

func TestMergeEnvOverrides(t *testing.T) {
	out := mergeEnv([]string{"PATH=/bin", "HOME=/root"}, map[string]string{"HOME": "/tmp", "EXTRA": "x"})
	sort.Strings(out)
	want := []string{"EXTRA=x", "HOME=/tmp", "PATH=/bin"}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("mergeEnv = %v", out)
	}
}

func TestNormalizeAddress(t *testing.T) {
	cases := map[string]string{
		"unix:///run/containerd/containerd.sock": "/run/containerd/containerd.sock",
		"unix:/run/containerd/containerd.sock":   "/run/containerd/containerd.sock",
		"/run/containerd/containerd.sock":        "/run/containerd/containerd.sock",
		"  ":                                     "",
	}
	for in, want := range cases {
		if got := normalizeAddress(in); got != want {
			t.Fatalf("normalizeAddress(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchesLabels(t *testing.T) {
	labels := map[string]string{"a": "1", "b": "2"}
	if !matchesLabels(labels, nil) {
		t.Fatal("empty selector should match")
	}
	if !matchesLabels(labels, map[string]string{"a": "1"}) {
		t.Fatal("subset selector should match")
	}
	if matchesLabels(labels, map[string]string{"a": "2"}) {
		t.Fatal("mismatched selector should not match")
	}
}
