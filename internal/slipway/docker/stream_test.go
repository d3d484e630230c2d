package docker

import (
	"bytes"
	"context"
	"encoding/binary"
	"reflect"
	"testing"
	"time"

	"pkt.systems/glharness/internal/slipway"
)

func frame(stream byte, payload string) []byte {
	var header [8]byte
	header[0] = stream
	binary.BigEndian.PutUint32(header[4:8], uint32(len(payload)))
	return append(header[:], payload...)
}

func TestDemuxStreamSplitsStreams(t *testing.T) {
	var input bytes.Buffer
	input.Write(frame(1, "out line one\n"))
	input.Write(frame(2, "err line\n"))
	input.Write(frame(1, "out line two\n"))

	var stdout, stderr bytes.Buffer
	if err := demuxStream(&input, &stdout, &stderr); err != nil {
		t.Fatalf("demuxStream: %v", err)
	}
	if got := stdout.String(); got != "out line one\nout line two\n" {
		t.Fatalf("stdout = %q", got)
	}
	if got := stderr.String(); got != "err line\n" {
		t.Fatalf("stderr = %q", got)
	}
}

func TestDemuxStreamIgnoresUnknownStream(t *testing.T) {
	var input bytes.Buffer
	input.Write(frame(0, "stdin echo\n"))
	input.Write(frame(1, "visible\n"))

	var stdout, stderr bytes.Buffer
	if err := demuxStream(&input, &stdout, &stderr); err != nil {
		t.Fatalf("demuxStream: %v", err)
	}
	if got := stdout.String(); got != "visible\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestSearchStreamFindsText(t *testing.T) {
	var input bytes.Buffer
	input.Write(frame(1, "starting up\n"))
	input.Write(frame(1, "cert_path=/workdir/certs ready\n"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := searchStream(ctx, &input, "cert_path="); err != nil {
		t.Fatalf("searchStream: %v", err)
	}
}

func TestSearchStreamTextSpansFrames(t *testing.T) {
	var input bytes.Buffer
	input.Write(frame(1, "cert_"))
	input.Write(frame(1, "path=/workdir/certs\n"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := searchStream(ctx, &input, "cert_path="); err != nil {
		t.Fatalf("searchStream: %v", err)
	}
}

func TestSearchStreamMissReturnsError(t *testing.T) {
	var input bytes.Buffer
	input.Write(frame(1, "nothing interesting\n"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := searchStream(ctx, &input, "absent"); err == nil {
		t.Fatal("expected error when text never appears")
	}
}

func TestTailLines(t *testing.T) {
	lines := tailLines("a\nb\nc\nd\n", 2)
	if !reflect.DeepEqual(lines, []string{"c", "d"}) {
		t.Fatalf("tailLines = %v", lines)
	}
	if got := tailLines("", 5); got != nil {
		t.Fatalf("tailLines empty = %v", got)
	}
	if got := tailLines("only\n", 5); !reflect.DeepEqual(got, []string{"only"}) {
		t.Fatalf("tailLines single = %v", got)
	}
}

func TestSplitImageRef(t *testing.T) {
	cases := []struct {
		in   string
		name string
		tag  string
	}{
		{"bitcoind:27.0", "bitcoind", "27.0"},
		{"registry.local:5000/scheduler", "registry.local:5000/scheduler", ""},
		{"registry.local:5000/scheduler:v2", "registry.local:5000/scheduler", "v2"},
		{"alpine", "alpine", ""},
		{"alpine@sha256:abcd", "alpine@sha256:abcd", ""},
	}
	for _, tc := range cases {
		name, tag := splitImageRef(tc.in)
		if name != tc.name || tag != tc.tag {
			t.Fatalf("splitImageRef(%q) = %q, %q", tc.in, name, tag)
		}
	}
}

func TestBuildBinds(t *testing.T) {
	binds := buildBinds([]slipway.Mount{
		{Source: "/host/certs", Target: "/workdir/certs", ReadOnly: true},
		{Source: "/host/data", Target: "/data"},
		{Source: "", Target: "/skip"},
	})
	want := []string{"/host/certs:/workdir/certs:ro", "/host/data:/data"}
	if !reflect.DeepEqual(binds, want) {
		t.Fatalf("buildBinds = %v", binds)
	}
}

func TestMergeLabelsCallerWins(t *testing.T) {
	merged := mergeLabels(map[string]string{"a": "1", labelManaged: "false"}, map[string]string{labelManaged: "true", "b": "2"})
	if merged["a"] != "1" || merged["b"] != "2" {
		t.Fatalf("merged = %v", merged)
	}
	if merged[labelManaged] != "false" {
		t.Fatalf("caller label should win, got %q", merged[labelManaged])
	}
}

func TestContainerName(t *testing.T) {
	item := containerListItem{Names: []string{"/glharness-bitcoind"}}
	if got := containerName(item); got != "glharness-bitcoind" {
		t.Fatalf("containerName = %q", got)
	}
	if got := containerName(containerListItem{}); got != "" {
		t.Fatalf("containerName empty = %q", got)
	}
}
