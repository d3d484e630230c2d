package containerd

import (
	"bytes"
	"strings"
	"sync"

	"pkt.systems/glharness/internal/slipway"
)

// logCapture accumulates a container's stdout and stderr into bounded
// ring buffers.
type logCapture struct {
	stdout   *ringBuffer
	stderr   *ringBuffer
	attached bool
}

func (l *logCapture) contains(stream slipway.LogStream, text []byte) bool {
	switch stream {
	case slipway.LogStdout:
		return bytesContains(l.stdout.Snapshot(), text)
	case slipway.LogStderr:
		return bytesContains(l.stderr.Snapshot(), text)
	case slipway.LogBoth:
		if bytesContains(l.stdout.Snapshot(), text) {
			return true
		}
		return bytesContains(l.stderr.Snapshot(), text)
	default:
		return false
	}
}

func bytesContains(buf []byte, text []byte) bool {
	if len(text) == 0 {
		return true
	}
	return bytes.Contains(buf, text)
}

func (r *Runtime) ensureLogCapture(name string, size int) *logCapture {
	if size <= 0 {
		size = defaultLogBufferBytes
	}
	r.logsMu.Lock()
	defer r.logsMu.Unlock()
	if capture, ok := r.logs[name]; ok {
		return capture
	}
	capture := &logCapture{
		stdout: newRingBuffer(size),
		stderr: newRingBuffer(size),
	}
	r.logs[name] = capture
	return capture
}

func (r *Runtime) getLogCapture(name string) *logCapture {
	r.logsMu.Lock()
	defer r.logsMu.Unlock()
	return r.logs[name]
}

func (r *Runtime) clearLogCapture(name string) {
	r.logsMu.Lock()
	defer r.logsMu.Unlock()
	delete(r.logs, name)
}

func tailLines(data []byte, limit int) []string {
	if len(data) == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}

// ringBuffer keeps the most recent size bytes written to it.
type ringBuffer struct {
	mu     sync.Mutex
	buf    []byte
	size   int
	start  int
	length int
}

func newRingBuffer(size int) *ringBuffer {
	if size < 0 {
		size = 0
	}
	return &ringBuffer{size: size}
}

func (r *ringBuffer) Write(p []byte) (int, error) {
	if r.size == 0 {
		return len(p), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buf == nil {
		r.buf = make([]byte, r.size)
	}
	if len(p) >= r.size {
		copy(r.buf, p[len(p)-r.size:])
		r.start = 0
		r.length = r.size
		return len(p), nil
	}
	for _, b := range p {
		if r.length < r.size {
			idx := (r.start + r.length) % r.size
			r.buf[idx] = b
			r.length++
		} else {
			r.buf[r.start] = b
			r.start = (r.start + 1) % r.size
		}
	}
	return len(p), nil
}

func (r *ringBuffer) Snapshot() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.length == 0 {
		return nil
	}
	out := make([]byte, r.length)
	if r.start+r.length <= r.size {
		copy(out, r.buf[r.start:r.start+r.length])
		return out
	}
	n := r.size - r.start
	copy(out, r.buf[r.start:])
	copy(out[n:], r.buf[:r.length-n])
	return out
}
