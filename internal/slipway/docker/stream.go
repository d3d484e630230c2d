package docker

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// demuxStream splits a multiplexed docker attach stream into stdout and
// stderr. Each frame carries an 8 byte header: stream type, three zero
// bytes and a big endian payload size.
func demuxStream(r io.Reader, stdout, stderr io.Writer) error {
	var header [8]byte
	for {
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
		size := binary.BigEndian.Uint32(header[4:8])
		var dst io.Writer
		switch header[0] {
		case 1:
			dst = stdout
		case 2:
			dst = stderr
		default:
			dst = nil
		}
		if dst == nil {
			dst = io.Discard
		}
		if _, err := io.CopyN(dst, r, int64(size)); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

var errFound = errors.New("found")

// searchStream consumes a multiplexed log stream until text appears on
// any line, the stream ends, or the context is cancelled.
func searchStream(ctx context.Context, r io.Reader, text string) error {
	searcher := &streamSearcher{text: text}
	done := make(chan error, 1)
	go func() {
		done <- demuxStream(r, searcher, searcher)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if errors.Is(err, errFound) || searcher.found {
			return nil
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("stream ended")
	}
}

// streamSearcher scans written log output line by line for a substring.
type streamSearcher struct {
	text    string
	partial strings.Builder
	found   bool
}

func (s *streamSearcher) Write(p []byte) (int, error) {
	if s.found {
		return len(p), nil
	}
	s.partial.Write(p)
	buffered := s.partial.String()
	for {
		idx := strings.IndexByte(buffered, '\n')
		if idx < 0 {
			break
		}
		line := buffered[:idx]
		buffered = buffered[idx+1:]
		if strings.Contains(line, s.text) {
			s.found = true
			return len(p), errFound
		}
	}
	if strings.Contains(buffered, s.text) {
		s.found = true
		return len(p), errFound
	}
	s.partial.Reset()
	s.partial.WriteString(buffered)
	return len(p), nil
}
