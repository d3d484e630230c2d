// Package envfile persists the environment descriptor as a dotenv file and
// collects descriptor fields from container log output.
package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/joho/godotenv"
	"pkt.systems/glharness/schema"
)

// Write validates desc and persists it atomically at path.
func Write(path string, desc schema.EnvDescriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	content, err := godotenv.Marshal(desc.Map())
	if err != nil {
		return schema.NewError(schema.KindConfiguration, "envfile write", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return schema.NewError(schema.KindConfiguration, "envfile write", err)
	}
	tmp, err := os.CreateTemp(dir, ".env-*")
	if err != nil {
		return schema.NewError(schema.KindConfiguration, "envfile write", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return schema.NewError(schema.KindConfiguration, "envfile write", err)
	}
	if _, err := tmp.WriteString(content + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return schema.NewError(schema.KindConfiguration, "envfile write", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return schema.NewError(schema.KindConfiguration, "envfile write", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return schema.NewError(schema.KindConfiguration, "envfile write", err)
	}
	return nil
}

// Read loads a descriptor from a dotenv file. Unrecognized keys are
// ignored; the result is validated for completeness.
func Read(path string) (schema.EnvDescriptor, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return schema.EnvDescriptor{}, schema.NewError(schema.KindConfiguration, "envfile read", err)
	}
	var desc schema.EnvDescriptor
	for key, value := range values {
		if err := desc.Set(key, value); err != nil {
			if errors.Is(err, schema.ErrUnknownField) {
				continue
			}
			return schema.EnvDescriptor{}, schema.NewError(schema.KindConfiguration, "envfile read", err)
		}
	}
	if err := desc.Validate(); err != nil {
		return schema.EnvDescriptor{}, err
	}
	return desc, nil
}

// Collector accumulates descriptor fields observed in log lines. It is
// safe for concurrent use; fields are write-once so a later line cannot
// overwrite an observed value.
type Collector struct {
	mu   sync.Mutex
	desc schema.EnvDescriptor
}

func NewCollector() *Collector {
	return &Collector{}
}

// Scan inspects one log line for recognized field=value pairs and records
// any it finds. Returns true when at least one new field was captured.
func (c *Collector) Scan(line string) bool {
	captured := false
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, field := range schema.DescriptorFields {
		current, _ := c.desc.Get(field)
		if current != "" {
			continue
		}
		value, ok := extract(line, field)
		if !ok {
			continue
		}
		if err := c.desc.Set(field, value); err == nil {
			captured = true
		}
	}
	return captured
}

// Descriptor returns a copy of the collected fields.
func (c *Collector) Descriptor() schema.EnvDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc
}

// Complete reports whether every recognized field has been observed.
func (c *Collector) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc.Complete()
}

// Missing returns the fields not yet observed.
func (c *Collector) Missing() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc.MissingFields()
}

// extract locates field=value in a log line. The field name must start at
// a word boundary so a longer key cannot satisfy a shorter one.
func extract(line, field string) (string, bool) {
	search := line
	offset := 0
	for {
		idx := strings.Index(search, field+"=")
		if idx < 0 {
			return "", false
		}
		at := offset + idx
		if at == 0 || !isWordByte(line[at-1]) {
			rest := line[at+len(field)+1:]
			return trimValue(rest), true
		}
		offset = at + len(field) + 1
		search = line[offset:]
	}
}

func trimValue(rest string) string {
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end >= 0 {
		rest = rest[:end]
	}
	rest = strings.Trim(rest, `"'`)
	return rest
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_':
		return true
	}
	return false
}
