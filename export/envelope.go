package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// GraphKey is the envelope key holding the concept graph.
const GraphKey = "graph"

// Envelope is a JSON object that remembers key insertion order.
// It carries the JSON-LD @context and scheme metadata around the graph.
type Envelope struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewEnvelope creates an empty envelope.
func NewEnvelope() *Envelope {
	return &Envelope{values: make(map[string]json.RawMessage)}
}

// ParseEnvelope decodes a JSON object, keeping key order.
func ParseEnvelope(data []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("parse envelope: top-level value is not an object")
	}

	env := NewEnvelope()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse envelope: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse envelope: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse envelope key %q: %w", key, err)
		}
		env.setRaw(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse envelope: trailing data after object")
	}
	return env, nil
}

// Keys returns the keys in insertion order.
func (e *Envelope) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Get returns the raw value stored under key.
func (e *Envelope) Get(key string) (json.RawMessage, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended.
func (e *Envelope) Set(key string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return fmt.Errorf("marshal envelope key %q: %w", key, err)
	}
	e.setRaw(key, raw)
	return nil
}

func (e *Envelope) setRaw(key string, raw json.RawMessage) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = raw
}

// Clone returns an independent copy.
func (e *Envelope) Clone() *Envelope {
	c := NewEnvelope()
	for _, k := range e.keys {
		c.setRaw(k, e.values[k])
	}
	return c
}

// MarshalJSON writes the object with keys in insertion order.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(e.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshal encodes v without HTML escaping so descriptor text containing
// <, > or & is written as-is.
func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
