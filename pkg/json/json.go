// Package json wraps the module's JSON codec behind a small pooled API.
// All JSON serialization goes through here so the codec choice and buffer
// reuse live in one place.
package json

import (
	"bytes"
	"sync"

	gojson "github.com/goccy/go-json"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// maxPooledBuffer caps the size of buffers returned to the pool; oversized
// buffers from one large table would otherwise pin memory for the process
// lifetime.
const maxPooledBuffer = 1 << 20

// Marshal serializes v to JSON bytes.
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// MarshalToString serializes v to a JSON string using a pooled buffer.
func MarshalToString(v interface{}) (string, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			bufferPool.Put(buf)
		}
	}()

	enc := gojson.NewEncoder(buf)
	if err := enc.Encode(v); err != nil {
		return "", err
	}

	// Encode appends a trailing newline; strip it for embedding.
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return string(out), nil
}

// MarshalIndent serializes v to indented JSON bytes.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses JSON bytes into v.
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}
