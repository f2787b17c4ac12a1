package testutil

import (
	"io"
	"sync"
)

// ScriptedReader is a character source fed by the test. ReadChar blocks until
// a key is typed or the reader is closed.
type ScriptedReader struct {
	keys   chan byte
	closed chan struct{}
	once   sync.Once

	mu    sync.Mutex
	reads int
}

// NewScriptedReader creates a reader with the given keys already queued
func NewScriptedReader(keys string) *ScriptedReader {
	r := &ScriptedReader{
		keys:   make(chan byte, 64),
		closed: make(chan struct{}),
	}
	r.Type(keys)
	return r
}

// Type queues keys for ReadChar
func (r *ScriptedReader) Type(keys string) {
	for i := 0; i < len(keys); i++ {
		r.keys <- keys[i]
	}
}

// ReadChar returns the next queued key, or io.EOF once closed
func (r *ScriptedReader) ReadChar() (byte, error) {
	select {
	case k := <-r.keys:
		r.mu.Lock()
		r.reads++
		r.mu.Unlock()
		return k, nil
	case <-r.closed:
		return 0, io.EOF
	}
}

// Reads returns how many keys have been consumed
func (r *ScriptedReader) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// Close unblocks pending and future reads
func (r *ScriptedReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}
