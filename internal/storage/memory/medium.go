// Package memory provides a map-backed key-value medium.
//
// It backs the "memory" storage backend and doubles as the fake medium in
// tests, where read and write failures can be injected.
package memory

import (
	"context"
	"sync"
)

// Medium keeps documents in process memory.
type Medium struct {
	mu       sync.Mutex
	docs     map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

// New returns an empty Medium.
func New() *Medium {
	return &Medium{docs: map[string][]byte{}}
}

// Read returns a copy of the document under key.
func (m *Medium) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return nil, false, m.readErr
	}
	doc, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), doc...), true, nil
}

// Write stores a copy of data under key.
func (m *Medium) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}
	m.docs[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Put seeds a document without counting it as a write.
func (m *Medium) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), data...)
}

// Get returns the raw document under key.
func (m *Medium) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[key]
	return append([]byte(nil), doc...), ok
}

// FailReads makes every subsequent Read return err. A nil err clears it.
func (m *Medium) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every subsequent Write return err. A nil err clears it.
func (m *Medium) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes returns the number of successful Write calls.
func (m *Medium) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
