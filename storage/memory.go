package storage

import (
	"bytes"
	"context"
	"sync"
)

// memWriter is the Writer returned by Memory.StartPut.
type memWriter struct {
	buf bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *memWriter) Bytes() []byte               { return w.buf.Bytes() }

// Memory is an in-process, map-backed Backend. It is used by tests and
// by cmd/ccwrap's -dry-run mode. It never touches the network: Get
// produces ErrorOutcome, and FinishPut fails, only for a key shorter
// than 4 characters.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemory constructs an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) GetResult {
	// Fan-out is still computed so Memory rejects the same too-short
	// keys as the HTTP backend, even though Memory itself just indexes
	// by the raw key.
	if _, err := FanOutPath(key); err != nil {
		return GetResult{Outcome: ErrorOutcome, Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return GetResult{Outcome: Miss}
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return GetResult{Outcome: Hit, Blob: cp}
}

func (m *Memory) StartPut(_ context.Context, _ string) (Writer, error) {
	return &memWriter{}, nil
}

func (m *Memory) FinishPut(_ context.Context, key string, w Writer) error {
	if _, err := FanOutPath(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), w.Bytes()...)
	return nil
}
