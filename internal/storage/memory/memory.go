// Package memory keeps the state blob in process memory. Useful for demos
// and tests; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"hisab/internal/storage"
)

type Blobs struct {
	mu   sync.RWMutex
	blob []byte
	// Fail, when set, is returned by Write.
	Fail error
}

func New() *Blobs { return &Blobs{} }

// NewWithBlob returns a store pre-seeded with blob.
func NewWithBlob(blob []byte) *Blobs {
	return &Blobs{blob: append([]byte(nil), blob...)}
}

func (b *Blobs) Read(_ context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.blob == nil {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), b.blob...), nil
}

func (b *Blobs) Write(_ context.Context, blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Fail != nil {
		return b.Fail
	}
	b.blob = append([]byte{}, blob...)
	return nil
}
