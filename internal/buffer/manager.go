// Package buffer manages the byte regions shared between a host and the
// escape-time kernel.
//
// A region is identified by an opaque Handle. The manager keeps the only
// long-lived reference to each region; callers borrow the bytes for the
// duration of one call via Lend, or fetch them with Bytes when a display
// layer needs a view that lives as long as the handle.
package buffer

import (
	"errors"
	"sync"
)

// Errors returned by Manager.
var (
	// ErrOutOfMemory is returned when an allocation would exceed the memory limit.
	ErrOutOfMemory = errors.New("buffer: out of memory")

	// ErrInvalidSize is returned when a non-positive size is requested.
	ErrInvalidSize = errors.New("buffer: invalid size")

	// ErrUnknownHandle is returned for handles that were never acquired or
	// have already been released.
	ErrUnknownHandle = errors.New("buffer: unknown handle")
)

// DefaultLimit is the default total number of bytes a Manager hands out.
// It matches the 4 GiB address space of 32-bit WebAssembly minus headroom
// for the runtime.
const DefaultLimit = 1 << 30

// DefaultFreeListSize is the default number of released regions kept per size.
const DefaultFreeListSize = 2

// Handle identifies an acquired region. The zero Handle is never valid.
type Handle uint32

// Manager hands out zeroed byte regions and takes them back.
//
// Released regions are retained in a small per-size free list so that a
// release followed by an acquire of the same size (the common resize-back
// case) reuses memory. Retained regions are zeroed before reuse.
//
// Thread safety: all methods are safe for concurrent use. The bytes of a
// region are not synchronized; the holder of a handle owns them.
type Manager struct {
	mu      sync.Mutex
	regions map[Handle][]byte
	next    Handle
	inUse   int
	limit   int

	free     map[int][][]byte
	freeSize int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit sets the total number of bytes that may be held at once.
// A limit <= 0 keeps DefaultLimit.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithFreeListSize sets how many released regions are retained per size.
// Zero disables retention.
func WithFreeListSize(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.freeSize = n
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		regions:  make(map[Handle][]byte),
		limit:    DefaultLimit,
		free:     make(map[int][][]byte),
		freeSize: DefaultFreeListSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire allocates a zeroed region of exactly size bytes.
func (m *Manager) Acquire(size int) (Handle, error) {
	if size <= 0 {
		return 0, ErrInvalidSize
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if size > m.limit-m.inUse {
		return 0, ErrOutOfMemory
	}

	var region []byte
	if bucket := m.free[size]; len(bucket) > 0 {
		region = bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		m.free[size] = bucket[:len(bucket)-1]
		clear(region)
	} else {
		region = make([]byte, size)
	}

	m.next++
	if m.next == 0 {
		m.next++
	}
	h := m.next
	m.regions[h] = region
	m.inUse += size
	return h, nil
}

// Release returns a region to the manager. The handle is invalid afterwards;
// releasing it again returns ErrUnknownHandle.
func (m *Manager) Release(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	region, ok := m.regions[h]
	if !ok {
		return ErrUnknownHandle
	}
	delete(m.regions, h)
	m.inUse -= len(region)

	if bucket := m.free[len(region)]; len(bucket) < m.freeSize {
		m.free[len(region)] = append(bucket, region)
	}
	return nil
}

// Bytes returns the region behind h. The slice stays valid until Release.
func (m *Manager) Bytes(h Handle) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	region, ok := m.regions[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return region, nil
}

// Lend calls fn with the region behind h. fn must not retain the slice.
// The manager lock is not held while fn runs.
func (m *Manager) Lend(h Handle, fn func([]byte)) error {
	region, err := m.Bytes(h)
	if err != nil {
		return err
	}
	fn(region)
	return nil
}

// InUse returns the number of bytes currently held by live handles.
func (m *Manager) InUse() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inUse
}

// Live returns the number of live handles.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regions)
}

// Limit returns the configured memory limit in bytes.
func (m *Manager) Limit() int {
	return m.limit
}
