package mandelbrot

import (
	"errors"
	"fmt"

	"github.com/gogpu/mandelbrot/internal/buffer"
)

// Handle identifies a buffer allocated through a Host.
type Handle = buffer.Handle

// Host API errors.
var (
	// ErrOutOfMemory is returned by Alloc when the request exceeds the
	// host's memory limit. Hosts should abort startup on this error.
	ErrOutOfMemory = buffer.ErrOutOfMemory

	// ErrInvalidSize is returned by Alloc for non-positive sizes.
	ErrInvalidSize = buffer.ErrInvalidSize

	// ErrUnknownHandle is returned when a handle was never allocated or has
	// already been released.
	ErrUnknownHandle = buffer.ErrUnknownHandle
)

// Host is the narrow API a display layer uses to drive the kernel:
// allocate a buffer once, calculate into it every frame, release it at
// shutdown.
//
// The host never calls back into its caller.
type Host struct {
	buffers *buffer.Manager
	kernel  Kernel
}

// HostOption configures a Host.
type HostOption func(*hostOptions)

type hostOptions struct {
	kernel   Kernel
	limit    int
	freeList int
}

func defaultHostOptions() hostOptions {
	return hostOptions{
		kernel:   DefaultKernel,
		limit:    buffer.DefaultLimit,
		freeList: buffer.DefaultFreeListSize,
	}
}

// WithKernel sets the kernel used by Calculate.
func WithKernel(k Kernel) HostOption {
	return func(o *hostOptions) {
		o.kernel = k
	}
}

// WithMemoryLimit caps the total bytes held by live buffers.
// Alloc fails with ErrOutOfMemory beyond it.
func WithMemoryLimit(n int) HostOption {
	return func(o *hostOptions) {
		o.limit = n
	}
}

// WithFreeListSize sets how many released buffers of each size are kept for
// reuse.
func WithFreeListSize(n int) HostOption {
	return func(o *hostOptions) {
		o.freeList = n
	}
}

// NewHost creates a host with no buffers allocated.
func NewHost(opts ...HostOption) *Host {
	o := defaultHostOptions()
	for _, opt := range opts {
		opt(&o)
	}
	h := &Host{
		buffers: buffer.NewManager(buffer.WithLimit(o.limit), buffer.WithFreeListSize(o.freeList)),
		kernel:  o.kernel,
	}
	Logger().Info("mandelbrot: host created", "limit", h.buffers.Limit())
	return h
}

// Alloc allocates a zeroed buffer of byteSize bytes.
func (h *Host) Alloc(byteSize int) (Handle, error) {
	handle, err := h.buffers.Acquire(byteSize)
	if err != nil {
		return 0, fmt.Errorf("mandelbrot: alloc %d bytes: %w", byteSize, err)
	}
	Logger().Debug("mandelbrot: buffer allocated", "handle", handle, "bytes", byteSize, "inUse", h.buffers.InUse())
	return handle, nil
}

// AllocFrame allocates a buffer sized for g and returns its handle.
func (h *Host) AllocFrame(g Grid) (Handle, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	return h.Alloc(g.ByteSize())
}

// Dealloc releases a buffer. Releasing the same handle twice returns
// ErrUnknownHandle.
func (h *Host) Dealloc(handle Handle) error {
	if err := h.buffers.Release(handle); err != nil {
		Logger().Warn("mandelbrot: dealloc of unknown handle", "handle", handle)
		return fmt.Errorf("mandelbrot: dealloc %d: %w", handle, err)
	}
	Logger().Debug("mandelbrot: buffer released", "handle", handle, "inUse", h.buffers.InUse())
	return nil
}

// Calculate renders one frame into the buffer behind handle.
//
// The only error is an unknown handle. Inconsistent dimensions or a
// degenerate view never fail: the kernel clamps to the buffer and skips
// frames it cannot render (see Calculate).
func (h *Host) Calculate(handle Handle, width, height, maxIterations int, centerReal, centerImag, zoom float64) error {
	err := h.buffers.Lend(handle, func(buf []byte) {
		if width*height*BytesPerPixel != len(buf) {
			Logger().Debug("mandelbrot: grid does not match buffer", "handle", handle,
				"width", width, "height", height, "bytes", len(buf))
		}
		if !validZoom(zoom) {
			Logger().Debug("mandelbrot: skipping frame with invalid zoom", "zoom", zoom)
		}
		h.kernel.Render(buf, width, height, maxIterations, centerReal, centerImag, zoom)
	})
	if err != nil {
		Logger().Warn("mandelbrot: calculate with unknown handle", "handle", handle)
		return fmt.Errorf("mandelbrot: calculate %d: %w", handle, err)
	}
	return nil
}

// CalculateView is Calculate with the parameters taken from g and v.
func (h *Host) CalculateView(handle Handle, g Grid, v View) error {
	return h.Calculate(handle, g.Width, g.Height, v.MaxIterations, v.CenterReal, v.CenterImag, v.Zoom)
}

// Frame returns an image view of the buffer behind handle, for handing to a
// display layer. The view is valid until the handle is released.
func (h *Host) Frame(handle Handle, g Grid) (*FrameBuffer, error) {
	buf, err := h.buffers.Bytes(handle)
	if err != nil {
		return nil, fmt.Errorf("mandelbrot: frame %d: %w", handle, err)
	}
	fb, err := WrapFrameBuffer(buf, g)
	if err != nil {
		return nil, fmt.Errorf("mandelbrot: frame %d: %w", handle, err)
	}
	return fb, nil
}

// InUse returns the number of bytes held by live buffers.
func (h *Host) InUse() int {
	return h.buffers.InUse()
}

// IsOutOfMemory reports whether err is an allocation failure.
func IsOutOfMemory(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}
