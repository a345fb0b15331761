// Package surface provides CPU-side pixel buffers that a renderer can observe without owning them.
package surface

import "weak"

// Surface is RGBA image data stored on the CPU to be uploaded to the GPU.
// Pixels are packed as one uint32 per pixel with R in the lowest byte.
type Surface interface {
	// Width returns the width of the surface in pixels.
	//
	// Returns:
	//   - uint32: the width, always greater than zero
	Width() uint32

	// Height returns the height of the surface in pixels.
	//
	// Returns:
	//   - uint32: the height, always greater than zero
	Height() uint32

	// Data returns the raw RGBA bytes of the surface, 4 bytes per pixel, row-major.
	//
	// Returns:
	//   - []byte: a view of the pixel data; callers must not modify it
	Data() []byte

	// RunIfModified calls update with the current pixel data if the surface was modified since the
	// last call, and clears the modified flag atomically. A modification that lands after the flag
	// was cleared sets it again, so it is observed on the next call.
	//
	// Parameters:
	//   - update: receives the width, height and raw bytes of the surface
	//
	// Returns:
	//   - bool: true if update was called
	RunIfModified(update func(width, height uint32, data []byte)) bool

	// Identity returns an opaque identifier of the pixel allocation backing this surface. Two
	// surfaces with the same identity share the same pixel storage.
	//
	// Returns:
	//   - uint64: the allocation identity
	Identity() uint64
}

// Pinner is implemented by surfaces that must not be mutated in place while a reader holds them.
// A Ref pins the surface for the duration between Acquire and the returned release call.
type Pinner interface {
	// Pin registers a reader. It fails without blocking if a writer currently owns the surface.
	//
	// Returns:
	//   - bool: true if the surface was pinned
	Pin() bool

	// Unpin releases a reader registered with Pin.
	Unpin()
}

// Handler exposes the size of a surface and produces weak references to it. Widgets and
// renderers depend on this capability set only, never on a concrete buffer type.
type Handler interface {
	// Width returns the width of the surface in pixels.
	Width() uint32

	// Height returns the height of the surface in pixels.
	Height() uint32

	// CreateWeak returns a non-owning reference to the current surface. The renderer resolves it
	// when preparing a frame; holding it never keeps the surface alive.
	//
	// Returns:
	//   - Ref: the weak reference
	CreateWeak() Ref
}

// Ref is a non-owning reference to a Surface. The zero Ref never resolves.
type Ref struct {
	acquire func() (Surface, func(), bool)
}

// Acquire resolves the reference. Resolution fails once the surface has been garbage collected,
// or when a pinnable surface is being written at that instant. Failure is not an error: callers
// skip the work that needed the surface.
//
// Returns:
//   - Surface: the resolved surface, nil on failure
//   - func(): releases the surface; must be called once the caller is done reading
//   - bool: true if the reference resolved
func (r Ref) Acquire() (Surface, func(), bool) {
	if r.acquire == nil {
		return nil, nil, false
	}
	return r.acquire()
}

// MakeRef builds a weak Ref to s. If s implements Pinner it is pinned for every successful Acquire.
//
// Parameters:
//   - s: the surface to reference
//
// Returns:
//   - Ref: a weak reference that does not keep s alive
func MakeRef[T any, P interface {
	*T
	Surface
}](s P) Ref {
	wp := weak.Make((*T)(s))
	return Ref{acquire: func() (Surface, func(), bool) {
		ptr := wp.Value()
		if ptr == nil {
			return nil, nil, false
		}
		var v Surface = P(ptr)
		if p, ok := v.(Pinner); ok {
			if !p.Pin() {
				return nil, nil, false
			}
			return v, p.Unpin, true
		}
		return v, func() {}, true
	}}
}
