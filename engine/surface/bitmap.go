package surface

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-canvas/common"
)

// storeIDs hands out allocation identities for pixel stores.
var storeIDs atomic.Uint64

// writerLocked marks a pixel store that is being edited and cannot be pinned.
const writerLocked int32 = -1

// pixelStore is one allocation of pixel data. Its dimensions never change; resizing a Bitmap
// replaces the store.
type pixelStore struct {
	id     uint64
	width  uint32
	height uint32
	buffer []uint32
	dirty  atomic.Bool
	// state is the number of pinned readers, or writerLocked while an edit is in progress.
	state atomic.Int32
}

var (
	_ Surface = &pixelStore{}
	_ Pinner  = &pixelStore{}
)

func newPixelStore(width, height uint32, buffer []uint32) *pixelStore {
	return &pixelStore{
		id:     storeIDs.Add(1),
		width:  width,
		height: height,
		buffer: buffer,
	}
}

func (s *pixelStore) Width() uint32 {
	return s.width
}

func (s *pixelStore) Height() uint32 {
	return s.height
}

func (s *pixelStore) Data() []byte {
	return common.SliceToBytes(s.buffer)
}

func (s *pixelStore) Identity() uint64 {
	return s.id
}

func (s *pixelStore) RunIfModified(update func(width, height uint32, data []byte)) bool {
	if !s.dirty.CompareAndSwap(true, false) {
		return false
	}
	update(s.width, s.height, s.Data())
	return true
}

func (s *pixelStore) Pin() bool {
	for {
		n := s.state.Load()
		if n == writerLocked {
			return false
		}
		if s.state.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (s *pixelStore) Unpin() {
	s.state.Add(-1)
}

func (s *pixelStore) clone() *pixelStore {
	buf := make([]uint32, len(s.buffer))
	copy(buf, s.buffer)
	c := newPixelStore(s.width, s.height, buf)
	c.dirty.Store(s.dirty.Load())
	return c
}

// Bitmap is image data stored on the CPU that can be displayed by a texture canvas. It can be
// freely edited and resized.
//
// A Bitmap has a single writer: Edit, EditRaw, Update, Resize and SetPixel must not run
// concurrently with each other. Overlapping edits panic. Renderers may read the bitmap from other
// goroutines through CreateWeak at any time; if a reader holds the pixels when an edit starts,
// the edit works on a private copy, so neither side ever waits for the other.
//
// Cloning a Bitmap always creates a new allocation.
type Bitmap struct {
	store   atomic.Pointer[pixelStore]
	editing atomic.Bool
}

var _ Handler = &Bitmap{}

// NewBitmap creates a zero-filled Bitmap.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - *Bitmap: the new bitmap
//   - error: ErrInvalidDimensions if either dimension is zero
func NewBitmap(width, height uint32) (*Bitmap, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	b := &Bitmap{}
	b.store.Store(newPixelStore(width, height, make([]uint32, int(width)*int(height))))
	return b, nil
}

// MustBitmap is like NewBitmap but panics if either dimension is zero.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - *Bitmap: the new bitmap
func MustBitmap(width, height uint32) *Bitmap {
	b, err := NewBitmap(width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBitmapInit creates a Bitmap initialised with RGBA data.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//   - data: width*height*4 bytes of RGBA data
//
// Returns:
//   - *Bitmap: the new bitmap, marked modified
//   - error: ErrInvalidDimensions or ErrSizeMismatch
func NewBitmapInit(width, height uint32, data []byte) (*Bitmap, error) {
	b, err := NewBitmap(width, height)
	if err != nil {
		return nil, err
	}
	if err := b.Update(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Width returns the width of the bitmap in pixels.
func (b *Bitmap) Width() uint32 {
	return b.store.Load().width
}

// Height returns the height of the bitmap in pixels.
func (b *Bitmap) Height() uint32 {
	return b.store.Load().height
}

// Size returns the bitmap dimensions as a float size.
func (b *Bitmap) Size() common.Size {
	s := b.store.Load()
	return common.Size{Width: float32(s.width), Height: float32(s.height)}
}

// Buffer returns the packed pixels of the bitmap. The slice is a read-only view for the writer;
// use Edit to modify pixels.
func (b *Bitmap) Buffer() []uint32 {
	return b.store.Load().buffer
}

// Raw returns the pixels of the bitmap as RGBA bytes. The slice is a read-only view.
func (b *Bitmap) Raw() []byte {
	return b.store.Load().Data()
}

// Pixel returns the packed pixel at (x, y).
//
// Parameters:
//   - x, y: the pixel coordinates
//
// Returns:
//   - uint32: the packed RGBA value
//   - bool: false if the coordinates are outside the bitmap
func (b *Bitmap) Pixel(x, y int) (uint32, bool) {
	s := b.store.Load()
	if x < 0 || y < 0 || x >= int(s.width) || y >= int(s.height) {
		return 0, false
	}
	return s.buffer[y*int(s.width)+x], true
}

// Identity returns the identity of the pixel allocation currently backing the bitmap. It changes
// whenever an edit had to copy the pixels away from a reader, and on every resize.
func (b *Bitmap) Identity() uint64 {
	return b.store.Load().id
}

// IsModified reports whether the bitmap was modified since the last upload.
func (b *Bitmap) IsModified() bool {
	return b.store.Load().dirty.Load()
}

// RunIfModified calls update with the bitmap's pixels if they were modified since the last call.
// See Surface.RunIfModified.
func (b *Bitmap) RunIfModified(update func(width, height uint32, data []byte)) bool {
	return b.store.Load().RunIfModified(update)
}

// Edit gives fn mutable access to the packed pixels. The bitmap is marked modified even if fn
// changes nothing.
//
// Parameters:
//   - fn: receives the pixel buffer, row-major, width*height entries
func (b *Bitmap) Edit(fn func(buffer []uint32)) {
	s := b.beginEdit()
	defer b.endEdit(s)
	fn(s.buffer)
}

// EditRaw gives fn mutable access to the pixels as RGBA bytes. The bitmap is marked modified even
// if fn changes nothing.
//
// Parameters:
//   - fn: receives the raw bytes, width*height*4 entries
func (b *Bitmap) EditRaw(fn func(raw []byte)) {
	s := b.beginEdit()
	defer b.endEdit(s)
	fn(common.SliceToBytes(s.buffer))
}

// SetPixel writes one packed pixel. Coordinates outside the bitmap are ignored.
//
// Parameters:
//   - x, y: the pixel coordinates
//   - color: the packed RGBA value
//
// Returns:
//   - bool: true if the pixel was inside the bitmap
func (b *Bitmap) SetPixel(x, y int, color uint32) bool {
	w, h := int(b.Width()), int(b.Height())
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	b.Edit(func(buffer []uint32) {
		buffer[y*w+x] = color
	})
	return true
}

// Update replaces the whole image with the provided RGBA data.
//
// Parameters:
//   - data: width*height*4 bytes of RGBA data
//
// Returns:
//   - error: ErrSizeMismatch if the length of data does not match the bitmap
func (b *Bitmap) Update(data []byte) error {
	s := b.store.Load()
	if want := int(s.width) * int(s.height) * 4; len(data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d (%dx%d)", ErrSizeMismatch, len(data), want, s.width, s.height)
	}
	b.EditRaw(func(raw []byte) {
		copy(raw, data)
	})
	return nil
}

// Resize reallocates the bitmap. The flat pixel buffer is truncated or zero-extended, so existing
// content is not preserved row by row. Resizing to the current size is a no-op.
//
// Parameters:
//   - width: the new width in pixels
//   - height: the new height in pixels
//
// Returns:
//   - error: ErrInvalidDimensions if either dimension is zero
func (b *Bitmap) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if width == b.Width() && height == b.Height() {
		return nil
	}

	s := b.beginEdit()
	buf := make([]uint32, int(width)*int(height))
	copy(buf, s.buffer)
	resized := newPixelStore(width, height, buf)
	resized.dirty.Store(true)
	b.store.Store(resized)
	b.endEdit(s)
	return nil
}

// Clone returns a deep copy of the bitmap backed by a new allocation.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{}
	c.store.Store(b.store.Load().clone())
	return c
}

// CreateWeak returns a weak reference to the pixels currently backing the bitmap.
func (b *Bitmap) CreateWeak() Ref {
	return MakeRef[pixelStore](b.store.Load())
}

// beginEdit takes the writer lock on the current store, copying it first if a reader holds it.
func (b *Bitmap) beginEdit() *pixelStore {
	if !b.editing.CompareAndSwap(false, true) {
		panic("surface: overlapping edits on a Bitmap; a Bitmap must have a single writer")
	}
	s := b.store.Load()
	if !s.state.CompareAndSwap(0, writerLocked) {
		c := s.clone()
		c.state.Store(writerLocked)
		b.store.Store(c)
		s = c
	}
	return s
}

func (b *Bitmap) endEdit(s *pixelStore) {
	s.dirty.Store(true)
	s.state.Store(0)
	b.editing.Store(false)
}
