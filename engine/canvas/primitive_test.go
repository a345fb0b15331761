package canvas

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuad struct {
	width, height uint32
	log           *[]string
	uploads       [][]byte
	draws         int
	released      bool
	onTexture     func()
}

func (q *fakeQuad) Size() (uint32, uint32) { return q.width, q.height }

func (q *fakeQuad) WriteUniforms(data []byte) {
	*q.log = append(*q.log, "uniforms")
}

func (q *fakeQuad) WriteTexture(data []byte) {
	*q.log = append(*q.log, "texture")
	q.uploads = append(q.uploads, append([]byte(nil), data...))
	if q.onTexture != nil {
		q.onTexture()
	}
}

func (q *fakeQuad) Draw(renderer.Frame, common.Rect) { q.draws++ }

func (q *fakeQuad) Release() { q.released = true }

type fakeGPU struct {
	quads     []*fakeQuad
	log       []string
	err       error
	onTexture func()
}

func (g *fakeGPU) NewTextureQuad(_ string, width, height uint32) (renderer.TextureQuad, error) {
	if g.err != nil {
		return nil, g.err
	}
	q := &fakeQuad{width: width, height: height, log: &g.log, onTexture: g.onTexture}
	g.quads = append(g.quads, q)
	return q, nil
}

type primitiveFixture struct {
	gpu     *fakeGPU
	storage *renderer.Storage
	bitmap  *surface.Bitmap
	bounds  common.Rect
}

func newPrimitiveFixture() *primitiveFixture {
	return &primitiveFixture{
		gpu:     &fakeGPU{},
		storage: renderer.NewStorage(),
		bitmap:  surface.MustBitmap(4, 2),
		bounds:  common.Rect{Width: 100, Height: 100},
	}
}

func (f *primitiveFixture) prepare(generation uint64) renderer.StatsSnapshot {
	before := f.storage.Stats().Snapshot()
	p := &Primitive{Surface: f.bitmap.CreateWeak(), Key: "canvas/0", Scale: 1, Generation: generation}
	p.Prepare(f.gpu, f.storage, f.bounds, common.Size{Width: 640, Height: 480})
	f.storage.Sweep()
	return f.storage.Stats().Snapshot().Sub(before)
}

func TestPrepareFirstFrameUploadsEverything(t *testing.T) {
	f := newPrimitiveFixture()

	delta := f.prepare(1)
	assert.Equal(t, renderer.StatsSnapshot{FullUploads: 1}, delta)
	require.Len(t, f.gpu.quads, 1)
	assert.Equal(t, []string{"uniforms", "texture"}, f.gpu.log, "uniforms are uploaded before pixels")
	assert.Len(t, f.gpu.quads[0].uploads[0], 4*2*4)
	assert.False(t, f.bitmap.IsModified(), "a full upload clears the modified flag")
}

func TestPrepareSkipsUnchangedSurface(t *testing.T) {
	f := newPrimitiveFixture()
	f.prepare(1)
	f.gpu.log = nil

	delta := f.prepare(1)
	assert.Equal(t, renderer.StatsSnapshot{}, delta)
	assert.Equal(t, []string{"uniforms"}, f.gpu.log)
}

func TestPrepareUploadsModifiedSurface(t *testing.T) {
	f := newPrimitiveFixture()
	f.prepare(1)
	require.True(t, f.bitmap.SetPixel(0, 0, 0xff0000ff))

	delta := f.prepare(1)
	assert.Equal(t, renderer.StatsSnapshot{IncrementalUploads: 1}, delta)
	q := f.gpu.quads[0]
	require.Len(t, q.uploads, 2)
	assert.Equal(t, byte(0xff), q.uploads[1][0])
	assert.False(t, f.bitmap.IsModified())
}

func TestPrepareUploadsWriteMadeDuringUpload(t *testing.T) {
	f := newPrimitiveFixture()
	f.prepare(1)

	require.True(t, f.bitmap.SetPixel(0, 0, 0x01))
	q := f.gpu.quads[0]
	q.onTexture = func() {
		q.onTexture = nil
		f.bitmap.SetPixel(0, 0, 0x02)
	}
	assert.Equal(t, renderer.StatsSnapshot{IncrementalUploads: 1}, f.prepare(1))
	assert.Equal(t, byte(0x01), q.uploads[1][0], "the upload carries the snapshot it was started with")
	assert.True(t, f.bitmap.IsModified(), "the write made while uploading stays pending")

	// The write landed on a copy because the frame held the pixels, so the copy is uploaded in full.
	assert.Equal(t, renderer.StatsSnapshot{FullUploads: 1}, f.prepare(1))
	require.Len(t, q.uploads, 3)
	assert.Equal(t, byte(0x02), q.uploads[2][0])
	assert.False(t, f.bitmap.IsModified())

	// Writes between frames edit the pixels in place and are uploaded incrementally.
	require.True(t, f.bitmap.SetPixel(0, 0, 0x03))
	assert.Equal(t, renderer.StatsSnapshot{IncrementalUploads: 1}, f.prepare(1))
	assert.Equal(t, byte(0x03), q.uploads[3][0])
	assert.Len(t, f.gpu.quads, 1, "the texture is reused throughout")
}

func TestPrepareRecreatesTextureOnResize(t *testing.T) {
	f := newPrimitiveFixture()
	f.prepare(1)
	require.NoError(t, f.bitmap.Resize(8, 8))

	delta := f.prepare(1)
	assert.Equal(t, renderer.StatsSnapshot{FullUploads: 1, Recreations: 1}, delta)
	require.Len(t, f.gpu.quads, 2)
	assert.True(t, f.gpu.quads[0].released, "the old texture is released when replaced")
	w, h := f.gpu.quads[1].Size()
	assert.Equal(t, [2]uint32{8, 8}, [2]uint32{w, h})
}

func TestPrepareForcesUploadOnGenerationChange(t *testing.T) {
	f := newPrimitiveFixture()
	f.prepare(1)

	delta := f.prepare(2)
	assert.Equal(t, renderer.StatsSnapshot{FullUploads: 1}, delta)
	assert.Len(t, f.gpu.quads, 1, "a generation change reuses the texture")
}

func TestPrepareForcesUploadOnSwappedSurface(t *testing.T) {
	f := newPrimitiveFixture()
	f.prepare(1)
	f.bitmap = surface.MustBitmap(4, 2)

	delta := f.prepare(1)
	assert.Equal(t, renderer.StatsSnapshot{FullUploads: 1}, delta)
	assert.Len(t, f.gpu.quads, 1)
}

func TestPrepareSkipsDanglingSurfaceAndKeepsTexture(t *testing.T) {
	f := newPrimitiveFixture()
	f.prepare(1)

	dangling := &Primitive{Key: "canvas/0", Scale: 1, Generation: 1}
	before := f.storage.Stats().Snapshot()
	assert.NotPanics(t, func() {
		dangling.Prepare(f.gpu, f.storage, f.bounds, common.Size{Width: 640, Height: 480})
	})
	f.storage.Sweep()
	assert.Equal(t, renderer.StatsSnapshot{SkippedFrames: 1}, f.storage.Stats().Snapshot().Sub(before))

	dangling.Render(f.storage, renderer.Frame{}, f.bounds)
	assert.Equal(t, 1, f.gpu.quads[0].draws, "the last uploaded texture is still drawn")
	assert.False(t, f.gpu.quads[0].released)
}

func TestPrepareSkipsFrameWhenTextureCreationFails(t *testing.T) {
	f := newPrimitiveFixture()
	f.gpu.err = errors.New("out of memory")
	require.True(t, f.bitmap.SetPixel(1, 1, 0xffffffff))

	delta := f.prepare(1)
	assert.Equal(t, renderer.StatsSnapshot{SkippedFrames: 1}, delta)
	assert.Equal(t, 0, f.storage.Len())
	assert.True(t, f.bitmap.IsModified(), "the pixels stay pending for the next frame")
}

func TestRenderWithoutTextureDrawsNothing(t *testing.T) {
	p := &Primitive{Key: "canvas/missing"}
	assert.NotPanics(t, func() {
		p.Render(renderer.NewStorage(), renderer.Frame{}, common.Rect{})
	})
}
