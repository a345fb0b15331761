package renderer

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type releaseCounter struct {
	released int
}

func (r *releaseCounter) Release() { r.released++ }

type recordingPrimitive struct {
	name string
	log  *[]string
}

func (p recordingPrimitive) Prepare(gpu GPU, storage *Storage, bounds common.Rect, viewport common.Size) {
	*p.log = append(*p.log, "prepare:"+p.name)
}

func (p recordingPrimitive) Render(storage *Storage, frame Frame, clip common.Rect) {
	*p.log = append(*p.log, "render:"+p.name)
}

func TestStorageSweepReleasesUnusedEntries(t *testing.T) {
	s := NewStorage()
	kept, dropped := &releaseCounter{}, &releaseCounter{}
	s.Store("kept", kept)
	s.Store("dropped", dropped)
	s.Sweep()
	assert.Equal(t, 2, s.Len(), "entries stored this frame survive the sweep")

	_, ok := s.Get("kept")
	require.True(t, ok)
	s.Sweep()

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, kept.released)
	assert.Equal(t, 1, dropped.released)

	_, ok = s.Get("dropped")
	assert.False(t, ok)
}

func TestStorageStoreReleasesReplacedEntry(t *testing.T) {
	s := NewStorage()
	old, replacement := &releaseCounter{}, &releaseCounter{}
	s.Store("canvas", old)
	s.Store("canvas", old)
	assert.Equal(t, 0, old.released, "storing the same value again keeps it")

	s.Store("canvas", replacement)
	assert.Equal(t, 1, old.released)

	s.Release()
	assert.Equal(t, 1, replacement.released)
	assert.Equal(t, 0, s.Len())
}

func TestStatsSnapshotDelta(t *testing.T) {
	s := NewStorage()
	before := s.Stats().Snapshot()
	s.Stats().FullUploads.Add(2)
	s.Stats().SkippedFrames.Add(1)

	delta := s.Stats().Snapshot().Sub(before)
	assert.Equal(t, StatsSnapshot{FullUploads: 2, SkippedFrames: 1}, delta)
}

func TestFrameScissorClampsToTarget(t *testing.T) {
	f := Frame{Target: common.Size{Width: 100, Height: 50}}

	x, y, w, h, ok := f.Scissor(common.Rect{X: -10, Y: 10, Width: 50, Height: 100})
	require.True(t, ok)
	assert.Equal(t, [4]uint32{0, 10, 40, 40}, [4]uint32{x, y, w, h})

	_, _, _, _, ok = f.Scissor(common.Rect{X: 120, Y: 0, Width: 10, Height: 10})
	assert.False(t, ok, "a clip outside the target is empty")
}

func TestFrameQueuePreparesEverythingBeforeRendering(t *testing.T) {
	var log []string
	var q frameQueue
	q.drawPrimitive(common.Rect{}, recordingPrimitive{name: "a", log: &log})
	q.fillQuad(Quad{}, common.ColorWhite)
	q.drawPrimitive(common.Rect{}, recordingPrimitive{name: "b", log: &log})
	q.drawPrimitive(common.Rect{}, nil)
	q.fillQuad(Quad{}, common.ColorBlack)

	items := q.take()
	require.Len(t, items, 4, "nil primitives are not queued")
	assert.Empty(t, q.take())
	assert.Equal(t, 2, quadCount(items))

	storage := NewStorage()
	prepareItems(items, nil, storage, common.Size{Width: 10, Height: 10})
	renderItems(items, storage, Frame{}, func(slot int, _ Quad) {
		log = append(log, "quad:"+string(rune('0'+slot)))
	})

	assert.Equal(t, []string{
		"prepare:a", "prepare:b",
		"render:a", "quad:0", "render:b", "quad:1",
	}, log)
}

func TestFillUniformsLayout(t *testing.T) {
	u := NewFillUniforms(Quad{
		Bounds: common.Rect{X: 1, Y: 2, Width: 3, Height: 4},
		Border: Border{Color: common.Color{R: 1, A: 0.5}, Width: 2},
		Shadow: Shadow{Offset: common.Vec2{X: 5, Y: 6}, Blur: 7},
	}, common.ColorWhite, common.Size{Width: 640, Height: 480})

	assert.Equal(t, uint64(96), u.Size())
	assert.Len(t, u.Bytes(), 96)
	assert.Equal(t, uintptr(96), unsafe.Sizeof(u))
	assert.Equal(t, [4]float32{1, 2, 3, 4}, u.Rect)
	assert.Equal(t, [4]float32{0.5, 0, 0, 0.5}, u.BorderColor, "colors are premultiplied")
	assert.Equal(t, [4]float32{5, 6, 7, 2}, u.Shadow)
	assert.Equal(t, [4]float32{640, 480, 0, 0}, u.Viewport)
}

func TestParsePresentMode(t *testing.T) {
	m, err := ParsePresentMode("Uncapped")
	require.NoError(t, err)
	assert.Equal(t, PresentModeUncapped, m)
	assert.Equal(t, "uncapped", m.String())

	m, err = ParsePresentMode("")
	require.NoError(t, err)
	assert.Equal(t, PresentModeVSync, m)

	_, err = ParsePresentMode("mailbox")
	assert.Error(t, err)
}

func TestBuilderOptionsFillBackendConfig(t *testing.T) {
	r := &renderer{config: backendConfig{presentMode: PresentModeVSync}}
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithClearColor(common.ColorWhite),
		WithForceSoftwareRenderer(true),
		WithPixelated(true),
	} {
		opt(r)
	}
	assert.Equal(t, backendConfig{
		forceFallbackAdapter: true,
		presentMode:          PresentModeUncapped,
		clearColor:           common.ColorWhite,
		pixelated:            true,
	}, r.config)
}

func TestCheckTextureSize(t *testing.T) {
	assert.NoError(t, checkTextureSize("canvas", 8192, 1, 8192))
	assert.Error(t, checkTextureSize("canvas", 0, 4, 8192))

	err := checkTextureSize("canvas", 8193, 4, 8192)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTextureTooLarge))
	assert.True(t, errors.Is(checkTextureSize("canvas", 4, 9000, 8192), ErrTextureTooLarge))

	assert.GreaterOrEqual(t, MaxTextureDimension(), uint32(2048))
}
