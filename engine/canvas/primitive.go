package canvas

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/camera"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
)

// Primitive renders one frame of a canvas occurrence. It holds only a weak reference to the
// surface; the GPU texture it draws with is cached in the renderer storage under Key.
type Primitive struct {
	Surface    surface.Ref
	Key        string
	Offset     common.Vec2
	Scale      float32
	Generation uint64
}

var _ renderer.Primitive = &Primitive{}

// textureEntry is the cached GPU state of a canvas occurrence.
type textureEntry struct {
	quad          renderer.TextureQuad
	width, height uint32
	generation    uint64
	identity      uint64
}

func (e *textureEntry) Release() {
	e.quad.Release()
}

// Prepare uploads the transform, then the pixels when the cached texture is stale or the surface
// was modified. A surface that cannot be resolved skips the frame and keeps the cached texture.
func (p *Primitive) Prepare(gpu renderer.GPU, storage *renderer.Storage, bounds common.Rect, viewport common.Size) {
	stats := storage.Stats()
	cached, _ := storage.Get(p.Key)
	entry, _ := cached.(*textureEntry)

	s, release, ok := p.Surface.Acquire()
	if !ok {
		stats.SkippedFrames.Add(1)
		common.Logger().Debug("surface unavailable, skipping upload", "key", p.Key)
		return
	}
	defer release()

	width, height := s.Width(), s.Height()
	force := false
	if entry == nil || entry.width != width || entry.height != height {
		quad, err := gpu.NewTextureQuad(p.Key, width, height)
		if err != nil {
			stats.SkippedFrames.Add(1)
			common.Logger().Warn("texture creation failed", "key", p.Key, "width", width, "height", height, "error", err)
			return
		}
		if entry != nil {
			stats.Recreations.Add(1)
			common.Logger().Debug("texture recreated", "key", p.Key, "width", width, "height", height)
		}
		entry = &textureEntry{quad: quad, width: width, height: height, generation: p.Generation, identity: s.Identity()}
		storage.Store(p.Key, entry)
		force = true
	}
	if entry.generation != p.Generation || entry.identity != s.Identity() {
		entry.generation, entry.identity = p.Generation, s.Identity()
		force = true
	}

	texture := common.Size{Width: float32(width), Height: float32(height)}
	uniforms := camera.NewUniforms(bounds.Position().Add(p.Offset), p.Scale, viewport, texture)
	entry.quad.WriteUniforms(uniforms.Bytes())

	upload := func(_, _ uint32, data []byte) {
		entry.quad.WriteTexture(data)
	}
	switch {
	case force:
		if !s.RunIfModified(upload) {
			upload(width, height, s.Data())
		}
		stats.FullUploads.Add(1)
		common.Logger().Debug("full texture upload", "key", p.Key, "generation", p.Generation)
	case s.RunIfModified(upload):
		stats.IncrementalUploads.Add(1)
		common.Logger().Debug("modified texture upload", "key", p.Key)
	}
}

// Render draws the cached texture restricted to clip. Nothing is drawn before the first
// successful Prepare.
func (p *Primitive) Render(storage *renderer.Storage, frame renderer.Frame, clip common.Rect) {
	cached, ok := storage.Get(p.Key)
	if !ok {
		return
	}
	if entry, ok := cached.(*textureEntry); ok {
		entry.quad.Draw(frame, clip)
	}
}
