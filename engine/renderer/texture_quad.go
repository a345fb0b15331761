package renderer

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer/pipeline"
)

// wgpuTextureQuad is the wgpu implementation of TextureQuad.
type wgpuTextureQuad struct {
	backend  *wgpuRendererBackendImpl
	pipeline pipeline.Pipeline
	provider bind_group_provider.BindGroupProvider

	width, height uint32
}

var _ TextureQuad = &wgpuTextureQuad{}

func (q *wgpuTextureQuad) Size() (uint32, uint32) {
	return q.width, q.height
}

func (q *wgpuTextureQuad) WriteUniforms(data []byte) {
	q.backend.WriteBuffer(q.provider, textureUniformBinding, data)
}

func (q *wgpuTextureQuad) WriteTexture(data []byte) {
	q.backend.WriteTexture(q.provider, textureViewBinding, data)
}

// Draw records the quad with a viewport covering the whole target and a scissor rectangle
// restricting it to clip. It only touches the pass, so it is safe inside EncodeFrame.
func (q *wgpuTextureQuad) Draw(frame Frame, clip common.Rect) {
	if frame.Pass == nil || q.provider.BindGroup() == nil {
		return
	}
	x, y, w, h, ok := frame.Scissor(clip)
	if !ok {
		return
	}
	frame.Pass.SetPipeline(q.pipeline.RenderPipeline())
	frame.Pass.SetViewport(0, 0, frame.Target.Width, frame.Target.Height, 0, 1)
	frame.Pass.SetScissorRect(x, y, w, h)
	frame.Pass.SetBindGroup(0, q.provider.BindGroup(), nil)
	frame.Pass.Draw(6, 1, 0, 0)
}

func (q *wgpuTextureQuad) Release() {
	q.provider.Release()
}
