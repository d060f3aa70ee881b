package renderer2d

import (
	"fmt"

	"github.com/hubastard/batch2d/engine/core"
	"github.com/hubastard/batch2d/engine/profiler"
)

// StartBatch rewinds every pool and the texture slot table. It is the only
// place write cursors move back.
func (rd *Renderer2D) StartBatch() {
	rd.quads.reset()
	rd.circles.reset()
	rd.lines.reset()
	rd.texts.reset()
	rd.sorter.reset()
	rd.quadIndexCount = 0
	rd.circleIndexCount = 0
	rd.textIndexCount = 0
	rd.slots.reset()
	rd.state = StateIdle
}

// Flush submits every non-empty pool. Deferred transparent quads are sorted
// and drawn after the opaque quads of the batch.
func (rd *Renderer2D) Flush() {
	if rd.state == StateFlushing {
		panic("renderer2d: Flush re-entered")
	}
	defer profiler.Start("renderer2d.Flush")()
	rd.state = StateFlushing

	rd.sorter.mergeInto(&rd.quads)

	info := FlushInfo{Textures: len(rd.slots.bound())}
	if rd.quadIndexCount > 0 {
		info.Quads = rd.quadIndexCount / indsPerQuad
		rd.submit(rd.quadPipe, rd.quadMesh, rd.quads.bytes(), core.PrimitiveTriangles, rd.quadIndexCount)
	}
	if rd.circleIndexCount > 0 {
		info.Circles = rd.circleIndexCount / indsPerQuad
		rd.submit(rd.circlePipe, rd.circleMesh, rd.circles.bytes(), core.PrimitiveTriangles, rd.circleIndexCount)
	}
	if n := rd.lines.len(); n > 0 {
		info.Lines = n / 2
		rd.submit(rd.linePipe, rd.lineMesh, rd.lines.bytes(), core.PrimitiveLines, n)
	}
	if rd.textIndexCount > 0 {
		info.Glyphs = rd.textIndexCount / indsPerQuad
		rd.submit(rd.textPipe, rd.textMesh, rd.texts.bytes(), core.PrimitiveTriangles, rd.textIndexCount)
	}

	if info.Quads+info.Circles+info.Lines+info.Glyphs > 0 {
		rd.stats.TextureCount = max(rd.stats.TextureCount, info.Textures)
		if rd.cfg.FlushHook != nil {
			rd.cfg.FlushHook(info)
		}
	}
	rd.state = StateIdle
}

// NextBatch flushes and starts a fresh batch. Encoders call it when a pool or
// the slot table is exhausted.
func (rd *Renderer2D) NextBatch() {
	rd.Flush()
	rd.StartBatch()
}

func (rd *Renderer2D) submit(pipe core.Pipeline, mesh core.Mesh, data []byte, prim core.Primitive, count int) {
	if err := rd.dev.UpdateMesh(mesh, data); err != nil {
		panic(fmt.Sprintf("renderer2d: %s upload: %v", pipe.Name(), err))
	}
	rd.dev.Draw(core.DrawCmd{
		Pipe:      pipe,
		Mesh:      mesh,
		Primitive: prim,
		Count:     count,
		Textures:  rd.slots.bound(),
		Uniforms:  []core.UniformBuffer{rd.camera},
		LineWidth: rd.lineWidth,
	})
	rd.stats.DrawCalls++
}

// beginEncode guards every draw entry point.
func (rd *Renderer2D) beginEncode() {
	switch {
	case rd.state == StateFlushing:
		panic("renderer2d: draw call while flushing")
	case !rd.inScene:
		panic("renderer2d: draw call outside BeginScene/EndScene")
	}
	rd.state = StateAccumulating
}

// slotFor resolves tex to a slot, splitting the batch once when the table is
// full.
func (rd *Renderer2D) slotFor(tex core.Texture) float32 {
	slot, ok := rd.slots.allocate(tex)
	if !ok {
		Logger().Debug("batch split", "reason", "texture slots exhausted", "slots", len(rd.slots.slots))
		rd.NextBatch()
		rd.state = StateAccumulating
		if slot, ok = rd.slots.allocate(tex); !ok {
			panic("renderer2d: texture slot allocation failed on an empty batch")
		}
	}
	return float32(slot)
}

func (rd *Renderer2D) splitIfFull(name string, full bool) {
	if full {
		Logger().Debug("batch split", "reason", name+" pool full")
		rd.NextBatch()
		rd.state = StateAccumulating
	}
}
