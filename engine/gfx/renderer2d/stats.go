package renderer2d

// Statistics captures the counts generated since the last ResetStats.
type Statistics struct {
	DrawCalls    int
	QuadCount    int // every indexed quad: quads, circles and glyphs
	CircleCount  int
	LineCount    int
	GlyphCount   int
	TextureCount int // most texture slots bound by a single batch
}

// TotalVertexCount reports vertices submitted.
func (s Statistics) TotalVertexCount() int { return s.QuadCount*vertsPerQuad + s.LineCount*2 }

// TotalIndexCount reports indices submitted; lines are not indexed.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// ResetStats zeroes the counters. Call it once per frame before drawing.
func (rd *Renderer2D) ResetStats() { rd.stats = Statistics{} }

// Stats returns the current statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }
