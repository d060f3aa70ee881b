package renderer2d

import "sort"

// DepthOrder selects how deferred transparent quads are ordered.
//
// Depth is the translation Z of the quad's transform. With the usual OpenGL
// convention (right-handed, camera looking down -Z) a larger Z is closer to
// the viewer, so DepthAscending draws far quads first (back to front).
type DepthOrder int

const (
	DepthAscending DepthOrder = iota
	DepthDescending
)

func (o DepthOrder) String() string {
	switch o {
	case DepthAscending:
		return "ascending"
	case DepthDescending:
		return "descending"
	default:
		return "unknown"
	}
}

type transparentQuad struct {
	vertices [vertsPerQuad]QuadVertex
	depth    float32
}

// transparencySorter holds alpha quads until the quad pool is flushed.
type transparencySorter struct {
	pending []transparentQuad
	order   DepthOrder
}

func newTransparencySorter(capacity int) transparencySorter {
	return transparencySorter{pending: make([]transparentQuad, 0, capacity)}
}

func (s *transparencySorter) push(vs [vertsPerQuad]QuadVertex, depth float32) {
	s.pending = append(s.pending, transparentQuad{vertices: vs, depth: depth})
}

func (s *transparencySorter) len() int { return len(s.pending) }

func (s *transparencySorter) Less(i, j int) bool {
	if s.order == DepthDescending {
		return s.pending[i].depth > s.pending[j].depth
	}
	return s.pending[i].depth < s.pending[j].depth
}

func (s *transparencySorter) Swap(i, j int) { s.pending[i], s.pending[j] = s.pending[j], s.pending[i] }
func (s *transparencySorter) Len() int      { return len(s.pending) }

// mergeInto stable-sorts the pending quads and appends them after the opaque
// vertices already in quads, then clears the pending list.
func (s *transparencySorter) mergeInto(quads *pool[QuadVertex]) {
	if len(s.pending) == 0 {
		return
	}
	sort.Stable(s)
	for i := range s.pending {
		quads.push(s.pending[i].vertices[:]...)
	}
	s.pending = s.pending[:0]
}

func (s *transparencySorter) reset() { s.pending = s.pending[:0] }
