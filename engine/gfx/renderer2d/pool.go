package renderer2d

import (
	"fmt"
	"unsafe"
)

// pool is a fixed-capacity vertex arena with an explicit write cursor.
// Its backing array is allocated once; only reset moves the cursor back.
type pool[V any] struct {
	name string
	buf  []V
}

func newPool[V any](name string, capacity int) pool[V] {
	return pool[V]{name: name, buf: make([]V, 0, capacity)}
}

func (p *pool[V]) len() int       { return len(p.buf) }
func (p *pool[V]) capacity() int  { return cap(p.buf) }
func (p *pool[V]) remaining() int { return cap(p.buf) - len(p.buf) }
func (p *pool[V]) reset()         { p.buf = p.buf[:0] }

// push appends vertices. Callers must have checked remaining(); running past
// capacity means a capacity check was missed and is fatal.
func (p *pool[V]) push(vs ...V) {
	if len(vs) > p.remaining() {
		panic(fmt.Sprintf("renderer2d: %s pool overrun (%d + %d > %d)", p.name, len(p.buf), len(vs), cap(p.buf)))
	}
	p.buf = append(p.buf, vs...)
}

// bytes is the written range, ready for upload.
func (p *pool[V]) bytes() []byte {
	if len(p.buf) == 0 {
		return nil
	}
	var v V
	return unsafe.Slice((*byte)(unsafe.Pointer(&p.buf[0])), len(p.buf)*int(unsafe.Sizeof(v)))
}

func (p *pool[V]) vertices() []V { return p.buf }
