package renderer2d

import "github.com/hubastard/batch2d/engine/core"

// textureSlots maps slot indices to the textures bound for the current
// batch. Slot 0 always holds the white texture.
type textureSlots struct {
	slots  []core.Texture
	active int
}

func newTextureSlots(max int, white core.Texture) textureSlots {
	ts := textureSlots{slots: make([]core.Texture, max)}
	ts.slots[0] = white
	ts.active = 1
	return ts
}

func (ts *textureSlots) reset() {
	for i := 1; i < ts.active; i++ {
		ts.slots[i] = nil
	}
	ts.active = 1
}

// allocate returns the slot holding t, binding a new slot when needed. ok is
// false when t is new and every slot is taken.
func (ts *textureSlots) allocate(t core.Texture) (slot int, ok bool) {
	if t == nil || t == ts.slots[0] {
		return 0, true
	}
	for i := 1; i < ts.active; i++ {
		if ts.slots[i] == t {
			return i, true
		}
	}
	if ts.active >= len(ts.slots) {
		return 0, false
	}
	ts.slots[ts.active] = t
	ts.active++
	return ts.active - 1, true
}

// bound is the active prefix of the table, in slot order.
func (ts *textureSlots) bound() []core.Texture { return ts.slots[:ts.active] }
