package core

type Input struct {
	keys           map[Key]bool
	pressed        map[Key]bool
	mouseX, mouseY float64
	scroll         float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}, pressed: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down && !in.keys[e.Key] {
			in.pressed[e.Key] = true
		}
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventScroll:
		in.scroll += e.Yoff
	}
}

// EndFrame clears edge-triggered state (presses, scroll).
func (in *Input) EndFrame() {
	for k := range in.pressed {
		delete(in.pressed, k)
	}
	in.scroll = 0
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) WasPressed(k Key) bool     { return in.pressed[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
func (in *Input) Scroll() float64           { return in.scroll }
