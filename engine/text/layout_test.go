package text

import (
	"reflect"
	"testing"
)

// unitFont has ascender-descender = 2, so layout units are half an em.
func unitFont(t *testing.T) *Font {
	t.Helper()
	box := Bounds{Left: 0, Bottom: 0, Right: 1, Top: 1}
	glyphs := []Glyph{
		{Rune: 'A', Advance: 1, Plane: box, Atlas: Bounds{Left: 0, Bottom: 10, Right: 10, Top: 0}},
		{Rune: 'V', Advance: 1, Plane: box, Atlas: Bounds{Left: 10, Bottom: 10, Right: 20, Top: 0}},
		{Rune: '?', Advance: 1, Plane: box, Atlas: Bounds{Left: 20, Bottom: 10, Right: 30, Top: 0}},
		{Rune: ' ', Advance: 0.5},
	}
	f, err := NewFont(
		Metrics{Ascender: 1.5, Descender: -0.5, LineHeight: 2.5},
		glyphs,
		map[[2]rune]float64{{'A', 'V'}: -0.25},
		nil, 40, 20,
	)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func mins(qs []GlyphQuad) [][2]float32 {
	out := make([][2]float32, len(qs))
	for i, q := range qs {
		out[i] = q.Min
	}
	return out
}

func TestLayoutPen(t *testing.T) {
	f := unitFont(t)
	tests := []struct {
		name  string
		s     string
		props Properties
		want  [][2]float32
	}{
		{"single", "A", Properties{}, [][2]float32{{0, 0}}},
		{"advance", "AA", Properties{}, [][2]float32{{0, 0}, {0.5, 0}}},
		{"kerning pair", "AV", Properties{}, [][2]float32{{0, 0}, {0.375, 0}}},
		{"extra kerning", "AA", Properties{Kerning: 0.1}, [][2]float32{{0, 0}, {0.6, 0}}},
		{"space", "A A", Properties{}, [][2]float32{{0, 0}, {0.75, 0}}},
		{"tab", "\tA", Properties{}, [][2]float32{{1, 0}}},
		{"newline", "A\nA", Properties{}, [][2]float32{{0, 0}, {0, -1.25}}},
		{"line spacing", "A\nA", Properties{LineSpacing: 0.5}, [][2]float32{{0, 0}, {0, -1.75}}},
		{"carriage return ignored", "A\r\nA", Properties{}, [][2]float32{{0, 0}, {0, -1.25}}},
		{"fallback", "AéA", Properties{}, [][2]float32{{0, 0}, {0.5, 0}, {1, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mins(Layout(nil, f, tt.s, tt.props))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Layout(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestLayoutQuadAndUV(t *testing.T) {
	f := unitFont(t)
	qs := Layout(nil, f, "V", Properties{})
	if len(qs) != 1 {
		t.Fatalf("got %d quads", len(qs))
	}
	q := qs[0]
	if q.Max != [2]float32{0.5, 0.5} {
		t.Fatalf("max = %v", q.Max)
	}
	if q.UVMin != [2]float32{0.25, 0.5} || q.UVMax != [2]float32{0.5, 0} {
		t.Fatalf("uv = %v .. %v", q.UVMin, q.UVMax)
	}
}

func TestLayoutFallbackMissing(t *testing.T) {
	f, err := NewFont(Metrics{Ascender: 1, Descender: 0, LineHeight: 1},
		[]Glyph{{Rune: 'x', Advance: 1, Plane: Bounds{Right: 1, Top: 1}}}, nil, nil, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	// No '?' either: the rune is skipped and does not advance.
	got := mins(Layout(nil, f, "xéx", Properties{}))
	want := [][2]float32{{0, 0}, {1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	f := unitFont(t)
	p := Properties{Kerning: 0.03, LineSpacing: 0.2}
	s := "AV A\n\tVA?é"
	a := Layout(nil, f, s, p)
	b := Layout(make([]GlyphQuad, 0, 1), f, s, p)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("layout is not deterministic")
	}
}

func TestLayoutAppends(t *testing.T) {
	f := unitFont(t)
	dst := Layout(nil, f, "A", Properties{})
	dst = Layout(dst, f, "V", Properties{})
	if len(dst) != 2 || dst[0].Rune != 'A' || dst[1].Rune != 'V' {
		t.Fatalf("appended layout = %+v", dst)
	}
}

func TestMeasure(t *testing.T) {
	f := unitFont(t)
	tests := []struct {
		s    string
		w, h float32
	}{
		{"", 0, 0},
		{"AA", 1, 1},
		{"AA\nA", 1, 2.25},
		{"A ", 0.75, 1},
	}
	for _, tt := range tests {
		w, h := Measure(f, tt.s, Properties{})
		if w != tt.w || h != tt.h {
			t.Errorf("Measure(%q) = %v,%v want %v,%v", tt.s, w, h, tt.w, tt.h)
		}
	}
}

func TestFontAdvance(t *testing.T) {
	f := unitFont(t)
	if got := f.Advance('A', 'V'); got != 0.75 {
		t.Fatalf("Advance(A,V) = %v", got)
	}
	if got := f.Advance('A', -1); got != 1 {
		t.Fatalf("Advance(A,end) = %v", got)
	}
	if got := f.Advance('z', 'A'); got != 0 {
		t.Fatalf("Advance of unknown rune = %v", got)
	}
	if _, err := NewFont(Metrics{}, nil, nil, nil, 0, 0); err != ErrNoGlyphs {
		t.Fatalf("err = %v", err)
	}
}
