package scratch

import "testing"

func TestBufferLines(t *testing.T) {
	b := New(8)
	b.S("Draw calls: ").I(3).End()
	b.S("Frame ").F(16.6667, 2).S(" ms").End()
	b.Pad(2, ' ').R('é').Bool(true).End()

	want := []string{"Draw calls: 3", "Frame 16.67 ms", "  étrue"}
	if b.Lines() != len(want) {
		t.Fatalf("Lines = %d", b.Lines())
	}
	for i, w := range want {
		if got := b.Line(i); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestBufferResetKeepsCapacity(t *testing.T) {
	b := New(4)
	b.S("grow past the initial capacity").End()
	c := b.Cap()
	b.Reset()
	if b.Len() != 0 || b.Lines() != 0 || b.Cap() != c {
		t.Fatalf("after Reset: len=%d lines=%d cap=%d (was %d)", b.Len(), b.Lines(), b.Cap(), c)
	}
	if b.String() != "" {
		t.Fatal("empty buffer view not empty")
	}
	allocs := testing.AllocsPerRun(100, func() {
		b.Reset()
		b.S("Quads: ").I(12345).End()
	})
	if allocs != 0 {
		t.Fatalf("steady-state build allocated %v times", allocs)
	}
}
