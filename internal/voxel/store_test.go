package voxel

import "testing"

func TestGridSetAt(t *testing.T) {
	g := NewGridDims(2, 3, 4)

	if g.Count() != 0 {
		t.Fatalf("new grid Count() = %d, want 0", g.Count())
	}
	if _, ok := g.At(1, 1, 1); ok {
		t.Error("new grid cell occupied")
	}

	g.Set(1, 2, 3, Color{1, 0, 0})
	g.Set(1, 2, 3, Color{0, 1, 0})
	g.Set(0, 0, 0, Color{2, 0.5, -1})

	if g.Count() != 2 {
		t.Errorf("Count() = %d, want 2", g.Count())
	}
	if c, ok := g.At(1, 2, 3); !ok || c != (Color{0, 1, 0}) {
		t.Errorf("At(1,2,3) = %v, %v, want green", c, ok)
	}
	if c, _ := g.At(0, 0, 0); c != (Color{1, 0.5, 0}) {
		t.Errorf("At(0,0,0) = %v, want clamped {1 0.5 0}", c)
	}
	if _, ok := g.At(2, 0, 0); ok {
		t.Error("At() out of range reported occupied")
	}
}

func TestGridSetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set() out of range did not panic")
		}
	}()
	NewGridDims(1, 1, 1).Set(0, 1, 0, White)
}

func TestSnapshotEachOrder(t *testing.T) {
	g := NewGridDims(2, 2, 2)
	g.Set(1, 1, 1, White)
	g.Set(0, 0, 0, White)
	g.Set(1, 0, 1, White)

	snap := g.Snapshot()
	var got [][3]int
	snap.Each(func(x, y, z int, _ Color) {
		got = append(got, [3]int{x, y, z})
	})
	want := [][3]int{{0, 0, 0}, {1, 0, 1}, {1, 1, 1}}
	if len(got) != len(want) {
		t.Fatalf("Each visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, got[i], want[i])
		}
	}
	if snap.Count() != 3 {
		t.Errorf("Count() = %d, want 3", snap.Count())
	}
}

func TestSnapshotRGB255(t *testing.T) {
	g := NewGridDims(2, 2, 2)
	g.Set(0, 0, 0, FromRGB255(255, 0, 0))
	g.Set(1, 1, 1, FromRGB255(0, 255, 0))

	out := g.Snapshot().RGB255()
	if len(out) != 2 || len(out[0]) != 2 || len(out[0][0]) != 2 {
		t.Fatalf("shape = %dx%dx%d, want 2x2x2", len(out), len(out[0]), len(out[0][0]))
	}
	if out[0][0][0] == nil || *out[0][0][0] != [3]uint8{255, 0, 0} {
		t.Errorf("[0][0][0] = %v, want red", out[0][0][0])
	}
	if out[1][1][1] == nil || *out[1][1][1] != [3]uint8{0, 255, 0} {
		t.Errorf("[1][1][1] = %v, want green", out[1][1][1])
	}
	if out[1][0][0] != nil {
		t.Errorf("[1][0][0] = %v, want nil", out[1][0][0])
	}
}
