package voxel

import "testing"

func TestRGB255RoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		v := uint8(i)
		r, g, b := FromRGB255(v, v, 255-v).RGB255()
		if r != v || g != v || b != 255-v {
			t.Fatalf("round trip of %d = (%d,%d,%d)", i, r, g, b)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want Color
	}{
		{"in range", Color{0.2, 0.5, 1}, Color{0.2, 0.5, 1}},
		{"over", Color{1.5, 2, 1.0001}, Color{1, 1, 1}},
		{"under", Color{-0.1, -3, 0}, Color{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSoften(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want Color
	}{
		// h=0 s=1 l=0.5 becomes s=0.8 l=0.6.
		{"red", Color{1, 0, 0}, Color{0.92, 0.28, 0.28}},
		{"white stays white", White, White},
		// Grey has no saturation; only lightness moves.
		{"black", Color{0, 0, 0}, Color{0.2, 0.2, 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Soften(); !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("Soften() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := (Color{1, 0, 0.5}).Hex(); got != "#ff0080" {
		t.Errorf("Hex() = %s, want #ff0080", got)
	}
	if got := (Color{2, -1, 0}).Hex(); got != "#ff0000" {
		t.Errorf("Hex() of out-of-range = %s, want #ff0000", got)
	}
}
