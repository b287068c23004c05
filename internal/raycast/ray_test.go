package raycast

import (
	"errors"
	gomath "math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewRay(t *testing.T) {
	r, err := NewRay(r3.Vec{}, r3.Vec{Z: 5})
	if err != nil {
		t.Fatalf("NewRay() error: %v", err)
	}
	if r.Direction != (r3.Vec{Z: 1}) {
		t.Errorf("direction = %v, want normalized (0,0,1)", r.Direction)
	}

	tests := []struct {
		name   string
		origin r3.Vec
		dir    r3.Vec
	}{
		{"zero direction", r3.Vec{}, r3.Vec{}},
		{"nan direction", r3.Vec{}, r3.Vec{X: gomath.NaN()}},
		{"inf origin", r3.Vec{Y: gomath.Inf(1)}, r3.Vec{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRay(tt.origin, tt.dir); !errors.Is(err, ErrDegenerateRay) {
				t.Errorf("NewRay() error = %v, want ErrDegenerateRay", err)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	box := r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name     string
		origin   r3.Vec
		dir      r3.Vec
		wantHit  bool
		wantTmin float64
	}{
		{"hit from front", r3.Vec{Z: -5}, r3.Vec{Z: 1}, true, 4},
		{"inside", r3.Vec{}, r3.Vec{X: 1}, true, -1},
		{"miss parallel", r3.Vec{X: 2, Z: -5}, r3.Vec{Z: 1}, false, 0},
		{"behind", r3.Vec{Z: 5}, r3.Vec{Z: 1}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := NewRay(tt.origin, tt.dir)
			tmin, _, hit := r.IntersectAABB(box)
			if hit != tt.wantHit {
				t.Fatalf("IntersectAABB() hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && gomath.Abs(tmin-tt.wantTmin) > 1e-9 {
				t.Errorf("IntersectAABB() tmin = %v, want %v", tmin, tt.wantTmin)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := r3.Vec{}
	b := r3.Vec{X: 1}
	c := r3.Vec{Y: 1}

	tests := []struct {
		name   string
		origin r3.Vec
		dir    r3.Vec
		wantOk bool
		wantT  float64
	}{
		{"front face", r3.Vec{X: 0.25, Y: 0.25, Z: -2}, r3.Vec{Z: 1}, true, 2},
		{"back face", r3.Vec{X: 0.25, Y: 0.25, Z: 3}, r3.Vec{Z: -1}, true, 3},
		{"on edge", r3.Vec{X: 0.5, Y: 0.5, Z: -1}, r3.Vec{Z: 1}, true, 1},
		{"starts on surface", r3.Vec{X: 0.2, Y: 0.2}, r3.Vec{Z: 1}, true, 0},
		{"outside", r3.Vec{X: 0.8, Y: 0.8, Z: -1}, r3.Vec{Z: 1}, false, 0},
		{"behind", r3.Vec{X: 0.25, Y: 0.25, Z: 1}, r3.Vec{Z: 1}, false, 0},
		{"parallel", r3.Vec{X: -1, Y: 0.25}, r3.Vec{X: 1}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := NewRay(tt.origin, tt.dir)
			tHit, _, _, ok := r.IntersectTriangle(a, b, c)
			if ok != tt.wantOk {
				t.Fatalf("IntersectTriangle() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && gomath.Abs(tHit-tt.wantT) > 1e-9 {
				t.Errorf("IntersectTriangle() t = %v, want %v", tHit, tt.wantT)
			}
		})
	}
}

func TestIntersectTriangleBarycentric(t *testing.T) {
	r, _ := NewRay(r3.Vec{X: 0.2, Y: 0.3, Z: -1}, r3.Vec{Z: 1})
	_, u, v, ok := r.IntersectTriangle(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
	if !ok {
		t.Fatal("expected hit")
	}
	h := Hit{U: u, V: v}
	w := h.Weights()
	want := [3]float64{0.5, 0.2, 0.3}
	for i := range w {
		if gomath.Abs(w[i]-want[i]) > 1e-12 {
			t.Errorf("weight %d = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestIntersectDegenerateTriangle(t *testing.T) {
	r, _ := NewRay(r3.Vec{Z: -1}, r3.Vec{Z: 1})
	p := r3.Vec{X: 1}
	if _, _, _, ok := r.IntersectTriangle(r3.Vec{}, p, p); ok {
		t.Error("zero-area triangle should never report a hit")
	}
}
