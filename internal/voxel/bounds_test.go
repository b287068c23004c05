package voxel

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

func TestBoundsContainsEveryVertex(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	positions := make([]r3.Vec, 90)
	for i := range positions {
		positions[i] = r3.Vec{X: rng.NormFloat64() * 10, Y: rng.NormFloat64(), Z: rng.Float64() - 5}
	}
	doc := &mesh.Document{Nodes: []mesh.Node{{
		Transform:  vmath.TRS(r3.Vec{X: 3, Y: -2}, vmath.Quat(0, 0.3826834, 0, 0.9238795), r3.Vec{X: 2, Y: 2, Z: 2}),
		Primitives: []mesh.Primitive{{Positions: positions}},
	}}}

	soup, err := doc.Flatten()
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	box, err := Bounds(soup)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}

	if box.Min.X > box.Max.X || box.Min.Y > box.Max.Y || box.Min.Z > box.Max.Z {
		t.Fatalf("Bounds() = %v, min exceeds max", box)
	}
	for _, v := range soup.Vertices {
		if !vmath.Contains(box, v.Position) {
			t.Errorf("vertex %v outside %v", v.Position, box)
		}
	}
}

func TestBoundsUnitBox(t *testing.T) {
	got, err := DocumentBounds(mesh.BoxDocument(r3.Vec{X: -1, Y: 0, Z: 2}, r3.Vec{X: 1, Y: 4, Z: 3}, nil))
	if err != nil {
		t.Fatalf("DocumentBounds() error = %v", err)
	}
	want := r3.Box{Min: r3.Vec{X: -1, Y: 0, Z: 2}, Max: r3.Vec{X: 1, Y: 4, Z: 3}}
	if got != want {
		t.Errorf("DocumentBounds() = %v, want %v", got, want)
	}
}

func TestBoundsEmpty(t *testing.T) {
	for _, soup := range []*mesh.Soup{nil, {}} {
		if _, err := Bounds(soup); !errors.Is(err, ErrEmptyMesh) {
			t.Errorf("Bounds(%v) error = %v, want ErrEmptyMesh", soup, err)
		}
	}
}
