package mesh

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMaterialColor(t *testing.T) {
	tests := []struct {
		name  string
		src   ColorSource
		want  [3]float64
		valid bool
	}{
		{"nil source", nil, [3]float64{}, false},
		{"nil material", (*Material)(nil), [3]float64{}, false},
		{"no base color", &Material{Name: "bare"}, [3]float64{}, false},
		{"base color", NewMaterial("red", 1, 0, 0), [3]float64{1, 0, 0}, true},
		{
			"emissive added",
			&Material{BaseColor: &[4]float64{0.25, 0.25, 0.25, 0.5}, Emissive: &[3]float64{0.5, 0, 0.25}},
			[3]float64{0.75, 0.25, 0.5},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.src)
			if got.Valid != tt.valid {
				t.Fatalf("Resolve().Valid = %v, want %v", got.Valid, tt.valid)
			}
			if got.RGB != tt.want {
				t.Errorf("Resolve().RGB = %v, want %v", got.RGB, tt.want)
			}
		})
	}
}

func TestFlattenBox(t *testing.T) {
	mat := NewMaterial("green", 0, 1, 0)
	doc := BoxDocument(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, mat)
	doc.Nodes[0].Transform = mgl64.Translate3D(10, 0, 0)

	soup, err := doc.Flatten()
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if len(soup.Vertices) != 8 {
		t.Errorf("expected 8 vertices, got %d", len(soup.Vertices))
	}
	if len(soup.Triangles) != 12 {
		t.Errorf("expected 12 triangles, got %d", len(soup.Triangles))
	}
	if got := soup.Vertices[0].Position; got != (r3.Vec{X: 10}) {
		t.Errorf("first vertex = %v, want transformed (10,0,0)", got)
	}
	for i, tri := range soup.Triangles {
		if !tri.Material.Valid || tri.Material.RGB != [3]float64{0, 1, 0} {
			t.Errorf("triangle %d material = %+v, want green", i, tri.Material)
		}
		if tri.HasColor {
			t.Errorf("triangle %d should not have vertex colors", i)
		}
	}
}

func TestFlattenVertexColors(t *testing.T) {
	doc := &Document{Nodes: []Node{{
		Name: "tri",
		Primitives: []Primitive{{
			Positions: []r3.Vec{{}, {X: 1}, {Y: 1}},
			Colors:    [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		}},
	}}}

	soup, err := doc.Flatten()
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if len(soup.Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(soup.Triangles))
	}
	tri := soup.Triangles[0]
	if !tri.HasColor {
		t.Fatal("triangle should carry vertex colors")
	}
	if tri.Colors[2] != [3]float64{0, 0, 1} {
		t.Errorf("third color = %v, want blue", tri.Colors[2])
	}
	if tri.Material.Valid {
		t.Error("triangle without material should have an invalid material color")
	}
}

func TestFlattenValidation(t *testing.T) {
	tests := []struct {
		name    string
		prim    Primitive
		wantErr error
	}{
		{
			name: "color count mismatch",
			prim: Primitive{
				Positions: []r3.Vec{{}, {X: 1}, {Y: 1}},
				Colors:    [][3]float64{{1, 1, 1}},
			},
			wantErr: ErrColorCount,
		},
		{
			name: "index out of range",
			prim: Primitive{
				Positions: []r3.Vec{{}, {X: 1}, {Y: 1}},
				Indices:   []uint32{0, 1, 3},
			},
			wantErr: ErrIndexRange,
		},
		{
			name:    "dangling positions",
			prim:    Primitive{Positions: []r3.Vec{{}, {X: 1}}},
			wantErr: ErrIncompleteTriangle,
		},
		{
			name:    "NaN position",
			prim:    Primitive{Positions: []r3.Vec{{}, {X: gomath.NaN()}, {Y: 1}}},
			wantErr: ErrPositionRange,
		},
		{
			name:    "position beyond range",
			prim:    Primitive{Positions: []r3.Vec{{}, {X: 1}, {Z: -2 * MaxCoordinate}}},
			wantErr: ErrPositionRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Nodes: []Node{{Name: "n", Primitives: []Primitive{tt.prim}}}}
			_, err := doc.Flatten()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Flatten() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVertexCount(t *testing.T) {
	doc := BoxDocument(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, nil)
	doc.Nodes = append(doc.Nodes, doc.Nodes[0])
	if got := doc.VertexCount(); got != 16 {
		t.Errorf("VertexCount() = %d, want 16", got)
	}
	if got := (&Document{}).VertexCount(); got != 0 {
		t.Errorf("empty VertexCount() = %d, want 0", got)
	}
}
