package voxel

import (
	"errors"
	gomath "math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func box(x, y, z float64) r3.Box {
	return r3.Box{Max: r3.Vec{X: x, Y: y, Z: z}}
}

func TestPlanGridDims(t *testing.T) {
	tests := []struct {
		name string
		box  r3.Box
		step float64
		want [3]int
	}{
		{"unit step 0.5", box(1, 1, 1), 0.5, [3]int{3, 3, 3}},
		{"uneven", box(1, 2, 0.3), 0.25, [3]int{5, 9, 3}},
		{"flat", box(2, 0, 1), 1, [3]int{3, 1, 2}},
		{"step larger than box", box(0.1, 0.1, 0.1), 5, [3]int{2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := PlanGrid(tt.box, tt.step)
			if err != nil {
				t.Fatalf("PlanGrid() error = %v", err)
			}
			if spec.Dims != tt.want {
				t.Errorf("Dims = %v, want %v", spec.Dims, tt.want)
			}
			for a := 0; a < 3; a++ {
				size := []float64{tt.box.Max.X, tt.box.Max.Y, tt.box.Max.Z}[a]
				if want := int(gomath.Ceil(size/tt.step)) + 1; spec.Dims[a] != want {
					t.Errorf("Dims[%d] = %d, want ceil(size/step)+1 = %d", a, spec.Dims[a], want)
				}
			}
		})
	}
}

func TestPlanGridHalvingStep(t *testing.T) {
	b := box(10, 7, 3)
	fine, _ := PlanGrid(b, 0.5)
	coarse, _ := PlanGrid(b, 1)
	for a := 0; a < 3; a++ {
		// (fine-1) is exactly twice (coarse-1) up to one cell of ceiling slack.
		diff := (fine.Dims[a] - 1) - 2*(coarse.Dims[a]-1)
		if diff > 0 || diff < -1 {
			t.Errorf("axis %d: fine %d, coarse %d", a, fine.Dims[a], coarse.Dims[a])
		}
	}
}

func TestPlanGridInvalidStep(t *testing.T) {
	for _, step := range []float64{0, -1, gomath.NaN(), gomath.Inf(1), gomath.Inf(-1)} {
		if _, err := PlanGrid(box(1, 1, 1), step); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("PlanGrid(step=%v) error = %v, want ErrInvalidStep", step, err)
		}
	}
}

func TestPlanGridCellLimit(t *testing.T) {
	tests := []struct {
		name string
		box  r3.Box
		step float64
		ok   bool
	}{
		{"at limit", box(511, 511, 511), 1, true},
		{"one layer over", box(511, 511, 512), 1, false},
		{"tiny step", box(1, 1, 1), 1e-9, false},
		{"axis overflow", box(1, 1, 1), 1e-12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := PlanGrid(tt.box, tt.step)
			if tt.ok {
				if err != nil {
					t.Fatalf("PlanGrid() error = %v", err)
				}
				if spec.Total() != MaxCells {
					t.Errorf("Total() = %d, want %d", spec.Total(), MaxCells)
				}
				return
			}
			if !errors.Is(err, ErrInvalidStep) {
				t.Errorf("PlanGrid(step=%v) error = %v, want ErrInvalidStep", tt.step, err)
			}
		})
	}
}

func TestStepForResolution(t *testing.T) {
	step, err := StepForResolution(box(2, 8, 4), 32)
	if err != nil || step != 0.25 {
		t.Errorf("StepForResolution() = %v, %v, want 0.25", step, err)
	}

	step, err = StepForResolution(r3.Box{Min: r3.Vec{X: 3, Y: 3, Z: 3}, Max: r3.Vec{X: 3, Y: 3, Z: 3}}, 32)
	if err != nil || step != 1 {
		t.Errorf("StepForResolution(zero extent) = %v, %v, want 1", step, err)
	}

	for _, res := range []int{0, -4} {
		if _, err := StepForResolution(box(1, 1, 1), res); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("StepForResolution(res=%d) error = %v, want ErrInvalidStep", res, err)
		}
	}
}

func TestGridSpecIndexing(t *testing.T) {
	spec := GridSpec{Origin: r3.Vec{X: -1, Y: 2, Z: 0.5}, Step: 0.5, Dims: [3]int{4, 3, 2}}

	if spec.Total() != 24 {
		t.Errorf("Total() = %d, want 24", spec.Total())
	}
	if got := spec.Index(1, 2, 1); got != 1+2*4+1*12 {
		t.Errorf("Index(1,2,1) = %d, want 21", got)
	}
	for idx := 0; idx < spec.Total(); idx++ {
		x, y, z := spec.Coords(idx)
		if spec.Index(x, y, z) != idx {
			t.Errorf("Coords(%d) = (%d,%d,%d) does not round-trip", idx, x, y, z)
		}
	}
	if got := spec.Cell(2, 1, 1); got != (r3.Vec{X: 0, Y: 2.5, Z: 1}) {
		t.Errorf("Cell(2,1,1) = %v, want {0 2.5 1}", got)
	}
}
