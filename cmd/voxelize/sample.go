package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

func cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return mesh.EncodeYAML(w, sampleDocument())
}

// sampleDocument is a wide base with a rotated, vertex-colored box on top.
func sampleDocument() *mesh.Document {
	base := mesh.BoxPrimitive(r3.Vec{X: -2, Y: 0, Z: -1}, r3.Vec{X: 2, Y: 0.5, Z: 1}, mesh.NewMaterial("stone", 0.55, 0.55, 0.6))

	top := mesh.BoxPrimitive(r3.Vec{X: -0.5, Y: -0.5, Z: -0.5}, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, mesh.NewMaterial("paint", 0.9, 0.3, 0.1))
	top.Colors = make([][3]float64, len(top.Positions))
	for i, p := range top.Positions {
		top.Colors[i] = [3]float64{p.X + 0.5, p.Y + 0.5, p.Z + 0.5}
	}

	return &mesh.Document{Nodes: []mesh.Node{
		{Name: "base", Transform: vmath.Identity(), Primitives: []mesh.Primitive{base}},
		{
			Name:       "top",
			Transform:  vmath.TRS(r3.Vec{Y: 1}, vmath.Quat(0, 0.3826834, 0, 0.9238795), r3.Vec{X: 1, Y: 1, Z: 1}),
			Primitives: []mesh.Primitive{top},
		},
	}}
}
