package main

import (
	"flag"
	"fmt"

	"github.com/Faultbox/voxelsmith/internal/config"
	"github.com/Faultbox/voxelsmith/internal/logger"
	"github.com/Faultbox/voxelsmith/internal/voxel"
	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: voxelize info [options] <mesh.yaml>")
	}

	cfg, err := setup(flags)
	if err != nil {
		return err
	}
	defer logger.Sync()

	doc, err := mesh.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	soup, err := doc.Flatten()
	if err != nil {
		return err
	}
	opts, err := cfg.VoxelOptions()
	if err != nil {
		return err
	}
	box, spec, err := voxel.Plan(soup, opts)
	if err != nil {
		return err
	}
	closed := voxel.CheckClosed(soup)

	fmt.Printf("Mesh:      %s\n", fs.Arg(0))
	fmt.Printf("Nodes:     %d\n", len(doc.Nodes))
	fmt.Printf("Vertices:  %d\n", len(soup.Vertices))
	fmt.Printf("Triangles: %d\n", len(soup.Triangles))
	fmt.Printf("Bounds:    (%.4g, %.4g, %.4g) - (%.4g, %.4g, %.4g)\n",
		box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
	fmt.Printf("Grid:      %s (%d cells)\n", spec, spec.Total())
	fmt.Printf("Strategy:  %s\n", opts.Strategy)
	fmt.Println()
	fmt.Println("Topology:")
	fmt.Printf("  %-18s %d\n", "edges", closed.Edges)
	fmt.Printf("  %-18s %d\n", "open edges", closed.OpenEdges)
	fmt.Printf("  %-18s %d\n", "non-manifold edges", closed.NonManifoldEdges)
	fmt.Printf("  %-18s %d\n", "degenerate", closed.Degenerate)
	if opts.Strategy == voxel.StrategyParity && !closed.Closed() {
		fmt.Println("\nWarning: mesh is not closed; parity results near open edges are unreliable.")
	}
	return nil
}
