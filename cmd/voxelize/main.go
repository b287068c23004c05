// voxelize converts YAML mesh documents into voxel grids and voxel meshes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "run":
		err = cmdRun(args)
	case "info":
		err = cmdInfo(args)
	case "config":
		err = cmdConfig(args)
	case "sample":
		err = cmdSample(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voxelize - mesh voxelizer

Usage:
  voxelize <command> [options]

Commands:
  run [options] <mesh.yaml>     Voxelize a mesh and write the voxel mesh
  info [options] <mesh.yaml>    Show mesh bounds, closedness and planned grid
  config [-save] [options]      Print the effective configuration
  sample [-o file]              Write a two-box sample mesh

Examples:
  voxelize sample -o scene.yaml
  voxelize run -resolution 16 -o voxels.yaml scene.yaml
  voxelize run -strategy parity -workers 4 -debug -slices ./slices scene.yaml
  voxelize info -step 0.1 scene.yaml`)
}
