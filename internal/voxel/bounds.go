package voxel

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
	"github.com/Faultbox/voxelsmith/pkg/mesh"
)

// Bounds returns the world-space box enclosing every vertex of the soup.
func Bounds(soup *mesh.Soup) (r3.Box, error) {
	if soup == nil || len(soup.Vertices) == 0 {
		return r3.Box{}, ErrEmptyMesh
	}
	box := vmath.EmptyBox()
	for i := range soup.Vertices {
		box = vmath.Extend(box, soup.Vertices[i].Position)
	}
	return box, nil
}

// DocumentBounds flattens doc and returns its bounds.
func DocumentBounds(doc *mesh.Document) (r3.Box, error) {
	soup, err := doc.Flatten()
	if err != nil {
		return r3.Box{}, fmt.Errorf("flatten: %w", err)
	}
	return Bounds(soup)
}
