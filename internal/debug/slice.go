package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// CellFunc reports the 0-255 color of cell (x, y) on a layer.
type CellFunc func(x, y int) (r, g, b uint8, ok bool)

// emptyCell is the background for unoccupied cells.
var emptyCell = color.RGBA{R: 24, G: 24, B: 24, A: 255}

// LayerImage renders one layer as an nx by ny image, one pixel per cell.
// Rows are flipped so +Y points up.
func LayerImage(nx, ny int, at CellFunc) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, nx, ny))
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			c := emptyCell
			if r, g, b, ok := at(x, y); ok {
				c = color.RGBA{R: r, G: g, B: b, A: 255}
			}
			img.SetRGBA(x, ny-1-y, c)
		}
	}
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbor sampling.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SliceWriter saves layer images as PNG files.
type SliceWriter struct {
	outputDir string
	prefix    string
	scale     int
}

// NewSliceWriter creates a writer for dir. Files are named prefix_zNNNN.png.
func NewSliceWriter(dir, prefix string, scale int) *SliceWriter {
	return &SliceWriter{outputDir: dir, prefix: prefix, scale: scale}
}

// Write encodes layer z and returns the file path.
func (w *SliceWriter) Write(z, nx, ny int, at CellFunc) (string, error) {
	if nx < 1 || ny < 1 {
		return "", fmt.Errorf("layer %d: empty %dx%d slice", z, nx, ny)
	}

	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := fmt.Sprintf("%s_z%04d.png", w.prefix, z)
	if w.outputDir != "" {
		filename = filepath.Join(w.outputDir, filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, Scale(LayerImage(nx, ny, at), w.scale)); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
