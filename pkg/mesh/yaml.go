package mesh

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	vmath "github.com/Faultbox/voxelsmith/pkg/math"
)

var ErrUnknownMaterial = errors.New("unknown material")

// docFile is the on-disk YAML layout of a Document.
type docFile struct {
	Materials []materialFile `yaml:"materials,omitempty"`
	Nodes     []nodeFile     `yaml:"nodes"`
}

type materialFile struct {
	Name        string    `yaml:"name"`
	BaseColor   []float64 `yaml:"base_color,omitempty"`
	Emissive    []float64 `yaml:"emissive,omitempty"`
	DoubleSided bool      `yaml:"double_sided,omitempty"`
}

type nodeFile struct {
	Name        string          `yaml:"name"`
	Matrix      []float64       `yaml:"matrix,omitempty"` // column-major, 16 values
	Translation []float64       `yaml:"translation,omitempty"`
	Rotation    []float64       `yaml:"rotation,omitempty"` // x, y, z, w
	Scale       []float64       `yaml:"scale,omitempty"`
	Primitives  []primitiveFile `yaml:"primitives"`
}

type primitiveFile struct {
	Positions [][]float64 `yaml:"positions"`
	Colors    [][]float64 `yaml:"colors,omitempty"` // RGB or RGBA
	Indices   []uint32    `yaml:"indices,omitempty"`
	Material  string      `yaml:"material,omitempty"`
}

// LoadFile reads a YAML mesh document from path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := DecodeYAML(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

// DecodeYAML reads a mesh document.
func DecodeYAML(r io.Reader) (*Document, error) {
	var df docFile
	if err := yaml.NewDecoder(r).Decode(&df); err != nil {
		return nil, err
	}

	materials := make(map[string]*Material, len(df.Materials))
	for _, mf := range df.Materials {
		m := &Material{Name: mf.Name, DoubleSided: mf.DoubleSided}
		if len(mf.BaseColor) > 0 {
			if len(mf.BaseColor) < 3 {
				return nil, fmt.Errorf("material %q: base_color needs 3 or 4 values", mf.Name)
			}
			bc := [4]float64{0, 0, 0, 1}
			copy(bc[:], mf.BaseColor)
			m.BaseColor = &bc
		}
		if len(mf.Emissive) > 0 {
			if len(mf.Emissive) != 3 {
				return nil, fmt.Errorf("material %q: emissive needs 3 values", mf.Name)
			}
			em := [3]float64{mf.Emissive[0], mf.Emissive[1], mf.Emissive[2]}
			m.Emissive = &em
		}
		materials[mf.Name] = m
	}

	doc := &Document{Nodes: make([]Node, 0, len(df.Nodes))}
	for _, nf := range df.Nodes {
		node, err := nf.toNode(materials)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nf.Name, err)
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	return doc, nil
}

func (nf nodeFile) toNode(materials map[string]*Material) (Node, error) {
	node := Node{Name: nf.Name}

	if len(nf.Matrix) > 0 {
		if len(nf.Matrix) != 16 {
			return node, fmt.Errorf("matrix needs 16 values, got %d", len(nf.Matrix))
		}
		copy(node.Transform[:], nf.Matrix)
	} else {
		t := r3.Vec{}
		s := r3.Vec{X: 1, Y: 1, Z: 1}
		q := mgl64.QuatIdent()
		var err error
		if len(nf.Translation) > 0 {
			if t, err = vec3(nf.Translation); err != nil {
				return node, fmt.Errorf("translation: %w", err)
			}
		}
		if len(nf.Scale) > 0 {
			if s, err = vec3(nf.Scale); err != nil {
				return node, fmt.Errorf("scale: %w", err)
			}
		}
		if len(nf.Rotation) > 0 {
			if len(nf.Rotation) != 4 {
				return node, fmt.Errorf("rotation needs 4 values, got %d", len(nf.Rotation))
			}
			q = vmath.Quat(nf.Rotation[0], nf.Rotation[1], nf.Rotation[2], nf.Rotation[3])
		}
		node.Transform = vmath.TRS(t, q, s)
	}

	for i, pf := range nf.Primitives {
		prim := Primitive{Indices: pf.Indices}
		for _, p := range pf.Positions {
			v, err := vec3(p)
			if err != nil {
				return node, fmt.Errorf("primitive %d position: %w", i, err)
			}
			prim.Positions = append(prim.Positions, v)
		}
		for _, c := range pf.Colors {
			if len(c) != 3 && len(c) != 4 {
				return node, fmt.Errorf("primitive %d color needs 3 or 4 values, got %d", i, len(c))
			}
			prim.Colors = append(prim.Colors, [3]float64{c[0], c[1], c[2]})
		}
		if pf.Material != "" {
			m, ok := materials[pf.Material]
			if !ok {
				return node, fmt.Errorf("primitive %d: %w %q", i, ErrUnknownMaterial, pf.Material)
			}
			prim.Material = m
		}
		node.Primitives = append(node.Primitives, prim)
	}
	return node, nil
}

// EncodeYAML writes doc in the layout DecodeYAML reads.
// Node transforms are written as matrices; materials must be *Material to be kept.
func EncodeYAML(w io.Writer, doc *Document) error {
	var df docFile
	names := make(map[*Material]string)

	for _, node := range doc.Nodes {
		m := vmath.OrIdentity(node.Transform)
		nf := nodeFile{Name: node.Name, Matrix: append([]float64(nil), m[:]...)}
		for _, prim := range node.Primitives {
			pf := primitiveFile{Indices: prim.Indices}
			for _, p := range prim.Positions {
				pf.Positions = append(pf.Positions, []float64{p.X, p.Y, p.Z})
			}
			for _, c := range prim.Colors {
				pf.Colors = append(pf.Colors, []float64{c[0], c[1], c[2]})
			}
			if mat, ok := prim.Material.(*Material); ok && mat != nil {
				name, seen := names[mat]
				if !seen {
					name = mat.Name
					if name == "" {
						name = fmt.Sprintf("material%d", len(names))
					}
					names[mat] = name
					df.Materials = append(df.Materials, mat.toFile(name))
				}
				pf.Material = name
			}
			nf.Primitives = append(nf.Primitives, pf)
		}
		df.Nodes = append(df.Nodes, nf)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&df); err != nil {
		return err
	}
	return enc.Close()
}

func (m *Material) toFile(name string) materialFile {
	mf := materialFile{Name: name, DoubleSided: m.DoubleSided}
	if m.BaseColor != nil {
		mf.BaseColor = append([]float64(nil), m.BaseColor[:]...)
	}
	if m.Emissive != nil {
		mf.Emissive = append([]float64(nil), m.Emissive[:]...)
	}
	return mf
}

func vec3(v []float64) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fmt.Errorf("need 3 values, got %d", len(v))
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}
