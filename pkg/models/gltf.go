package models

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/voxetype/pkg/math3d"
	"github.com/taigrr/voxetype/pkg/render"
)

// ErrNoGeometry is returned when a document holds no triangle primitives.
var ErrNoGeometry = errors.New("models: no triangle geometry")

// GLTFLoader loads glTF/GLB documents into a Mesh.
type GLTFLoader struct {
	// Options
	CalculateNormals bool // compute normals when the file has none
	SmoothNormals    bool // average normals across shared vertices
	Fit              bool // center and scale into the unit cube
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
		Fit:              true,
	}
}

// LoadGLB loads a binary glTF (.glb) or .gltf file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// FromDocument converts an already decoded document with default options.
func FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	return NewGLTFLoader().FromDocument(doc, name, "")
}

// Load opens path and converts it to a Mesh. External images are resolved
// relative to the file.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path), filepath.Dir(path))
}

// FromDocument converts doc to a Mesh. dir locates external images; an
// empty dir skips them.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name, dir string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, mat := range doc.Materials {
		mesh.Materials = append(mesh.Materials, convertMaterial(mat))
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoGeometry)
	}

	if l.CalculateNormals && !mesh.HasNormals() {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	if l.Fit {
		mesh.Fit()
	} else {
		mesh.CalculateBounds()
	}

	img, err := firstImage(doc, dir)
	if err != nil {
		// A broken texture should not hide the geometry.
		render.Logger().Warn("skipping embedded image", "model", name, "err", err)
	}
	mesh.Image = img

	render.Logger().Debug("model loaded",
		"name", name,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"materials", len(mesh.Materials),
		"image", img != nil,
	)
	return mesh, nil
}

func convertMaterial(mat *gltf.Material) Material {
	out := Material{
		Name:      mat.Name,
		BaseColor: render.ColorWhite,
		Roughness: 1,
		Metallic:  1,
	}
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		out.BaseColor = render.Color{
			R: unitToByte(c[0]),
			G: unitToByte(c[1]),
			B: unitToByte(c[2]),
			A: unitToByte(c[3]),
		}
		out.Metallic = pbr.MetallicFactorOrDefault()
		out.Roughness = pbr.RoughnessFactorOrDefault()
		out.HasTexture = pbr.BaseColorTexture != nil
	}
	return out
}

func unitToByte(f float64) uint8 {
	return uint8(max(0, min(255, f*255+0.5)))
}

// processMesh appends the triangle primitives of m to mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			var uv math3d.Vec2
			var n math3d.Vec3
			if i < len(uvs) {
				// glTF puts V=0 at the top of the image; the sampler wants it at the bottom.
				uv = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
			}
			if i < len(normals) {
				n = vec3(normals[i])
			}
			mesh.Vertices = append(mesh.Vertices, render.NewVertex(vec3(p), uv, n))
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		// glTF front faces are counter-clockwise, as are ours.
		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{
				V:        [3]int{base + int(indices[i]), base + int(indices[i+1]), base + int(indices[i+2])},
				Material: material,
			}
			for _, vi := range f.V {
				if vi >= len(mesh.Vertices) {
					return fmt.Errorf("index %d out of range (%d vertices)", vi-base, len(positions))
				}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}
	return nil
}

func vec3(f [3]float32) math3d.Vec3 {
	return math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
}

// firstImage decodes the first image of doc that yields any data. It
// returns nil without error when the document has no images.
func firstImage(doc *gltf.Document, dir string) (image.Image, error) {
	var firstErr error
	for i, img := range doc.Images {
		data, err := imageData(doc, img, dir)
		if err == nil && len(data) == 0 {
			continue
		}
		if err == nil {
			var decoded image.Image
			decoded, _, err = image.Decode(bytes.NewReader(data))
			if err == nil {
				return decoded, nil
			}
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("image %d: %w", i, err)
		}
	}
	return nil, firstErr
}

func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		return modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "" && dir != "":
		return os.ReadFile(filepath.Join(dir, img.URI))
	}
	return nil, nil
}
