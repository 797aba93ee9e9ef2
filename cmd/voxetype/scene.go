package main

import (
	"fmt"

	"github.com/taigrr/voxetype/pkg/math3d"
	"github.com/taigrr/voxetype/pkg/models"
	"github.com/taigrr/voxetype/pkg/render"
)

// Scene owns what is drawn each frame: the cube in its various forms or a
// loaded model, plus the shading programs for each mode.
type Scene struct {
	Mode Mode
	Spin *Spin

	ramp     *render.GlyphRamp
	fog      render.Fog
	textured render.Program
	lit      render.Program
	normals  render.Program
	wire     render.Program
	points   render.Program

	model         *models.Mesh
	modelVertices []render.Vertex
	modelGroups   []models.Group
	modelPrograms []render.Program
}

// NewScene builds the programs for cfg. tex shades the textured cube; mesh
// may be nil when no model was given.
func NewScene(cfg Config, tex *render.Texture, mesh *models.Mesh) (*Scene, error) {
	ramp := render.NewGlyphRamp(cfg.Ramp)
	light := cfg.Light.Dir()

	s := &Scene{
		Mode: cfg.Mode,
		Spin: NewSpin(cfg.FPS),
		ramp: ramp,
		fog:  render.Fog{Color: cfg.BackgroundColor(), Near: cfg.Fog.Near, Far: cfg.Fog.Far},
	}
	var textured render.FragmentShader = render.NewLit(tex, light, cfg.Light.Ambient)
	if cfg.Texture.Path != "" && !cfg.Texture.Raw {
		// Image glyphs come from luminance; re-pick them after lighting.
		textured = render.Luma{Inner: textured, Ramp: ramp}
	}
	s.textured = s.shade(textured)

	lit := render.NewLit(render.Solid{Color: render.RGB(230, 200, 120)}, light, cfg.Light.Ambient)
	lit.Ramp = ramp
	s.lit = s.shade(lit)

	s.normals = render.Shade(render.NormalShader{Glyph: '#'})
	s.wire = render.Shade(render.Solid{Glyph: '+', Color: render.RGB(0, 255, 128)})
	s.points = render.Shade(render.Solid{Glyph: '@', Color: render.ColorYellow})

	if mesh != nil {
		if err := s.setModel(mesh, cfg, light); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// shade wraps a lit surface shader in the configured fog.
func (s *Scene) shade(f render.FragmentShader) render.Program {
	if s.fog.Far <= 0 {
		return render.Shade(f)
	}
	fog := s.fog
	fog.Inner = f
	return render.Shade(fog)
}

func (s *Scene) setModel(mesh *models.Mesh, cfg Config, light math3d.Vec3) error {
	var tex *render.Texture
	if mesh.Image != nil {
		var err error
		tex, err = render.TextureFromImage(mesh.Image, cfg.Texture.Width, cfg.Texture.Height, s.ramp)
		if err != nil {
			return fmt.Errorf("model texture: %w", err)
		}
		// Model UVs are free to tile.
		tex.Wrap = render.WrapRepeat
	}

	s.model = mesh
	s.modelVertices = mesh.VertexBuffer()
	if len(mesh.Materials) == 0 {
		s.modelGroups = []models.Group{{Material: -1, Indices: mesh.Indices()}}
	} else {
		s.modelGroups = mesh.Groups()
	}
	s.modelPrograms = make([]render.Program, len(s.modelGroups))
	for i, g := range s.modelGroups {
		s.modelPrograms[i] = s.shade(s.modelShader(mesh.Material(g.Material), tex, light, cfg.Light.Ambient))
	}
	return nil
}

// modelShader lights one material. Textured materials scale the texture by
// their base color and take glyphs from the lit luminance; flat ones take
// glyphs from the light intensity.
func (s *Scene) modelShader(mat *models.Material, tex *render.Texture, light math3d.Vec3, ambient float64) render.FragmentShader {
	var inner render.FragmentShader
	switch {
	case tex != nil && (mat == nil || mat.HasTexture):
		inner = tex
		if mat != nil {
			inner = render.Tint{Inner: tex, Color: mat.BaseColor}
		}
		return render.Luma{Inner: render.NewLit(inner, light, ambient), Ramp: s.ramp}
	case mat != nil:
		inner = render.Solid{Glyph: '#', Color: mat.BaseColor}
	default:
		inner = render.Solid{Glyph: '#', Color: render.ColorGray}
	}
	lit := render.NewLit(inner, light, ambient)
	lit.Ramp = s.ramp
	return lit
}

// HasModel reports whether a model is loaded.
func (s *Scene) HasModel() bool {
	return s.model != nil
}

// ModelMatrix returns the current spin as a model matrix.
func (s *Scene) ModelMatrix() math3d.Mat4 {
	return math3d.RotateX(s.Spin.Pitch.Position).Mul(math3d.RotateY(s.Spin.Yaw.Position))
}

// Draw renders the current mode through r as seen from cam. The caller
// clears the buffer and resets the stats.
func (s *Scene) Draw(r *render.Rasterizer, cam *render.OrbitCamera) {
	r.SetMatrices(cam.ProjectionMatrix(), cam.ViewMatrix(), s.ModelMatrix())

	switch s.Mode {
	case ModeModel:
		if s.model == nil || !r.Visible(s.model.Bounds()) {
			return
		}
		r.SetVertexBuffer(s.modelVertices)
		for i, g := range s.modelGroups {
			r.DrawTriangles(g.Indices, s.modelPrograms[i])
		}
		return
	case ModeWireframe:
		r.SetVertexBuffer(render.CubeCorners())
		r.DrawLines(render.CubeEdges(), s.wire)
		return
	case ModePoints:
		r.SetVertexBuffer(render.CubeCorners())
		r.DrawPoints([]int{0, 1, 2, 3, 4, 5, 6, 7}, s.points)
		return
	}

	if !r.Visible(render.BoundsOf(render.CubeVertices())) {
		return
	}
	r.SetVertexBuffer(render.CubeVertices())
	switch s.Mode {
	case ModeLit:
		r.DrawTriangles(render.CubeIndices(), s.lit)
	case ModeNormals:
		r.DrawTriangles(render.CubeIndices(), s.normals)
	default:
		r.DrawTriangles(render.CubeIndices(), s.textured)
	}
}

// loadTexture returns the cube texture for cfg: a raw asset, a decoded
// image, or a checkerboard when no path is set.
func loadTexture(cfg Config) (*render.Texture, error) {
	var (
		tex *render.Texture
		err error
	)
	switch {
	case cfg.Texture.Path == "":
		tex, err = render.NewCheckerTexture(cfg.Texture.Width, cfg.Texture.Height, max(1, cfg.Texture.Width/4),
			render.Texel{Glyph: '#', Color: render.RGB(220, 220, 220)},
			render.Texel{Glyph: '.', Color: render.RGB(90, 90, 110)},
		)
	case cfg.Texture.Raw:
		tex, err = render.LoadTextureFile(cfg.Texture.Path, cfg.Texture.Width, cfg.Texture.Height)
	default:
		tex, err = render.LoadImageTexture(cfg.Texture.Path, cfg.Texture.Width, cfg.Texture.Height, render.NewGlyphRamp(cfg.Ramp))
	}
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	return tex, nil
}
