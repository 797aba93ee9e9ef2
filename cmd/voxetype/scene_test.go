package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/voxetype/pkg/math3d"
	"github.com/taigrr/voxetype/pkg/models"
	"github.com/taigrr/voxetype/pkg/render"
)

func newTestScene(t *testing.T, cfg Config, mesh *models.Mesh) *Scene {
	t.Helper()
	tex, err := loadTexture(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewScene(cfg, tex, mesh)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range 16 {
		img.Set(i%4, i/4, color.RGBA{R: uint8(i * 16), G: 80, B: 40, A: 255})
	}
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSceneFog(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = "#102030"
	s := newTestScene(t, cfg, nil)

	fog, ok := s.textured.Fragment.(render.Fog)
	if !ok {
		t.Fatalf("textured shader = %T, want fog", s.textured.Fragment)
	}
	if fog.Color != render.RGB(0x10, 0x20, 0x30) || fog.Near != cfg.Fog.Near || fog.Far != cfg.Fog.Far {
		t.Errorf("fog = %+v", fog)
	}
	// The checkerboard keeps its own glyphs.
	if _, ok := fog.Inner.(*render.Lit); !ok {
		t.Errorf("fog inner = %T, want *render.Lit", fog.Inner)
	}
	if _, ok := s.normals.Fragment.(render.Fog); ok {
		t.Error("normals should show raw normal colors")
	}

	cfg.Fog.Far = 0
	s = newTestScene(t, cfg, nil)
	if _, ok := s.lit.Fragment.(*render.Lit); !ok {
		t.Errorf("lit shader with fog off = %T", s.lit.Fragment)
	}
}

func TestSceneImageTextureUsesLuma(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fog.Far = 0
	cfg.Texture.Path = writePNG(t)
	cfg.Texture.Width, cfg.Texture.Height = 4, 4
	s := newTestScene(t, cfg, nil)

	luma, ok := s.textured.Fragment.(render.Luma)
	if !ok {
		t.Fatalf("textured shader = %T, want render.Luma", s.textured.Fragment)
	}
	if _, ok := luma.Inner.(*render.Lit); !ok {
		t.Errorf("luma inner = %T, want the lit texture", luma.Inner)
	}
}

func quadMesh(materials ...models.Material) *models.Mesh {
	mesh := models.NewMesh("quad")
	for _, p := range []math3d.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}} {
		mesh.Vertices = append(mesh.Vertices, render.NewVertex(p, math3d.Vec2{}, math3d.V3(0, 0, 1)))
	}
	mesh.Materials = materials
	material := -1
	if len(materials) > 0 {
		material = 0
	}
	mesh.Faces = []models.Face{
		{V: [3]int{0, 1, 2}, Material: material},
		{V: [3]int{0, 2, 3}, Material: material},
	}
	mesh.Image = image.NewRGBA(image.Rect(0, 0, 2, 2))
	mesh.Fit()
	return mesh
}

func TestSceneModelShaders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fog.Far = 0

	t.Run("no materials", func(t *testing.T) {
		s := newTestScene(t, cfg, quadMesh())
		if len(s.modelGroups) != 1 || len(s.modelGroups[0].Indices) != 6 {
			t.Fatalf("groups = %+v, want one group of all indices", s.modelGroups)
		}
		luma, ok := s.modelPrograms[0].Fragment.(render.Luma)
		if !ok {
			t.Fatalf("shader = %T, want render.Luma over the image", s.modelPrograms[0].Fragment)
		}
		if lit := luma.Inner.(*render.Lit); lit.Ramp != nil {
			t.Error("textured model glyphs should come from luminance, not the light ramp")
		}
	})

	t.Run("textured material", func(t *testing.T) {
		red := models.Material{Name: "red", BaseColor: render.ColorRed, HasTexture: true}
		s := newTestScene(t, cfg, quadMesh(red))
		luma, ok := s.modelPrograms[0].Fragment.(render.Luma)
		if !ok {
			t.Fatalf("shader = %T", s.modelPrograms[0].Fragment)
		}
		tint, ok := luma.Inner.(*render.Lit).Inner.(render.Tint)
		if !ok || tint.Color != render.ColorRed {
			t.Errorf("lit inner = %+v, want the texture tinted red", luma.Inner.(*render.Lit).Inner)
		}
	})

	t.Run("flat material", func(t *testing.T) {
		blue := models.Material{Name: "blue", BaseColor: render.ColorBlue}
		s := newTestScene(t, cfg, quadMesh(blue))
		lit, ok := s.modelPrograms[0].Fragment.(*render.Lit)
		if !ok || lit.Ramp == nil {
			t.Fatalf("shader = %T, want a ramp-lit solid", s.modelPrograms[0].Fragment)
		}
		if solid, ok := lit.Inner.(render.Solid); !ok || solid.Color != render.ColorBlue {
			t.Errorf("lit inner = %+v", lit.Inner)
		}
	})
}
