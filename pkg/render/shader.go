package render

import (
	"math"

	"github.com/taigrr/voxetype/pkg/math3d"
)

// Uniforms is the per-draw state shared by every shader invocation.
type Uniforms struct {
	Transform math3d.Mat4 // projection * view * model
	Model     math3d.Mat4
	Normal    math3d.Mat4 // inverse-transpose of Model
}

// VertexShader maps an object-space vertex to clip space.
type VertexShader interface {
	ShadeVertex(v Vertex, u *Uniforms) Vertex
}

// FragmentShader maps an interpolated vertex to the texel written at a pixel.
// The vertex normal has already been carried through Uniforms.Normal and
// normalized when the shader runs on a triangle.
type FragmentShader interface {
	ShadeFragment(v Vertex, u *Uniforms) Texel
}

// VertexShaderFunc adapts a function to VertexShader.
type VertexShaderFunc func(v Vertex, u *Uniforms) Vertex

// ShadeVertex calls f(v, u).
func (f VertexShaderFunc) ShadeVertex(v Vertex, u *Uniforms) Vertex { return f(v, u) }

// FragmentShaderFunc adapts a function to FragmentShader.
type FragmentShaderFunc func(v Vertex, u *Uniforms) Texel

// ShadeFragment calls f(v, u).
func (f FragmentShaderFunc) ShadeFragment(v Vertex, u *Uniforms) Texel { return f(v, u) }

// Program pairs the two shading stages of a draw call. A nil Vertex stage
// applies Uniforms.Transform to the position and passes the other
// attributes through.
type Program struct {
	Vertex   VertexShader
	Fragment FragmentShader
}

// Shade builds a Program from a fragment shader alone.
func Shade(f FragmentShader) Program {
	return Program{Fragment: f}
}

func (p *Program) shadeVertex(v Vertex, u *Uniforms) Vertex {
	if p.Vertex == nil {
		v.Position = u.Transform.MulVec4(v.Position)
		return v
	}
	return p.Vertex.ShadeVertex(v, u)
}

// Solid is a fragment shader that always returns the same texel.
type Solid Texel

// ShadeFragment returns the constant texel.
func (s Solid) ShadeFragment(Vertex, *Uniforms) Texel { return Texel(s) }

// NormalShader colors a fragment by its world-space normal, mapping each
// axis from [-1, 1] to [0, 255].
type NormalShader struct {
	Glyph rune
}

// ShadeFragment returns the normal as a color.
func (s NormalShader) ShadeFragment(v Vertex, _ *Uniforms) Texel {
	n := v.Normal
	return Texel{
		Glyph: s.Glyph,
		Color: RGB(channel(n.X), channel(n.Y), channel(n.Z)),
	}
}

func channel(x float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, (x*0.5+0.5)*255))))
}

// Lit layers Lambert diffuse lighting over an inner shader.
type Lit struct {
	Inner    FragmentShader
	LightDir math3d.Vec3 // direction towards the light, normalized
	Ambient  float64
	Ramp     *GlyphRamp // when set, the glyph follows the light intensity
}

// NewLit creates a Lambert layer with the light direction normalized.
func NewLit(inner FragmentShader, lightDir math3d.Vec3, ambient float64) *Lit {
	return &Lit{Inner: inner, LightDir: lightDir.Normalize(), Ambient: ambient}
}

// ShadeFragment scales the inner texel color by Intensity.
func (l *Lit) ShadeFragment(v Vertex, u *Uniforms) Texel {
	t := l.Inner.ShadeFragment(v, u)
	intensity := l.Intensity(v.Normal)
	t.Color = MultiplyColor(t.Color, intensity)
	if l.Ramp != nil {
		t.Glyph = l.Ramp.Glyph(intensity)
	}
	return t
}

// Intensity returns the light term for a unit normal.
func (l *Lit) Intensity(n math3d.Vec3) float64 {
	return l.Ambient + (1-l.Ambient)*math.Max(0, n.Dot(l.LightDir))
}

// GlyphRamp picks glyphs by brightness, darkest first.
type GlyphRamp struct {
	glyphs []rune
}

// DefaultRamp is ordered from empty to dense.
const DefaultRamp = " .:-=+*#%@"

// NewGlyphRamp creates a ramp from the glyphs of s, darkest first.
// An empty s uses DefaultRamp.
func NewGlyphRamp(s string) *GlyphRamp {
	if s == "" {
		s = DefaultRamp
	}
	return &GlyphRamp{glyphs: []rune(s)}
}

// Glyph maps an intensity in [0, 1] onto the ramp. Values outside are clamped.
func (g *GlyphRamp) Glyph(intensity float64) rune {
	n := len(g.glyphs)
	i := int(math.Round(intensity * float64(n-1)))
	i = max(0, min(n-1, i))
	return g.glyphs[i]
}

// Luma is a fragment shader that re-picks the inner texel's glyph from the
// luminance of its color, so textures read well even without color.
type Luma struct {
	Inner FragmentShader
	Ramp  *GlyphRamp
}

// ShadeFragment returns the inner texel with a luminance-derived glyph.
func (s Luma) ShadeFragment(v Vertex, u *Uniforms) Texel {
	t := s.Inner.ShadeFragment(v, u)
	t.Glyph = s.Ramp.Glyph(Luminance(t.Color))
	return t
}

// Tint multiplies the inner texel color by Color, the way a material's
// base color factor scales its texture.
type Tint struct {
	Inner FragmentShader
	Color Color
}

// ShadeFragment returns the inner texel with its color modulated.
func (s Tint) ShadeFragment(v Vertex, u *Uniforms) Texel {
	t := s.Inner.ShadeFragment(v, u)
	t.Color = ModulateColor(t.Color, s.Color)
	return t
}

// Fog fades the inner color into Color with distance from the eye. Nothing
// changes up to Near; at Far and beyond only Color remains. The blend runs
// in Lab space so the fade stays perceptually even.
//
// Distance is the fragment's clip w, which is the view-space depth under a
// perspective projection.
type Fog struct {
	Inner     FragmentShader
	Color     Color
	Near, Far float64
}

// ShadeFragment returns the inner texel blended towards the fog color.
func (f Fog) ShadeFragment(v Vertex, u *Uniforms) Texel {
	t := f.Inner.ShadeFragment(v, u)
	if f.Far <= f.Near {
		return t
	}
	k := (v.Position.W - f.Near) / (f.Far - f.Near)
	if k <= 0 {
		return t
	}
	t.Color = BlendColor(t.Color, f.Color, min(k, 1))
	return t
}
