package render

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrMalformedTexture is returned when texture data does not match the
// record format or the declared dimensions.
var ErrMalformedTexture = errors.New("render: malformed texture")

// texelSize is the size of one encoded texel: glyph, red, green, blue.
const texelSize = 4

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapNone   WrapMode = iota // Coordinates must already be in [0,1]
	WrapRepeat                 // Tile the texture
	WrapClamp                  // Clamp to edge
)

// Texture is a 2D grid of texels addressed by normalized coordinates.
type Texture struct {
	Width  int
	Height int
	Texels []Texel // Row-major, row 0 at the top
	Wrap   WrapMode
}

// NewTexture creates a texture of blank texels.
func NewTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}
	t := &Texture{
		Width:  width,
		Height: height,
		Texels: make([]Texel, width*height),
	}
	for i := range t.Texels {
		t.Texels[i] = Texel{Glyph: ' ', Color: ColorBlack}
	}
	return t, nil
}

// LoadTexture reads exactly width*height 4-byte records (glyph byte, then
// red, green and blue) from r. Short input, trailing data and non-printable
// glyphs are reported as ErrMalformedTexture.
func LoadTexture(r io.Reader, width, height int) (*Texture, error) {
	t, err := NewTexture(width, height)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	var rec [texelSize]byte
	for i := range t.Texels {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: texel %d of %d: short input", ErrMalformedTexture, i, len(t.Texels))
			}
			return nil, fmt.Errorf("read texture: %w", err)
		}
		if rec[0] < 0x20 || rec[0] > 0x7e {
			return nil, fmt.Errorf("%w: texel %d: glyph byte %#02x is not printable", ErrMalformedTexture, i, rec[0])
		}
		t.Texels[i] = Texel{Glyph: rune(rec[0]), Color: RGB(rec[1], rec[2], rec[3])}
	}

	if _, err := br.ReadByte(); err == nil {
		return nil, fmt.Errorf("%w: trailing data after %d texels", ErrMalformedTexture, len(t.Texels))
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read texture: %w", err)
	}

	Logger().Debug("texture loaded", "width", width, "height", height)
	return t, nil
}

// LoadTextureFile loads a texture from a file; see LoadTexture.
func LoadTextureFile(path string, width, height int) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	t, err := LoadTexture(f, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteTo encodes the texture in the format LoadTexture reads. Glyphs
// outside printable ASCII are written as spaces.
func (t *Texture) WriteTo(w io.Writer) (int64, error) {
	out := make([]byte, 0, len(t.Texels)*texelSize)
	for _, tx := range t.Texels {
		g := byte(' ')
		if tx.Glyph >= 0x20 && tx.Glyph <= 0x7e {
			g = byte(tx.Glyph)
		}
		out = append(out, g, tx.Color.R, tx.Color.G, tx.Color.B)
	}
	n, err := w.Write(out)
	return int64(n), err
}

// TextureFromImage scales img to width x height and converts it to texels:
// the color comes from the pixel, the glyph from its luminance on ramp.
// A nil ramp uses DefaultRamp. Bilinear scaling is used when shrinking.
func TextureFromImage(img image.Image, width, height int, ramp *GlyphRamp) (*Texture, error) {
	t, err := NewTexture(width, height)
	if err != nil {
		return nil, err
	}
	if ramp == nil {
		ramp = NewGlyphRamp("")
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	var scaler draw.Scaler = draw.NearestNeighbor
	if b := img.Bounds(); b.Dx() > width || b.Dy() > height {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	for y := range height {
		for x := range width {
			c := dst.RGBAAt(x, y)
			c.A = 255
			t.Texels[y*width+x] = Texel{Glyph: ramp.Glyph(Luminance(c)), Color: c}
		}
	}
	return t, nil
}

// LoadImageTexture decodes an image file (PNG, JPEG, BMP or WebP) into a
// width x height texture.
func LoadImageTexture(path string, width, height int, ramp *GlyphRamp) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	Logger().Debug("image decoded", "path", path, "format", format)
	return TextureFromImage(img, width, height, ramp)
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, a, b Texel) (*Texture, error) {
	if checkSize <= 0 {
		return nil, fmt.Errorf("%w: check size %d", ErrInvalidSize, checkSize)
	}
	t, err := NewTexture(width, height)
	if err != nil {
		return nil, err
	}
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				t.Set(x, y, a)
			} else {
				t.Set(x, y, b)
			}
		}
	}
	return t, nil
}

// Set sets the texel at (x, y), row 0 being the top. Out of range is ignored.
func (t *Texture) Set(x, y int, tx Texel) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Texels[y*t.Width+x] = tx
}

// At returns the texel at (x, y). It panics when out of range.
func (t *Texture) At(x, y int) Texel {
	return t.Texels[y*t.Width+x]
}

// Sample returns the nearest texel to (u, v). V runs bottom to top, so
// v=1 addresses row 0. With WrapNone, coordinates outside [0,1] are a
// caller error and panic.
func (t *Texture) Sample(u, v float64) Texel {
	u = wrapCoord(u, t.Wrap)
	v = wrapCoord(v, t.Wrap)

	x := int(math.Round(u * float64(t.Width-1)))
	y := int(math.Round((1 - v) * float64(t.Height-1)))
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		panic(fmt.Sprintf("render: texture sample (%g, %g) outside [0,1]", u, v))
	}
	return t.Texels[y*t.Width+x]
}

// ShadeFragment samples the texture at the fragment's UV, so a texture can
// be handed to a draw call as its fragment stage.
func (t *Texture) ShadeFragment(v Vertex, _ *Uniforms) Texel {
	return t.Sample(v.UV.X, v.UV.Y)
}

// wrapCoord applies the wrap mode to a coordinate.
func wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord = coord - math.Floor(coord) // fmod to [0,1)
	case WrapClamp:
		coord = math.Max(0, math.Min(1, coord))
	}
	return coord
}
