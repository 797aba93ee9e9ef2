// Package render implements a software rasterizer that draws into a grid of
// colored glyphs and serializes that grid to a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// ErrInvalidSize is returned when a buffer or texture is given a zero or
// negative dimension.
var ErrInvalidSize = errors.New("render: invalid size")

// Cell is one position of the output grid.
type Cell struct {
	Glyph rune
	Fg    Color
	Bg    Color
}

// Blank returns the default cell: a space on black.
func Blank() Cell {
	return Cell{Glyph: ' ', Fg: ColorBlack, Bg: ColorBlack}
}

// Texel is what shaders and textures produce: a glyph and its color.
type Texel struct {
	Glyph rune
	Color Color
}

// Buffer is a fixed-size, row-major grid of cells.
type Buffer struct {
	Width  int
	Height int
	Cells  []Cell

	scratch []byte // reused by Present
}

// NewBuffer creates a width x height buffer of blank cells.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: buffer %dx%d", ErrInvalidSize, width, height)
	}
	b := &Buffer{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	b.Fill(Blank())
	Logger().Debug("buffer allocated", "width", width, "height", height)
	return b, nil
}

// Fill sets every cell to c.
func (b *Buffer) Fill(c Cell) {
	n := len(b.Cells)
	if n == 0 {
		return
	}
	// Copy-doubling is faster than a per-cell loop for large grids.
	b.Cells[0] = c
	for i := 1; i < n; i *= 2 {
		copy(b.Cells[i:], b.Cells[:i])
	}
}

// InBounds reports whether (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Write sets the cell at (x, y). Writing outside the buffer is a
// programming error and panics.
func (b *Buffer) Write(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("render: write at (%d, %d) outside %dx%d buffer", x, y, b.Width, b.Height))
	}
	b.Cells[y*b.Width+x] = c
}

// At returns the cell at (x, y). It panics outside the buffer.
func (b *Buffer) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("render: read at (%d, %d) outside %dx%d buffer", x, y, b.Width, b.Height))
	}
	return b.Cells[y*b.Width+x]
}

// SetTexel writes a glyph and foreground color, keeping the cell's background.
func (b *Buffer) SetTexel(x, y int, t Texel) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("render: write at (%d, %d) outside %dx%d buffer", x, y, b.Width, b.Height))
	}
	c := &b.Cells[y*b.Width+x]
	c.Glyph = t.Glyph
	c.Fg = t.Color
}

// PutString writes s starting at (x, y), clipped to the row. It returns the
// number of cells written.
func (b *Buffer) PutString(x, y int, s string, fg, bg Color) int {
	if y < 0 || y >= b.Height {
		return 0
	}
	n := 0
	for _, r := range s {
		if x >= b.Width {
			break
		}
		if x >= 0 {
			b.Cells[y*b.Width+x] = Cell{Glyph: r, Fg: fg, Bg: bg}
			n++
		}
		x++
	}
	return n
}

// Present writes the whole grid to w: cursor home, then every row with a
// style sequence wherever the colors change, rows separated by "\r\n".
// If w has a Flush method it is called afterwards.
func (b *Buffer) Present(w io.Writer) error {
	out := append(b.scratch[:0], ansi.CursorHomePosition...)

	var last Cell
	for y := range b.Height {
		row := b.Cells[y*b.Width : (y+1)*b.Width]
		for x, c := range row {
			if (x == 0 && y == 0) || c.Fg != last.Fg || c.Bg != last.Bg {
				out = append(out, cellStyle(c)...)
			}
			out = utf8.AppendRune(out, printable(c.Glyph))
			last = c
		}
		if y < b.Height-1 {
			out = append(out, "\r\n"...)
		}
	}
	out = append(out, ansi.ResetStyle...)
	b.scratch = out

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("present: flush: %w", err)
		}
	}
	return nil
}

func cellStyle(c Cell) string {
	return ansi.Style{}.ForegroundColor(c.Fg).BackgroundColor(c.Bg).String()
}

// printable replaces glyphs that would move the cursor or corrupt the row.
func printable(r rune) rune {
	if !unicode.IsPrint(r) {
		return ' '
	}
	return r
}
