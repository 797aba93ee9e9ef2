package render

// edge evaluates the edge function of p against the directed edge a->b in
// viewport space (y down). It is positive on the inside of a triangle wound
// counter-clockwise as seen on screen, which is counter-clockwise in NDC.
func edge(ax, ay, bx, by, px, py int64) int64 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

// edgeBias returns 0 when pixels lying exactly on a->b belong to the
// triangle and -1 otherwise, so the inside test is w+bias >= 0.
//
// A pixel on an edge belongs to the triangle that contains the pixel
// nudged by (sx, sy*eps): x first, y only to break ties on horizontal
// edges. With sx = sy = 1 this is the top-left rule. The nudge is a property
// of the pixel, not the triangle, so all triangles meeting at a pixel agree
// on its owner.
func edgeBias(ax, ay, bx, by, sx, sy int64) int64 {
	dx, dy := bx-ax, by-ay
	if sx*dy > 0 || (dy == 0 && sy*dx < 0) {
		return 0
	}
	return -1
}

// Pixel classes for edge ownership. Pixels on the last column or row nudge
// back into the viewport, so a triangle ending there still owns them and
// the closed viewport is fully covered.
const (
	lastColumn = 1 << iota
	lastRow
)

// edgeBiases returns the biases of the three edges b->c, c->a and a->b for
// every pixel class.
func edgeBiases(a, b, c screenVertex) (out [4][3]int64) {
	for k := range out {
		sx, sy := int64(1), int64(1)
		if k&lastColumn != 0 {
			sx = -1
		}
		if k&lastRow != 0 {
			sy = -1
		}
		out[k] = [3]int64{
			edgeBias(b.x, b.y, c.x, c.y, sx, sy),
			edgeBias(c.x, c.y, a.x, a.y, sx, sy),
			edgeBias(a.x, a.y, b.x, b.y, sx, sy),
		}
	}
	return out
}

// DrawTriangles draws one triangle per three consecutive indices into the
// vertex buffer. Trailing indices that do not form a triangle are ignored.
// An index outside the vertex buffer panics.
func (r *Rasterizer) DrawTriangles(indices []int, p Program) {
	for i := 0; i+2 < len(indices); i += 3 {
		r.drawTriangle(
			r.vertices[indices[i]],
			r.vertices[indices[i+1]],
			r.vertices[indices[i+2]],
			&p,
		)
	}
}

// DrawTriangle draws a single triangle given directly by its vertices.
func (r *Rasterizer) DrawTriangle(a, b, c Vertex, p Program) {
	r.drawTriangle(a, b, c, &p)
}

func (r *Rasterizer) drawTriangle(va, vb, vc Vertex, p *Program) {
	a, okA := r.project(va, p)
	b, okB := r.project(vb, p)
	c, okC := r.project(vc, p)
	if !okA || !okB || !okC {
		r.Stats.Culled++
		return
	}

	area := edge(a.x, a.y, b.x, b.y, c.x, c.y)
	if area < 0 && r.DisableBackfaceCulling {
		b, c = c, b
		area = -area
	}
	if area <= 0 {
		r.Stats.Culled++
		return
	}
	r.Stats.Triangles++

	// Bounding box, clamped to the viewport.
	minX := max(min(a.x, b.x, c.x), 0)
	maxX := min(max(a.x, b.x, c.x), int64(r.buf.Width-1))
	minY := max(min(a.y, b.y, c.y), 0)
	maxY := min(max(a.y, b.y, c.y), int64(r.buf.Height-1))
	if minX > maxX || minY > maxY {
		return
	}

	biases := edgeBiases(a, b, c)
	lastX, lastY := int64(r.buf.Width-1), int64(r.buf.Height-1)

	// Edge functions are affine: step by their x and y derivatives.
	w0Row := edge(b.x, b.y, c.x, c.y, minX, minY)
	w1Row := edge(c.x, c.y, a.x, a.y, minX, minY)
	w2Row := edge(a.x, a.y, b.x, b.y, minX, minY)
	dx0, dy0 := c.y-b.y, b.x-c.x
	dx1, dy1 := a.y-c.y, c.x-a.x
	dx2, dy2 := b.y-a.y, a.x-b.x

	invArea := 1 / float64(area)
	u := &r.uniforms

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := 0
		if y == lastY {
			row = lastRow
		}
		for x := minX; x <= maxX; x++ {
			class := row
			if x == lastX {
				class |= lastColumn
			}
			bias := &biases[class]
			if w0+bias[0] >= 0 && w1+bias[1] >= 0 && w2+bias[2] >= 0 {
				l0 := float64(w0) * invArea
				l1 := float64(w1) * invArea
				l2 := float64(w2) * invArea

				rw := l0*a.rw + l1*b.rw + l2*c.rw
				v := r.unproject(Lerp3(a.v, b.v, c.v, l0, l1, l2), rw)

				r.buf.SetTexel(int(x), int(y), p.Fragment.ShadeFragment(v, u))
				r.Stats.Fragments++
			}
			w0 += dx0
			w1 += dx1
			w2 += dx2
		}
		w0Row += dy0
		w1Row += dy1
		w2Row += dy2
	}
}
