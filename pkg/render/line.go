package render

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi int64) int64 {
	return max(lo, min(hi, v))
}

// DrawLines draws one line per two consecutive indices into the vertex
// buffer. A trailing odd index is ignored; an index outside the vertex
// buffer panics.
func (r *Rasterizer) DrawLines(indices []int, p Program) {
	for i := 0; i+1 < len(indices); i += 2 {
		r.drawLine(r.vertices[indices[i]], r.vertices[indices[i+1]], &p)
	}
}

// DrawLine draws a single line between two vertices.
func (r *Rasterizer) DrawLine(a, b Vertex, p Program) {
	r.drawLine(a, b, &p)
}

// clampEndpoint moves a into the viewport. Its attributes are re-derived
// at the clamped position's parameter along a->b, so fragments keep the
// values of the unclamped line. Pre-scaled attributes and rw are linear in
// screen space, which makes the blend perspective-correct.
func clampEndpoint(a, b screenVertex, lastX, lastY int64) screenVertex {
	x, y := clamp(a.x, 0, lastX), clamp(a.y, 0, lastY)
	if x == a.x && y == a.y {
		return a
	}
	t := 0.0
	dx, dy := float64(b.x-a.x), float64(b.y-a.y)
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = (float64(x-a.x)*dx + float64(y-a.y)*dy) / l2
		t = max(0, min(1, t))
	}
	return screenVertex{
		v:  Lerp3(a.v, b.v, Vertex{}, 1-t, t, 0),
		rw: a.rw*(1-t) + b.rw*t,
		x:  x,
		y:  y,
	}
}

// drawLine steps between the projected endpoints with Bresenham's
// algorithm. Endpoints are clamped into the viewport first; the fragment
// shader receives the perspective-correct blend of the two vertices.
func (r *Rasterizer) drawLine(va, vb Vertex, p *Program) {
	a, okA := r.project(va, p)
	b, okB := r.project(vb, p)
	if !okA || !okB {
		return
	}
	r.Stats.Lines++

	lastX, lastY := int64(r.buf.Width-1), int64(r.buf.Height-1)
	a, b = clampEndpoint(a, b, lastX, lastY), clampEndpoint(b, a, lastX, lastY)

	// Always step from the same end so A->B and B->A cover the same cells.
	if b.y < a.y || (b.y == a.y && b.x < a.x) {
		a, b = b, a
	}

	x0, y0 := a.x, a.y
	dx := abs(b.x - a.x)
	dy := -abs(b.y - a.y)
	sx := int64(1)
	if a.x > b.x {
		sx = -1
	}
	sy := int64(1)
	if a.y > b.y {
		sy = -1
	}
	err := dx + dy
	steps := float64(max(dx, -dy))
	u := &r.uniforms

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / steps
		}
		rw := a.rw*(1-t) + b.rw*t
		v := r.unproject(Lerp3(a.v, b.v, Vertex{}, 1-t, t, 0), rw)
		r.buf.SetTexel(int(x0), int(y0), p.Fragment.ShadeFragment(v, u))
		r.Stats.Fragments++

		if x0 == b.x && y0 == b.y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPoints plots one cell per index. Points that project outside the
// viewport are skipped; an index outside the vertex buffer panics.
func (r *Rasterizer) DrawPoints(indices []int, p Program) {
	for _, i := range indices {
		r.drawPoint(r.vertices[i], &p)
	}
}

// DrawPoint plots a single vertex.
func (r *Rasterizer) DrawPoint(v Vertex, p Program) {
	r.drawPoint(v, &p)
}

func (r *Rasterizer) drawPoint(v Vertex, p *Program) {
	s, ok := r.project(v, p)
	if !ok || s.x < 0 || s.y < 0 || s.x >= int64(r.buf.Width) || s.y >= int64(r.buf.Height) {
		return
	}
	r.Stats.Points++
	r.Stats.Fragments++
	r.buf.SetTexel(int(s.x), int(s.y), p.Fragment.ShadeFragment(r.unproject(s.v, s.rw), &r.uniforms))
}
