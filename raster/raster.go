// seehuhn.de/go/evolisa - approximate images by semi-transparent polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster computes anti-aliased pixel coverage for filled outlines.
//
// Coverage is the exact fraction of each pixel's area that lies inside the
// outline, computed analytically from signed edge areas.  No supersampling
// is involved.
package raster

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// FillRule determines which points are inside a self-intersecting outline.
type FillRule int

const (
	// NonZero treats a point as inside if the winding number is non-zero.
	NonZero FillRule = iota

	// EvenOdd treats a point as inside if the winding number is odd.
	EvenOdd
)

func (rule FillRule) String() string {
	switch rule {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// ParseFillRule converts the output of FillRule.String back into a
// FillRule.
func ParseFillRule(s string) (FillRule, error) {
	switch s {
	case "nonzero":
		return NonZero, nil
	case "evenodd":
		return EvenOdd, nil
	}
	return 0, fmt.Errorf("raster: unknown fill rule %q", s)
}

// EmitFunc receives the coverage of one scanline.  Coverage values are in
// the range [0, 1] and coverage[i] belongs to pixel (xMin+i, y).  The slice
// is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// xAt returns the x-coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 { return e.x0 + e.dxdy*(y-e.y0) }

// Rasterizer converts outlines into coverage values.
// Internal buffers are kept between calls, so that a Rasterizer which is
// reused for many outlines of similar size does not allocate.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be invertible.
	CTM matrix.Matrix

	// Clip is the device space region where coverage is computed.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments used to approximate it.
	Flatness float64

	// smallPathThreshold is the bounding box area (in pixels) below which
	// the whole outline is accumulated into 2D buffers at once.  Larger
	// outlines are processed scanline by scanline.
	smallPathThreshold int

	cover   []float32 // signed vertical extent per pixel, later the output
	area    []float32 // part of cover which lies right of the edge
	edges   []edge
	active  []int
	rowUsed []bool

	hasBBox bool
	bbox    rect.Rect // device space bounding box of r.edges
}

// New allocates a Rasterizer for the given clip rectangle.
func New(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is retained.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.smallPathThreshold = smallPathThreshold
}

// Fill computes the coverage of the outline p and passes it row by row to
// emit.  Open subpaths are closed implicitly.  Rows without coverage are
// skipped and leading and trailing zeros are trimmed from every row.
func (r *Rasterizer) Fill(p path.Path, rule FillRule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(p)
	if !ok {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillBuffered(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillScanlines(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// collectEdges flattens p into r.edges and returns the pixel range touched
// by the edges, intersected with the clip rectangle.
func (r *Rasterizer) collectEdges(p path.Path) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.hasBBox = false

	var cur, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.addEdge(cur, start)
			}
			cur, start = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuad(cur, pts[0], pts[1])
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2])
			cur = pts[2]
		case path.CmdClose:
			r.addEdge(cur, start)
			cur = start
			open = false
		}
	}
	if open {
		r.addEdge(cur, start)
	}

	if !r.hasBBox {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge transforms the user space segment a-b to device space and
// appends it to the edge list.  Horizontal segments carry no coverage and
// are dropped.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	bb := rect.Rect{LLx: min(x0, x1), LLy: min(y0, y1), URx: max(x0, x1), URy: max(y0, y1)}
	if !r.hasBBox {
		r.bbox = bb
		r.hasBBox = true
		return
	}
	r.bbox.LLx = min(r.bbox.LLx, bb.LLx)
	r.bbox.LLy = min(r.bbox.LLy, bb.LLy)
	r.bbox.URx = max(r.bbox.URx, bb.URx)
	r.bbox.URy = max(r.bbox.URy, bb.URy)
}

// deviceLength returns the device space length of the user space vector v.
// The translation part of the CTM does not apply to vectors.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

// flattenQuad approximates a quadratic Bézier curve by line segments.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		next := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, next)
		prev = next
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if k := math.Sqrt(3 * dev / (4 * r.Flatness)); k > 1 {
		n = int(math.Ceil(k))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		next := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, next)
		prev = next
	}
}

// Accumulation model
//
// Every edge piece inside a pixel contributes two numbers:
//
//	cover: the signed height of the piece (positive for downward edges)
//	area:  cover times the fraction of the pixel width right of the piece
//
// Summing cover from the left edge of the scanline gives the winding
// number of the pixel interiors, and adding area[i] corrects for the part
// of pixel i which lies left of the edges inside it.  See integrate.

// accumulate adds the contribution of e within scanline y to cover and
// area.  Index 0 of both slices corresponds to pixel x = x0, and the
// slices have length x1-x0.
func accumulate(e *edge, y int, cover, area []float32, x0, x1 int) {
	yTop := max(float64(y), e.yMin())
	yBot := min(float64(y+1), e.yMax())
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	add := func(ya, yb float64) {
		if yb <= ya {
			return
		}
		c := sign * float32(yb-ya)
		xm := e.xAt((ya + yb) / 2)
		pix := int(math.Floor(xm))
		switch {
		case pix < x0:
			cover[0] += c
			area[0] += c
		case pix < x1:
			cover[pix-x0] += c
			area[pix-x0] += c * float32(1-(xm-float64(pix)))
		}
	}

	xTop := e.xAt(yTop)
	xBot := e.xAt(yBot)
	pTop := int(math.Floor(xTop))
	pBot := int(math.Floor(xBot))
	if pTop == pBot {
		add(yTop, yBot)
		return
	}

	// Split the piece where it crosses vertical pixel boundaries.  Walking
	// the boundaries in the direction of travel keeps the y values sorted.
	dydx := 1 / e.dxdy
	ya := yTop
	if pBot > pTop {
		for k := pTop + 1; k <= pBot; k++ {
			yb := min(max(e.y0+dydx*(float64(k)-e.x0), ya), yBot)
			add(ya, yb)
			ya = yb
		}
	} else {
		for k := pTop; k > pBot; k-- {
			yb := min(max(e.y0+dydx*(float64(k)-e.x0), ya), yBot)
			add(ya, yb)
			ya = yb
		}
	}
	add(ya, yBot)
}

// integrate turns the accumulated cover and area values of one scanline
// into coverage, in place.
func integrate(cover, area []float32, rule FillRule) {
	var winding float32
	for i := range cover {
		w := winding + area[i]
		winding += cover[i]
		if w < 0 {
			w = -w
		}
		if rule == EvenOdd {
			w -= 2 * float32(int(w/2))
			if w > 1 {
				w = 2 - w
			}
		} else if w > 1 {
			w = 1
		}
		cover[i] = w
	}
}

// trim removes leading and trailing zeros from coverage.  The returned
// offset is the index of the first retained element.
func trim(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// fillBuffered accumulates all edges into 2D buffers covering the bounding
// box, then integrates row by row.
func (r *Rasterizer) fillBuffered(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin
	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowUsed = slices.Grow(r.rowUsed[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		top := max(int(math.Floor(e.yMin())), yMin)
		bot := min(int(math.Floor(e.yMax()))+1, yMax)
		for y := top; y < bot; y++ {
			row := y - yMin
			off := row * w
			accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range h {
		if !r.rowUsed[row] {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		integrate(cov, r.area[off:off+w], rule)
		if cov, dx := trim(cov); cov != nil {
			emit(yMin+row, xMin+dx, cov)
		}
	}
}

// fillScanlines processes one scanline at a time, keeping a list of the
// edges which intersect the current scanline.
func (r *Rasterizer) fillScanlines(xMin, xMax, yMin, yMax int, rule FillRule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yTop := float64(y)
		yBot := float64(y + 1)

		for next < len(r.edges) && r.edges[next].yMin() < yBot {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		used := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.yMax() <= yTop {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			used = true
			i++
		}
		if !used {
			continue
		}

		integrate(r.cover, r.area, rule)
		if cov, dx := trim(r.cover); cov != nil {
			emit(y, xMin+dx, cov)
		}
	}
}

const (
	// defaultFlatness is the default curve flattening tolerance in device
	// pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent of an edge.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the default bounding box area, in pixels, up to
	// which fillBuffered is used.
	smallPathThreshold = 65536
)
