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

package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/evolisa/polygon"
	"seehuhn.de/go/evolisa/raster"
)

// Supersampling is the factor by which the canvas is enlarged in each
// direction when antialiasing is requested.
const Supersampling = 4

// Mode selects the algorithm which computes polygon coverage.
type Mode int

const (
	// ModeAnalytic uses the rasterizer from package raster.
	// It supports both fill rules.
	ModeAnalytic Mode = iota

	// ModeVector uses golang.org/x/image/vector.  It always applies the
	// nonzero fill rule.
	ModeVector
)

func (m Mode) String() string {
	switch m {
	case ModeAnalytic:
		return "analytic"
	case ModeVector:
		return "vector"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts the output of Mode.String back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "analytic":
		return ModeAnalytic, nil
	case "vector":
		return ModeVector, nil
	}
	return 0, fmt.Errorf("render: unknown mode %q", s)
}

// Options control how a polygon set is painted.
type Options struct {
	// Antialias enables supersampling.  Without antialiasing, every pixel
	// is either fully inside or fully outside of each polygon.
	Antialias bool

	// Scale multiplies all vertex coordinates.  Zero means 1.
	Scale float64

	// Mode selects the rasterizer.
	Mode Mode

	// Rule is the fill rule for self-intersecting polygons.
	// It is ignored by ModeVector.
	Rule raster.FillRule
}

// Renderer paints polygon sets.  Its buffers are reused between calls.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	ras    *raster.Rasterizer
	vec    *vector.Rasterizer
	mask   *image.Alpha
	row    []float32
	canvas *Image
}

// NewRenderer returns a Renderer with empty buffers.
func NewRenderer() *Renderer {
	return &Renderer{
		ras: raster.New(rect.Rect{}),
	}
}

// Draw paints set on an opaque white width×height background, in polygon
// order, with source-over compositing.  The result depends only on the
// arguments.
func Draw(width, height int, set *polygon.Set, opts Options) *Image {
	dst := NewImage(width, height)
	NewRenderer().Draw(dst, set, opts)
	return dst
}

// Draw paints set into dst, see the function Draw.
func (r *Renderer) Draw(dst *Image, set *polygon.Set, opts Options) {
	canvas := dst
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	if opts.Antialias {
		w, h := dst.Width*Supersampling, dst.Height*Supersampling
		if r.canvas == nil || r.canvas.Width != w || r.canvas.Height != h {
			r.canvas = NewImage(w, h)
		}
		canvas = r.canvas
		scale *= Supersampling
	}
	canvas.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})

	binary := !opts.Antialias
	for i := range set.Len() {
		col := set.Colors[i]
		if col.A == 0 {
			continue
		}
		emit := func(y, xMin int, coverage []float32) {
			blendRow(canvas, y, xMin, coverage, col, binary)
		}
		switch opts.Mode {
		case ModeVector:
			r.fillVector(canvas, set.Vertices(i), scale, emit)
		default:
			r.ras.Reset(rect.Rect{URx: float64(canvas.Width), URy: float64(canvas.Height)})
			r.ras.CTM = matrix.Scale(scale, scale)
			r.ras.Fill(set.Path(i), opts.Rule, emit)
		}
	}

	if opts.Antialias {
		canvas.downsampleInto(dst, Supersampling)
	}
}

// fillVector computes the coverage of one polygon with x/image/vector and
// passes it to emit one row at a time.
func (r *Renderer) fillVector(canvas *Image, xy []int, scale float64, emit raster.EmitFunc) {
	w, h := canvas.Width, canvas.Height
	if r.vec == nil {
		r.vec = vector.NewRasterizer(w, h)
	} else {
		r.vec.Reset(w, h)
	}
	if r.mask == nil || r.mask.Rect.Dx() != w || r.mask.Rect.Dy() != h {
		r.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	} else {
		clear(r.mask.Pix)
	}

	s := float32(scale)
	r.vec.MoveTo(float32(xy[0])*s, float32(xy[1])*s)
	for j := 2; j < len(xy); j += 2 {
		r.vec.LineTo(float32(xy[j])*s, float32(xy[j+1])*s)
	}
	r.vec.ClosePath()
	r.vec.Draw(r.mask, r.mask.Rect, image.Opaque, image.Point{})

	if cap(r.row) < w {
		r.row = make([]float32, w)
	}
	row := r.row[:w]
	for y := range h {
		pix := r.mask.Pix[y*r.mask.Stride : y*r.mask.Stride+w]
		used := false
		for x, a := range pix {
			row[x] = float32(a) / 255
			used = used || a != 0
		}
		if used {
			emit(y, 0, row)
		}
	}
}

// blendRow composites color c with the given per-pixel coverage onto row
// y of m.  With binary set, coverage is rounded to 0 or 1.
func blendRow(m *Image, y, xMin int, coverage []float32, c color.NRGBA, binary bool) {
	pix := m.Pix[3*(y*m.Width+xMin):]
	sr, sg, sb := uint32(c.R), uint32(c.G), uint32(c.B)
	for i, cov := range coverage {
		if binary {
			if cov < 0.5 {
				continue
			}
			cov = 1
		}
		a := uint32(cov*float32(c.A) + 0.5)
		if a == 0 {
			continue
		}
		na := 255 - a
		p := pix[3*i : 3*i+3]
		p[0] = uint8((sr*a + uint32(p[0])*na + 127) / 255)
		p[1] = uint8((sg*a + uint32(p[1])*na + 127) / 255)
		p[2] = uint8((sb*a + uint32(p[2])*na + 127) / 255)
	}
}
