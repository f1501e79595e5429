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

// Package resize maps between the resolution of a source image and the
// reduced resolution at which the search runs.
package resize

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"seehuhn.de/go/evolisa/polygon"
	"seehuhn.de/go/evolisa/render"
)

// Resizer converts between an original image size and an internal size
// whose longer side has a given length.  Both sizes have the same aspect
// ratio, up to rounding.
type Resizer struct {
	original image.Point
	internal image.Point
	factor   float64
}

// New returns a Resizer for images of the given size.  The longer side of
// the internal size is internalRes pixels.  An internalRes larger than the
// longer side of size is allowed, but enlarges the image.
func New(size image.Point, internalRes int) *Resizer {
	factor := float64(max(size.X, size.Y)) / float64(internalRes)
	return &Resizer{
		original: size,
		internal: image.Point{
			X: max(1, int(math.Round(float64(size.X)/factor))),
			Y: max(1, int(math.Round(float64(size.Y)/factor))),
		},
		factor: factor,
	}
}

// Original returns the size of the source image.
func (r *Resizer) Original() image.Point {
	return r.original
}

// Internal returns the reduced size.
func (r *Resizer) Internal() image.Point {
	return r.internal
}

// Factor returns the ratio between original and internal coordinates.
func (r *Resizer) Factor() float64 {
	return r.factor
}

// Reduce scales img to the internal size.
func (r *Resizer) Reduce(img image.Image) *render.Image {
	dst := image.NewNRGBA(image.Rectangle{Max: r.internal})
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return render.FromImage(dst)
}

// Restore renders a polygon set, given in internal coordinates, at the
// original size.  Antialiasing is always enabled.  Mode and Rule are taken
// from opts.
func (r *Resizer) Restore(set *polygon.Set, opts render.Options) *render.Image {
	opts.Antialias = true
	opts.Scale = r.factor
	return render.Draw(r.original.X, r.original.Y, set, opts)
}
