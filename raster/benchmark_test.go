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

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/evolisa/raster/testcases"
)

// randomPolygons returns n polygons with k vertices each, in the form in
// which the search produces them.
func randomPolygons(n, k, size int) [][]float64 {
	rng := rand.New(rand.NewPCG(1, 2))
	res := make([][]float64, n)
	for i := range res {
		xy := make([]float64, 2*k)
		for j := range xy {
			xy[j] = float64(rng.IntN(size + 1))
		}
		res[i] = xy
	}
	return res
}

// BenchmarkRasterizerPolygons fills a set of random polygons with our
// rasterizer.
func BenchmarkRasterizerPolygons(b *testing.B) {
	for _, size := range []int{40, 160, 640} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := New(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			polys := randomPolygons(50, 6, size)

			b.ReportAllocs()
			for b.Loop() {
				for _, xy := range polys {
					r.Fill(testcases.Polygon(xy...), EvenOdd, func(y, xMin int, coverage []float32) {
						row := dst.Pix[y*dst.Stride+xMin:]
						for i, c := range coverage {
							row[i] = uint8(c * 255)
						}
					})
				}
			}
		})
	}
}

// BenchmarkVectorPolygons fills the same polygons with x/image/vector.
func BenchmarkVectorPolygons(b *testing.B) {
	for _, size := range []int{40, 160, 640} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			polys := randomPolygons(50, 6, size)

			b.ReportAllocs()
			for b.Loop() {
				for _, xy := range polys {
					z.Reset(size, size)
					z.MoveTo(float32(xy[0]), float32(xy[1]))
					for i := 2; i < len(xy); i += 2 {
						z.LineTo(float32(xy[i]), float32(xy[i+1]))
					}
					z.ClosePath()
					z.Draw(dst, dst.Bounds(), src, image.Point{})
				}
			}
		})
	}
}
