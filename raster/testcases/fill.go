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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var fillCases = []TestCase{
	{
		Name:   "triangle_nonzero",
		Path:   polygon(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "triangle_evenodd",
		Path:   polygon(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "star_nonzero",
		Path:   star(32, 32, 25),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "rectangle",
		Path:   polygon(10, 10, 54, 10, 54, 54, 10, 54),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "concave",
		Path:   polygon(8, 8, 56, 8, 56, 56, 32, 24, 8, 56),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "bowtie",
		Path:   polygon(8, 8, 56, 56, 56, 8, 8, 56),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "clipped",
		Path:   polygon(-20, 10, 40, -15, 90, 70, 20, 80),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "open_subpaths",
		Path:   openSquares(),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "circle",
		Path:   circle(32, 32, 24),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "large_polygon",
		Path:   polygon(3, 17, 290, 4, 310, 250, 160, 180, 12, 300, 90, 120),
		Width:  320,
		Height: 320,
		Rule:   NonZero,
	},
}

// star returns a five-pointed star which intersects itself.  The pentagon
// in the middle has winding number 2.
func star(cx, cy, r float64) path.Path {
	var xy []float64
	for _, k := range []int{0, 2, 4, 1, 3} {
		a := float64(k)*2*math.Pi/5 - math.Pi/2
		xy = append(xy, cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return polygon(xy...)
}

// openSquares returns two squares without ClosePath commands.
func openSquares() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		cmds := []path.Command{
			path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo,
			path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo,
		}
		pts := []vec.Vec2{
			{X: 4, Y: 4}, {X: 28, Y: 4}, {X: 28, Y: 28}, {X: 4, Y: 28},
			{X: 36, Y: 36}, {X: 60, Y: 36}, {X: 60, Y: 60}, {X: 36, Y: 60},
		}
		for i, cmd := range cmds {
			if !yield(cmd, pts[i:i+1]) {
				return
			}
		}
	}
}

// circle approximates a circle by four cubic Bézier segments.
func circle(cx, cy, r float64) path.Path {
	const k = 0.5522847498
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: cx + r, Y: cy}}) {
			return
		}
		quarters := [][]vec.Vec2{
			{{X: cx + r, Y: cy + k*r}, {X: cx + k*r, Y: cy + r}, {X: cx, Y: cy + r}},
			{{X: cx - k*r, Y: cy + r}, {X: cx - r, Y: cy + k*r}, {X: cx - r, Y: cy}},
			{{X: cx - r, Y: cy - k*r}, {X: cx - k*r, Y: cy - r}, {X: cx, Y: cy - r}},
			{{X: cx + k*r, Y: cy - r}, {X: cx + r, Y: cy - k*r}, {X: cx + r, Y: cy}},
		}
		for _, q := range quarters {
			if !yield(path.CmdCubeTo, q) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}
