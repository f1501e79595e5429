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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

var precisionCases = []TestCase{
	{
		Name:   "subpixel_offset_00",
		Path:   offsetSquare(20, 20, 24, 0.0),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "subpixel_offset_25",
		Path:   offsetSquare(20, 20, 24, 0.25),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "subpixel_offset_50",
		Path:   offsetSquare(20, 20, 24, 0.5),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "sliver",
		Path:   polygon(2, 30, 62, 31, 2, 31.5),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "tiny_triangle",
		Path:   polygon(30.2, 30.2, 30.8, 30.4, 30.4, 30.9),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
}

var ctmCases = []TestCase{
	{
		Name:   "supersample_4x",
		Path:   polygon(2, 12, 8, 2, 14, 12),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		CTM:    matrix.Scale(4, 4),
	},
	{
		Name:   "scale_translate",
		Path:   polygon(0, 0, 20, 0, 20, 20, 0, 20),
		Width:  128,
		Height: 128,
		Rule:   NonZero,
		CTM:    matrix.Scale(2, 2).Translate(24, 24),
	},
}

// offsetSquare returns a square shifted diagonally by a sub-pixel offset.
func offsetSquare(x, y, size, offset float64) path.Path {
	x += offset
	y += offset
	return polygon(x, y, x+size, y, x+size, y+size, x, y+size)
}
