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

// Package polygon implements the candidate solutions of the search: a fixed
// number of semi-transparent polygons painted on top of each other, and the
// random mutations used to explore the space of such sets.
//
// A Set is treated as immutable once it has been handed out.  Mutations
// return a new Set which shares all unchanged data with its parent.
package polygon

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Set is an ordered collection of polygons on a Width×Height canvas.
// The three slices Shapes, Sides and Colors are indexed by polygon, and
// polygons with larger indices are painted on top.
type Set struct {
	// Width and Height bound the vertex coordinates: 0 <= x <= Width and
	// 0 <= y <= Height.
	Width, Height int

	// MinSides and MaxSides bound the number of active vertices.
	MinSides, MaxSides int

	// Shapes holds 2*MaxSides coordinates per polygon, in the order
	// x0, y0, x1, y1, ...  Only the first Sides[i] pairs are drawn.
	Shapes [][]int

	// Sides is the number of active vertices of each polygon.
	Sides []int

	// Colors is the fill color of each polygon.
	Colors []color.NRGBA
}

// New returns n random polygons with minSides active vertices each.
// Vertices are uniform on [0,width)×[0,height) and the four color channels
// are uniform on [0,255].
func New(rng *rand.Rand, n, minSides, maxSides, width, height int) *Set {
	s := &Set{
		Width:    width,
		Height:   height,
		MinSides: minSides,
		MaxSides: maxSides,
		Shapes:   make([][]int, n),
		Sides:    make([]int, n),
		Colors:   make([]color.NRGBA, n),
	}
	for i := range n {
		xy := make([]int, 2*maxSides)
		for j := 0; j < len(xy); j += 2 {
			xy[j] = rng.IntN(width)
			xy[j+1] = rng.IntN(height)
		}
		s.Shapes[i] = xy
		s.Sides[i] = minSides
		s.Colors[i] = color.NRGBA{
			R: uint8(rng.IntN(256)),
			G: uint8(rng.IntN(256)),
			B: uint8(rng.IntN(256)),
			A: uint8(rng.IntN(256)),
		}
	}
	return s
}

// Len returns the number of polygons.
func (s *Set) Len() int {
	return len(s.Sides)
}

// Vertices returns the active coordinates of polygon i.
// The returned slice must not be modified.
func (s *Set) Vertices(i int) []int {
	return s.Shapes[i][:2*s.Sides[i]]
}

// Path returns polygon i as a closed outline.
func (s *Set) Path(i int) path.Path {
	xy := s.Vertices(i)
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [1]vec.Vec2
		for j := 0; j < len(xy); j += 2 {
			cmd := path.CmdLineTo
			if j == 0 {
				cmd = path.CmdMoveTo
			}
			buf[0] = vec.Vec2{X: float64(xy[j]), Y: float64(xy[j+1])}
			if !yield(cmd, buf[:]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// MeanSides returns the average number of active vertices per polygon.
func (s *Set) MeanSides() float64 {
	if len(s.Sides) == 0 {
		return 0
	}
	total := 0
	for _, k := range s.Sides {
		total += k
	}
	return float64(total) / float64(len(s.Sides))
}

// Validate checks the invariants of the set.  It returns nil if they all
// hold, and otherwise an error describing the first violation.
func (s *Set) Validate() error {
	n := len(s.Sides)
	if len(s.Shapes) != n || len(s.Colors) != n {
		return fmt.Errorf("polygon: inconsistent lengths %d/%d/%d",
			len(s.Shapes), n, len(s.Colors))
	}
	if s.MinSides < 1 || s.MaxSides < s.MinSides {
		return fmt.Errorf("polygon: invalid side range [%d, %d]", s.MinSides, s.MaxSides)
	}
	for i, xy := range s.Shapes {
		if len(xy) != 2*s.MaxSides {
			return fmt.Errorf("polygon %d: %d coordinates, want %d", i, len(xy), 2*s.MaxSides)
		}
		for j := 0; j < len(xy); j += 2 {
			if xy[j] < 0 || xy[j] > s.Width || xy[j+1] < 0 || xy[j+1] > s.Height {
				return fmt.Errorf("polygon %d: vertex (%d, %d) outside canvas",
					i, xy[j], xy[j+1])
			}
		}
		if k := s.Sides[i]; k < s.MinSides || k > s.MaxSides {
			return fmt.Errorf("polygon %d: %d sides outside [%d, %d]",
				i, k, s.MinSides, s.MaxSides)
		}
	}
	return nil
}

// shallow returns a copy of s which shares all three slices with s.
func (s *Set) shallow() *Set {
	c := *s
	return &c
}
