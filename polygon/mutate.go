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

package polygon

import (
	"image/color"
	"math/rand/v2"
	"slices"
)

// Op identifies one of the mutation operators.
type Op int

const (
	// OpPoint moves one active vertex of the polygon.
	OpPoint Op = iota

	// OpShape translates all vertices of the polygon by the same offset.
	OpShape

	// OpOrder permutes the active vertices, which changes the outline
	// without moving any vertex.
	OpOrder

	// OpNumber adds or removes one active vertex.
	OpNumber

	// OpColor changes the red, green and blue channels.
	OpColor

	// OpAlpha changes the opacity.
	OpAlpha

	numOps
)

func (op Op) String() string {
	switch op {
	case OpPoint:
		return "point"
	case OpShape:
		return "shape"
	case OpOrder:
		return "order"
	case OpNumber:
		return "number"
	case OpColor:
		return "color"
	case OpAlpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// Mutator applies random changes to polygon sets.
//
// Offsets are drawn uniformly from [-Range, Range] for the corresponding
// operator.  A Mutator is not safe for concurrent use.
type Mutator struct {
	PointRange int // OpPoint, in pixels
	ShapeRange int // OpShape, in pixels
	ColorRange int // OpColor, per channel
	AlphaRange int // OpAlpha

	rng *rand.Rand
}

// NewMutator returns a Mutator for a width×height canvas, using the
// default ranges: half the longer side of the canvas for geometry, and 100
// for color and alpha.
func NewMutator(rng *rand.Rand, width, height int) *Mutator {
	r := max(width, height) / 2
	return &Mutator{
		PointRange: r,
		ShapeRange: r,
		ColorRange: 100,
		AlphaRange: 100,
		rng:        rng,
	}
}

// Mutate picks a polygon and an operator uniformly at random and applies
// the operator to the polygon.
func (m *Mutator) Mutate(s *Set) (*Set, Op, int) {
	i := m.rng.IntN(s.Len())
	op := Op(m.rng.IntN(int(numOps)))
	return m.Apply(s, op, i), op, i
}

// Apply returns the result of applying op to polygon i of s.
// The set s is not modified.
func (m *Mutator) Apply(s *Set, op Op, i int) *Set {
	switch op {
	case OpPoint:
		return m.point(s, i)
	case OpShape:
		return m.shape(s, i)
	case OpOrder:
		return m.order(s, i)
	case OpNumber:
		return m.number(s, i)
	case OpColor:
		return m.color(s, i)
	case OpAlpha:
		return m.alpha(s, i)
	default:
		panic("polygon: invalid mutation operator")
	}
}

// offset returns a uniform random integer in [-r, r].
func (m *Mutator) offset(r int) int {
	return m.rng.IntN(2*r+1) - r
}

// withShape returns a shallow copy of s in which the coordinates of
// polygon i are a private copy.
func withShape(s *Set, i int) (*Set, []int) {
	c := s.shallow()
	c.Shapes = slices.Clone(s.Shapes)
	xy := slices.Clone(s.Shapes[i])
	c.Shapes[i] = xy
	return c, xy
}

func (m *Mutator) point(s *Set, i int) *Set {
	c, xy := withShape(s, i)
	j := 2 * m.rng.IntN(s.Sides[i])
	xy[j] = clamp(xy[j]+m.offset(m.PointRange), 0, s.Width)
	xy[j+1] = clamp(xy[j+1]+m.offset(m.PointRange), 0, s.Height)
	return c
}

func (m *Mutator) shape(s *Set, i int) *Set {
	c, xy := withShape(s, i)
	dx := m.offset(m.ShapeRange)
	dy := m.offset(m.ShapeRange)
	for j := 0; j < len(xy); j += 2 {
		xy[j] = clamp(xy[j]+dx, 0, s.Width)
		xy[j+1] = clamp(xy[j+1]+dy, 0, s.Height)
	}
	return c
}

func (m *Mutator) order(s *Set, i int) *Set {
	k := s.Sides[i]
	if k < 2 {
		return s
	}
	c, xy := withShape(s, i)
	active := slices.Clone(xy[:2*k])
	for to, from := range m.rng.Perm(k) {
		xy[2*to] = active[2*from]
		xy[2*to+1] = active[2*from+1]
	}
	return c
}

func (m *Mutator) number(s *Set, i int) *Set {
	if s.MinSides >= s.MaxSides {
		return s
	}
	k := s.Sides[i]
	switch {
	case k <= s.MinSides:
		k = s.MinSides + 1
	case k >= s.MaxSides:
		k = s.MaxSides - 1
	case m.rng.IntN(2) == 0:
		k--
	default:
		k++
	}
	c := s.shallow()
	c.Sides = slices.Clone(s.Sides)
	c.Sides[i] = k
	return c
}

func (m *Mutator) color(s *Set, i int) *Set {
	c := s.shallow()
	c.Colors = slices.Clone(s.Colors)
	col := c.Colors[i]
	c.Colors[i] = color.NRGBA{
		R: channel(int(col.R) + m.offset(m.ColorRange)),
		G: channel(int(col.G) + m.offset(m.ColorRange)),
		B: channel(int(col.B) + m.offset(m.ColorRange)),
		A: col.A,
	}
	return c
}

func (m *Mutator) alpha(s *Set, i int) *Set {
	c := s.shallow()
	c.Colors = slices.Clone(s.Colors)
	c.Colors[i].A = channel(int(c.Colors[i].A) + m.offset(m.AlphaRange))
	return c
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// channel clamps v to the range of an 8-bit color channel.
func channel(v int) uint8 {
	return uint8(clamp(v, 0, 255))
}
