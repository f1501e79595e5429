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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/path"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNew(t *testing.T) {
	s := New(newRand(), 50, 3, 8, 40, 30)
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 50 {
		t.Errorf("Len() = %d, want 50", s.Len())
	}
	for i, k := range s.Sides {
		if k != 3 {
			t.Errorf("polygon %d: %d sides, want 3", i, k)
		}
	}
	if got := s.MeanSides(); got != 3 {
		t.Errorf("MeanSides() = %g, want 3", got)
	}
}

func TestPath(t *testing.T) {
	s := &Set{
		Width: 10, Height: 10, MinSides: 3, MaxSides: 4,
		Shapes: [][]int{{1, 2, 3, 4, 5, 6, 7, 8}},
		Sides:  []int{3},
		Colors: []color.NRGBA{{}},
	}

	var cmds []path.Command
	var xy []float64
	for cmd, pts := range s.Path(0) {
		cmds = append(cmds, cmd)
		for _, p := range pts {
			xy = append(xy, p.X, p.Y)
		}
	}

	wantCmds := []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose}
	if d := cmp.Diff(wantCmds, cmds); d != "" {
		t.Errorf("commands (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{1, 2, 3, 4, 5, 6}, xy); d != "" {
		t.Errorf("coordinates (-want +got):\n%s", d)
	}
}

func TestValidate(t *testing.T) {
	good := func() *Set {
		return &Set{
			Width: 10, Height: 10, MinSides: 3, MaxSides: 3,
			Shapes: [][]int{{0, 0, 10, 0, 5, 10}},
			Sides:  []int{3},
			Colors: []color.NRGBA{{R: 1, G: 2, B: 3, A: 4}},
		}
	}
	if err := good().Validate(); err != nil {
		t.Fatalf("valid set rejected: %v", err)
	}

	broken := map[string]func(s *Set){
		"x too large":   func(s *Set) { s.Shapes[0][2] = 11 },
		"y negative":    func(s *Set) { s.Shapes[0][1] = -1 },
		"few sides":     func(s *Set) { s.Sides[0] = 2 },
		"short shape":   func(s *Set) { s.Shapes[0] = s.Shapes[0][:4] },
		"missing color": func(s *Set) { s.Colors = nil },
		"bad range":     func(s *Set) { s.MaxSides = 2 },
	}
	for name, f := range broken {
		s := good()
		f(s)
		if s.Validate() == nil {
			t.Errorf("%s: not detected", name)
		}
	}
}

func TestMutationsKeepInvariants(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 40, 25)
	s := New(rng, 20, 3, 7, 40, 25)
	for i := range 20000 {
		next, op, idx := m.Mutate(s)
		if err := next.Validate(); err != nil {
			t.Fatalf("step %d, %s on polygon %d: %v", i, op, idx, err)
		}
		s = next
	}
}

func TestMutationsCopyOnWrite(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 32, 32)
	for op := OpPoint; op < numOps; op++ {
		t.Run(op.String(), func(t *testing.T) {
			s := New(rng, 5, 3, 6, 32, 32)
			s.Sides[2] = 4
			before := deepCopy(s)

			for range 100 {
				next := m.Apply(s, op, 2)
				if d := cmp.Diff(before, s); d != "" {
					t.Fatalf("parent modified (-before +after):\n%s", d)
				}
				for i := range s.Len() {
					if i == 2 {
						continue
					}
					if &next.Shapes[i][0] != &s.Shapes[i][0] {
						t.Errorf("polygon %d coordinates were copied", i)
					}
					if next.Sides[i] != s.Sides[i] || next.Colors[i] != s.Colors[i] {
						t.Errorf("polygon %d changed", i)
					}
				}
			}
		})
	}
}

func TestMutationTouchesOneContainer(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 32, 32)
	s := New(rng, 3, 3, 6, 32, 32)
	s.Sides[1] = 4

	for range 50 {
		next := m.Apply(s, OpColor, 1)
		if d := cmp.Diff(s.Shapes, next.Shapes); d != "" {
			t.Errorf("color changed the shapes:\n%s", d)
		}
		if next.Colors[1].A != s.Colors[1].A {
			t.Error("color changed the alpha channel")
		}

		next = m.Apply(s, OpAlpha, 1)
		c0, c1 := s.Colors[1], next.Colors[1]
		if c0.R != c1.R || c0.G != c1.G || c0.B != c1.B {
			t.Error("alpha changed the RGB channels")
		}

		next = m.Apply(s, OpShape, 1)
		if d := cmp.Diff(s.Sides, next.Sides); d != "" {
			t.Errorf("shape changed the side counts:\n%s", d)
		}
	}
}

func TestNumberAtBounds(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 10, 10)
	s := New(rng, 1, 3, 6, 10, 10)

	for range 100 {
		s.Sides[0] = 3
		if got := m.Apply(s, OpNumber, 0).Sides[0]; got != 4 {
			t.Fatalf("at minimum: %d sides, want 4", got)
		}
		s.Sides[0] = 6
		if got := m.Apply(s, OpNumber, 0).Sides[0]; got != 5 {
			t.Fatalf("at maximum: %d sides, want 5", got)
		}
	}

	seen := map[int]bool{}
	s.Sides[0] = 4
	for range 100 {
		seen[m.Apply(s, OpNumber, 0).Sides[0]] = true
	}
	if !seen[3] || !seen[5] || len(seen) != 2 {
		t.Errorf("from 4 sides reached %v, want 3 and 5", seen)
	}
}

func TestNumberFixedRange(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 10, 10)
	s := New(rng, 1, 3, 3, 10, 10)
	if next := m.Apply(s, OpNumber, 0); next.Sides[0] != 3 {
		t.Errorf("%d sides, want 3", next.Sides[0])
	}
}

func TestOrderSinglePoint(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 10, 10)
	s := &Set{
		Width: 10, Height: 10, MinSides: 1, MaxSides: 3,
		Shapes: [][]int{{1, 2, 3, 4, 5, 6}},
		Sides:  []int{1},
		Colors: []color.NRGBA{{A: 255}},
	}
	for range 20 {
		next := m.Apply(s, OpOrder, 0)
		if d := cmp.Diff(s, next); d != "" {
			t.Fatalf("order with one active vertex changed the set:\n%s", d)
		}
	}
}

func TestOrderPermutesActiveVertices(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 100, 100)
	s := &Set{
		Width: 100, Height: 100, MinSides: 3, MaxSides: 5,
		Shapes: [][]int{{1, 11, 2, 12, 3, 13, 4, 14, 5, 15}},
		Sides:  []int{4},
		Colors: []color.NRGBA{{A: 255}},
	}
	for range 50 {
		xy := m.Apply(s, OpOrder, 0).Shapes[0]
		if xy[8] != 5 || xy[9] != 15 {
			t.Fatalf("inactive vertex moved: %v", xy)
		}
		var xs []int
		for j := 0; j < 8; j += 2 {
			if xy[j+1] != xy[j]+10 {
				t.Fatalf("x and y permuted differently: %v", xy)
			}
			xs = append(xs, xy[j])
		}
		slices.Sort(xs)
		if d := cmp.Diff([]int{1, 2, 3, 4}, xs); d != "" {
			t.Fatalf("active vertices changed:\n%s", d)
		}
	}
}

func TestPointMovesActiveVertex(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 100, 100)
	s := &Set{
		Width: 100, Height: 100, MinSides: 3, MaxSides: 5,
		Shapes: [][]int{{50, 50, 50, 50, 50, 50, 50, 50, 50, 50}},
		Sides:  []int{3},
		Colors: []color.NRGBA{{A: 255}},
	}
	for range 100 {
		xy := m.Apply(s, OpPoint, 0).Shapes[0]
		for j := 6; j < 10; j++ {
			if xy[j] != 50 {
				t.Fatalf("inactive coordinate changed: %v", xy)
			}
		}
	}
}

func TestColorClamp(t *testing.T) {
	rng := newRand()
	m := NewMutator(rng, 10, 10)
	m.ColorRange = 1000
	m.AlphaRange = 1000
	s := New(rng, 1, 3, 3, 10, 10)

	seenMin, seenMax := false, false
	for range 200 {
		s = m.Apply(m.Apply(s, OpColor, 0), OpAlpha, 0)
		c := s.Colors[0]
		seenMin = seenMin || c.R == 0 || c.A == 0
		seenMax = seenMax || c.R == 255 || c.A == 255
	}
	if !seenMin || !seenMax {
		t.Errorf("large offsets did not reach both clamp bounds")
	}
}

func deepCopy(s *Set) *Set {
	c := *s
	c.Shapes = make([][]int, len(s.Shapes))
	for i, xy := range s.Shapes {
		c.Shapes[i] = slices.Clone(xy)
	}
	c.Sides = slices.Clone(s.Sides)
	c.Colors = slices.Clone(s.Colors)
	return &c
}
