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

// Package testcases holds the outlines used to test and benchmark the
// rasterizer.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// TestCase describes one outline to be filled.
type TestCase struct {
	Name   string        // lowercase a-z, 0-9 and _ only
	Path   path.Path     // the outline
	Width  int           // canvas width in pixels
	Height int           // canvas height in pixels
	Rule   FillRule      // fill rule
	CTM    matrix.Matrix // zero value means identity
}

// FillRule mirrors raster.FillRule, so that this package does not depend
// on the package it is used to test.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// All contains all test cases, grouped by category.
var All = map[string][]TestCase{
	"fill":      fillCases,
	"precision": precisionCases,
	"ctm":       ctmCases,
}

// polygon returns a closed outline through the given points, given as
// alternating x and y coordinates.  This is the form in which polygon
// sets store their vertices.
func polygon(xy ...float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := 0; i+1 < len(xy); i += 2 {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, []vec.Vec2{{X: xy[i], Y: xy[i+1]}}) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// Polygon is the exported form of polygon, for use in benchmarks.
func Polygon(xy ...float64) path.Path {
	return polygon(xy...)
}
