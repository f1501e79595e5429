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

// Command export writes the rasterizer test cases to JSON, so that
// reference coverage can be computed by other renderers.
// Run from the raster directory.
package main

import (
	"encoding/json"
	"log"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/evolisa/raster/testcases"
)

type jsonTestCase struct {
	Name     string        `json:"name"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Path     []jsonSegment `json:"path"`
	FillRule string        `json:"fill_rule"`
	CTM      []float64     `json:"ctm,omitempty"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		log.Fatal(err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	jtc := jsonTestCase{
		Name:     category + "_" + tc.Name,
		Width:    tc.Width,
		Height:   tc.Height,
		Path:     pathToJSON(tc.Path),
		FillRule: "nonzero",
	}
	if tc.Rule == testcases.EvenOdd {
		jtc.FillRule = "evenodd"
	}
	if tc.CTM != (matrix.Matrix{}) && tc.CTM != matrix.Identity {
		jtc.CTM = tc.CTM[:]
	}
	return jtc
}

var cmdNames = map[path.Command]string{
	path.CmdMoveTo: "M",
	path.CmdLineTo: "L",
	path.CmdQuadTo: "Q",
	path.CmdCubeTo: "C",
	path.CmdClose:  "Z",
}

func pathToJSON(p path.Path) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p {
		xy := make([][]float64, 0, len(pts))
		for _, pt := range pts {
			xy = append(xy, []float64{pt.X, pt.Y})
		}
		segs = append(segs, jsonSegment{Cmd: cmdNames[cmd], Pts: xy})
	}
	return segs
}
