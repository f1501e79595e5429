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

// Command genref generates reference images for the rasterizer tests.
// It writes every test case as a PDF file, white on black, and renders
// the files to grayscale PNG using Ghostscript.
// Run from the raster directory.
package main

import (
	"log"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/evolisa/raster/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0o755); err != nil {
		log.Fatal(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := writePDF(tc, pdfPath); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				log.Fatalf("%s: %v", name, err)
			}
		}
	}
}

// writePDF draws the outline of tc on a single page whose size in points
// equals the test case size in pixels.
func writePDF(tc testcases.TestCase, pdfPath string) error {
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Black background, so that gray levels are coverage values.
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(tc.Width), float64(tc.Height))
	page.Fill()

	// Test cases use a y axis pointing down.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)})
	if tc.CTM != (matrix.Matrix{}) && tc.CTM != matrix.Identity {
		page.Transform(tc.CTM)
	}

	page.SetFillColor(color.DeviceGray(1))
	open := false
	for cmd, pts := range tc.Path.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			// The rasterizer closes open subpaths.
			if open {
				page.ClosePath()
			}
			page.MoveTo(pts[0].X, pts[0].Y)
			open = true
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
			open = false
		}
	}
	if open {
		page.ClosePath()
	}

	if tc.Rule == testcases.EvenOdd {
		page.FillEvenOdd()
	} else {
		page.Fill()
	}
	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// pnggray at 72 DPI maps one point to one pixel; GraphicsAlphaBits
	// enables 4x4 antialiasing.
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
