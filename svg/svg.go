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

// Package svg writes polygon sets as SVG documents.
//
// The drawing uses the coordinate system of the polygon set as its
// viewBox, so that the same document can be displayed at any size.
// Files with names ending in ".svgz" are gzip compressed, names ending in
// ".zst" are zstd compressed.
package svg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"seehuhn.de/go/evolisa/polygon"
	"seehuhn.de/go/evolisa/raster"
)

// Write writes set as an SVG document of the given display size.
// The background is opaque white, and the polygons are drawn in order
// using the given fill rule.
func Write(w io.Writer, set *polygon.Set, width, height int, rule raster.FillRule) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("svg: invalid size %dx%d", width, height)
	}

	fillRule := "nonzero"
	if rule == raster.EvenOdd {
		fillRule = "evenodd"
	}

	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		width, height, set.Width, set.Height)
	fmt.Fprintf(b, "<rect width=\"%d\" height=\"%d\" fill=\"#ffffff\"/>\n", set.Width, set.Height)

	var pts strings.Builder
	for i := range set.Len() {
		c := set.Colors[i]
		if c.A == 0 {
			continue
		}

		pts.Reset()
		xy := set.Vertices(i)
		for j := 0; j < len(xy); j += 2 {
			if j > 0 {
				pts.WriteByte(' ')
			}
			pts.WriteString(strconv.Itoa(xy[j]))
			pts.WriteByte(',')
			pts.WriteString(strconv.Itoa(xy[j+1]))
		}
		fmt.Fprintf(b, "<polygon points=\"%s\" fill=\"#%02x%02x%02x\" fill-opacity=\"%s\" fill-rule=\"%s\"/>\n",
			pts.String(), c.R, c.G, c.B, opacity(c.A), fillRule)
	}

	fmt.Fprintf(b, "</svg>\n")
	return b.Flush()
}

func opacity(a uint8) string {
	return strconv.FormatFloat(float64(a)/255, 'f', 4, 64)
}

// WriteFile writes set to the named file, compressing the output if the
// name ends in ".svgz" or ".zst".
func WriteFile(name string, set *polygon.Set, width, height int, rule raster.FillRule) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}

	var w io.WriteCloser
	switch {
	case strings.HasSuffix(name, ".svgz"):
		w, err = gzip.NewWriterLevel(fd, gzip.BestCompression)
	case strings.HasSuffix(name, ".zst"):
		w, err = zstd.NewWriter(fd, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	default:
		w = nopCloser{fd}
	}
	if err != nil {
		fd.Close()
		return err
	}

	err = Write(w, set, width, height, rule)
	if err2 := w.Close(); err == nil {
		err = err2
	}
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return fmt.Errorf("svg: %s: %w", name, err)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
