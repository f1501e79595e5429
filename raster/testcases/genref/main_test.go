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

package main

import (
	"bytes"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/evolisa/raster/testcases"
)

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				fname := filepath.Join(dir, name+".pdf")
				if err := writePDF(tc, fname); err != nil {
					t.Fatal(err)
				}
				data, err := os.ReadFile(fname)
				if err != nil {
					t.Fatal(err)
				}
				if !bytes.HasPrefix(data, []byte("%PDF-")) {
					t.Errorf("missing PDF header: %q", data[:min(len(data), 8)])
				}
				if !bytes.Contains(data, []byte("%%EOF")) {
					t.Error("missing end of file marker")
				}
			})
		}
	}
}
