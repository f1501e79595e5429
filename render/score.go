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

package render

import "fmt"

// ErrorAbs returns the sum of the absolute differences of all color
// channels of a and b.  The images must have the same size.
func ErrorAbs(a, b *Image) int64 {
	if a.Width != b.Width || a.Height != b.Height {
		panic(fmt.Sprintf("render: comparing %dx%d image to %dx%d image",
			a.Width, a.Height, b.Width, b.Height))
	}

	var sum int64
	for i, va := range a.Pix {
		d := int64(va) - int64(b.Pix[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// ErrorPercent expresses an absolute error as a percentage of the largest
// possible error for images of the size of ref.  The result is 0 for
// identical images and 100 for images which differ maximally.
func ErrorPercent(errAbs int64, ref *Image) float64 {
	return float64(errAbs) / (float64(ref.Width) * float64(ref.Height) * 255 * 3) * 100
}
