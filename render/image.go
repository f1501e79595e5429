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

// Package render paints polygon sets into RGB images and measures how far
// two images are apart.
package render

import (
	"fmt"
	"image"
	"image/color"
)

// Image is an opaque RGB image with three bytes per pixel, stored in
// row-major order without padding.
//
// Image implements [draw.Image], so it can be passed to image encoders and
// scalers directly.
type Image struct {
	Width, Height int
	Pix           []uint8
}

// NewImage allocates a black width×height image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 3*width*height),
	}
}

// FromImage converts img to an RGB image.  The alpha channel of img is
// discarded, leaving the non-premultiplied color of each pixel.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	m := NewImage(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range m.Height {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			out := m.Pix[3*y*m.Width:]
			for x := range m.Width {
				copy(out[3*x:3*x+3], row[4*x:4*x+3])
			}
		}
		return m
	case *image.RGBA:
		for y := range m.Height {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			out := m.Pix[3*y*m.Width:]
			for x := range m.Width {
				p := row[4*x : 4*x+4]
				if p[3] == 255 {
					copy(out[3*x:3*x+3], p[:3])
					continue
				}
				// premultiplied, undo as color.NRGBAModel does
				c := color.NRGBAModel.Convert(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}).(color.NRGBA)
				out[3*x], out[3*x+1], out[3*x+2] = c.R, c.G, c.B
			}
		}
		return m
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			m.Pix[i] = c.R
			m.Pix[i+1] = c.G
			m.Pix[i+2] = c.B
			i += 3
		}
	}
	return m
}

// ColorModel implements the [image.Image] interface.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements the [image.Image] interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements the [image.Image] interface.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return color.RGBA{}
	}
	i := 3 * (y*m.Width + x)
	return color.RGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: 255}
}

// Set implements the [draw.Image] interface.
func (m *Image) Set(x, y int, c color.Color) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	rgb := color.RGBAModel.Convert(c).(color.RGBA)
	i := 3 * (y*m.Width + x)
	m.Pix[i] = rgb.R
	m.Pix[i+1] = rgb.G
	m.Pix[i+2] = rgb.B
}

// Fill sets every pixel to c.
func (m *Image) Fill(c color.RGBA) {
	if len(m.Pix) == 0 {
		return
	}
	m.Pix[0], m.Pix[1], m.Pix[2] = c.R, c.G, c.B
	for n := 3; n < len(m.Pix); n *= 2 {
		copy(m.Pix[n:], m.Pix[:n])
	}
}

// Clone returns a copy of m.
func (m *Image) Clone() *Image {
	c := *m
	c.Pix = append([]uint8(nil), m.Pix...)
	return &c
}

// Downsample reduces the image by an integer factor, averaging each f×f
// block into one pixel.  The width and height of m must be multiples of f.
func (m *Image) Downsample(f int) *Image {
	dst := NewImage(m.Width/f, m.Height/f)
	m.downsampleInto(dst, f)
	return dst
}

// downsampleInto is the box filter used by Downsample.
func (m *Image) downsampleInto(dst *Image, f int) {
	if dst.Width*f != m.Width || dst.Height*f != m.Height {
		panic(fmt.Sprintf("render: cannot reduce %dx%d by %d to %dx%d",
			m.Width, m.Height, f, dst.Width, dst.Height))
	}

	n := uint32(f * f)
	stride := 3 * m.Width
	for y := range dst.Height {
		for x := range dst.Width {
			var r, g, b uint32
			for dy := range f {
				row := m.Pix[(y*f+dy)*stride+3*x*f:]
				for dx := range f {
					r += uint32(row[3*dx])
					g += uint32(row[3*dx+1])
					b += uint32(row[3*dx+2])
				}
			}
			i := 3 * (y*dst.Width + x)
			dst.Pix[i] = uint8((r + n/2) / n)
			dst.Pix[i+1] = uint8((g + n/2) / n)
			dst.Pix[i+2] = uint8((b + n/2) / n)
		}
	}
}
