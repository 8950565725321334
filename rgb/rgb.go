// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgb implements a packed 24 bits per pixel RGB image buffer.
//
// It implements image.Image but keeps the pixels as a flat row-major RGB
// byte slice, which is what the sensor decoders and the compositor work on.
package rgb

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/maruel/go-thermal/palette"
)

// DimensionError reports a pixel buffer whose length does not match the
// declared dimensions.
type DimensionError struct {
	Len    int
	Width  int
	Height int
}

func (d *DimensionError) Error() string {
	return fmt.Sprintf("rgb: buffer of %d pixels does not fit %dx%d", d.Len, d.Width, d.Height)
}

// Image is a w*h*3 bytes row-major RGB image.
type Image struct {
	Pix []uint8
	W   int
	H   int
}

// New returns a black image of the requested size.
func New(w, h int) *Image {
	return &Image{Pix: make([]uint8, w*h*3), W: w, H: h}
}

// FromColors writes colors in scan order into a new image.
//
// It fails with a DimensionError if the number of colors does not match the
// dimensions.
func FromColors(colors []palette.Color, w, h int) (*Image, error) {
	if len(colors) != w*h {
		return nil, &DimensionError{Len: len(colors), Width: w, Height: h}
	}
	i := New(w, h)
	for j, c := range colors {
		i.Pix[3*j] = c.R
		i.Pix[3*j+1] = c.G
		i.Pix[3*j+2] = c.B
	}
	return i, nil
}

// FromImage converts any image.Image.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok {
		out := New(b.Dx(), b.Dy())
		for y := 0; y < out.H; y++ {
			s := n.Pix[y*n.Stride:]
			d := out.Pix[y*out.W*3:]
			for x := 0; x < out.W; x++ {
				d[3*x] = s[4*x]
				d[3*x+1] = s[4*x+1]
				d[3*x+2] = s[4*x+2]
			}
		}
		return out
	}
	out := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			out.SetRGB(x-b.Min.X, y-b.Min.Y, palette.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return out
}

func (i *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.W, i.H)
}

func (i *Image) At(x, y int) color.Color {
	c := i.RGBAt(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (i *Image) RGBAt(x, y int) palette.Color {
	j := (y*i.W + x) * 3
	return palette.Color{R: i.Pix[j], G: i.Pix[j+1], B: i.Pix[j+2]}
}

func (i *Image) SetRGB(x, y int, c palette.Color) {
	j := (y*i.W + x) * 3
	i.Pix[j] = c.R
	i.Pix[j+1] = c.G
	i.Pix[j+2] = c.B
}

// Upscale resizes by an integer factor with a Lanczos (a=3) filter.
//
// factor 1 returns a plain copy.
func (i *Image) Upscale(factor int) *Image {
	if factor <= 1 {
		out := New(i.W, i.H)
		copy(out.Pix, i.Pix)
		return out
	}
	return FromImage(imaging.Resize(i, i.W*factor, i.H*factor, imaging.Lanczos))
}

// Stretch resizes to w x h with nearest-neighbor sampling. Used for the
// legend strip where resampling would smear the discrete stops.
func (i *Image) Stretch(w, h int) *Image {
	return FromImage(imaging.Resize(i, w, h, imaging.NearestNeighbor))
}

// DrawCross draws a 9 pixel plus-shaped marker centered on (x, y).
//
// Each pixel is bounds checked on its final coordinate, so a marker near an
// edge is clipped instead of wrapping or writing out of bounds.
func (i *Image) DrawCross(x, y int, c palette.Color) {
	for k := -2; k <= 2; k++ {
		if ax := x + k; ax >= 0 && ax < i.W && y >= 0 && y < i.H {
			i.SetRGB(ax, y, c)
		}
		if ay := y + k; ay >= 0 && ay < i.H && x >= 0 && x < i.W {
			i.SetRGB(x, ay, c)
		}
	}
}
