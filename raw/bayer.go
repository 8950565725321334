// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package raw

import "github.com/maruel/go-thermal/rgb"

// CFA is the color filter array tiling of a Bayer sensor.
//
// It names the 2x2 cell starting at (0, 0). Sensors that are nominally
// identical have shipped with different tilings, so the pattern is a decode
// parameter instead of a constant.
type CFA int

// Valid values for CFA.
const (
	RGGB CFA = iota
	BGGR
	GRBG
	GBRG
)

func (c CFA) String() string {
	switch c {
	case RGGB:
		return "RGGB"
	case BGGR:
		return "BGGR"
	case GRBG:
		return "GRBG"
	case GBRG:
		return "GBRG"
	}
	return "CFA(?)"
}

// Channel indices in a 2x2 CFA cell, row major.
var cfaCells = map[CFA][4]int{
	RGGB: {chRed, chGreen, chGreen, chBlue},
	BGGR: {chBlue, chGreen, chGreen, chRed},
	GRBG: {chGreen, chRed, chBlue, chGreen},
	GBRG: {chGreen, chBlue, chRed, chGreen},
}

const (
	chRed = iota
	chGreen
	chBlue
)

// channelAt returns which channel the sensor recorded at (x, y).
func (c CFA) channelAt(x, y int) int {
	return cfaCells[c][(y&1)<<1|x&1]
}

// Unpack10 unpacks n pixels of 10 bits packed Bayer data into an 8 bit
// mosaic.
//
// The wire format is 5 bytes per 4 pixels: 4 bytes holding the 8 most
// significant bits followed by one byte with the 4 pixels' 2 low bits. The
// 10 bit value is rescaled to 8 bits by *255/1024, truncated.
func Unpack10(buf []byte, n int) ([]uint8, error) {
	want := n * 5 / 4
	if len(buf) < want {
		return nil, &ShortBufferError{Format: Bayer10, Got: len(buf), Want: want}
	}
	out := make([]uint8, n)
	for i := 0; i < n/4; i++ {
		g := buf[i*5 : i*5+5]
		for k := 0; k < 4; k++ {
			v := uint16(g[k])<<2 | uint16(g[4]>>(2*k))&3
			out[i*4+k] = uint8(uint32(v) * 255 / 1024)
		}
	}
	return out, nil
}

// DecodeBayer10 unpacks and demosaics a 10 bits packed Bayer frame.
func DecodeBayer10(buf []byte, w, h int, cfa CFA) (*rgb.Image, error) {
	mosaic, err := Unpack10(buf, w*h)
	if err != nil {
		return nil, err
	}
	return Demosaic(mosaic, w, h, cfa), nil
}

// Demosaic reconstructs full RGB pixels from an 8 bit Bayer mosaic with
// bilinear interpolation. Neighbor lookups outside the mosaic are clamped to
// the nearest edge pixel.
func Demosaic(mosaic []uint8, w, h int, cfa CFA) *rgb.Image {
	px := func(x, y int) int {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		return int(mosaic[y*w+x])
	}
	out := rgb.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b int
			switch cfa.channelAt(x, y) {
			case chRed:
				r = px(x, y)
				g = (px(x-1, y) + px(x+1, y) + px(x, y-1) + px(x, y+1)) / 4
				b = (px(x-1, y-1) + px(x+1, y-1) + px(x-1, y+1) + px(x+1, y+1)) / 4
			case chBlue:
				b = px(x, y)
				g = (px(x-1, y) + px(x+1, y) + px(x, y-1) + px(x, y+1)) / 4
				r = (px(x-1, y-1) + px(x+1, y-1) + px(x-1, y+1) + px(x+1, y+1)) / 4
			default:
				g = px(x, y)
				if cfa.channelAt(x+1, y) == chRed {
					r = (px(x-1, y) + px(x+1, y)) / 2
					b = (px(x, y-1) + px(x, y+1)) / 2
				} else {
					b = (px(x-1, y) + px(x+1, y)) / 2
					r = (px(x, y-1) + px(x, y+1)) / 2
				}
			}
			j := (y*w + x) * 3
			out.Pix[j] = uint8(r)
			out.Pix[j+1] = uint8(g)
			out.Pix[j+2] = uint8(b)
		}
	}
	return out
}
