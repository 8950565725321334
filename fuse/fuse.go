// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fuse composites a visible-light frame with a thermal false-color
// frame of a different resolution.
//
// The output keeps the visible frame's resolution; the thermal frame is
// nearest-neighbor sampled onto it. The visible frame contributes its
// luminance only, so the thermal gradient stays readable on top of the
// scene's structure.
package fuse

import "github.com/maruel/go-thermal/rgb"

// Blend fuses bg (thermal) over fg (visible) with weight alpha.
//
// alpha is the thermal contribution in [0, 1]; out of range values are
// clamped. alpha 0 returns the visible frame converted to grayscale, alpha 1
// the thermal frame resampled to the visible frame's dimensions.
func Blend(fg, bg *rgb.Image, alpha float64) *rgb.Image {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	out := rgb.New(fg.W, fg.H)
	for y := 0; y < fg.H; y++ {
		by := y * bg.H / fg.H
		for x := 0; x < fg.W; x++ {
			bx := x * bg.W / fg.W
			j := (y*fg.W + x) * 3
			lum := luminance(fg.Pix[j], fg.Pix[j+1], fg.Pix[j+2])
			k := (by*bg.W + bx) * 3
			out.Pix[j] = uint8(float64(bg.Pix[k])*alpha + lum*(1-alpha))
			out.Pix[j+1] = uint8(float64(bg.Pix[k+1])*alpha + lum*(1-alpha))
			out.Pix[j+2] = uint8(float64(bg.Pix[k+2])*alpha + lum*(1-alpha))
		}
	}
	return out
}

// luminance weighs the channels 0.3/0.59/0.11, clamped to [0, 255].
func luminance(r, g, b uint8) float64 {
	l := 0.3*float64(r) + 0.59*float64(g) + 0.11*float64(b)
	if l > 255 {
		l = 255
	}
	return l
}
