// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fuse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maruel/go-thermal/palette"
	"github.com/maruel/go-thermal/rgb"
)

func TestBlendAlphaZero(t *testing.T) {
	fg := rgb.New(2, 1)
	fg.SetRGB(0, 0, palette.Color{R: 255})
	fg.SetRGB(1, 0, palette.Color{R: 10, G: 20, B: 30})
	bg := rgb.New(4, 4)
	for i := range bg.Pix {
		bg.Pix[i] = 200
	}
	out := Blend(fg, bg, 0)
	require.Equal(t, 2, out.W)
	require.Equal(t, 1, out.H)
	// 0.3*255 = 76.5 truncated, identical on all three channels.
	require.Equal(t, palette.Color{R: 76, G: 76, B: 76}, out.RGBAt(0, 0))
	// 0.3*10 + 0.59*20 + 0.11*30 = 18.1.
	require.Equal(t, palette.Color{R: 18, G: 18, B: 18}, out.RGBAt(1, 0))
}

func TestBlendAlphaOne(t *testing.T) {
	fg := rgb.New(4, 2)
	bg := rgb.New(2, 1)
	bg.SetRGB(0, 0, palette.Color{R: 100})
	bg.SetRGB(1, 0, palette.Color{B: 200})
	out := Blend(fg, bg, 1)
	require.Equal(t, 4, out.W)
	require.Equal(t, 2, out.H)
	// Left half samples bg (0,0), right half bg (1,0).
	require.Equal(t, palette.Color{R: 100}, out.RGBAt(0, 0))
	require.Equal(t, palette.Color{R: 100}, out.RGBAt(1, 1))
	require.Equal(t, palette.Color{B: 200}, out.RGBAt(2, 0))
	require.Equal(t, palette.Color{B: 200}, out.RGBAt(3, 1))
}

func TestBlendMix(t *testing.T) {
	fg := rgb.New(1, 1)
	fg.SetRGB(0, 0, palette.Color{R: 100, G: 100, B: 100}) // luminance 100
	bg := rgb.New(1, 1)
	bg.SetRGB(0, 0, palette.Color{R: 200})
	out := Blend(fg, bg, 0.5)
	require.Equal(t, palette.Color{R: 150, G: 50, B: 50}, out.RGBAt(0, 0))
}

func TestBlendClampsAlpha(t *testing.T) {
	fg := rgb.New(1, 1)
	fg.SetRGB(0, 0, palette.Color{R: 100, G: 100, B: 100})
	bg := rgb.New(1, 1)
	require.Equal(t, Blend(fg, bg, 0).RGBAt(0, 0), Blend(fg, bg, -3).RGBAt(0, 0))
	require.Equal(t, Blend(fg, bg, 1).RGBAt(0, 0), Blend(fg, bg, 7).RGBAt(0, 0))
}

func TestBlendOutputMatchesForeground(t *testing.T) {
	for _, d := range [][4]int{{3, 5, 10, 2}, {8, 8, 1, 1}, {2, 2, 9, 9}} {
		out := Blend(rgb.New(d[0], d[1]), rgb.New(d[2], d[3]), 0.5)
		require.Equal(t, d[0], out.W)
		require.Equal(t, d[1], out.H)
	}
}
