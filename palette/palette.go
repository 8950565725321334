// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package palette maps normalized scalar values to colors along a two-stop
// linear gradient.
//
// It is the false-color half of the thermal pipeline: a temperature is first
// normalized against the frame's scale bounds, then interpolated between the
// gradient's anchor colors.
package palette

// Color is an 8 bits per channel RGB color.
type Color struct {
	R, G, B uint8
}

// Lerp linearly interpolates between c1 and c2.
//
// A fraction below 0 returns c1, above 1 returns c2. Channel values are
// truncated, not rounded.
func Lerp(c1, c2 Color, fraction float32) Color {
	if fraction < 0 {
		return c1
	}
	if fraction > 1 {
		return c2
	}
	return Color{
		R: uint8(float32(c1.R) + (float32(c2.R)-float32(c1.R))*fraction),
		G: uint8(float32(c1.G) + (float32(c2.G)-float32(c1.G))*fraction),
		B: uint8(float32(c1.B) + (float32(c2.B)-float32(c1.B))*fraction),
	}
}

// Normalize maps value into [0, 1] relative to [min, max].
//
// A degenerate scale (min == max) returns 0.5 instead of NaN so that a flat
// scene still renders as the gradient's mid color. Values outside the bounds
// map outside [0, 1]; Lerp clamps them.
func Normalize(min, max, value float32) float32 {
	if min == max {
		return 0.5
	}
	return (value - min) / (max - min)
}

// Gradient is a two-stop linear color gradient.
type Gradient struct {
	Min Color
	Max Color
}

// At returns the color at fraction along the gradient.
func (g Gradient) At(fraction float32) Color {
	return Lerp(g.Min, g.Max, fraction)
}

// Blend samples the gradient at steps discrete stops, at fraction k/steps
// for k in [0, steps).
//
// The last stop is sampled at (steps-1)/steps so it stays strictly short of
// Max. This matches the rendered legend strip since the first version.
func (g Gradient) Blend(steps int) []Color {
	out := make([]Color, steps)
	for k := 0; k < steps; k++ {
		out[k] = g.At(float32(k) / float32(steps))
	}
	return out
}
