// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"github.com/pkg/errors"

	"github.com/maruel/go-thermal/palette"
	"github.com/maruel/go-thermal/rgb"
)

// Marker colors for the extrema overlays.
var (
	minMarker = palette.Color{G: 255}
	maxMarker = palette.Color{R: 255, G: 255, B: 255}
)

// Render converts one temperature grid into an annotated false-color image.
//
// The scale bounds are the observed extrema when autoscale is on, the manual
// bounds otherwise. The frame is upscaled by the snapshot's interpolation
// factor with a Lanczos filter, then the coldest spot is marked in green and
// the hottest in white.
func Render(samples []float32, rows, cols int, s Snapshot) (*rgb.Image, Stats, error) {
	stats, err := Extract(samples, rows, cols, s.ManualMin, s.ManualMax)
	if err != nil {
		return nil, Stats{}, err
	}
	min, max := s.ManualMin, s.ManualMax
	if s.Autoscale {
		min, max = stats.Min.Celsius, stats.Max.Celsius
	}
	colors := make([]palette.Color, len(samples))
	for i, c := range samples {
		colors[i] = s.Gradient.At(palette.Normalize(min, max, c))
	}
	img, err := rgb.FromColors(colors, cols, rows)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "thermal: render")
	}
	out := img.Upscale(s.Factor)
	out.DrawCross(stats.Min.X*s.Factor+s.Factor/2, stats.Min.Y*s.Factor+s.Factor/2, minMarker)
	out.DrawCross(stats.Max.X*s.Factor+s.Factor/2, stats.Max.Y*s.Factor+s.Factor/2, maxMarker)
	return out, stats, nil
}

// Legend renders the gradient as a w x h strip, min color on top.
//
// The strip is a 1 x steps column stretched with nearest-neighbor sampling
// so each stop stays a crisp band.
func Legend(g palette.Gradient, steps, w, h int) *rgb.Image {
	colors := g.Blend(steps)
	img, _ := rgb.FromColors(colors, 1, steps)
	return img.Stretch(w, h)
}
