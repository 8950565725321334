// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a grid has no samples.
var ErrEmptyInput = errors.New("thermal: empty sample grid")

// GridSizeError reports a sample slice whose length does not match the
// declared grid shape.
type GridSizeError struct {
	Len  int
	Rows int
	Cols int
}

func (g *GridSizeError) Error() string {
	return fmt.Sprintf("thermal: %d samples do not fit a %dx%d grid", g.Len, g.Rows, g.Cols)
}

// Stats are the extrema and mean of one temperature grid.
type Stats struct {
	Min  Pixel
	Max  Pixel
	Mean float32
}

// Extract scans a row-major °C grid in one pass.
//
// The extrema are seeded from the manual scale bounds, min at manualMax and
// max at manualMin, so the first comparison always succeeds even when the
// bounds are reversed. Comparisons are non-strict: on ties, the last scanned
// sample wins.
func Extract(samples []float32, rows, cols int, manualMin, manualMax float32) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrEmptyInput
	}
	if len(samples) != rows*cols {
		return Stats{}, &GridSizeError{Len: len(samples), Rows: rows, Cols: cols}
	}
	s := Stats{
		Min: Pixel{Celsius: manualMax},
		Max: Pixel{Celsius: manualMin},
	}
	sum := float64(0)
	for i, c := range samples {
		row := i / cols
		col := i % cols
		if c <= s.Min.Celsius {
			s.Min = Pixel{X: col, Y: row, Celsius: c}
		}
		if c >= s.Max.Celsius {
			s.Max = Pixel{X: col, Y: row, Celsius: c}
		}
		sum += float64(c)
	}
	s.Mean = float32(sum / float64(len(samples)))
	return s, nil
}
