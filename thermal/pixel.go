// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermal turns raw temperature grids into annotated false-color
// frames.
//
// A frame flows through three steps: extrema and mean extraction, per-sample
// gradient mapping, then upscaling with markers on the hottest and coldest
// spots. Processing parameters live in Settings; the render loop takes one
// Snapshot per frame and never holds the settings lock while processing.
package thermal

import "fmt"

// Pixel is one thermal sample with its grid position.
type Pixel struct {
	X       int
	Y       int
	Celsius float32
}

func (p Pixel) String() string {
	return fmt.Sprintf("[%d, %d]: %.2f°C", p.X, p.Y, p.Celsius)
}
