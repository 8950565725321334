// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensor defines the acquisition sources feeding the pipeline and
// implements the MLX90640 thermal array glue.
//
// The pipeline never touches hardware itself; it consumes whatever these
// interfaces hand it. Both can be mocked, see package sensortest.
package sensor

import (
	"io"

	"github.com/maruel/go-thermal/raw"
)

// Thermal supplies one temperature grid per call.
type Thermal interface {
	io.Closer

	// NextFrame blocks until a frame is ready and returns row-major °C
	// samples with the grid shape. The slice is only valid until the next
	// call.
	NextFrame() (samples []float32, rows, cols int, err error)
	// Stats returns acquisition counters.
	Stats() Stats
}

// Camera supplies raw visible-light frames.
type Camera interface {
	io.Closer

	// NextRaw blocks until a frame is ready and returns the device-native
	// buffer with its dimensions. The slice is only valid until the next
	// call.
	NextRaw() (buf []byte, w, h int, err error)
	// Format reports the buffer encoding.
	Format() raw.Format
}

// Stats are cumulative acquisition counters.
type Stats struct {
	LastFail      error
	GoodFrames    int // Frames handed to the pipeline.
	NotReady      int // Polls that found no fresh subpage.
	TransferFails int // Bus transactions that errored.
}
