// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensortest implements fake acquisition sources for testing and
// for running the viewer without hardware.
package sensortest

import (
	"math/rand"
	"time"

	"github.com/maruel/go-thermal/raw"
	"github.com/maruel/go-thermal/sensor"
)

const (
	rows = 24
	cols = 32
)

// Thermal is a fake sensor.Thermal producing drifting warm blobs over a
// room-temperature background. It paces itself at 4 frames per second like
// the real array.
type Thermal struct {
	noise    *noise
	interval time.Duration
	samples  [rows * cols]float32
	stats    sensor.Stats
}

// NewThermal returns a fake 32x24 thermal source.
func NewThermal() *Thermal {
	return &Thermal{noise: makeNoise(), interval: 250 * time.Millisecond}
}

func (t *Thermal) NextFrame() ([]float32, int, int, error) {
	time.Sleep(t.interval)
	t.noise.update()
	t.noise.render(t.samples[:])
	t.stats.GoodFrames++
	return t.samples[:], rows, cols, nil
}

func (t *Thermal) Stats() sensor.Stats {
	return t.stats
}

func (t *Thermal) Close() error {
	return nil
}

type vector struct {
	intensity float64
	x         float64
	y         float64
}

// noise is cheezy but looks enough like a warm scene to exercise the whole
// pipeline without a device.
type noise struct {
	rand    *rand.Rand
	vectors []vector
}

func makeNoise() *noise {
	n := &noise{rand: rand.New(rand.NewSource(0))}
	n.vectors = make([]vector, 10)
	for i := range n.vectors {
		n.vectors[i].intensity = n.rand.NormFloat64() * 10
		n.vectors[i].x = n.rand.NormFloat64()*6 + 16
		n.vectors[i].y = n.rand.NormFloat64()*4 + 12
	}
	return n
}

func (n *noise) update() {
	for i := range n.vectors {
		n.vectors[i].intensity += n.rand.NormFloat64() * 0.1
		n.vectors[i].x += n.rand.NormFloat64() * 0.1
		n.vectors[i].y += n.rand.NormFloat64() * 0.1
	}
}

func (n *noise) render(out []float32) {
	const ambient = 21.0
	for y := 0; y < rows; y++ {
		fy := float64(y)
		for x := 0; x < cols; x++ {
			fx := float64(x)
			value := ambient
			for _, vect := range n.vectors {
				distance := (vect.x-fx)*(vect.x-fx) + (vect.y-fy)*(vect.y-fy)
				value += vect.intensity / (distance + 1)
			}
			if value > ambient+16 {
				value = ambient + 16
			}
			if value < ambient-16 {
				value = ambient - 16
			}
			out[y*cols+x] = float32(value)
		}
	}
}

// Camera is a fake sensor.Camera emitting YUYV color bars that slide one
// column per frame.
type Camera struct {
	w, h   int
	offset int
	buf    []byte
}

// NewCamera returns a fake camera. w must be even.
func NewCamera(w, h int) *Camera {
	return &Camera{w: w, h: h, buf: make([]byte, w*h*2)}
}

// Eight SMPTE-ish bars as Y, U, V triples: white, yellow, cyan, green,
// magenta, red, blue, black.
var bars = [8][3]byte{
	{235, 128, 128},
	{210, 16, 146},
	{170, 166, 16},
	{145, 54, 34},
	{106, 202, 222},
	{81, 90, 240},
	{41, 240, 110},
	{16, 128, 128},
}

func (c *Camera) NextRaw() ([]byte, int, int, error) {
	barW := c.w / len(bars)
	if barW == 0 {
		barW = 1
	}
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x += 2 {
			bar := bars[((x+c.offset)/barW)%len(bars)]
			j := (y*c.w + x) * 2
			c.buf[j] = bar[0]
			c.buf[j+1] = bar[1]
			c.buf[j+2] = bar[0]
			c.buf[j+3] = bar[2]
		}
	}
	c.offset += 2
	return c.buf, c.w, c.h, nil
}

func (c *Camera) Format() raw.Format {
	return raw.YUYV
}

func (c *Camera) Close() error {
	return nil
}
