// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensortest

import (
	"testing"

	"github.com/maruel/go-thermal/raw"
	"github.com/maruel/go-thermal/thermal"
)

func TestThermal(t *testing.T) {
	f := NewThermal()
	f.interval = 0
	samples, rows, cols, err := f.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	if rows != 24 || cols != 32 || len(samples) != 24*32 {
		t.Fatal(rows, cols, len(samples))
	}
	for i, v := range samples {
		if v < 5 || v > 37 {
			t.Fatalf("sample %d out of range: %g", i, v)
		}
	}
	if f.Stats().GoodFrames != 1 {
		t.Fatal(f.Stats())
	}
}

func TestThermalRenders(t *testing.T) {
	f := NewThermal()
	f.interval = 0
	samples, rows, cols, _ := f.NextFrame()
	if _, _, err := thermal.Render(samples, rows, cols, thermal.NewSettings(2).Snapshot()); err != nil {
		t.Fatal(err)
	}
}

func TestCamera(t *testing.T) {
	c := NewCamera(64, 48)
	buf, w, h, err := c.NextRaw()
	if err != nil {
		t.Fatal(err)
	}
	if w != 64 || h != 48 || len(buf) != 64*48*2 {
		t.Fatal(w, h, len(buf))
	}
	if c.Format() != raw.YUYV {
		t.Fatal(c.Format())
	}
	img, err := raw.DecodeYUYV(buf, w, h)
	if err != nil {
		t.Fatal(err)
	}
	if img.W != 64 || img.H != 48 {
		t.Fatal(img.W, img.H)
	}
	// The bars slide between frames. NextRaw reuses its buffer, so keep a
	// copy of the first frame.
	prev := append([]byte(nil), buf...)
	buf2, _, _, _ := c.NextRaw()
	same := true
	for i := range buf2 {
		if buf2[i] != prev[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("pattern did not move")
	}
}
