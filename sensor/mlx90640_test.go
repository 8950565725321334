// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensor

import (
	"testing"

	"periph.io/x/periph/conn/i2c/i2ctest"
)

func TestNewMLX90640(t *testing.T) {
	b := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x33, W: []byte{0x80, 0x00}, R: []byte{0x00, 0x08}}, // ping via status
			{Addr: 0x33, W: []byte{0x80, 0x0D, 0x19, 0x01}},            // control: 4Hz chess
		},
	}
	m, err := NewMLX90640(&b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewMLX90640Fail(t *testing.T) {
	b := i2ctest.Playback{DontPanic: true}
	if _, err := NewMLX90640(&b, 0x33); err == nil {
		t.Fatal("expected ping failure")
	}
}

func TestNextFrame(t *testing.T) {
	ram := make([]byte, mlxRows*mlxCols*2)
	// Word 0 is 0x09C4 = 2500, linearized to 25.00°C.
	ram[0] = 0x09
	ram[1] = 0xC4
	b := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x33, W: []byte{0x80, 0x00}, R: []byte{0x00, 0x08}},
			{Addr: 0x33, W: []byte{0x80, 0x0D, 0x19, 0x01}},
			{Addr: 0x33, W: []byte{0x80, 0x00}, R: []byte{0x00, 0x08}}, // new data ready
			{Addr: 0x33, W: []byte{0x04, 0x00}, R: ram},                // RAM readout
			{Addr: 0x33, W: []byte{0x80, 0x00, 0x00, 0x10}},            // ack
		},
	}
	m, err := NewMLX90640(&b, 0)
	if err != nil {
		t.Fatal(err)
	}
	samples, rows, cols, err := m.NextFrame()
	if err != nil {
		t.Fatal(err)
	}
	if rows != 24 || cols != 32 || len(samples) != 24*32 {
		t.Fatal(rows, cols, len(samples))
	}
	if samples[0] != 25 {
		t.Fatal(samples[0])
	}
	if s := m.Stats(); s.GoodFrames != 1 || s.TransferFails != 0 {
		t.Fatalf("%+v", s)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}
