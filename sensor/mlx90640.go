// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensor

import (
	"time"

	"github.com/pkg/errors"
	"periph.io/x/periph/conn/i2c"
)

// MLX90640 register map, datasheet §8.2.
const (
	mlxDefaultAddr = 0x33
	regStatus      = 0x8000
	regControl     = 0x800D
	ramStart       = 0x0400

	// Status register bits.
	statusNewData  = 1 << 3
	statusSubPage  = 0x0007
	statusOverride = 1 << 4

	// Control register: 4Hz refresh, chess pattern readout.
	ctrlDefault = 0x1901

	mlxRows = 24
	mlxCols = 32
)

// MLX90640 reads a Melexis MLX90640 32x24 thermal array over i²c.
//
// Temperature conversion uses a coarse linearization of the RAM words.
// TODO(maruel): Implement the full per-pixel calibration flow from datasheet
// §11 (EEPROM gain, offset, Kv/Kta compensation).
type MLX90640 struct {
	d       i2c.Dev
	period  time.Duration
	stats   Stats
	samples [mlxRows * mlxCols]float32
	words   [mlxRows * mlxCols]uint16
}

// NewMLX90640 opens the device at addr (0 means the default 0x33), pings it
// via the status register and programs the default refresh rate.
func NewMLX90640(b i2c.Bus, addr uint16) (*MLX90640, error) {
	if addr == 0 {
		addr = mlxDefaultAddr
	}
	m := &MLX90640{d: i2c.Dev{Bus: b, Addr: addr}, period: 250 * time.Millisecond}
	if _, err := m.readReg(regStatus); err != nil {
		return nil, errors.Wrap(err, "mlx90640: no response")
	}
	if err := m.writeReg(regControl, ctrlDefault); err != nil {
		return nil, errors.Wrap(err, "mlx90640: set control")
	}
	return m, nil
}

func (m *MLX90640) Close() error {
	return nil
}

// NextFrame polls until the device reports fresh data, then reads the whole
// pixel RAM.
//
// Polling is paced at a quarter of the refresh period so a ready frame is
// picked up quickly without hammering the bus.
func (m *MLX90640) NextFrame() ([]float32, int, int, error) {
	for {
		st, err := m.readReg(regStatus)
		if err != nil {
			m.stats.TransferFails++
			m.stats.LastFail = err
			return nil, 0, 0, errors.Wrap(err, "mlx90640: status")
		}
		if st&statusNewData != 0 {
			break
		}
		m.stats.NotReady++
		time.Sleep(m.period / 4)
	}
	if err := m.readRAM(); err != nil {
		m.stats.TransferFails++
		m.stats.LastFail = err
		return nil, 0, 0, errors.Wrap(err, "mlx90640: frame")
	}
	// Clear the new-data bit so the next poll sees the next subpage.
	if err := m.writeReg(regStatus, statusOverride); err != nil {
		m.stats.TransferFails++
		m.stats.LastFail = err
		return nil, 0, 0, errors.Wrap(err, "mlx90640: ack")
	}
	for i, w := range m.words {
		m.samples[i] = toCelsius(w)
	}
	m.stats.GoodFrames++
	return m.samples[:], mlxRows, mlxCols, nil
}

func (m *MLX90640) Stats() Stats {
	return m.stats
}

// toCelsius linearizes one RAM word to °C.
func toCelsius(w uint16) float32 {
	return float32(int16(w)) / 100
}

func (m *MLX90640) readReg(reg uint16) (uint16, error) {
	var r [2]byte
	if err := m.d.Tx([]byte{byte(reg >> 8), byte(reg)}, r[:]); err != nil {
		return 0, err
	}
	return uint16(r[0])<<8 | uint16(r[1]), nil
}

func (m *MLX90640) writeReg(reg, v uint16) error {
	return m.d.Tx([]byte{byte(reg >> 8), byte(reg), byte(v >> 8), byte(v)}, nil)
}

func (m *MLX90640) readRAM() error {
	var r [mlxRows * mlxCols * 2]byte
	if err := m.d.Tx([]byte{byte(ramStart >> 8), byte(ramStart & 0xff)}, r[:]); err != nil {
		return err
	}
	for i := range m.words {
		m.words[i] = uint16(r[2*i])<<8 | uint16(r[2*i+1])
	}
	return nil
}
