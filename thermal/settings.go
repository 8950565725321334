// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"fmt"
	"sync"

	"github.com/maruel/go-thermal/palette"
)

// BlendMode selects what the camera output frame shows.
type BlendMode int

// Valid values for BlendMode.
const (
	// Fused blends the visible-light frame with the thermal frame.
	Fused BlendMode = iota
	// VisibleOnly shows the decoded camera frame.
	VisibleOnly
	// ThermalOnly shows the false-color thermal frame.
	ThermalOnly
)

func (b BlendMode) String() string {
	switch b {
	case Fused:
		return "fused"
	case VisibleOnly:
		return "visible"
	case ThermalOnly:
		return "thermal"
	}
	return fmt.Sprintf("mode(%d)", int(b))
}

// ManualStep is the increment applied by the manual scale mutators.
const ManualStep = 1.0

// Snapshot is one frame's worth of processing parameters.
type Snapshot struct {
	Factor    int
	Autoscale bool
	ManualMin float32
	ManualMax float32
	Gradient  palette.Gradient
	Mode      BlendMode
	Alpha     float64
}

// Settings is the processing configuration shared between the render loop
// and the interaction handlers.
//
// The render loop calls Snapshot once per frame; mutators each take the lock
// for a field update only, so interaction never waits on a frame being
// processed.
type Settings struct {
	mu sync.Mutex
	s  Snapshot
}

// NewSettings returns settings with the viewer's historical defaults:
// autoscale on, manual scale -5..35°C, blue to red gradient, fused at half
// weight.
func NewSettings(factor int) *Settings {
	if factor < 1 {
		factor = 1
	}
	return &Settings{
		s: Snapshot{
			Factor:    factor,
			Autoscale: true,
			ManualMin: -5,
			ManualMax: 35,
			Gradient: palette.Gradient{
				Min: palette.Color{B: 255},
				Max: palette.Color{R: 255},
			},
			Mode:  Fused,
			Alpha: 0.5,
		},
	}
}

// Snapshot copies the current parameters under the lock.
func (s *Settings) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s
}

// ToggleAutoscale flips autoscale and returns the new state.
func (s *Settings) ToggleAutoscale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Autoscale = !s.s.Autoscale
	return s.s.Autoscale
}

// StepManualMin moves the manual scale floor by ManualStep and returns the
// new value.
func (s *Settings) StepManualMin(up bool) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if up {
		s.s.ManualMin += ManualStep
	} else {
		s.s.ManualMin -= ManualStep
	}
	return s.s.ManualMin
}

// StepManualMax moves the manual scale ceiling by ManualStep and returns the
// new value.
func (s *Settings) StepManualMax(up bool) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if up {
		s.s.ManualMax += ManualStep
	} else {
		s.s.ManualMax -= ManualStep
	}
	return s.s.ManualMax
}

// SetMode selects the camera output blend mode.
func (s *Settings) SetMode(m BlendMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Mode = m
}

// SetAlpha sets the thermal contribution of the fused frame, clamped to
// [0, 1].
func (s *Settings) SetAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Alpha = alpha
}

// SetGradient replaces the anchor colors.
func (s *Settings) SetGradient(g palette.Gradient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Gradient = g
}
