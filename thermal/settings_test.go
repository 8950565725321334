// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings(6).Snapshot()
	require.Equal(t, 6, s.Factor)
	require.True(t, s.Autoscale)
	require.Equal(t, float32(-5), s.ManualMin)
	require.Equal(t, float32(35), s.ManualMax)
	require.Equal(t, uint8(255), s.Gradient.Min.B)
	require.Equal(t, uint8(255), s.Gradient.Max.R)
	require.Equal(t, Fused, s.Mode)

	require.Equal(t, 1, NewSettings(0).Snapshot().Factor)
}

func TestSettingsMutators(t *testing.T) {
	s := NewSettings(1)
	require.False(t, s.ToggleAutoscale())
	require.True(t, s.ToggleAutoscale())
	require.Equal(t, float32(-4), s.StepManualMin(true))
	require.Equal(t, float32(-5), s.StepManualMin(false))
	require.Equal(t, float32(34), s.StepManualMax(false))
	s.SetMode(ThermalOnly)
	s.SetAlpha(1.7)
	snap := s.Snapshot()
	require.Equal(t, ThermalOnly, snap.Mode)
	require.Equal(t, 1.0, snap.Alpha)
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewSettings(2)
	snap := s.Snapshot()
	s.SetMode(VisibleOnly)
	require.Equal(t, Fused, snap.Mode)
}
