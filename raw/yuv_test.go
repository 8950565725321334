// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package raw

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maruel/go-thermal/palette"
)

func TestDecodeYUYVGray(t *testing.T) {
	// Neutral chroma decodes to gray at the luma value.
	buf := []byte{128, 128, 64, 128}
	img, err := DecodeYUYV(buf, 2, 1)
	require.NoError(t, err)
	require.Equal(t, palette.Color{R: 128, G: 128, B: 128}, img.RGBAt(0, 0))
	require.Equal(t, palette.Color{R: 64, G: 64, B: 64}, img.RGBAt(1, 0))
}

func TestDecodeYUYVClamps(t *testing.T) {
	// Saturated chroma must clamp every channel, high and low.
	img, err := DecodeYUYV([]byte{255, 0, 0, 255}, 2, 1)
	require.NoError(t, err)
	c := img.RGBAt(0, 0)
	require.Equal(t, uint8(255), c.R) // 255 + 1.4065*127
	require.Equal(t, uint8(120), c.G) // 255 - 1.0624*127 = 120.07
	require.Equal(t, uint8(104), c.B) // 255 + 1.179*-128 = 104.08
	c = img.RGBAt(1, 0)
	require.Equal(t, uint8(178), c.R) // 0 + 1.4065*127
	require.Equal(t, uint8(0), c.G)
	require.Equal(t, uint8(0), c.B)
}

func TestDecodeYUYVShort(t *testing.T) {
	_, err := DecodeYUYV(make([]byte, 7), 2, 2)
	require.Error(t, err)
	serr, ok := err.(*ShortBufferError)
	require.True(t, ok)
	require.Equal(t, YUYV, serr.Format)
	require.Equal(t, 8, serr.Want)
}

func TestDecodeYUV420Gray(t *testing.T) {
	buf := make([]byte, 24)
	for i := range buf {
		buf[i] = 128
	}
	buf[5] = 30
	img, err := DecodeYUV420(buf, 4, 4)
	require.NoError(t, err)
	require.Equal(t, palette.Color{R: 128, G: 128, B: 128}, img.RGBAt(0, 0))
	require.Equal(t, palette.Color{R: 30, G: 30, B: 30}, img.RGBAt(1, 1))
}

func TestDecodeYUV420Chroma(t *testing.T) {
	// 4x4 luma: U plane at 16, V plane at 16*9/8 = 18. The chroma sample
	// for the top-left 2x2 block is buf[16] and buf[18].
	buf := make([]byte, 24)
	for i := 0; i < 16; i++ {
		buf[i] = 128
	}
	for i := 16; i < 24; i++ {
		buf[i] = 128
	}
	buf[16] = 228 // U +100
	buf[18] = 128
	img, err := DecodeYUV420(buf, 4, 4)
	require.NoError(t, err)
	c := img.RGBAt(0, 0)
	require.Equal(t, uint8(128), c.R)
	require.Equal(t, uint8(93), c.G)  // 128 - 0.344*100 = 93.6
	require.Equal(t, uint8(255), c.B) // 128 + 1.772*100 clamps
	// All four pixels of the 2x2 block share the chroma sample.
	require.Equal(t, c, img.RGBAt(1, 1))
}

func TestDecodeYUV420Short(t *testing.T) {
	_, err := DecodeYUV420(make([]byte, 23), 4, 4)
	require.Error(t, err)
	serr, ok := err.(*ShortBufferError)
	require.True(t, ok)
	require.Equal(t, 24, serr.Want)
}

func TestDecodeDispatch(t *testing.T) {
	img, err := Decode(YUYV, RGGB, []byte{128, 128, 128, 128}, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 2, img.W)
	_, err = Decode(Format(99), RGGB, nil, 0, 0)
	require.Error(t, err)
}
