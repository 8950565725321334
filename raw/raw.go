// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package raw decodes device-native packed pixel formats into RGB.
//
// Three encodings are supported: 10 bits packed Bayer mosaic as produced by
// Raspberry Pi cameras in raw mode, YUYV 4:2:2 as produced by UVC webcams,
// and planar YUV 4:2:0.
package raw

import (
	"fmt"

	"github.com/maruel/go-thermal/rgb"
)

// Format identifies the encoding of a raw camera buffer.
type Format int

// Valid values for Format.
const (
	Bayer10 Format = iota
	YUYV
	YUV420
)

func (f Format) String() string {
	switch f {
	case Bayer10:
		return "bayer10"
	case YUYV:
		return "yuyv"
	case YUV420:
		return "yuv420"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ShortBufferError reports a raw buffer smaller than what the declared
// dimensions require.
type ShortBufferError struct {
	Format Format
	Got    int
	Want   int
}

func (s *ShortBufferError) Error() string {
	return fmt.Sprintf("raw: %s buffer is %d bytes, need %d", s.Format, s.Got, s.Want)
}

// Decode converts a raw camera buffer into an RGB image.
//
// cfa is only used for Bayer10.
func Decode(f Format, cfa CFA, buf []byte, w, h int) (*rgb.Image, error) {
	switch f {
	case Bayer10:
		return DecodeBayer10(buf, w, h, cfa)
	case YUYV:
		return DecodeYUYV(buf, w, h)
	case YUV420:
		return DecodeYUV420(buf, w, h)
	}
	return nil, fmt.Errorf("raw: unknown format %s", f)
}

func clamp8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
