// Copyright 2023 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package raw

import "github.com/maruel/go-thermal/rgb"

// DecodeYUYV converts a YUYV 4:2:2 buffer into RGB.
//
// Each 4 input bytes Y0 U Y1 V produce two pixels sharing one chroma
// sample. Every computed channel is clamped to [0, 255] before truncation.
func DecodeYUYV(buf []byte, w, h int) (*rgb.Image, error) {
	want := w * h * 2
	if len(buf) < want {
		return nil, &ShortBufferError{Format: YUYV, Got: len(buf), Want: want}
	}
	out := rgb.New(w, h)
	for i := 0; i < w*h/2; i++ {
		y0 := float32(buf[4*i])
		u := float32(buf[4*i+1]) - 128
		y1 := float32(buf[4*i+2])
		v := float32(buf[4*i+3]) - 128

		// Both green terms track V.
		rOff := 1.4065 * v
		gOff := 0.3455*v + 0.7169*v
		bOff := 1.1790 * u

		j := i * 6
		out.Pix[j] = clamp8(y0 + rOff)
		out.Pix[j+1] = clamp8(y0 - gOff)
		out.Pix[j+2] = clamp8(y0 + bOff)
		out.Pix[j+3] = clamp8(y1 + rOff)
		out.Pix[j+4] = clamp8(y1 - gOff)
		out.Pix[j+5] = clamp8(y1 + bOff)
	}
	return out, nil
}

// DecodeYUV420 converts a planar YUV 4:2:0 buffer into RGB.
//
// The luma plane is w*h bytes. The U plane follows the luma plane and the V
// plane starts at 9/8 of the luma size; each holds one sample per 2x2 luma
// block.
func DecodeYUV420(buf []byte, w, h int) (*rgb.Image, error) {
	luma := w * h
	want := luma * 3 / 2
	if len(buf) < want {
		return nil, &ShortBufferError{Format: YUV420, Got: len(buf), Want: want}
	}
	uOff := luma
	vOff := luma * 9 / 8
	cw := w / 2
	out := rgb.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ci := (y/2)*cw + x/2
			yv := float32(buf[y*w+x])
			u := float32(buf[uOff+ci]) - 128
			v := float32(buf[vOff+ci]) - 128
			j := (y*w + x) * 3
			out.Pix[j] = clamp8(yv + 1.402*v)
			out.Pix[j+1] = clamp8(yv - 0.344*u - 0.714*v)
			out.Pix[j+2] = clamp8(yv + 1.772*u)
		}
	}
	return out, nil
}
