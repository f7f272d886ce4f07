// Package qgif encodes raster frames into the QGIF container the RT82
// display firmware expects.
//
// Container layout:
//
//	offset 0..3   magic "QGIF"
//	offset 4      format version (0x01)
//	offset 5      playback mode: 0x05 animated loop, 0x03 static
//	offset 6..7   frame width, uint16 little-endian
//	offset 8..9   frame height, uint16 little-endian
//	offset 10     frames per second
//	offset 11     frame count
//	offset 12..15 reserved, zero
//	offset 16..   frames, width*height RGB565 little-endian pixels each
package qgif

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

const (
	Magic      = "QGIF"
	Version    = 0x01
	ModeLoop   = 0x05
	ModeStatic = 0x03

	HeaderSize = 16
)

var (
	// ErrNoFrames is returned when Encode is called without frames.
	ErrNoFrames = errors.New("qgif: no frames to encode")

	// ErrBadHeight is returned when the frame height is not divisible by
	// 4, which the display firmware rejects.
	ErrBadHeight = errors.New("qgif: frame height must be divisible by 4")
)

// Encode packs the frames into a QGIF stream. All frames must share the
// same dimensions; the height must be divisible by 4.
func Encode(frames []*image.RGBA, fps int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if fps <= 0 {
		fps = 1
	}

	bounds := frames[0].Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if height%4 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadHeight, height)
	}
	for i, f := range frames {
		if f.Bounds().Dx() != width || f.Bounds().Dy() != height {
			return nil, fmt.Errorf("qgif: frame %d is %dx%d, want %dx%d",
				i, f.Bounds().Dx(), f.Bounds().Dy(), width, height)
		}
	}

	out := make([]byte, HeaderSize, HeaderSize+len(frames)*width*height*2)
	copy(out[0:4], Magic)
	out[4] = Version
	out[5] = ModeLoop
	binary.LittleEndian.PutUint16(out[6:8], uint16(width))
	binary.LittleEndian.PutUint16(out[8:10], uint16(height))
	out[10] = byte(fps)
	out[11] = byte(len(frames))

	for _, f := range frames {
		out = appendRGB565(out, f)
	}
	return out, nil
}

// ForStatic rewrites the playback mode from loop to static in place, the
// adjustment the firmware needs for single-frame uploads. Streams already
// marked static are left untouched.
func ForStatic(data []byte) []byte {
	if len(data) > 5 && string(data[0:4]) == Magic && data[5] == ModeLoop {
		data[5] = ModeStatic
	}
	return data
}

// appendRGB565 converts a frame to RGB565 little-endian, row-major from
// the top-left.
func appendRGB565(out []byte, f *image.RGBA) []byte {
	bounds := f.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := f.Pix[f.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			r := row[x*4]
			g := row[x*4+1]
			b := row[x*4+2]
			px := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
			out = append(out, byte(px), byte(px>>8))
		}
	}
	return out
}
