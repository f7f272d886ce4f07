package qgif

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	f := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetRGBA(x, y, c)
		}
	}
	return f
}

func TestEncodeHeader(t *testing.T) {
	frame := solidFrame(240, 136, color.RGBA{0, 0, 0, 255})

	data, err := Encode([]*image.RGBA{frame}, 2)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(data), HeaderSize)
	assert.Equal(t, Magic, string(data[0:4]))
	assert.Equal(t, byte(Version), data[4])
	assert.Equal(t, byte(ModeLoop), data[5])
	assert.Equal(t, uint16(240), binary.LittleEndian.Uint16(data[6:8]))
	assert.Equal(t, uint16(136), binary.LittleEndian.Uint16(data[8:10]))
	assert.Equal(t, byte(2), data[10])
	assert.Equal(t, byte(1), data[11])
}

func TestEncodePayloadLength(t *testing.T) {
	frames := []*image.RGBA{
		solidFrame(64, 32, color.RGBA{255, 0, 0, 255}),
		solidFrame(64, 32, color.RGBA{0, 255, 0, 255}),
		solidFrame(64, 32, color.RGBA{0, 0, 255, 255}),
	}

	data, err := Encode(frames, 4)
	require.NoError(t, err)

	assert.Equal(t, HeaderSize+3*64*32*2, len(data))
	assert.Equal(t, byte(3), data[11])
}

func TestEncodeRGB565(t *testing.T) {
	// Pure red: R=255>>3=31 in the top 5 bits, 0xF800 little-endian.
	frame := solidFrame(4, 4, color.RGBA{255, 0, 0, 255})

	data, err := Encode([]*image.RGBA{frame}, 1)
	require.NoError(t, err)

	px := binary.LittleEndian.Uint16(data[HeaderSize : HeaderSize+2])
	assert.Equal(t, uint16(0xF800), px)

	// Pure green occupies the middle 6 bits.
	frame = solidFrame(4, 4, color.RGBA{0, 255, 0, 255})
	data, err = Encode([]*image.RGBA{frame}, 1)
	require.NoError(t, err)
	px = binary.LittleEndian.Uint16(data[HeaderSize : HeaderSize+2])
	assert.Equal(t, uint16(0x07E0), px)
}

func TestEncodeNoFrames(t *testing.T) {
	_, err := Encode(nil, 1)
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestEncodeBadHeight(t *testing.T) {
	frame := solidFrame(240, 135, color.RGBA{0, 0, 0, 255})
	_, err := Encode([]*image.RGBA{frame}, 1)
	assert.ErrorIs(t, err, ErrBadHeight)
}

func TestEncodeMismatchedFrames(t *testing.T) {
	frames := []*image.RGBA{
		solidFrame(64, 32, color.RGBA{0, 0, 0, 255}),
		solidFrame(32, 32, color.RGBA{0, 0, 0, 255}),
	}
	_, err := Encode(frames, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 1")
}

func TestForStatic(t *testing.T) {
	frame := solidFrame(16, 16, color.RGBA{0, 0, 0, 255})
	data, err := Encode([]*image.RGBA{frame}, 1)
	require.NoError(t, err)
	require.Equal(t, byte(ModeLoop), data[5])

	patched := ForStatic(data)
	assert.Equal(t, byte(ModeStatic), patched[5])

	// Idempotent, and everything else untouched.
	again := ForStatic(patched)
	assert.Equal(t, byte(ModeStatic), again[5])
	assert.Equal(t, Magic, string(again[0:4]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(again[6:8]))
}

func TestForStaticIgnoresForeignData(t *testing.T) {
	junk := []byte("NOTAQGIFSTREAM")
	out := ForStatic(junk)
	assert.Equal(t, []byte("NOTAQGIFSTREAM"), out)
}
