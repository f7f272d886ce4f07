package render

import (
	"bytes"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rt82weather/internal/icons"
	"rt82weather/internal/weather"
)

func testSnapshot() weather.Snapshot {
	return weather.Snapshot{
		LocationName:  "Test City",
		Condition:     weather.ConditionClear,
		ConditionText: "Sunny",
		TempMinC:      3,
		TempMaxC:      9,
		ObservedAt:    time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC),
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(icons.Default(80))
	require.NoError(t, err)
	return r
}

func TestRenderDimensions(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

	for _, cond := range weather.Conditions() {
		snap := testSnapshot()
		snap.Condition = cond

		frame, err := r.Render(snap, now)
		require.NoError(t, err, "condition %s", cond)
		assert.Equal(t, DisplayWidth, frame.Bounds().Dx())
		assert.Equal(t, DisplayHeight, frame.Bounds().Dy())
	}
}

func TestRenderHeightDivisibleBy4(t *testing.T) {
	// The QGIF encoder rejects heights the firmware cannot handle.
	assert.Zero(t, DisplayHeight%4)
}

func TestRenderMissingIcon(t *testing.T) {
	// An icon set without the snapshot's condition must fail loudly,
	// producing no partial image.
	r, err := New(icons.Set{})
	require.NoError(t, err)

	frame, err := r.Render(testSnapshot(), time.Now())
	assert.Nil(t, frame)

	var missing *icons.MissingAssetError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, weather.ConditionClear, missing.Condition)
}

func TestRenderDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

	frame1, err := r.Render(testSnapshot(), now)
	require.NoError(t, err)
	frame2, err := r.Render(testSnapshot(), now)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(frame1.Pix, frame2.Pix), "identical inputs must produce identical bytes")
}

func TestRenderNotBlank(t *testing.T) {
	r := newTestRenderer(t)

	frame, err := r.Render(testSnapshot(), time.Now())
	require.NoError(t, err)

	nonBG := 0
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if frame.RGBAAt(x, y) != bgColor {
				nonBG++
			}
		}
	}
	assert.Greater(t, nonBG, 100, "rendered image appears blank")
}

// TestRenderTemperatureText verifies the "3°/9°C" region in pixel form:
// min digits in the min color, max digits in the max color, all inside
// the text region.
func TestRenderTemperatureText(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

	frame, err := r.Render(testSnapshot(), now)
	require.NoError(t, err)

	textX := iconX + 80 + textGap
	minPixels, maxPixels := temperaturePixels(frame)
	assert.NotEmpty(t, minPixels, "min temperature digits not drawn")
	assert.NotEmpty(t, maxPixels, "max temperature digits not drawn")

	for _, p := range append(minPixels, maxPixels...) {
		assert.GreaterOrEqual(t, p.X, textX, "temperature text overlaps the icon region")
		assert.Less(t, p.X, DisplayWidth-rightMargin, "temperature text overflows the right margin")
	}

	// Different temperatures must change the region.
	other := testSnapshot()
	other.TempMinC = 4
	frameOther, err := r.Render(other, now)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(frame.Pix, frameOther.Pix))
}

func TestRenderNegativeTemperaturesStayInRegion(t *testing.T) {
	r := newTestRenderer(t)
	snap := testSnapshot()
	snap.Condition = weather.ConditionSnow
	snap.ConditionText = "Heavy snow"
	snap.TempMinC = -15
	snap.TempMaxC = -2

	frame, err := r.Render(snap, time.Now())
	require.NoError(t, err)

	textX := iconX + 80 + textGap
	minPixels, maxPixels := temperaturePixels(frame)
	require.NotEmpty(t, minPixels)
	require.NotEmpty(t, maxPixels)
	for _, p := range append(minPixels, maxPixels...) {
		assert.GreaterOrEqual(t, p.X, textX)
		assert.Less(t, p.X, DisplayWidth-rightMargin)
	}
}

func TestRenderExtremeTemperaturesDoNotPanic(t *testing.T) {
	r := newTestRenderer(t)
	snap := testSnapshot()
	snap.TempMinC = -273
	snap.TempMaxC = 1000

	frame, err := r.Render(snap, time.Now())
	require.NoError(t, err)
	assert.Equal(t, DisplayWidth, frame.Bounds().Dx())
}

func TestTruncateToWidth(t *testing.T) {
	r := newTestRenderer(t)
	face := r.smallFace

	const region = 130

	short := truncateToWidth(face, "Sunny", region)
	assert.Equal(t, "Sunny", short)

	long := truncateToWidth(face, "Heavy thunderstorm with hail", region)
	assert.NotEqual(t, "Heavy thunderstorm with hail", long)
	assert.True(t, len(long) > 0)
	assert.Contains(t, long, "…")
	assert.LessOrEqual(t, textWidth(face, long), region)
}

func TestRenderLongConditionLabelStaysInRegion(t *testing.T) {
	r := newTestRenderer(t)
	snap := testSnapshot()
	snap.ConditionText = "Heavy thunderstorm with hail and gale-force winds"

	frame, err := r.Render(snap, time.Now())
	require.NoError(t, err)

	// No label-text pixels may appear beyond the text region.
	textX := iconX + 80 + textGap
	for y := condBaseline - 14; y <= condBaseline+4; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if frame.RGBAAt(x, y) == textColor {
				assert.GreaterOrEqual(t, x, textX)
				assert.Less(t, x, DisplayWidth-rightMargin)
			}
		}
	}
}

// temperaturePixels collects the coordinates drawn in the min and max
// temperature colors.
func temperaturePixels(frame *image.RGBA) (minPixels, maxPixels []image.Point) {
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			switch frame.RGBAAt(x, y) {
			case tempMinColor:
				minPixels = append(minPixels, image.Pt(x, y))
			case tempMaxColor:
				maxPixels = append(maxPixels, image.Pt(x, y))
			}
		}
	}
	return minPixels, maxPixels
}

func TestRenderDateLine(t *testing.T) {
	r := newTestRenderer(t)
	snap := testSnapshot()

	morning := time.Date(2026, 12, 25, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 12, 25, 20, 45, 0, 0, time.UTC)

	frameA, err := r.Render(snap, morning)
	require.NoError(t, err)
	frameB, err := r.Render(snap, evening)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(frameA.Pix, frameB.Pix), "date/time line must reflect the injected clock")
}
