package icons

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rt82weather/internal/weather"
)

func opaquePixels(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func TestDefaultCoversAllConditions(t *testing.T) {
	set := Default(80)
	for _, cond := range weather.Conditions() {
		glyph, err := set.Glyph(cond)
		require.NoError(t, err, "condition %s", cond)
		require.NotNil(t, glyph)
		assert.Equal(t, 80, glyph.Bounds().Dx())
		assert.Equal(t, 80, glyph.Bounds().Dy())
		assert.Greater(t, opaquePixels(glyph), 20, "glyph for %s is blank", cond)
	}
}

func TestDrawDistinctGlyphs(t *testing.T) {
	// Each drawable condition should produce a visually distinct bitmap.
	sun := Draw(weather.ConditionClear, 64)
	rain := Draw(weather.ConditionRain, 64)
	snow := Draw(weather.ConditionSnow, 64)

	assert.NotEqual(t, sun.Pix, rain.Pix)
	assert.NotEqual(t, rain.Pix, snow.Pix)
}

func TestDrawScales(t *testing.T) {
	for _, size := range []int{32, 64, 120} {
		glyph := Draw(weather.ConditionStorm, size)
		assert.Equal(t, size, glyph.Bounds().Dx())
		assert.Greater(t, opaquePixels(glyph), 0)
	}
}

func TestGlyphMissing(t *testing.T) {
	set := Set{
		weather.ConditionClear: Draw(weather.ConditionClear, 48),
	}

	glyph, err := set.Glyph(weather.ConditionSnow)
	assert.Nil(t, glyph)

	var missing *MissingAssetError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, weather.ConditionSnow, missing.Condition)
	assert.Contains(t, missing.Error(), "snow")
}

func TestUnknownConditionFallsBackToCloud(t *testing.T) {
	set := Default(64)
	unknown, err := set.Glyph(weather.ConditionUnknown)
	require.NoError(t, err)
	cloudy := Draw(weather.ConditionCloudy, 64)
	assert.Equal(t, cloudy.Pix, unknown.Pix)
}
