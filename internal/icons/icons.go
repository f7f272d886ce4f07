// Package icons draws the weather glyphs shown on the RT82 display.
//
// Each glyph is drawn once at process start on a transparent RGBA canvas
// and kept read-only for the process lifetime. Sized to stay readable on
// the keyboard's 240x136 panel.
package icons

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"rt82weather/internal/weather"
)

// Icon palette (bright on dark background).
var (
	sunYellow  = color.RGBA{255, 210, 50, 255}
	cloudWhite = color.RGBA{220, 220, 230, 255}
	cloudGrey  = color.RGBA{160, 165, 175, 255}
	rainBlue   = color.RGBA{80, 170, 255, 255}
	snowWhite  = color.RGBA{230, 235, 255, 255}
	boltYellow = color.RGBA{255, 240, 80, 255}
	mistGrey   = color.RGBA{180, 185, 195, 255}
)

// MissingAssetError reports a condition with no glyph in the set. A
// display showing a blank icon is a user-visible defect, so lookups fail
// loudly instead of substituting one.
type MissingAssetError struct {
	Condition weather.Condition
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("no icon asset for condition %q", e.Condition)
}

// Set maps conditions to their glyph bitmaps.
type Set map[weather.Condition]*image.RGBA

// Glyph returns the bitmap for a condition, or a MissingAssetError.
func (s Set) Glyph(cond weather.Condition) (*image.RGBA, error) {
	glyph, ok := s[cond]
	if !ok {
		return nil, &MissingAssetError{Condition: cond}
	}
	return glyph, nil
}

// Default builds the full glyph set at the given size in pixels.
func Default(size int) Set {
	return Set{
		weather.ConditionClear:        Draw(weather.ConditionClear, size),
		weather.ConditionPartlyCloudy: Draw(weather.ConditionPartlyCloudy, size),
		weather.ConditionCloudy:       Draw(weather.ConditionCloudy, size),
		weather.ConditionRain:         Draw(weather.ConditionRain, size),
		weather.ConditionSnow:         Draw(weather.ConditionSnow, size),
		weather.ConditionStorm:        Draw(weather.ConditionStorm, size),
		weather.ConditionMist:         Draw(weather.ConditionMist, size),
		// Providers normalize anything unrecognized to unknown; show the
		// plain cloud rather than nothing.
		weather.ConditionUnknown: Draw(weather.ConditionCloudy, size),
	}
}

// Draw renders a single condition glyph on a transparent canvas.
func Draw(cond weather.Condition, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx, cy := size/2, size/2
	r := size / 4
	fs := float64(size)

	switch cond {
	case weather.ConditionClear:
		drawSun(img, cx, cy, float64(r))

	case weather.ConditionPartlyCloudy:
		drawSun(img, cx-size/8, cy-size/8, float64(r)*0.7)
		drawCloud(img, cx+size/10, cy+size/10, fs*0.5, fs*0.35, cloudWhite)

	case weather.ConditionCloudy:
		drawCloud(img, cx, cy-size/12, fs*0.6, fs*0.4, cloudGrey)

	case weather.ConditionRain:
		drawCloud(img, cx, cy-size/6, fs*0.55, fs*0.35, cloudGrey)
		drawRainDrops(img, cx, cy+size/6, int(fs*0.5), 4)

	case weather.ConditionSnow:
		drawCloud(img, cx, cy-size/6, fs*0.55, fs*0.35, cloudWhite)
		drawSnowDots(img, cx, cy+size/6, int(fs*0.5), 5)

	case weather.ConditionStorm:
		drawCloud(img, cx, cy-size/5, fs*0.6, fs*0.38, cloudGrey)
		drawBolt(img, cx, cy+size/8)

	case weather.ConditionMist:
		yStart := cy - size/6
		for i := 0; i < 4; i++ {
			y := yStart + i*(size/8)
			halfW := size/3 - int(math.Abs(float64(i)-1.5)*4)
			thickLine(img, cx-halfW, y, cx+halfW, y, 3, mistGrey)
		}
	}

	return img
}

func drawSun(img *image.RGBA, cx, cy int, r float64) {
	fillCircle(img, cx, cy, r, sunYellow)
	rayLen := r * 0.55
	rayW := int(math.Max(2, r/6))
	for deg := 0; deg < 360; deg += 45 {
		a := float64(deg) * math.Pi / 180
		x1 := float64(cx) + math.Cos(a)*(r+3)
		y1 := float64(cy) + math.Sin(a)*(r+3)
		x2 := float64(cx) + math.Cos(a)*(r+3+rayLen)
		y2 := float64(cy) + math.Sin(a)*(r+3+rayLen)
		thickLine(img, int(x1), int(y1), int(x2), int(y2), rayW, sunYellow)
	}
}

func drawCloud(img *image.RGBA, cx, cy int, w, h float64, c color.RGBA) {
	fx, fy := float64(cx), float64(cy)
	ew := w * 0.45
	eh := h * 0.55
	fillEllipse(img, fx-w*0.35, fy-h*0.15, fx-w*0.35+ew, fy-h*0.15+eh, c)
	fillEllipse(img, fx-w*0.1, fy-h*0.45, fx-w*0.1+ew*1.1, fy-h*0.45+eh*1.1, c)
	fillEllipse(img, fx+w*0.05, fy-h*0.2, fx+w*0.05+ew, fy-h*0.2+eh, c)
	fillRect(img, int(fx-w*0.35), int(fy+h*0.05), int(fx+w*0.45), int(fy+h*0.25), c)
}

func drawRainDrops(img *image.RGBA, cx, cy, w, count int) {
	spacing := w / (count + 1)
	startX := cx - w/2 + spacing
	for i := 0; i < count; i++ {
		x := startX + i*spacing
		thickLine(img, x, cy, x-3, cy+10, 2, rainBlue)
	}
}

func drawSnowDots(img *image.RGBA, cx, cy, w, count int) {
	spacing := w / (count + 1)
	startX := cx - w/2 + spacing
	for i := 0; i < count; i++ {
		x := startX + i*spacing
		y := cy + (i%2)*5
		fillCircle(img, x, y, 2, snowWhite)
	}
}

func drawBolt(img *image.RGBA, cx, cy int) {
	pts := []image.Point{
		{cx - 2, cy}, {cx - 6, cy + 10}, {cx - 1, cy + 8},
		{cx + 2, cy + 18}, {cx + 4, cy + 8}, {cx + 1, cy + 10},
	}
	fillPolygon(img, pts, boltYellow)
}
