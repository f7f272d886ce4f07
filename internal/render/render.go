// Package render composes weather snapshots into 240x136 frames for the
// RT82 keyboard display.
//
// Render is a pure transformation: no I/O, no system clock (the time is
// injected), and a fresh output buffer per call.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"rt82weather/internal/common"
	"rt82weather/internal/icons"
	"rt82weather/internal/weather"
)

// Display geometry. The height must stay divisible by 4 for the QGIF
// encoder (firmware constraint).
const (
	DisplayWidth  = 240
	DisplayHeight = 136
)

// Fixed layout anchors.
const (
	iconX        = 10
	textGap      = 12
	rightMargin  = 8
	dateBaseline = 18
	tempBaseline = 80
	condBaseline = 106
)

var (
	bgColor      = color.RGBA{10, 10, 15, 255}
	textColor    = color.RGBA{240, 240, 240, 255}
	tempMinColor = color.RGBA{100, 180, 255, 255}
	tempMaxColor = color.RGBA{255, 120, 80, 255}
	labelColor   = color.RGBA{160, 165, 175, 255}
)

// Renderer draws snapshots using a fixed icon set and pre-built font
// faces. Safe for concurrent use; glyph rasterization shares internal
// buffers, so calls are serialized.
type Renderer struct {
	mu    sync.Mutex
	icons icons.Set

	// tempFaces is ordered largest first; Render picks the first size
	// whose temperature line fits the text region.
	tempFaces []font.Face
	smallFace font.Face
}

// New builds a renderer around the given icon set.
func New(iconSet icons.Set) (*Renderer, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}

	newFace := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	r := &Renderer{icons: iconSet}
	for _, size := range []float64{34, 26, 18} {
		face, err := newFace(bold, size)
		if err != nil {
			return nil, fmt.Errorf("build %gpx face: %w", size, err)
		}
		r.tempFaces = append(r.tempFaces, face)
	}
	if r.smallFace, err = newFace(regular, 14); err != nil {
		return nil, fmt.Errorf("build label face: %w", err)
	}
	return r, nil
}

// Render composes the frame for a snapshot at the given time. The icon set
// must contain the snapshot's condition; a miss surfaces as a
// MissingAssetError and no image is produced.
func (r *Renderer) Render(snap weather.Snapshot, now time.Time) (*image.RGBA, error) {
	glyph, err := r.icons.Glyph(snap.Condition)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	frame := image.NewRGBA(image.Rect(0, 0, DisplayWidth, DisplayHeight))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)

	// Date line across the top.
	dateText := now.Format("Mon 2 Jan 15:04")
	dateW := textWidth(r.smallFace, dateText)
	drawText(frame, r.smallFace, dateText, (DisplayWidth-dateW)/2, dateBaseline, labelColor)

	// Icon at its native resolution, anchored on the left below the date.
	glyphSize := glyph.Bounds().Dy()
	iconY := (DisplayHeight-glyphSize)/2 + 8
	draw.Draw(frame, glyph.Bounds().Add(image.Pt(iconX, iconY)), glyph, glyph.Bounds().Min, draw.Over)

	textX := iconX + glyph.Bounds().Dx() + textGap
	textAreaW := DisplayWidth - textX - rightMargin

	r.drawTemperatures(frame, snap, textX, textAreaW)
	r.drawConditionLabel(frame, snap, textX, textAreaW)

	return frame, nil
}

// drawTemperatures renders "min°/max°C" centred in the text region,
// stepping down font sizes until the line fits. Values are never
// truncated, only scaled.
func (r *Renderer) drawTemperatures(frame *image.RGBA, snap weather.Snapshot, textX, textAreaW int) {
	minText := fmt.Sprintf("%.0f", snap.TempMinC)
	maxText := fmt.Sprintf("%.0f", snap.TempMaxC)
	suffix := "°C"

	face := r.tempFaces[len(r.tempFaces)-1]
	total := 0
	var minW, sepW, maxW, sufW int
	for _, candidate := range r.tempFaces {
		minW = textWidth(candidate, minText)
		sepW = textWidth(candidate, "°/")
		maxW = textWidth(candidate, maxText)
		sufW = textWidth(r.smallFace, suffix)
		total = minW + sepW + maxW + 2 + sufW
		if total <= textAreaW {
			face = candidate
			break
		}
	}

	x := textX + (textAreaW-total)/2
	if x < textX {
		x = textX
	}

	drawText(frame, face, minText, x, tempBaseline, tempMinColor)
	x += minW
	drawText(frame, face, "°/", x, tempBaseline, labelColor)
	x += sepW
	drawText(frame, face, maxText, x, tempBaseline, tempMaxColor)
	x += maxW + 2
	drawText(frame, r.smallFace, suffix, x, tempBaseline, labelColor)
}

func (r *Renderer) drawConditionLabel(frame *image.RGBA, snap weather.Snapshot, textX, textAreaW int) {
	label := snap.ConditionText
	if label == "" {
		label = conditionLabel(snap.Condition)
	}
	label = common.Capitalize(label)
	label = truncateToWidth(r.smallFace, label, textAreaW)

	w := textWidth(r.smallFace, label)
	drawText(frame, r.smallFace, label, textX+(textAreaW-w)/2, condBaseline, textColor)
}

func conditionLabel(cond weather.Condition) string {
	switch cond {
	case weather.ConditionPartlyCloudy:
		return "partly cloudy"
	case weather.ConditionStorm:
		return "thunderstorm"
	default:
		return string(cond)
	}
}

// truncateToWidth cuts s with a trailing ellipsis so its rendered width
// never exceeds maxWidth pixels.
func truncateToWidth(face font.Face, s string, maxWidth int) string {
	if textWidth(face, s) <= maxWidth {
		return s
	}
	const ellipsis = "…"
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if textWidth(face, candidate) <= maxWidth {
			return candidate
		}
	}
	return ellipsis
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func drawText(dst *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
