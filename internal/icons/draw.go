package icons

import (
	"image"
	"image/color"
	"sort"
)

// Pixel-level drawing primitives for icon glyphs. Everything is drawn
// directly into an RGBA canvas; no anti-aliasing, the display is 240x136
// and the glyphs read better with hard edges.

func setPx(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Rect) {
		img.SetRGBA(x, y, c)
	}
}

// fillEllipse fills the ellipse inscribed in the rectangle (x0,y0)-(x1,y1).
func fillEllipse(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	cx := (x0 + x1) / 2
	cy := (y0 + y1) / 2
	rx := (x1 - x0) / 2
	ry := (y1 - y0) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := int(y0); y <= int(y1)+1; y++ {
		for x := int(x0); x <= int(x1)+1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				setPx(img, x, y, c)
			}
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy int, r float64, c color.RGBA) {
	fillEllipse(img, float64(cx)-r, float64(cy)-r, float64(cx)+r, float64(cy)+r, c)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			setPx(img, x, y, c)
		}
	}
}

// thickLine draws a line from (x0,y0) to (x1,y1) by stamping discs along a
// Bresenham walk, giving the stroke a consistent width.
func thickLine(img *image.RGBA, x0, y0, x1, y1, width int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if width <= 1 {
			setPx(img, x0, y0, c)
		} else {
			fillCircle(img, x0, y0, float64(width)/2, c)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillPolygon fills a simple polygon using even-odd scanline crossings.
func fillPolygon(img *image.RGBA, pts []image.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for y := minY; y <= maxY; y++ {
		var xs []float64
		j := len(pts) - 1
		for i := 0; i < len(pts); i++ {
			a, b := pts[i], pts[j]
			if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
				t := float64(y-a.Y) / float64(b.Y-a.Y)
				xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
			}
			j = i
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				setPx(img, x, y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
