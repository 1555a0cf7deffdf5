package analysis

import (
	"strings"

	"github.com/san-kum/dipolesim/internal/record"
)

// Portrait holds 2D trajectories drawn on one canvas, in layer order.
type Portrait struct {
	Layers []Layer
}

type Point struct {
	X, Y float64
}

type Layer struct {
	Glyph  rune
	Points []Point
}

// PathPortrait overlays the desired path ('·') and the observed path ('•').
func PathPortrait(rec *record.Record) *Portrait {
	if !rec.Initialized() {
		return nil
	}
	desired := Layer{Glyph: '·'}
	actual := Layer{Glyph: '•'}
	for i := 0; i < rec.N(); i++ {
		desired.Points = append(desired.Points, Point{rec.PathDesired.At(i, 0), rec.PathDesired.At(i, 1)})
		actual.Points = append(actual.Points, Point{rec.PathActual.At(i, 0), rec.PathActual.At(i, 1)})
	}
	return &Portrait{Layers: []Layer{desired, actual}}
}

// ToASCII renders the portrait on a width-by-height character grid.
func (p *Portrait) ToASCII(width, height int) string {
	if p == nil || width < 2 || height < 2 {
		return ""
	}

	first := true
	var minX, maxX, minY, maxY float64
	for _, l := range p.Layers {
		for _, pt := range l.Points {
			if first {
				minX, maxX, minY, maxY = pt.X, pt.X, pt.Y, pt.Y
				first = false
				continue
			}
			minX = min(minX, pt.X)
			maxX = max(maxX, pt.X)
			minY = min(minY, pt.Y)
			maxY = max(maxY, pt.Y)
		}
	}
	if first {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, l := range p.Layers {
		for _, pt := range l.Points {
			col := int((pt.X - minX) / rangeX * float64(width-1))
			row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
			canvas[row][col] = l.Glyph
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
