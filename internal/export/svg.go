package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/dipolesim/internal/analysis"
)

var layerColors = []string{"#00ccff", "#ff00ff", "#ffcc00", "#00ff88"}

// PortraitToSVG draws each portrait layer as a polyline, all layers sharing
// one set of bounds so desired and observed paths line up.
func PortraitToSVG(p *analysis.Portrait, width, height int) string {
	if p == nil || width <= 0 || height <= 0 {
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

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for li, l := range p.Layers {
		if len(l.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, layerColors[li%len(layerColors)]))
		for i, pt := range l.Points {
			x := (pt.X - minX) / rangeX * float64(width)
			y := float64(height) - (pt.Y-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
