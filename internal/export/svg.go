// Package export renders stored flight traces as standalone SVG
// documents for offline inspection.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/quadsim/internal/sim"
)

type point struct{ x, y float64 }

// AltitudeProfileSVG plots altitude against time for one trace.
func AltitudeProfileSVG(entries []sim.Entry, width, height int) string {
	pts := make([]point, len(entries))
	for i, e := range entries {
		pts[i] = point{x: e.Time, y: e.State.Z}
	}
	return polylineSVG(pts, width, height, "#00ccff")
}

// GroundTrackSVG plots the world-frame x/y path for one trace.
func GroundTrackSVG(entries []sim.Entry, width, height int) string {
	pts := make([]point, len(entries))
	for i, e := range entries {
		pts[i] = point{x: e.State.X, y: e.State.Y}
	}
	return polylineSVG(pts, width, height, "#00ff88")
}

func polylineSVG(points []point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].x, points[0].x
	minY, maxY := points[0].y, points[0].y
	for _, p := range points {
		minX = min(minX, p.x)
		maxX = max(maxX, p.x)
		minY = min(minY, p.y)
		maxY = max(maxY, p.y)
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
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.x - minX) / rangeX * float64(width)
		y := float64(height) - (p.y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
