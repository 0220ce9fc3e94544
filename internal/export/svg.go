package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/bouncebox/internal/physics"
	"github.com/san-kum/bouncebox/internal/viz"
)

const (
	background = "#0a0a0a"
	dotColor   = "#00ff00"
)

func svgHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG converts a braille canvas to SVG, one circle per set dot in
// its cell tint.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	svgHeader(&sb, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := string(canvas.Tint[y/4][x/2])
			if fill == "" {
				fill = dotColor
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SnapshotSVG draws the box wireframe and every visible particle as a filled
// circle, far particles first.
func SnapshotSVG(particles []physics.Particle, boxSize float32, cam *viz.Camera, width, height int) string {
	if cam == nil || width <= 0 || height <= 0 {
		return ""
	}

	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height))

	sb.WriteString(`<g stroke="#666666" stroke-width="1" fill="none">` + "\n")
	for _, e := range viz.BoxEdges(boxSize) {
		x1, y1, _, v1 := cam.Project(e.Start, width, height)
		x2, y2, _, v2 := cam.Project(e.End, width, height)
		if v1 || v2 {
			fmt.Fprintf(&sb, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\"/>\n", x1, y1, x2, y2)
		}
	}
	sb.WriteString("</g>\n")

	for _, s := range viz.ProjectParticles(particles, cam, width, height) {
		fmt.Fprintf(&sb, "<circle cx=\"%d\" cy=\"%d\" r=\"%.1f\" fill=\"%s\"/>\n",
			s.X, s.Y, math.Max(s.Radius, 0.5), s.Color)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	svgHeader(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
