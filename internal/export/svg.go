package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/viz"
)

const background = "#0a0a0a"

// Plane selects the two position axes a trajectory is drawn in.
type Plane [2]int

var (
	PlaneXY = Plane{0, 1}
	PlaneXZ = Plane{0, 2}
	PlaneZY = Plane{2, 1}
)

func ParsePlane(name string) (Plane, error) {
	switch strings.ToLower(name) {
	case "xy", "":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "zy":
		return PlaneZY, nil
	default:
		return Plane{}, fmt.Errorf("unknown plane %q (xy, xz, zy)", name)
	}
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in
// the cell's pen color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	dotRadius := scale * 0.4
	pw, ph := canvas.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			color := canvas.Colors[y/4][x/2]
			if color == "" {
				color = "#00ff00"
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, color)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

type point struct{ X, Y float64 }

// TrajectoryToSVG draws the sample positions projected on plane as one path.
// Fewer than two samples yields an empty string.
func TrajectoryToSVG(samples []dynamo.Sample, plane Plane, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}
	points := lo.Map(samples, func(s dynamo.Sample, _ int) point {
		return point{s.Position[plane[0]], s.Position[plane[1]]}
	})

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// 10% padding on each side
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
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

// WriteTrajectory writes the trajectory SVG of samples to w.
func WriteTrajectory(w io.Writer, samples []dynamo.Sample, plane Plane, strokeColor string) error {
	svg := TrajectoryToSVG(samples, plane, 800, 600, strokeColor)
	if svg == "" {
		return fmt.Errorf("trajectory needs at least two samples, have %d", len(samples))
	}
	_, err := io.WriteString(w, svg)
	return err
}
