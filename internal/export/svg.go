// Package export renders archived runs for use outside the terminal.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/forestfire/internal/metrics"
)

// Series is one line of a chart.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

// CensusSeries splits a census log into the lines worth charting.
func CensusSeries(census []metrics.Census) []Series {
	trees := make([]float64, len(census))
	saplings := make([]float64, len(census))
	burning := make([]float64, len(census))
	for i, c := range census {
		trees[i] = float64(c.Trees)
		saplings[i] = float64(c.Saplings)
		burning[i] = float64(c.Burning)
	}
	return []Series{
		{Name: "trees", Color: "#2e8b2e", Values: trees},
		{Name: "saplings", Color: "#9acd32", Values: saplings},
		{Name: "burning", Color: "#ff4500", Values: burning},
	}
}

// SeriesToSVG draws the series against a shared vertical scale, one point per
// generation. It returns "" when no series has two points.
func SeriesToSVG(series []Series, width, height int) string {
	n := 0
	maxY := 0.0
	for _, s := range series {
		n = max(n, len(s.Values))
		for _, v := range s.Values {
			maxY = max(maxY, v)
		}
	}
	if n < 2 {
		return ""
	}
	if maxY == 0 {
		maxY = 1
	}
	maxY *= 1.1

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, s := range series {
		if len(s.Values) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Color))
		for j, v := range s.Values {
			x := float64(j) / float64(n-1) * float64(width)
			y := float64(height) - v/maxY*float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16*(i+1), s.Color, s.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CensusToSVG is SeriesToSVG over CensusSeries.
func CensusToSVG(census []metrics.Census, width, height int) string {
	return SeriesToSVG(CensusSeries(census), width, height)
}
