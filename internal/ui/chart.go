package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/pagetrack/internal/stats"
)

// scaleBars maps each bar to the number of filled rows out of height, relative
// to the tallest bar. Any positive value gets at least one row; zero and
// negative values get none.
func scaleBars(bars []stats.Bar, height int) []int {
	rows := make([]int, len(bars))
	tallest := 0
	for _, b := range bars {
		tallest = max(tallest, b.Value)
	}
	if tallest <= 0 || height <= 0 {
		return rows
	}
	for i, b := range bars {
		if b.Value <= 0 {
			continue
		}
		h := int(math.Round(float64(b.Value) / float64(tallest) * float64(height)))
		rows[i] = min(max(h, 1), height)
	}
	return rows
}

// center pads s with spaces on both sides to width cells.
func center(s string, width int) string {
	s = truncate(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// renderChart draws a vertical bar chart: height rows of bars, then a row of
// values and a row of labels. barStyles is indexed like bars.
func renderChart(bars []stats.Bar, barStyles []lipgloss.Style, textStyle lipgloss.Style, bg BgStyle, height, barWidth int) []string {
	const gap = 3
	filled := scaleBars(bars, height)

	var lines []string
	for row := height; row >= 1; row-- {
		var b strings.Builder
		b.WriteString(bg.Space())
		for i := range bars {
			if i > 0 {
				b.WriteString(bg.Spaces(gap))
			}
			if filled[i] >= row {
				b.WriteString(bg.Render(strings.Repeat("█", barWidth), barStyles[i]))
			} else {
				b.WriteString(bg.Spaces(barWidth))
			}
		}
		lines = append(lines, b.String())
	}

	valueRow := make([]string, len(bars))
	labelRow := make([]string, len(bars))
	for i, bar := range bars {
		valueRow[i] = bg.Render(center(strconv.Itoa(bar.Value), barWidth), textStyle.Bold(true))
		labelRow[i] = bg.Render(center(bar.Label, barWidth), textStyle)
	}
	lines = append(lines,
		bg.Space()+strings.Join(valueRow, bg.Spaces(gap)),
		bg.Space()+strings.Join(labelRow, bg.Spaces(gap)),
	)
	return lines
}

// chartWidth is the number of cells renderChart uses for n bars.
func chartWidth(n, barWidth int) int {
	if n == 0 {
		return 1
	}
	return 1 + n*barWidth + (n-1)*3
}
