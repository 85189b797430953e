package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutSideBySideWidth is the minimum width to place the chart and the
	// stat card next to each other.
	LayoutSideBySideWidth = 90
)

// Statistics tab sizing.
const (
	// ChartHeight is the number of rows the tallest bar may use.
	ChartHeight = 8

	// ChartBarWidth is the width of one bar in cells.
	ChartBarWidth = 8

	// ProgressBarWidth is the width of a per-book progress bar.
	ProgressBarWidth = 20
)

const maxRating = 5
