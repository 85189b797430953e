package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to at most limit terminal cells, adding an
// ellipsis when something was cut. Wide runes count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "…")
}

// padRight pads a string with spaces to width terminal cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft right-aligns s in width terminal cells.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// fit truncates then pads so the result is exactly width cells.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

// stars renders a 0..5 rating as filled and empty stars.
func stars(rating int) string {
	rating = min(max(rating, 0), maxRating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", maxRating-rating)
}
