package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/five82/pagetrack/internal/books"
)

// Summary aggregates a collection.
type Summary struct {
	TotalBooks     int
	TotalPagesRead int
	TotalPages     int
}

// Compute totals the collection. Values are used as stored, negatives included.
func Compute(list []books.Book) Summary {
	s := Summary{TotalBooks: len(list)}
	for _, b := range list {
		s.TotalPagesRead += int(b.PagesRead)
		s.TotalPages += int(b.TotalPages)
	}
	return s
}

// Percentage is the share of pages read, rounded to two decimals. It is 0
// when there are no pages at all.
func (s Summary) Percentage() float64 {
	if s.TotalPages == 0 {
		return 0
	}
	return round(float64(s.TotalPagesRead)/float64(s.TotalPages)*100, 2)
}

// PercentageLabel renders Percentage with two decimals, or "0" when there are
// no pages.
func (s Summary) PercentageLabel() string {
	if s.TotalPages == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", s.Percentage())
}

// Unread is the number of pages not yet read.
func (s Summary) Unread() int {
	return s.TotalPages - s.TotalPagesRead
}

// Bar is one column of the reading chart.
type Bar struct {
	Label string
	Value int
}

// Bars returns the read and unread columns in display order.
func (s Summary) Bars() []Bar {
	return []Bar{
		{Label: "Read", Value: s.TotalPagesRead},
		{Label: "Unread", Value: s.Unread()},
	}
}

// ZeroPagePolicy decides the per-book percentage when a book has no pages.
type ZeroPagePolicy int

const (
	// ZeroPageGuard reports 0%.
	ZeroPageGuard ZeroPagePolicy = iota
	// ZeroPageNaN reports a plain division: NaN for 0/0 and a signed
	// infinity when pages were read out of zero.
	ZeroPageNaN
)

// ParseZeroPagePolicy maps a config value to a policy.
func ParseZeroPagePolicy(value string) (ZeroPagePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "guard":
		return ZeroPageGuard, nil
	case "nan":
		return ZeroPageNaN, nil
	default:
		return ZeroPageGuard, fmt.Errorf("unknown zero-page policy %q (want guard or nan)", value)
	}
}

func (p ZeroPagePolicy) String() string {
	if p == ZeroPageNaN {
		return "nan"
	}
	return "guard"
}

// ItemPercentage is pagesRead/totalPages as a whole-number percentage.
func ItemPercentage(b books.Book, policy ZeroPagePolicy) float64 {
	if b.TotalPages == 0 {
		if policy != ZeroPageNaN {
			return 0
		}
		switch {
		case b.PagesRead > 0:
			return math.Inf(1)
		case b.PagesRead < 0:
			return math.Inf(-1)
		default:
			return math.NaN()
		}
	}
	return round(float64(b.PagesRead)/float64(b.TotalPages)*100, 0)
}

// FormatItemPercentage renders a percentage from ItemPercentage, e.g. "25%",
// "NaN%" or "Infinity%".
func FormatItemPercentage(pct float64) string {
	switch {
	case math.IsNaN(pct):
		return "NaN%"
	case math.IsInf(pct, 1):
		return "Infinity%"
	case math.IsInf(pct, -1):
		return "-Infinity%"
	}
	return fmt.Sprintf("%.0f%%", pct)
}

// Fraction clamps a percentage into [0, 1] for progress bars. NaN is 0.
func Fraction(pct float64) float64 {
	switch {
	case math.IsNaN(pct), pct <= 0:
		return 0
	case pct >= 100:
		return 1
	default:
		return pct / 100
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
