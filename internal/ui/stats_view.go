package ui

import (
	"context"
	"fmt"
	"log"
	"maps"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pagetrack/internal/books"
	"github.com/five82/pagetrack/internal/stats"
)

// handleStatisticsKey handles page stepping and rating on the statistics tab.
func (m Model) handleStatisticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, ok := m.selectedBook()
	if !ok {
		return m, nil
	}
	store, id := m.store, b.ID

	switch {
	case key.Matches(msg, m.keys.Increment):
		if b.PagesRead >= b.TotalPages {
			return m, nil
		}
		return m, storeCmd(m.ctx, "increment", func(ctx context.Context) error {
			_, err := store.IncrementPages(ctx, id)
			return err
		})

	case key.Matches(msg, m.keys.Decrement):
		if b.PagesRead <= 0 {
			return m, nil
		}
		return m, storeCmd(m.ctx, "decrement", func(ctx context.Context) error {
			_, err := store.DecrementPages(ctx, id)
			return err
		})

	case key.Matches(msg, m.keys.Rate):
		rating, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		m.ratings = maps.Clone(m.ratings)
		m.ratings[id] = rating
		log.Printf("rated %q %d/%d", b.Title, rating, maxRating)
		return m, nil
	}
	return m, nil
}

// summary totals the books currently on screen.
func (m Model) summary() stats.Summary {
	return stats.Compute(m.snapshot.Books)
}

// renderStatistics renders the statistics tab: the read/unread chart with a
// stat card, then one progress row per book.
func (m Model) renderStatistics() string {
	width := m.width
	height := m.contentHeight()

	top := m.renderReadingBox(width)
	topHeight := lipgloss.Height(top)

	progress := m.renderProgressBox(width, max(height-topHeight, 3))
	return top + "\n" + progress
}

// renderReadingBox renders the aggregate chart and stat card.
func (m Model) renderReadingBox(width int) string {
	innerWidth := max(width-2, 0)
	bgColor := m.panelBg(false)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	summary := m.summary()

	chart := renderChart(
		summary.Bars(),
		[]lipgloss.Style{styles.ReadBar, styles.UnreadBar},
		styles.Text,
		bg,
		ChartHeight,
		ChartBarWidth,
	)
	card := m.renderStatCard(summary, styles, bg)

	var lines []string
	if width >= LayoutSideBySideWidth {
		chartW := chartWidth(len(summary.Bars()), ChartBarWidth) + 4
		// Vertically center the card against the chart.
		offset := max((len(chart)-len(card))/2, 0)
		for i, line := range chart {
			right := ""
			if j := i - offset; j >= 0 && j < len(card) {
				right = card[j]
			}
			lines = append(lines, bg.PadTo(line, chartW)+right)
		}
	} else {
		lines = append(lines, chart...)
		lines = append(lines, "")
		lines = append(lines, card...)
	}

	content := make([]string, 0, len(lines))
	for _, line := range lines {
		content = append(content, bg.FillLine(line, innerWidth))
	}
	return m.renderTitledBox("Reading", strings.Join(content, "\n"), width, len(content)+2, false)
}

// renderStatCard renders the labeled totals.
func (m Model) renderStatCard(summary stats.Summary, styles Styles, bg BgStyle) []string {
	row := func(label, value string, valueStyle lipgloss.Style) string {
		return bg.Render(padRight(label, 14), styles.MutedText) + bg.Render(value, valueStyle)
	}
	return []string{
		row("Books", strconv.Itoa(summary.TotalBooks), styles.Text.Bold(true)),
		row("Pages read", strconv.Itoa(summary.TotalPagesRead), styles.Text.Bold(true)),
		row("Total pages", strconv.Itoa(summary.TotalPages), styles.Text.Bold(true)),
		"",
		row("Percent read", summary.PercentageLabel()+"%", styles.SuccessText),
	}
}

// progressColumns sizes the per-book row for width cells.
func progressColumns(width int) (title, bar int) {
	bar = ProgressBarWidth
	if width < LayoutCompactWidth {
		bar = ProgressBarWidth / 2
	}
	// marker(2) stepper(17) gaps(5) percent(5) stars
	fixed := 2 + 17 + 5 + 5 + maxRating + bar
	return max(width-fixed, 8), bar
}

// renderProgressBox renders one row per book with its page stepper,
// progress bar, percentage, and rating.
func (m Model) renderProgressBox(width, height int) string {
	innerWidth := max(width-2, 0)
	bgColor := m.panelBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	list := m.snapshot.Books
	if len(list) == 0 {
		content := "\n" + bg.Render(" No books yet. Press ", styles.MutedText) +
			bg.Render("b", styles.AccentText) +
			bg.Render(" then ", styles.MutedText) +
			bg.Render("a", styles.AccentText) +
			bg.Render(" to add one.", styles.MutedText)
		return m.renderTitledBox("Progress", content, width, height, true)
	}

	titleW, barW := progressColumns(innerWidth)
	rows := max(height-2, 0)
	start, end := visibleRange(m.selected, len(list), rows)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderProgressRow(list[i], i == m.selected, titleW, barW, styles, bg))
	}
	return m.renderTitledBox("Progress", strings.Join(lines, "\n"), width, height, true)
}

func (m Model) renderProgressRow(b books.Book, selected bool, titleW, barW int, styles Styles, bg BgStyle) string {
	marker := bg.Spaces(2)
	titleStyle := styles.Text
	if selected {
		marker = bg.Render("›", styles.AccentText.Bold(true)) + bg.Space()
		titleStyle = styles.Text.Bold(true)
	}

	minus, plus := styles.AccentText, styles.AccentText
	if b.PagesRead <= 0 {
		minus = styles.FaintText
	}
	if b.PagesRead >= b.TotalPages {
		plus = styles.FaintText
	}
	pages := padLeft(fmt.Sprintf("%d/%d", b.PagesRead, b.TotalPages), 11)
	stepper := bg.Render("[-]", minus) + bg.Render(pages, styles.Text) + bg.Render("[+]", plus)

	pct := stats.ItemPercentage(b, m.zeroPage)
	filled, empty := progressBar(stats.Fraction(pct), barW)
	bar := bg.Render(filled, styles.ReadBar) + bg.Render(empty, styles.UnreadBar)

	return marker +
		bg.Render(fit(b.Title, titleW), titleStyle) + bg.Space() +
		stepper + bg.Spaces(2) +
		bar + bg.Space() +
		bg.Render(padLeft(stats.FormatItemPercentage(pct), 5), styles.MutedText) + bg.Space() +
		bg.Render(stars(m.ratings[b.ID]), styles.Star)
}
