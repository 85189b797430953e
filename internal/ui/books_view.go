package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pagetrack/internal/books"
)

// handleBooksKey handles the add, edit, and delete keys of the books tab.
func (m Model) handleBooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.modals = append(m.modals, newEditorModal(nil))
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		b, ok := m.selectedBook()
		if !ok {
			return m, nil
		}
		m.modals = append(m.modals, newEditorModal(&b))
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		b, ok := m.selectedBook()
		if !ok {
			return m, nil
		}
		store, id := m.store, b.ID
		return m, storeCmd(m.ctx, "delete", func(ctx context.Context) error {
			_, err := store.Delete(ctx, id)
			return err
		})
	}
	return m, nil
}

// bookColumns splits the inner width between title, author, and pages.
func bookColumns(width int) (title, author, pages int) {
	pages = 13
	rest := max(width-pages-4, 0) // one leading space plus gaps
	title = rest * 3 / 5
	author = rest - title
	return title, author, pages
}

// formatBookRow renders one row of the books table as plain text.
func formatBookRow(b books.Book, width int) string {
	titleW, authorW, pagesW := bookColumns(width)
	pages := fmt.Sprintf("%d/%d", b.PagesRead, b.TotalPages)
	return " " + fit(b.Title, titleW) + " " + fit(b.Author, authorW) + " " + padLeft(pages, pagesW) + " "
}

// renderBooks renders the books tab: every book with its title, author, and
// pages, the selected one highlighted.
func (m Model) renderBooks() string {
	width := m.width
	height := m.contentHeight()
	innerWidth := max(width-2, 0)

	bgColor := m.panelBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	list := m.snapshot.Books
	title := fmt.Sprintf("Books (%d)", len(list))

	var lines []string
	if len(list) == 0 {
		lines = append(lines, "",
			bg.Render(" No books yet. Press ", styles.MutedText)+
				bg.Render("a", styles.AccentText)+
				bg.Render(" to add one.", styles.MutedText))
		return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
	}

	titleW, authorW, pagesW := bookColumns(innerWidth)
	head := " " + fit("Title", titleW) + " " + fit("Author", authorW) + " " + padLeft("Pages", pagesW) + " "
	lines = append(lines, bg.Render(head, styles.FaintText.Bold(true)))

	rows := max(height-3, 0) // borders + column header
	start, end := visibleRange(m.selected, len(list), rows)
	for i := start; i < end; i++ {
		row := formatBookRow(list[i], innerWidth)
		if i == m.selected {
			lines = append(lines, styles.Selected.Width(innerWidth).Render(row))
			continue
		}
		lines = append(lines, bg.Render(row, styles.Text))
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}
