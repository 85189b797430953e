package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pagetrack/internal/books"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// editorSubmitMsg carries the editor's fields back to the model. An empty ID
// means a new book.
type editorSubmitMsg struct {
	ID     string
	Fields books.Fields
}

const (
	fieldTitle = iota
	fieldAuthor
	fieldPagesRead
	fieldTotalPages
	fieldCount
)

var editorLabels = [fieldCount]string{"Title", "Author", "Pages read", "Total pages"}

// editorModal is the add/edit form. It owns no book state beyond the id it
// was opened for; cancelling discards everything typed.
type editorModal struct {
	id     string
	inputs [fieldCount]textinput.Model
	focus  int
}

func newEditorModal(existing *books.Book) editorModal {
	var e editorModal
	for i := range e.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = editorLabels[i]
		in.CharLimit = 200
		if i == fieldPagesRead || i == fieldTotalPages {
			in.CharLimit = 9
		}
		e.inputs[i] = in
	}
	if existing != nil {
		e.id = existing.ID
		f := books.FieldsOf(*existing)
		e.inputs[fieldTitle].SetValue(f.Title)
		e.inputs[fieldAuthor].SetValue(f.Author)
		e.inputs[fieldPagesRead].SetValue(f.PagesRead)
		e.inputs[fieldTotalPages].SetValue(f.TotalPages)
	}
	e.inputs[0].Focus()
	return e
}

func (e editorModal) editing() bool {
	return e.id != ""
}

func (e editorModal) fields() books.Fields {
	return books.Fields{
		Title:      e.inputs[fieldTitle].Value(),
		Author:     e.inputs[fieldAuthor].Value(),
		PagesRead:  e.inputs[fieldPagesRead].Value(),
		TotalPages: e.inputs[fieldTotalPages].Value(),
	}
}

func (e editorModal) setFocus(i int) editorModal {
	e.inputs[e.focus].Blur()
	e.focus = (i + fieldCount) % fieldCount
	e.inputs[e.focus].Focus()
	return e
}

func (e editorModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Cancel):
			return e, nil, true
		case key.Matches(msg, keys.Confirm):
			submit := editorSubmitMsg{ID: e.id, Fields: e.fields()}
			return e, func() tea.Msg { return submit }, false
		case key.Matches(msg, keys.NextField):
			return e.setFocus(e.focus + 1), nil, false
		case key.Matches(msg, keys.PrevField):
			return e.setFocus(e.focus - 1), nil, false
		}
	}
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return e, cmd, false
}

func (e editorModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := "Add book"
	if e.editing() {
		title = "Edit book"
	}

	labelStyle := styles.MutedText.Width(13)
	inputWidth := 36

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inputWidth+13)))
	b.WriteString("\n\n")
	for i := range e.inputs {
		label := labelStyle.Render(editorLabels[i])
		if i == e.focus {
			label = labelStyle.Foreground(lipgloss.Color(theme.Accent)).Render(editorLabels[i])
		}
		in := e.inputs[i]
		in.Width = inputWidth
		b.WriteString(label + in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" Save   ") +
		styles.AccentText.Render("esc") + styles.MutedText.Render(" Cancel   ") +
		styles.AccentText.Render("tab") + styles.MutedText.Render(" Next field"))

	return renderModalFrame(theme, b.String(), width, height, theme.Accent)
}

// alertModal shows a blocking message until dismissed.
type alertModal struct {
	title   string
	message string
}

func newAlertModal(title, message string) alertModal {
	return alertModal{title: title, message: message}
}

func (a alertModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Confirm, keys.Cancel) || msg.String() == " " {
			return a, nil, true
		}
	}
	return a, nil, false
}

func (a alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.WarningText.Bold(true).Render(a.title) + "\n\n" +
		styles.Text.Render(a.message) + "\n\n" +
		styles.AccentText.Render("enter") + styles.MutedText.Render(" OK")
	return renderModalFrame(theme, content, width, height, theme.Warning)
}

// renderModalFrame centers content in a rounded box over the screen.
func renderModalFrame(theme Theme, content string, width, height int, border string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
