package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pagetrack/internal/auth"
)

const (
	entryEmail = iota
	entryPassword
	entryConfirm
	entryFieldCount
)

var entryLabels = [entryFieldCount]string{"Email", "Password", "Confirm password"}

// entryForm is the login/register screen shown before the tabs.
type entryForm struct {
	inputs   [entryFieldCount]textinput.Model
	focus    int
	register bool
	err      string
}

// enteredMsg reports the gate's decision.
type enteredMsg struct {
	err error
}

func newEntryForm() entryForm {
	var f entryForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = entryLabels[i]
		in.CharLimit = 254
		if i != entryEmail {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[i] = in
	}
	f.inputs[entryEmail].Focus()
	return f
}

// visibleFields is 3 in register mode and 2 otherwise.
func (f entryForm) visibleFields() int {
	if f.register {
		return entryFieldCount
	}
	return entryConfirm
}

func (f entryForm) credentials() auth.Credentials {
	return auth.Credentials{
		Email:    strings.TrimSpace(f.inputs[entryEmail].Value()),
		Password: f.inputs[entryPassword].Value(),
		Confirm:  f.inputs[entryConfirm].Value(),
		Register: f.register,
	}
}

func (f entryForm) setFocus(i int) entryForm {
	n := f.visibleFields()
	f.inputs[f.focus].Blur()
	f.focus = (i + n) % n
	f.inputs[f.focus].Focus()
	return f
}

func (f entryForm) toggleMode() entryForm {
	f.register = !f.register
	f.err = ""
	if f.focus >= f.visibleFields() {
		return f.setFocus(f.visibleFields() - 1)
	}
	return f
}

// clearSecrets empties the password fields once they have been used.
func (f entryForm) clearSecrets() entryForm {
	f.inputs[entryPassword].SetValue("")
	f.inputs[entryConfirm].SetValue("")
	return f
}

func (m Model) handleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleRegister):
		m.entry = m.entry.toggleMode()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.entry = m.entry.setFocus(m.entry.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.entry = m.entry.setFocus(m.entry.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m, enterCmd(m.ctx, m.gate, m.entry.credentials())
	}

	var cmd tea.Cmd
	m.entry.inputs[m.entry.focus], cmd = m.entry.inputs[m.entry.focus].Update(msg)
	return m, cmd
}

func (m Model) handleEntered(msg enteredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.entry.err = msg.err.Error()
		return m, nil
	}
	m.entry = m.entry.clearSecrets()
	m.entry.err = ""
	m.screen = screenTabs
	return m, reloadCmd(m.ctx, m.store)
}

func enterCmd(ctx context.Context, gate auth.Gate, creds auth.Credentials) tea.Cmd {
	return func() tea.Msg {
		if gate == nil {
			return enteredMsg{}
		}
		return enteredMsg{err: gate.Enter(ctx, creds)}
	}
}

// renderEntry renders the login/register form centered below the header.
func (m Model) renderEntry() string {
	styles := m.theme.Styles()
	f := m.entry

	title := "Log in"
	submit := "Log in"
	switchHint := "No account yet? Register"
	if f.register {
		title = "Register"
		submit = "Create account"
		switchHint = "Already registered? Log in"
	}

	labelStyle := styles.MutedText.Width(18)
	var b strings.Builder
	b.WriteString(styles.Logo.Render("pagetrack"))
	b.WriteString("  ")
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	for i := 0; i < f.visibleFields(); i++ {
		label := labelStyle.Render(entryLabels[i])
		if i == f.focus {
			label = labelStyle.Foreground(lipgloss.Color(m.theme.Accent)).Render(entryLabels[i])
		}
		in := f.inputs[i]
		in.Width = 30
		b.WriteString(label + in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" "+submit))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("ctrl+r") + styles.MutedText.Render(" "+switchHint))
	if f.err != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(f.err))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, max(m.height-2, 0), lipgloss.Center, lipgloss.Center, box)
}
