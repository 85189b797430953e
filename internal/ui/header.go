package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.screen == screenEntry {
		return styles.Header.Width(m.width).Render(
			bg.Render("pagetrack", styles.Logo) + bg.Spaces(2) +
				bg.Render("Welcome", styles.MutedText),
		)
	}

	content := m.buildStatusContent(styles, bg)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	var parts []string

	// Logo
	parts = append(parts, bg.Render("pagetrack", styles.Logo))

	// Tabs, active one highlighted
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabStatistics, TabBooks} {
		if t == m.tab {
			tabs = append(tabs, bg.Render(t.String(), styles.AccentText.Bold(true).Underline(true)))
		} else {
			tabs = append(tabs, bg.Render(t.String(), styles.MutedText))
		}
	}
	parts = append(parts, strings.Join(tabs, sep+bg.Render("│", styles.FaintText)+sep))

	// Collection totals
	summary := m.summary()
	parts = append(parts,
		bg.Render("Books:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", summary.TotalBooks), styles.Text),
	)
	if !compact {
		parts = append(parts,
			bg.Render("Read:", styles.MutedText)+bg.Space()+
				bg.Render(summary.PercentageLabel()+"%", styles.SuccessText),
		)
	}

	if timeStr := m.formatTimestamp(); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	// Storage error indicator
	if m.snapshot.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		label := "ERROR"
		if m.snapshot.IsDegraded() {
			label = "STORAGE DOWN"
		}
		errText := truncate(fmt.Sprintf("%v", m.snapshot.LastError), maxErr)
		parts = append(parts,
			bg.Render(label, styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText),
		)
	}

	// Transient error display (failed writes)
	if m.errorMsg != "" {
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.errorMsg, 40), styles.WarningText),
		)
	}

	return bg.Join(parts, "  ")
}

// formatTimestamp formats the last load time with relative indicator.
func (m Model) formatTimestamp() string {
	last := m.snapshot.LastUpdated
	if last.IsZero() {
		return ""
	}

	timeSince := time.Since(last)
	timeStr := last.Format("15:04:05")

	if timeSince < time.Minute {
		timeStr += " (now)"
	} else if timeSince < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(timeSince.Minutes()))
	} else if timeSince < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(timeSince.Hours()))
	}

	return timeStr
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.screen == screenEntry:
		mode := "Register"
		if m.entry.register {
			mode = "Log in"
		}
		commands = []cmd{
			{"Enter", "Submit"},
			{"Tab", "Next field"},
			{"ctrl+r", mode},
			{"ctrl+c", "Quit"},
		}
	case m.tab == TabBooks:
		commands = []cmd{
			{"a", "Add"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"j/k", "Navigate"},
			{"s", "Statistics"},
			{"Tab", "Switch"},
		}
	default:
		commands = []cmd{
			{"+/-", "Pages"},
			{"1-5", "Rate"},
			{"j/k", "Navigate"},
			{"b", "Books"},
			{"Tab", "Switch"},
		}
	}

	if m.screen != screenEntry {
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			commands = append(commands, cmd{h.Key, h.Desc})
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
