package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ankibridge/internal/state"
)

const labelWidth = 7

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderPicker())
	b.WriteString("\n\n")
	if form := m.renderForm(); form != "" {
		b.WriteString(form)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Styles().AccentText.Bold(true).Render("Results"))
	b.WriteString("\n")
	b.WriteString(m.results.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// statusLabel summarizes the session for the header badge.
func statusLabel(pending bool, snap state.Snapshot) string {
	switch {
	case pending:
		return "sending"
	case snap.IsOffline():
		return "offline"
	case snap.LastError != nil:
		return "failed"
	case snap.LastAction != "":
		return "ok"
	default:
		return "idle"
	}
}

// renderHeader renders the logo, status badge and session counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	label := statusLabel(m.pending, snap)

	permission := "unknown"
	if snap.HasPermission {
		permission = "granted"
	}
	decks := "-"
	if snap.HasDecks {
		decks = fmt.Sprintf("%d", len(snap.Decks))
	}

	parts := []string{
		styles.Logo.Render("ankibridge"),
		styles.StatusStyle(label).Render(strings.ToUpper(label)),
		styles.MutedText.Render("permission ") + styles.Text.Render(permission),
		styles.MutedText.Render("decks ") + styles.Text.Render(decks),
		styles.MutedText.Render("notes ") + styles.Text.Render(fmt.Sprintf("%d", len(snap.NoteIDs))),
	}
	return strings.Join(parts, "  ")
}

// renderPicker renders the action list with the current action selected.
func (m Model) renderPicker() string {
	styles := m.theme.Styles()
	items := make([]string, len(m.actions))
	for i, action := range m.actions {
		name := " " + string(action) + " "
		switch {
		case i == m.actionIdx && m.focus == pickerFocus:
			items[i] = styles.Selected.Bold(true).Render(name)
		case i == m.actionIdx:
			items[i] = styles.AccentText.Render(name)
		default:
			items[i] = styles.MutedText.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// renderForm renders the inputs for the current action, one per line.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	fields := m.visibleFields()
	if len(fields) == 0 {
		return styles.FaintText.Render("No arguments. Press enter to send.")
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		labelStyle := styles.MutedText.Width(labelWidth)
		if i == m.focus {
			labelStyle = styles.AccentText.Bold(true).Width(labelWidth)
		}
		lines[i] = labelStyle.Render(fieldLabels[f]) + m.inputs[f].View()
	}
	return strings.Join(lines, "\n")
}

// renderHistory renders the results log, oldest first.
func (m Model) renderHistory() string {
	styles := m.theme.Styles()
	if len(m.history) == 0 {
		return styles.FaintText.Render("Nothing sent yet.")
	}
	lines := make([]string, 0, len(m.history))
	for _, e := range m.history {
		marker := styles.SuccessText.Render("✓")
		if !e.ok {
			marker = styles.DangerText.Render("✗")
		}
		line := fmt.Sprintf("%s %s %s",
			styles.FaintText.Render(e.at.Format("15:04:05")),
			marker,
			styles.AccentText.Render(string(e.action)),
		)
		if e.detail != "" {
			line += " " + styles.MutedText.Render(e.detail)
		}
		if e.value != "" {
			line += " → " + styles.Text.Render(e.value)
		}
		if e.err != "" {
			line += "  " + styles.DangerText.Render(e.err)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
