package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the size column is hidden.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the width from which the date column uses the long form.
	LayoutWideWidth = 120
)

// LogTailLines is how many log lines the logs view keeps.
const LogTailLines = 1000

// chromeHeight is the header, command bar and status line.
const chromeHeight = 3

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// renderBox draws a titled rounded panel filling width x height.
func (m Model) renderBox(title, content string, width, height int) string {
	styles := m.theme.Styles()
	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	heading := styles.AccentText.Bold(true).Render(title)
	body := lipgloss.JoinVertical(lipgloss.Left, heading, content)
	lines := strings.Split(body, "\n")
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(innerWidth).
		Height(innerHeight).
		Render(strings.Join(lines, "\n"))
}
