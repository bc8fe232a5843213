package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) resizeLogViewport() {
	width := max(m.width-4, 10)
	height := max(m.contentHeight()-3, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.Style = lipgloss.NewStyle()
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

// refreshLogs reads the tail of the application log in the background.
func (m *Model) refreshLogs() tea.Cmd {
	if strings.TrimSpace(m.logPath) == "" {
		return nil
	}
	return readLogCmd(m.logPath, LogTailLines)
}

func (m *Model) handleLogTail(msg logTailMsg) {
	m.logErr = msg.err
	if msg.err != nil {
		return
	}
	if m.logViewport.Width == 0 {
		m.resizeLogViewport()
	}
	m.logViewport.SetContent(m.colorizeLogs(msg.lines))
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

func (m Model) colorizeLogs(lines []string) string {
	styles := m.theme.Styles()
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.Contains(line, "ERROR"):
			out[i] = styles.DangerText.Render(line)
		case strings.Contains(line, "WARN"):
			out[i] = styles.WarningText.Render(line)
		case strings.Contains(line, "DEBUG"):
			out[i] = styles.FaintText.Render(line)
		default:
			out[i] = styles.Text.Render(line)
		}
	}
	return strings.Join(out, "\n")
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Log"
	if m.logPath != "" {
		title += " " + truncateMiddle(m.logPath, max(m.width-12, 10))
	}
	content := m.logViewport.View()
	switch {
	case m.logErr != nil:
		content = styles.DangerText.Render("Could not read log: ") + styles.MutedText.Render(m.logErr.Error())
	case m.logViewport.TotalLineCount() == 0:
		content = styles.MutedText.Render("Nothing logged yet.")
	}
	return m.renderBox(title, content, m.width, m.contentHeight())
}
