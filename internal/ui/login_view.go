package ui

import "strings"

func (m Model) renderLogin() string {
	styles := m.theme.Styles()
	urlWidth := max(m.width-6, 20)

	lines := []string{
		styles.Text.Render("Open this link in a browser and approve access:"),
		"",
		styles.AccentText.Render(truncateMiddle(m.authURL, urlWidth)),
		"",
		styles.Text.Render("Then paste the authorization code (or the page URL) below."),
		"",
		m.loginInput.View(),
	}
	if m.exchanging {
		lines = append(lines, "", m.spinner.View()+styles.MutedText.Render(" Signing in..."))
	}
	return m.renderBox("Sign in to Unsplash", strings.Join(lines, "\n"), m.width, m.contentHeight())
}
