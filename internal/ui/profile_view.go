package ui

import "strings"

func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if !snap.HasProfile {
		msg := styles.MutedText.Render("Profile not loaded yet.")
		if snap.LastError != nil {
			msg = styles.DangerText.Render("Profile unavailable: ") + styles.MutedText.Render(snap.LastError.Error())
		}
		return m.renderBox("Profile", msg, m.width, m.contentHeight())
	}

	p := snap.Profile
	lines := []string{
		styles.Text.Bold(true).Render(orDash(p.Name)),
		styles.AccentText.Render(p.LoginName),
		"",
	}
	if p.Bio != "" {
		lines = append(lines, styles.Text.Render(p.Bio), "")
	}
	avatar := "loading..."
	if snap.AvatarURL != "" {
		avatar = truncateMiddle(snap.AvatarURL, max(m.width-14, 20))
	}
	lines = append(lines, styles.MutedText.Render("Avatar  ")+styles.Text.Render(avatar))
	if snap.Degraded() {
		lines = append(lines, "", styles.WarningText.Render("Profile requests are failing; showing last known data."))
	}
	return m.renderBox("Profile", strings.Join(lines, "\n"), m.width, m.contentHeight())
}
