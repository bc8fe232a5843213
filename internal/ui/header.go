package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top bar: app name, user and feed counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)
	sep := bg.spaces(2)

	parts := []string{bg.render("imagefeed", styles.Logo)}

	if m.currentView == ViewLogin {
		parts = append(parts, bg.render("signed out", styles.MutedText))
	} else {
		if m.snapshot.HasProfile {
			parts = append(parts, bg.render(m.snapshot.Profile.LoginName, styles.AccentText))
		}
		liked := 0
		for _, item := range m.items {
			if item.IsLiked {
				liked++
			}
		}
		parts = append(parts,
			bg.render("Photos:", styles.MutedText)+bg.spaces(1)+
				bg.render(fmt.Sprintf("%d", len(m.items)), styles.Text))
		if liked > 0 {
			parts = append(parts, bg.render(fmt.Sprintf("%s %d", likeMarker(true), liked), styles.LikeText))
		}
		if m.loading {
			parts = append(parts, bg.render("loading", styles.WarningText))
		}
		if m.pageErr != nil {
			parts = append(parts, bg.render("feed error", styles.DangerText))
		}
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.join(parts, sep))
}

// renderCommandBar lists the keys that matter in the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogin:
		commands = []cmd{
			{"enter", "Sign in"},
			{"ctrl+y", "Copy link"},
			{"ctrl+c", "Quit"},
		}
	case ViewImage:
		commands = []cmd{
			{"space", "Like"},
			{"s", "Copy URL"},
			{"esc", "Back"},
			{"p", "Profile"},
			{"?", "More"},
		}
	case ViewProfile:
		commands = []cmd{
			{"L", "Log out"},
			{"f", "Feed"},
			{"l", "Logs"},
			{"?", "More"},
		}
	case ViewLogs:
		follow := "Follow"
		if !m.logFollow {
			follow = "G to follow"
		}
		commands = []cmd{
			{"j/k", "Scroll"},
			{"G", follow},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"space", "Like"},
			{"s", "Copy URL"},
			{"p", "Profile"},
			{"l", "Logs"},
			{"?", "More"},
		}
	}

	colon := bg.sep(":")
	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			bg.render(c.key, styles.AccentText)+colon+bg.render(c.desc, styles.MutedText))
	}
	return bg.fill(bg.join(segments, bg.spaces(2)), m.width)
}

// renderStatusLine shows transient feedback below the content.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	switch {
	case m.status != "":
		return styles.InfoText.Render(truncate(m.status, m.width))
	case m.pageErr != nil && m.currentView == ViewFeed:
		return styles.DangerText.Render(truncate("Could not load photos: "+m.pageErr.Error(), m.width))
	default:
		return styles.FaintText.Render(truncate("theme "+m.theme.Name, m.width))
	}
}
