package ui

import (
	"fmt"
	"strings"
)

func (m Model) renderImage() string {
	styles := m.theme.Styles()
	item, ok := m.feedItem(m.selectedID)
	if !ok {
		return m.renderBox("Photo", styles.MutedText.Render("This photo is no longer loaded. Press esc."),
			m.width, m.contentHeight())
	}

	labelWidth := 12
	urlWidth := max(m.width-labelWidth-6, 20)
	row := func(label, value string) string {
		return styles.MutedText.Render(padRight(label, labelWidth)) + styles.Text.Render(value)
	}

	liked := styles.MutedText.Render(likeMarker(false) + " not liked")
	if item.IsLiked {
		liked = styles.LikeText.Render(likeMarker(true) + " liked")
	}

	lines := []string{
		row("ID", item.ID),
		row("Created", orDash(formatDate(item.CreatedAt, m.prefs.DateFormat))),
		row("Size", formatSize(item.Width, item.Height)),
		row("Aspect", fmt.Sprintf("%.3f", item.AspectRatio())),
		styles.MutedText.Render(padRight("Like", labelWidth)) + liked,
		"",
	}
	if item.Description != "" {
		lines = append(lines, styles.Text.Render(truncate(item.Description, max(m.width-6, 10))), "")
	}
	lines = append(lines,
		row("Full", truncateMiddle(item.FullURL, urlWidth)),
		row("Regular", truncateMiddle(item.RegularURL, urlWidth)),
		row("Small", truncateMiddle(item.SmallURL, urlWidth)),
		row("Thumb", truncateMiddle(item.ThumbURL, urlWidth)),
	)
	return m.renderBox("Photo", strings.Join(lines, "\n"), m.width, m.contentHeight())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
