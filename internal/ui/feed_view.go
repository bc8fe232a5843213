package ui

import (
	"fmt"
	"strings"

	"github.com/five82/imagefeed/internal/feed"
	"github.com/five82/imagefeed/internal/prefs"
)

// syncItems pulls the engine's current list and keeps the selection on the
// same photo where possible.
func (m *Model) syncItems() {
	if m.feed == nil {
		return
	}
	var selected string
	if item, ok := m.selectedItem(); ok {
		selected = item.ID
	}
	m.items = m.feed.Items()
	if len(m.items) == 0 {
		m.selectedRow = 0
		m.feedOffset = 0
		return
	}
	if selected != "" {
		for i, item := range m.items {
			if item.ID == selected {
				m.selectedRow = i
				break
			}
		}
	}
	m.selectedRow = clamp(m.selectedRow, 0, len(m.items)-1)
	m.ensureVisible()
}

func (m Model) selectedItem() (feed.Item, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.items) {
		return feed.Item{}, false
	}
	return m.items[m.selectedRow], true
}

func (m Model) feedItem(id string) (feed.Item, bool) {
	if m.feed == nil || id == "" {
		return feed.Item{}, false
	}
	return m.feed.Item(id)
}

// feedRows is the number of list rows visible inside the feed panel.
func (m Model) feedRows() int {
	return max(m.contentHeight()-3, 1)
}

func (m *Model) ensureVisible() {
	rows := m.feedRows()
	if m.selectedRow < m.feedOffset {
		m.feedOffset = m.selectedRow
	}
	if m.selectedRow >= m.feedOffset+rows {
		m.feedOffset = m.selectedRow - rows + 1
	}
	m.feedOffset = clamp(m.feedOffset, 0, max(len(m.items)-1, 0))
}

func (m Model) renderFeed() string {
	styles := m.theme.Styles()
	title := fmt.Sprintf("Feed (%d)", len(m.items))

	if len(m.items) == 0 {
		var msg string
		switch {
		case m.loading:
			msg = m.spinner.View() + " Loading photos..."
		case m.pageErr != nil:
			msg = styles.DangerText.Render("Could not load photos.") + " " +
				styles.MutedText.Render("Press r to retry.")
		default:
			msg = styles.MutedText.Render("No photos yet. Press r to load.")
		}
		return m.renderBox(title, msg, m.width, m.contentHeight())
	}

	rowWidth := max(m.width-4, 10)
	end := min(m.feedOffset+m.feedRows(), len(m.items))

	var b strings.Builder
	for i := m.feedOffset; i < end; i++ {
		line := m.feedRow(m.items[i], rowWidth)
		if i == m.selectedRow {
			line = styles.Selected.Width(rowWidth).Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if m.loading && end == len(m.items) {
		b.WriteString("\n" + m.spinner.View() + styles.MutedText.Render(" Loading more..."))
	}
	return m.renderBox(title, b.String(), m.width, m.contentHeight())
}

// feedRow lays out one photo: like marker, date, size, description.
func (m Model) feedRow(item feed.Item, width int) string {
	dateStyle := m.prefs.DateFormat
	if m.width < LayoutWideWidth && dateStyle == "" {
		dateStyle = prefs.DateShort
	}
	cols := []string{
		likeMarker(item.IsLiked),
		padRight(formatDate(item.CreatedAt, dateStyle), 17),
	}
	if m.width >= LayoutCompactWidth {
		cols = append(cols, padRight(formatSize(item.Width, item.Height), 11))
	}
	prefix := strings.Join(cols, " ") + " "

	desc := item.Description
	if desc == "" {
		desc = item.ID
	}
	remaining := width - len([]rune(prefix))
	return prefix + truncate(desc, remaining)
}
