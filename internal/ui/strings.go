package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/imagefeed/internal/prefs"
)

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps both ends of long URLs visible.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit <= 5 {
		return string(runes[:limit])
	}
	tail := (limit - 1) / 3
	head := limit - 1 - tail
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}

// formatDate renders a creation date in the user's chosen style. Items
// without a parseable date render empty.
func formatDate(t *time.Time, style string) string {
	if t == nil {
		return ""
	}
	local := t.Local()
	switch style {
	case prefs.DateShort:
		return local.Format("02.01.2006")
	case prefs.DateISO:
		return local.Format("2006-01-02")
	default:
		return local.Format("2 January 2006")
	}
}

func formatSize(width, height int) string {
	if width <= 0 || height <= 0 {
		return "?"
	}
	return fmt.Sprintf("%d×%d", width, height)
}

func likeMarker(liked bool) string {
	if liked {
		return "♥"
	}
	return "♡"
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
