package tui

import (
	"strconv"
	"strings"

	"github.com/vitalink-health/vitalink/pkg/domain"
)

// renderBadge renders the unread counter next to the bell. Display is
// capped at "99+"; the underlying count stays exact.
func renderBadge(count int) string {
	if count <= 0 {
		return ""
	}
	label := strconv.Itoa(count)
	if count > 99 {
		label = "99+"
	}
	return badgeStyle.Render(" " + label + " ")
}

// renderBellOverlay renders the notification mailbox list.
func renderBellOverlay(items []domain.Notification, cursor, height int) string {
	var sb strings.Builder
	sb.WriteString(" " + selectedStyle.Render("Notifications") + "\n\n")

	if len(items) == 0 {
		sb.WriteString(" " + dimStyle.Render("all quiet") + "\n")
		return sb.String()
	}

	maxLines := height - 4
	if maxLines < 3 {
		maxLines = 10
	}

	// Newest first for display; the center keeps insertion order.
	shown := 0
	for i := len(items) - 1; i >= 0 && shown < maxLines; i-- {
		n := items[i]
		displayIdx := len(items) - 1 - i

		pointer := "  "
		titleStyle := normalStyle
		if displayIdx == cursor {
			pointer = accentStyle.Render("> ")
			titleStyle = selectedStyle
		}
		dot := metaStyle.Render("·")
		if !n.Read {
			dot = unreadDotStyle.Render("●")
		}
		line := " " + pointer + dot + " " + titleStyle.Render(truncStr(n.Title, 40))
		if n.Description != "" {
			line += " " + dimStyle.Render("— "+truncStr(n.Description, 36))
		}
		line += " " + metaStyle.Render(formatTime(n.CreatedAt))
		sb.WriteString(line + "\n")
		shown++
	}
	return sb.String()
}
