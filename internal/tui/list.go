package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wsd/internal/export"
)

// linesPerItem is the number of terminal lines each message occupies.
const linesPerItem = 2

// renderList renders the left panel: the deduplicated message list with
// new/previous markers and scrolling.
func (m model) renderList(width, height int) string {
	if len(m.report.All) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No messages")
	}

	var lines []string
	for i, msg := range m.report.All {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatMessageLine(msg, m.isNew(msg), width, i == m.cursor)
		lines = append(lines, rows...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatMessageLine formats a single message as two lines:
//
//	line 1: [>] marker  dd/mm hh:mm  sender
//	line 2:    first body line (dimmed)
func formatMessageLine(msg export.Message, isNew bool, width int, selected bool) []string {
	marker := styleMarkerPrev.Render("·")
	if isNew {
		marker = styleMarkerNew.Render("+")
	}

	sender := msg.Sender
	senderMax := width - 2 - 2 - 12 - 2 // prefix + marker + timestamp + padding
	if senderMax < 0 {
		senderMax = 0
	}
	if runewidth.StringWidth(sender) > senderMax {
		sender = runewidth.Truncate(sender, senderMax, "")
	}

	line1 := fmt.Sprintf("%s %s %s",
		marker, msg.Timestamp.Format("02/01 15:04"), styleSender.Render(sender))
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	body := msg.Text
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[:i]
	}
	bodyMax := width - 4 // indent
	if bodyMax < 0 {
		bodyMax = 0
	}
	if runewidth.StringWidth(body) > bodyMax {
		body = runewidth.Truncate(body, bodyMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(body)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
