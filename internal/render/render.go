package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"wsd/internal/export"
)

const (
	colorReset  = "\033[0m"
	colorNew    = "\033[1;32m" // bold green
	colorPrev   = "\033[2m"    // dim
	colorSender = "\033[1;34m" // bold blue
	colorAttach = "\033[1;33m" // bold yellow
	colorDim    = "\033[2m"
	colorWarn   = "\033[1;31m" // bold red
)

// Summary renders the counts bar for a report, e.g.
//
//	2 new · 5 previous · 1 attachment · Jan 1 · 09:00 – 09:05 · cutoff 2026-02-25T19:03 (stored checkpoint)
func Summary(rep export.Report, cut export.Cutoff) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s%d new%s", colorNew, rep.Summary.NewCount, colorReset))
	parts = append(parts, fmt.Sprintf("%d previous", rep.Summary.PrevCount))
	noun := "attachments"
	if rep.Summary.AttachmentCount == 1 {
		noun = "attachment"
	}
	parts = append(parts, fmt.Sprintf("%s%d %s%s", colorAttach, rep.Summary.AttachmentCount, noun, colorReset))
	if rep.Summary.NewCount > 0 {
		parts = append(parts, DateRange(rep.Summary))
	}
	if cut.Ok() {
		parts = append(parts, fmt.Sprintf("%scutoff %s (%s)%s",
			colorDim, export.FormatDateTimeLocal(cut.Time), cut.Source, colorReset))
	}
	return strings.Join(parts, " · ")
}

// DateRange formats the new half's span: same-day ranges collapse to one
// date with a start and end time.
func DateRange(sum export.Summary) string {
	s, e := sum.RangeStart, sum.RangeEnd
	if s.Year() == e.Year() && s.YearDay() == e.YearDay() {
		return fmt.Sprintf("%s · %s – %s", s.Format("Jan 2"), s.Format("15:04"), e.Format("15:04"))
	}
	return fmt.Sprintf("%s – %s", s.Format("Jan 2"), e.Format("Jan 2"))
}

// Warning renders a field-level warning line.
func Warning(msg string) string {
	return colorWarn + "warning: " + msg + colorReset
}

// ListLine renders one message as a single truncated line for list views:
// time, sender, first line of the body.
func ListLine(m export.Message, isNew bool, width int) string {
	first := m.Text
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}

	marker := colorPrev + "·" + colorReset
	if isNew {
		marker = colorNew + "+" + colorReset
	}

	line := fmt.Sprintf("%s %s %s%s%s: %s",
		marker, m.Timestamp.Format("02/01 15:04"), colorSender, m.Sender, colorReset, first)
	if width > 0 && runewidth.StringWidth(stripANSI(line)) > width {
		return truncateANSI(line, width)
	}
	return line
}

// Detail renders one full message for a preview pane, wrapped to width.
// The attachment tag is pulled out of the body and shown on its own line.
func Detail(m export.Message, isNew bool, width int) string {
	att, body, hasAtt := export.ExtractAttachment(m)

	label := colorPrev + "PREVIOUS" + colorReset
	if isNew {
		label = colorNew + "NEW" + colorReset
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  %s[%s]%s %s%s%s",
		label, colorDim, m.RawTimestamp, colorReset, colorSender, m.Sender, colorReset)
	for _, l := range wrapLine(header, width) {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if hasAtt {
		b.WriteString(colorAttach + "attachment: " + att.Filename + colorReset + "\n")
	}
	b.WriteString("\n")
	for _, raw := range strings.Split(body, "\n") {
		for _, l := range wrapLine("  "+raw, width) {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// wrapLine breaks a single line into lines fitting maxWidth visible
// columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		if j, ok := ansiSeq(line, i); ok {
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// truncateANSI cuts a line to maxWidth visible columns, preserving escape
// sequences and re-appending a reset so styling never leaks.
func truncateANSI(line string, maxWidth int) string {
	var b strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		if j, ok := ansiSeq(line, i); ok {
			b.WriteString(line[i:j])
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)
		if visW+rw > maxWidth {
			break
		}
		b.WriteRune(r)
		visW += rw
		i += size
	}
	return b.String() + colorReset
}

// ansiSeq reports whether an ANSI color sequence starts at i, returning
// the index just past it.
func ansiSeq(s string, i int) (int, bool) {
	if i+1 >= len(s) || s[i] != '\033' || s[i+1] != '[' {
		return i, false
	}
	j := i + 2
	for j < len(s) && s[j] != 'm' {
		j++
	}
	if j < len(s) {
		j++
	}
	return j, true
}

func stripANSI(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if j, ok := ansiSeq(s, i); ok {
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
