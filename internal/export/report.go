package export

import (
	"strings"
	"time"
)

// Summary captures the headline numbers for one parsed export.
type Summary struct {
	NewCount        int
	PrevCount       int
	AttachmentCount int
	RangeStart      time.Time // first new message
	RangeEnd        time.Time // last new message
}

// Report is the partitioned view of one export for one cutoff. It is
// derived wholesale from its inputs; rebuild it whenever either changes
// rather than patching it incrementally.
type Report struct {
	All         []Message
	New         []Message
	Previous    []Message
	Attachments []Attachment
	Summary     Summary
}

// BuildReport runs the dedup -> sort -> partition pipeline and derives
// attachments and the summary from the new half.
func BuildReport(msgs []Message, cutoff *time.Time) Report {
	all := Dedup(msgs)
	SortByTime(all)
	newMsgs, prevMsgs := Partition(all, cutoff)

	r := Report{
		All:         all,
		New:         newMsgs,
		Previous:    prevMsgs,
		Attachments: Attachments(newMsgs),
	}
	r.Summary = Summary{
		NewCount:        len(newMsgs),
		PrevCount:       len(prevMsgs),
		AttachmentCount: len(r.Attachments),
	}
	if len(newMsgs) > 0 {
		r.Summary.RangeStart = newMsgs[0].Timestamp
		r.Summary.RangeEnd = newMsgs[len(newMsgs)-1].Timestamp
	}
	return r
}

// FormatMessages renders messages one per line in the export's own shape,
// "[rawTimestamp] sender: text". Embedded newlines in bodies are kept,
// producing visually multi-line entries.
func FormatMessages(msgs []Message) string {
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = "[" + m.RawTimestamp + "] " + m.Sender + ": " + m.Text
	}
	return strings.Join(lines, "\n")
}

// FormatFilenames is the newline-joined bulk attachment list.
func FormatFilenames(msgs []Message) string {
	return strings.Join(AttachmentFilenames(msgs), "\n")
}

// Preview returns the display body of msg truncated to max runes, used as
// the group registry's last-synced preview.
func Preview(msg Message, max int) string {
	_, body, _ := ExtractAttachment(msg)
	r := []rune(body)
	if len(r) > max {
		return string(r[:max])
	}
	return body
}
