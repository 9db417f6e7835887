package export

import (
	"regexp"
	"strings"
	"time"
)

// attachmentRe matches the export's media reference tag, e.g.
// "<attached: IMG-001.jpg>".
var attachmentRe = regexp.MustCompile(`(?i)<attached:\s*([^>]+)>`)

// Attachment is a media reference lifted out of a message body. Always
// recomputed from the current new-message set, never stored.
type Attachment struct {
	Filename  string
	MessageID string
	Sender    string
	Timestamp time.Time
}

// ExtractAttachment returns the first attachment referenced by msg along
// with the display body: the text with every tag stripped and trimmed.
// Without a tag, ok is false and the body is the full text unchanged.
func ExtractAttachment(msg Message) (att Attachment, body string, ok bool) {
	m := attachmentRe.FindStringSubmatch(msg.Text)
	if m == nil {
		return Attachment{}, msg.Text, false
	}
	att = Attachment{
		Filename:  strings.TrimSpace(m[1]),
		MessageID: msg.ID,
		Sender:    msg.Sender,
		Timestamp: msg.Timestamp,
	}
	body = strings.TrimSpace(attachmentRe.ReplaceAllString(msg.Text, ""))
	return att, body, true
}

// Attachments builds the per-message attachment records for display: at
// most one per message, deduplicated by filename with the earliest message
// winning.
func Attachments(msgs []Message) []Attachment {
	seen := make(map[string]struct{})
	var out []Attachment
	for _, m := range msgs {
		att, _, ok := ExtractAttachment(m)
		if !ok {
			continue
		}
		if _, dup := seen[att.Filename]; dup {
			continue
		}
		seen[att.Filename] = struct{}{}
		out = append(out, att)
	}
	return out
}

// AttachmentFilenames is the bulk listing: every tag occurrence across all
// messages, deduplicated by name in first-seen order.
func AttachmentFilenames(msgs []Message) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range msgs {
		for _, g := range attachmentRe.FindAllStringSubmatch(m.Text, -1) {
			name := strings.TrimSpace(g[1])
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
