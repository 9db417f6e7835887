package export

import (
	"regexp"
	"strings"
)

// headerRe recognizes a message-start line:
//
//	[D/M/YY, H:MM:SS AM] Sender: first body line
//
// The sender runs up to the next colon; one optional space follows the
// colon and the rest of the line (possibly empty) is the first body line.
// Go's \s is ASCII-only, so the timestamp gaps also admit the narrow
// no-break space (U+202F) iOS locales put before the AM/PM marker.
var headerRe = regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2},[\s\x{202f}]*\d{1,2}:\d{2}:\d{2}[\s\x{202f}]*(?i:[AP]M))\]\s([^:]+):\s?(.*)$`)

// inProgress accumulates one message during the forward scan.
type inProgress struct {
	rawTS  string
	sender string
	text   string
	line   int
}

// Parse scans a full export and returns messages in file order, multi-line
// bodies joined back together. Lines before the first header are dropped,
// and so is any message whose header timestamp does not parse: malformed
// headers produce no output rather than partial records.
func Parse(content string) []Message {
	lines := strings.Split(content, "\n")

	var msgs []Message
	var cur *inProgress

	flush := func() {
		if cur == nil {
			return
		}
		msgs = appendFinalized(msgs, cur)
		cur = nil
	}

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if m := headerRe.FindStringSubmatch(stripLeadingInvisible(line)); m != nil {
			flush()
			cur = &inProgress{rawTS: m[1], sender: m[2], text: m[3], line: i + 1}
			continue
		}
		if cur != nil {
			// Continuation line: part of the current message, verbatim.
			cur.text += "\n" + line
		}
	}
	flush()

	return msgs
}

func appendFinalized(msgs []Message, cur *inProgress) []Message {
	ts, ok := ParseNativeTimestamp(cur.rawTS)
	if !ok {
		return msgs
	}
	raw := NormalizeTimestamp(cur.rawTS)
	sender := strings.TrimSpace(cur.sender)
	text := strings.TrimSpace(cur.text)
	return append(msgs, Message{
		ID:           identityKey(raw, sender, text),
		RawTimestamp: raw,
		Timestamp:    ts,
		Sender:       sender,
		Text:         text,
		Line:         cur.line,
	})
}
