package export

import "time"

// Message is one parsed export entry. Text may contain embedded newlines
// when the source message spanned multiple lines.
type Message struct {
	ID           string
	RawTimestamp string // normalized timestamp text as it appeared in the export
	Timestamp    time.Time
	Sender       string
	Text         string
	Line         int // 1-based line number of the header line in the source file
}

// identityKey builds the dedup key. Two messages with the same normalized
// timestamp text, sender and body are the same message no matter how many
// times overlapping exports repeat them.
func identityKey(rawTS, sender, text string) string {
	return rawTS + "|" + sender + "|" + text
}
