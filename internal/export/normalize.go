package export

import "strings"

// invisibleMarks are the zero-width and directionality characters WhatsApp
// sprinkles into timestamps depending on device locale: LRM, RLM,
// zero-width space/non-joiner/joiner, and the byte-order mark. Kept as
// escapes; a raw BOM is only legal as a file's first byte.
const invisibleMarks = "\u200e\u200f\u200b\u200c\u200d\ufeff"

// narrowNoBreakSpace shows up between the seconds and the AM/PM marker in
// some locales.
const narrowNoBreakSpace = '\u202f'

// NormalizeTimestamp strips invisible marks anywhere in the string,
// replaces the narrow no-break space with a regular space and trims
// surrounding whitespace. Idempotent.
func NormalizeTimestamp(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case strings.ContainsRune(invisibleMarks, r):
			// drop
		case r == narrowNoBreakSpace:
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// stripLeadingInvisible drops a leading run of invisible marks only.
// Every line goes through this before header matching; full normalization
// is reserved for timestamp text.
func stripLeadingInvisible(line string) string {
	return strings.TrimLeft(line, invisibleMarks)
}
