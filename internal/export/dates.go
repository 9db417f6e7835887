package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// nativeRe matches the export's own timestamp shape once normalized,
// e.g. "25/02/26, 7:03:37 PM".
var nativeRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}),\s*(\d{1,2}):(\d{2}):(\d{2})\s*((?i:[AP]M))$`)

// dateTimeLocalRe matches the browser datetime-local input shape,
// e.g. "2026-02-25T19:03".
var dateTimeLocalRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2})$`)

// ParseNativeTimestamp parses export-native timestamp text. The two-digit
// year always means 2000+YY; there is no century heuristic. Returns false
// for anything that is not exactly this shape or not a real calendar
// instant.
func ParseNativeTimestamp(raw string) (time.Time, bool) {
	m := nativeRe.FindStringSubmatch(NormalizeTimestamp(raw))
	if m == nil {
		return time.Time{}, false
	}

	day := atoi(m[1])
	month := atoi(m[2])
	year := 2000 + atoi(m[3])
	hour := atoi(m[4])
	minute := atoi(m[5])
	second := atoi(m[6])

	switch strings.ToUpper(m[7]) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	return makeTime(year, month, day, hour, minute, second)
}

// ParseDateTimeLocal parses the fixed "YYYY-MM-DDTHH:MM" shape with
// seconds forced to zero.
func ParseDateTimeLocal(value string) (time.Time, bool) {
	m := dateTimeLocalRe.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, false
	}
	return makeTime(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), 0)
}

// ParseOverride parses the freeform override field: an optionally
// bracket-wrapped native timestamp, or a bare datetime-local value.
func ParseOverride(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	unwrapped := trimmed
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		unwrapped = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}

	if t, ok := ParseNativeTimestamp(unwrapped); ok {
		return t, true
	}
	return ParseDateTimeLocal(trimmed)
}

// FormatDateTimeLocal renders t in the datetime-local input shape, used
// when echoing the active cutoff back to the user.
func FormatDateTimeLocal(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}

// CutoffSource identifies which input supplied the effective cutoff.
type CutoffSource int

const (
	CutoffNone CutoffSource = iota
	CutoffTextOverride
	CutoffPickerOverride
	CutoffStored
)

func (s CutoffSource) String() string {
	switch s {
	case CutoffTextOverride:
		return "text override"
	case CutoffPickerOverride:
		return "picker override"
	case CutoffStored:
		return "stored checkpoint"
	default:
		return "none"
	}
}

// Cutoff is the resolved partition instant for one session, together with
// where it came from and any override inputs that failed to parse.
type Cutoff struct {
	Time     time.Time
	Source   CutoffSource
	Warnings []string
}

// Ok reports whether a cutoff was resolved at all.
func (c Cutoff) Ok() bool { return c.Source != CutoffNone }

// Ptr returns the cutoff instant for partitioning, nil when absent.
func (c Cutoff) Ptr() *time.Time {
	if !c.Ok() {
		return nil
	}
	t := c.Time
	return &t
}

// ResolveCutoff applies override precedence in one place: freeform text,
// then the datetime-local value, then the stored instant. A non-empty
// input that fails to parse is reported as a warning and skipped instead
// of suppressing lower-priority sources.
func ResolveCutoff(textOverride, pickerValue string, stored *time.Time) Cutoff {
	var warnings []string

	if trimmed := strings.TrimSpace(textOverride); trimmed != "" {
		if t, ok := ParseOverride(trimmed); ok {
			return Cutoff{Time: t, Source: CutoffTextOverride, Warnings: warnings}
		}
		warnings = append(warnings, fmt.Sprintf("override %q is not a timestamp like [25/02/26, 7:03:37 PM]", trimmed))
	}

	if trimmed := strings.TrimSpace(pickerValue); trimmed != "" {
		if t, ok := ParseDateTimeLocal(trimmed); ok {
			return Cutoff{Time: t, Source: CutoffPickerOverride, Warnings: warnings}
		}
		warnings = append(warnings, fmt.Sprintf("date %q is not of the form 2026-02-25T19:03", trimmed))
	}

	if stored != nil {
		return Cutoff{Time: *stored, Source: CutoffStored, Warnings: warnings}
	}
	return Cutoff{Warnings: warnings}
}

// makeTime builds a local-zone instant, rejecting values time.Date would
// silently normalize (day 31 in a 30-day month, minute 60, and so on).
func makeTime(year, month, day, hour, minute, second int) (time.Time, bool) {
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
