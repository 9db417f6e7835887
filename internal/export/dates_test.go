package export

import (
	"testing"
	"time"
)

func TestParseNativeTimestamp(t *testing.T) {
	got, ok := ParseNativeTimestamp("25/02/26, 7:03:37 PM")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2026, time.February, 25, 19, 3, 37, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseNativeTimestamp_NoonMidnight(t *testing.T) {
	got, ok := ParseNativeTimestamp("25/02/26, 12:00:00 AM")
	if !ok || got.Hour() != 0 {
		t.Errorf("12 AM: got hour %d ok=%v, want 0", got.Hour(), ok)
	}

	got, ok = ParseNativeTimestamp("25/02/26, 12:00:00 PM")
	if !ok || got.Hour() != 12 {
		t.Errorf("12 PM: got hour %d ok=%v, want 12", got.Hour(), ok)
	}
}

func TestParseNativeTimestamp_Rejects(t *testing.T) {
	cases := []string{
		"",
		"2026-02-25 19:03:37",    // wrong shape entirely
		"25/02/2026, 7:03:37 PM", // 4-digit year
		"25/02/26 7:03:37 PM",    // missing comma
		"25/02/26, 7:03 PM",      // no seconds
		"31/04/26, 1:00:00 PM",   // April has 30 days
		"1/13/26, 1:00:00 PM",    // month 13
		"25/02/26, 7:03:37 XM",   // bad meridiem
	}
	for _, in := range cases {
		if _, ok := ParseNativeTimestamp(in); ok {
			t.Errorf("ParseNativeTimestamp(%q) succeeded, want failure", in)
		}
	}
}

func TestParseNativeTimestamp_InvisibleMarks(t *testing.T) {
	// LRM-prefixed with a narrow no-break space before the meridiem, as
	// exported on some locales.
	raw := "‎25/02/26, 7:03:37 PM"
	got, ok := ParseNativeTimestamp(raw)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.Hour() != 19 || got.Minute() != 3 {
		t.Errorf("got %v, want 19:03", got)
	}
}

func TestParseNativeTimestamp_CaseInsensitiveMeridiem(t *testing.T) {
	for _, in := range []string{"1/1/24, 9:00:00 am", "1/1/24, 9:00:00 Am", "1/1/24, 9:00:00 aM"} {
		if _, ok := ParseNativeTimestamp(in); !ok {
			t.Errorf("ParseNativeTimestamp(%q) failed, want success", in)
		}
	}
}

func TestParseNativeTimestamp_RoundTrip(t *testing.T) {
	inputs := []string{
		"25/02/26, 7:03:37 PM",
		"1/1/24, 9:00:00 AM",
		"31/12/99, 11:59:59 PM",
		"29/02/24, 12:30:00 PM", // leap day
	}
	for _, in := range inputs {
		first, ok := ParseNativeTimestamp(in)
		if !ok {
			t.Fatalf("ParseNativeTimestamp(%q) failed", in)
		}
		formatted := formatNative(first)
		second, ok := ParseNativeTimestamp(formatted)
		if !ok {
			t.Fatalf("re-parse of %q failed", formatted)
		}
		if !first.Equal(second) {
			t.Errorf("%q: round-trip %v != %v", in, second, first)
		}
	}
}

// formatNative renders an instant back into the export-native shape with
// normalized whitespace, for the round-trip property only.
func formatNative(t time.Time) string {
	return t.Format("2/1/06, 3:04:05 PM")
}

func TestParseDateTimeLocal(t *testing.T) {
	got, ok := ParseDateTimeLocal("2026-02-25T19:03")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2026, time.February, 25, 19, 3, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Second() != 0 {
		t.Errorf("seconds = %d, want 0", got.Second())
	}
}

func TestParseDateTimeLocal_Rejects(t *testing.T) {
	cases := []string{
		"",
		"2026-02-25",          // date only
		"2026-02-25T19:03:00", // with seconds
		"26-02-25T19:03",      // 2-digit year
		"2026-02-30T10:00",    // no Feb 30
		"potato",
	}
	for _, in := range cases {
		if _, ok := ParseDateTimeLocal(in); ok {
			t.Errorf("ParseDateTimeLocal(%q) succeeded, want failure", in)
		}
	}
}

func TestParseOverride(t *testing.T) {
	want := time.Date(2026, time.February, 25, 19, 3, 37, 0, time.Local)

	got, ok := ParseOverride("[25/02/26, 7:03:37 PM]")
	if !ok || !got.Equal(want) {
		t.Errorf("bracketed: got %v ok=%v", got, ok)
	}

	got, ok = ParseOverride("25/02/26, 7:03:37 PM")
	if !ok || !got.Equal(want) {
		t.Errorf("bare native: got %v ok=%v", got, ok)
	}

	got, ok = ParseOverride("2026-02-25T19:03")
	if !ok || got.Hour() != 19 || got.Second() != 0 {
		t.Errorf("datetime-local fallback: got %v ok=%v", got, ok)
	}

	if _, ok := ParseOverride("potato"); ok {
		t.Error("ParseOverride(potato) succeeded, want failure")
	}
	if _, ok := ParseOverride(""); ok {
		t.Error("ParseOverride of empty string succeeded, want failure")
	}
	if _, ok := ParseOverride("   "); ok {
		t.Error("ParseOverride of blank string succeeded, want failure")
	}
}

func TestResolveCutoff_Precedence(t *testing.T) {
	stored := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)

	c := ResolveCutoff("[25/02/26, 7:03:37 PM]", "2026-02-20T10:00", &stored)
	if c.Source != CutoffTextOverride || c.Time.Hour() != 19 {
		t.Errorf("text override should win: %+v", c)
	}

	c = ResolveCutoff("", "2026-02-20T10:00", &stored)
	if c.Source != CutoffPickerOverride || c.Time.Day() != 20 {
		t.Errorf("picker should win over stored: %+v", c)
	}

	c = ResolveCutoff("", "", &stored)
	if c.Source != CutoffStored || !c.Time.Equal(stored) {
		t.Errorf("stored should apply: %+v", c)
	}

	c = ResolveCutoff("", "", nil)
	if c.Ok() || c.Ptr() != nil {
		t.Errorf("no inputs should resolve to no cutoff: %+v", c)
	}
}

func TestResolveCutoff_InvalidInputsFallThrough(t *testing.T) {
	stored := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)

	c := ResolveCutoff("potato", "", &stored)
	if c.Source != CutoffStored {
		t.Errorf("invalid text should fall through to stored, got %v", c.Source)
	}
	if len(c.Warnings) != 1 {
		t.Errorf("want 1 warning, got %v", c.Warnings)
	}

	c = ResolveCutoff("potato", "also-bad", nil)
	if c.Ok() {
		t.Errorf("all-invalid should resolve to none, got %+v", c)
	}
	if len(c.Warnings) != 2 {
		t.Errorf("want 2 warnings, got %v", c.Warnings)
	}
}

func TestFormatDateTimeLocal(t *testing.T) {
	in := time.Date(2026, time.February, 25, 19, 3, 37, 0, time.Local)
	if got := FormatDateTimeLocal(in); got != "2026-02-25T19:03" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeTimestamp_Idempotent(t *testing.T) {
	raw := "\ufeff\u200e 25/02/26, 7:03:37\u202fPM \u200f"
	once := NormalizeTimestamp(raw)
	if once != "25/02/26, 7:03:37 PM" {
		t.Errorf("normalize = %q", once)
	}
	if twice := NormalizeTimestamp(once); twice != once {
		t.Errorf("not idempotent: %q -> %q", once, twice)
	}
	if NormalizeTimestamp("") != "" {
		t.Error("empty input should stay empty")
	}
}
