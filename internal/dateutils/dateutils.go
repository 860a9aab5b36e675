// Package dateutils holds the date/time conventions of budgetbuddy: the one
// display layout users type and read, the layout used on disk, and the
// range filter used by listings.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DateTimeLayout is the only layout accepted from users, e.g. "Apr 01 2025 at 07:00".
	DateTimeLayout = "Jan 02 2006 at 15:04"
	// StoredLayout is written by the stores; it keeps seconds and the zone offset.
	StoredLayout = time.RFC3339Nano
)

// now is swapped in tests.
var now = time.Now

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims the input and collapses runs of whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// Parse parses text strictly against DateTimeLayout in local time.
func Parse(text string) (time.Time, error) {
	cleaned := CleanDateString(text)
	t, err := time.ParseInLocation(DateTimeLayout, cleaned, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date/time '%s' (expected e.g. %s): %w",
			text, time.Date(2025, time.April, 1, 7, 0, 0, 0, time.Local).Format(DateTimeLayout), err)
	}
	return t, nil
}

// Resolve parses text against DateTimeLayout. When parsing fails for any
// reason it returns the current time and usedFallback=true. It never fails;
// whether to warn about the fallback is the caller's decision.
func Resolve(text string) (t time.Time, usedFallback bool) {
	parsed, err := Parse(text)
	if err != nil {
		return now(), true
	}
	return parsed, false
}

// ResolveStored is Resolve for persisted values: StoredLayout is tried first,
// then DateTimeLayout, then the current time.
func ResolveStored(text string) (t time.Time, usedFallback bool) {
	if parsed, err := time.Parse(StoredLayout, strings.TrimSpace(text)); err == nil {
		return parsed, false
	}
	return Resolve(text)
}

// FormatDateTime renders t with DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatStored renders t with StoredLayout.
func FormatStored(t time.Time) string {
	return t.Format(StoredLayout)
}

// AddDays advances t by n calendar days, keeping the wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Range is an inclusive time window. A zero Start or End leaves that side open.
type Range struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range is unbounded on both sides.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// String renders the range with DateTimeLayout, using "…" for an open side.
func (r Range) String() string {
	start, end := "…", "…"
	if !r.Start.IsZero() {
		start = FormatDateTime(r.Start)
	}
	if !r.End.IsZero() {
		end = FormatDateTime(r.End)
	}
	return start + " - " + end
}
