// Package markup defines the marker vocabulary daylog writes into journal
// files and recognises the older dialects of that vocabulary.
//
// Nothing here builds a tree. Every recogniser works on a single line, and
// every writer produces a single line, so callers can address a document by
// line offsets alone.
package markup

import (
	"regexp"
	"strings"
	"time"
)

const (
	dayFormat   = "Monday, January 2, 2006"
	monthFormat = "January 2006"

	// TimestampFormat is the display layout used for note and reference times.
	TimestampFormat = "15:04"
)

// Rule is the horizontal rule written between day regions.
const Rule = "<hr />"

// Section names one of the four subsections of a day region.
type Section string

const (
	Todos      Section = "Todos"
	Context    Section = "Context"
	References Section = "References"
	Notes      Section = "Notes"
)

// Sections returns the canonical subsections in document order.
func Sections() []Section {
	return []Section{Todos, Context, References, Notes}
}

// Heading is the line that opens the subsection.
func (s Section) Heading() string {
	return "<h3>" + string(s) + "</h3>"
}

// Index reports the canonical position of s, or -1 for unknown names.
func (s Section) Index() int {
	for i, c := range Sections() {
		if c == s {
			return i
		}
	}
	return -1
}

var (
	headingRe        = regexp.MustCompile(`^<h([1-4])>(.*)</h[1-4]>$`)
	monthNamePattern = regexp.MustCompile(`^[A-Za-z]+ \d{4}$`)
)

// DayKey is the canonical day string for t, e.g. "Monday, October 12, 2026".
func DayKey(t time.Time) string {
	return t.Format(dayFormat)
}

// DayHeading is the line that opens the day region for t.
func DayHeading(t time.Time) string {
	return "<h2>" + DayKey(t) + "</h2>"
}

// MonthBanner is the first line of a newest-first monthly file.
func MonthBanner(t time.Time) string {
	return "<h1>" + t.Format(monthFormat) + "</h1>"
}

// IsDayName reports whether value looks like "Monday, October 12, 2026".
func IsDayName(name string) bool {
	_, ok := ParseDay(name)
	return ok
}

// ParseDay reads a day string back into a local date.
func ParseDay(name string) (time.Time, bool) {
	if strings.Count(name, ",") != 2 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dayFormat, name, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsMonthName reports whether value looks like "October 2026".
func IsMonthName(name string) bool {
	if !monthNamePattern.MatchString(name) {
		return false
	}
	_, err := time.Parse(monthFormat, name)
	return err == nil
}

func heading(line string) (int, string, bool) {
	m := headingRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, "", false
	}
	return int(m[1][0] - '0'), m[2], true
}

// DayOf returns the day string carried by a day heading line. Older files
// used a level one heading for days, so both levels are accepted.
func DayOf(line string) (string, bool) {
	level, text, ok := heading(line)
	if !ok || level > 2 || !IsDayName(text) {
		return "", false
	}
	return text, true
}

// IsDayHeading reports whether line opens a day region.
func IsDayHeading(line string) bool {
	_, ok := DayOf(line)
	return ok
}

// IsMonthBanner reports whether line is a month banner.
func IsMonthBanner(line string) bool {
	level, text, ok := heading(line)
	return ok && level == 1 && IsMonthName(text)
}

// SectionOf returns the subsection a heading line opens. Level three is
// current; level four headings were written by earlier versions.
func SectionOf(line string) (Section, bool) {
	level, text, ok := heading(line)
	if !ok || level < 3 {
		return "", false
	}
	s := Section(text)
	if s.Index() < 0 {
		return "", false
	}
	return s, true
}

// IsRule reports whether line is a horizontal rule in any spelling.
func IsRule(line string) bool {
	switch strings.TrimSpace(line) {
	case "<hr />", "<hr/>", "<hr>":
		return true
	}
	return false
}

// IsStructural reports whether line would be read as a region or
// subsection boundary. Free text must never produce such a line.
func IsStructural(line string) bool {
	if IsRule(line) || IsDayHeading(line) || IsMonthBanner(line) {
		return true
	}
	_, ok := SectionOf(line)
	return ok
}
