// Package region finds day regions and subsections inside a journal
// document held as a slice of lines.
package region

import (
	"strings"
	"time"

	"tableflip.dev/daylog/pkg/markup"
)

// Span is the half-open line range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len is the number of lines covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Of returns the lines covered by s.
func (s Span) Of(lines []string) []string {
	return lines[s.Start:s.End]
}

// Order is the direction days are kept in within one file.
type Order int

const (
	// NewestFirst keeps today at the top, below the month banner.
	NewestFirst Order = iota
	// OldestFirst appends each day to the end of the file.
	OldestFirst
)

// Layout is how days map onto files.
type Layout int

const (
	// Monthly keeps one file per month with a heading per day.
	Monthly Layout = iota
	// Daily is the older one file per day dialect; the file is the region.
	Daily
)

// SplitLines breaks text into lines, dropping the final newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Locator carries the file convention used when creating regions.
type Locator struct {
	Order  Order
	Layout Layout
}

// Regions lists every day region in document order.
func (l Locator) Regions(lines []string) []Span {
	if l.Layout == Daily {
		if blank(lines) {
			return nil
		}
		return []Span{{Start: 0, End: len(lines)}}
	}
	var spans []Span
	for i, line := range lines {
		if markup.IsDayHeading(line) {
			spans = append(spans, Span{Start: i, End: regionEnd(lines, i)})
		}
	}
	return spans
}

func regionEnd(lines []string, start int) int {
	for j := start + 1; j < len(lines); j++ {
		if markup.IsDayHeading(lines[j]) || markup.IsRule(lines[j]) {
			return j
		}
	}
	return len(lines)
}

func blank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// LocateDay finds the region whose heading names day. The heading must
// equal the day string exactly; a prefix never matches.
func (l Locator) LocateDay(lines []string, day time.Time) (Span, bool) {
	if l.Layout == Daily {
		if blank(lines) {
			return Span{}, false
		}
		return Span{Start: 0, End: len(lines)}, true
	}
	key := markup.DayKey(day)
	for i, line := range lines {
		if d, ok := markup.DayOf(line); ok && d == key {
			return Span{Start: i, End: regionEnd(lines, i)}, true
		}
	}
	return Span{}, false
}

// Skeleton is a fresh day region with its four empty subsections.
func (l Locator) Skeleton(day time.Time) []string {
	var out []string
	if l.Layout == Monthly {
		out = append(out, markup.DayHeading(day))
	}
	for _, s := range markup.Sections() {
		out = append(out, sectionSkeleton(s)...)
	}
	return out
}

func sectionSkeleton(s markup.Section) []string {
	if s == markup.Todos {
		return []string{s.Heading(), markup.TodoListOpen(0), markup.TodoListClose}
	}
	return []string{s.Heading()}
}

// LocateOrCreateToday returns the region for day, inserting a skeleton at
// the configured position when it is missing. The returned slice must
// replace lines. Calling it again on the result is a plain lookup.
func (l Locator) LocateOrCreateToday(lines []string, day time.Time) ([]string, Span) {
	if span, ok := l.LocateDay(lines, day); ok {
		return lines, span
	}
	skel := l.Skeleton(day)
	if l.Layout == Daily {
		return skel, Span{Start: 0, End: len(skel)}
	}

	regions := l.Regions(lines)
	if l.Order == OldestFirst {
		out := append([]string{}, lines...)
		if len(regions) > 0 {
			out = append(out, markup.Rule)
		}
		start := len(out)
		out = append(out, skel...)
		return out, Span{Start: start, End: len(out)}
	}

	if blank(lines) {
		out := append([]string{markup.MonthBanner(day)}, skel...)
		return out, Span{Start: 1, End: len(out)}
	}
	at := len(lines)
	insert := skel
	if len(regions) > 0 {
		at = regions[0].Start
		insert = append(append([]string{}, skel...), markup.Rule)
	}
	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)
	return out, Span{Start: at, End: at + len(skel)}
}

// LocatePrevious finds the region visited right after day's when walking
// from the newest day to the oldest. Without a region for day it returns
// the newest region in the document.
func (l Locator) LocatePrevious(lines []string, day time.Time) (Span, bool) {
	regions := l.Regions(lines)
	if l.Order == OldestFirst {
		for i, j := 0, len(regions)-1; i < j; i, j = i+1, j-1 {
			regions[i], regions[j] = regions[j], regions[i]
		}
	}
	today, ok := l.LocateDay(lines, day)
	if !ok {
		if len(regions) == 0 {
			return Span{}, false
		}
		return regions[0], true
	}
	for i, r := range regions {
		if r.Start == today.Start {
			if i+1 < len(regions) {
				return regions[i+1], true
			}
			return Span{}, false
		}
	}
	return Span{}, false
}

// Latest is the newest region in the document.
func (l Locator) Latest(lines []string) (Span, bool) {
	regions := l.Regions(lines)
	if len(regions) == 0 {
		return Span{}, false
	}
	if l.Order == OldestFirst {
		return regions[len(regions)-1], true
	}
	return regions[0], true
}

// LocateSubsection finds the named subsection inside region. It ends at the
// next subsection heading, the next day heading, or the end of the region.
func LocateSubsection(lines []string, region Span, name markup.Section) (Span, bool) {
	for i := region.Start; i < region.End; i++ {
		s, ok := markup.SectionOf(lines[i])
		if !ok || s != name {
			continue
		}
		end := region.End
		for j := i + 1; j < region.End; j++ {
			if _, ok := markup.SectionOf(lines[j]); ok || markup.IsDayHeading(lines[j]) {
				end = j
				break
			}
		}
		return Span{Start: i, End: end}, true
	}
	return Span{}, false
}

// EnsureSubsection returns the named subsection, creating an empty one at
// its canonical position when an older region lacks it. The region span is
// returned adjusted for any inserted lines.
func EnsureSubsection(lines []string, region Span, name markup.Section) ([]string, Span, Span) {
	if sub, ok := LocateSubsection(lines, region, name); ok {
		return lines, region, sub
	}
	at := region.End
	for _, later := range markup.Sections()[name.Index()+1:] {
		if sub, ok := LocateSubsection(lines, region, later); ok {
			at = sub.Start
			break
		}
	}
	insert := sectionSkeleton(name)
	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)
	region.End += len(insert)
	return out, region, Span{Start: at, End: at + len(insert)}
}
