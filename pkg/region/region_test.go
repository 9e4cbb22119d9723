package region

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/daylog/pkg/markup"
)

func day(d int) time.Time {
	return time.Date(2025, time.November, d, 8, 30, 0, 0, time.UTC)
}

func TestLocateOrCreateTodayOnEmptyDocument(t *testing.T) {
	l := Locator{}
	lines, span := l.LocateOrCreateToday(nil, day(3))

	want := []string{
		"<h1>November 2025</h1>",
		"<h2>Monday, November 3, 2025</h2>",
		"<h3>Todos</h3>",
		`<ul data-type="todos">`,
		"</ul>",
		"<h3>Context</h3>",
		"<h3>References</h3>",
		"<h3>Notes</h3>",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("unexpected document (-want +got):\n%s", diff)
	}
	if span != (Span{Start: 1, End: len(want)}) {
		t.Fatalf("unexpected span %+v", span)
	}

	var order []markup.Section
	for _, s := range markup.Sections() {
		sub, ok := LocateSubsection(lines, span, s)
		if !ok {
			t.Fatalf("missing subsection %s", s)
		}
		order = append(order, s)
		body := sub.Of(lines)[1:]
		if s == markup.Todos {
			if len(body) != 2 {
				t.Fatalf("todos body should be an empty list, got %q", body)
			}
			continue
		}
		if len(body) != 0 {
			t.Fatalf("%s should be empty, got %q", s, body)
		}
	}
	if diff := cmp.Diff(markup.Sections(), order); diff != "" {
		t.Fatalf("unexpected order: %s", diff)
	}
}

func TestLocateOrCreateTodayIsIdempotent(t *testing.T) {
	l := Locator{}
	first, span1 := l.LocateOrCreateToday(nil, day(3))
	second, span2 := l.LocateOrCreateToday(first, day(3))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second call changed the document:\n%s", diff)
	}
	if diff := cmp.Diff(span1.Of(first), span2.Of(second)); diff != "" {
		t.Fatalf("second call returned different content:\n%s", diff)
	}
	if got := len(l.Regions(second)); got != 1 {
		t.Fatalf("expected one region, got %d", got)
	}
}

func TestNewestFirstPrependsWithRule(t *testing.T) {
	l := Locator{}
	lines, _ := l.LocateOrCreateToday(nil, day(3))
	lines, today := l.LocateOrCreateToday(lines, day(4))

	if lines[today.Start] != markup.DayHeading(day(4)) {
		t.Fatalf("today should start at its heading, got %q", lines[today.Start])
	}
	if today.Start != 1 {
		t.Fatalf("newest day should follow the banner, got start %d", today.Start)
	}
	if !markup.IsRule(lines[today.End]) {
		t.Fatalf("expected rule after today's region, got %q", lines[today.End])
	}
	prev, ok := l.LocatePrevious(lines, day(4))
	if !ok || lines[prev.Start] != markup.DayHeading(day(3)) {
		t.Fatalf("previous region not found: %+v %v", prev, ok)
	}
}

func TestOldestFirstAppends(t *testing.T) {
	l := Locator{Order: OldestFirst}
	lines, first := l.LocateOrCreateToday(nil, day(3))
	if first.Start != 0 || markup.IsMonthBanner(lines[0]) {
		t.Fatalf("oldest-first files carry no banner: %q", lines[0])
	}
	lines, today := l.LocateOrCreateToday(lines, day(4))
	if !markup.IsRule(lines[today.Start-1]) {
		t.Fatalf("expected rule before appended region, got %q", lines[today.Start-1])
	}
	if today.End != len(lines) {
		t.Fatalf("appended region should end the document")
	}
	prev, ok := l.LocatePrevious(lines, day(4))
	if !ok || lines[prev.Start] != markup.DayHeading(day(3)) {
		t.Fatalf("previous region not found")
	}
	latest, _ := l.Latest(lines)
	if latest != today {
		t.Fatalf("latest = %+v, want %+v", latest, today)
	}
}

func TestLocateDayNeverMatchesPrefix(t *testing.T) {
	lines := []string{
		"<h2>Sunday, November 30, 2025</h2>",
		"<h3>Todos</h3>",
		"<hr />",
		"<h2>Monday, November 3, 2025</h2>",
		"<h3>Notes</h3>",
	}
	l := Locator{}
	span, ok := l.LocateDay(lines, day(3))
	if !ok || span.Start != 3 || span.End != 5 {
		t.Fatalf("unexpected span %+v %v", span, ok)
	}
	if _, ok := l.LocateDay(lines, day(13)); ok {
		t.Fatal("expected no region for an absent day")
	}
}

func TestLocatePreviousWithoutToday(t *testing.T) {
	l := Locator{}
	lines, _ := l.LocateOrCreateToday(nil, day(3))
	prev, ok := l.LocatePrevious(lines, day(9))
	if !ok || lines[prev.Start] != markup.DayHeading(day(3)) {
		t.Fatalf("expected first region when today is absent, got %+v %v", prev, ok)
	}
	if _, ok := l.LocatePrevious(nil, day(9)); ok {
		t.Fatal("expected nothing in an empty document")
	}
	_, ok = l.LocatePrevious(lines, day(3))
	if ok {
		t.Fatal("the only region has no previous region")
	}
}

func TestLocateSubsectionBoundaries(t *testing.T) {
	lines := []string{
		"<h2>Monday, November 3, 2025</h2>",
		"<h3>Todos</h3>",
		`<ul data-type="todos">`,
		`<li data-todo-id="1" data-status="unchecked"><span>a</span></li>`,
		"<h3>Notes</h3>",
		"<p>last</p>",
		"<h2>Sunday, November 2, 2025</h2>",
		"<h3>Notes</h3>",
	}
	l := Locator{}
	r, _ := l.LocateDay(lines, day(3))
	todos, ok := LocateSubsection(lines, r, markup.Todos)
	if !ok || todos != (Span{Start: 1, End: 4}) {
		t.Fatalf("todos span %+v (missing list end should still end at the next heading)", todos)
	}
	notes, ok := LocateSubsection(lines, r, markup.Notes)
	if !ok || notes != (Span{Start: 4, End: 6}) {
		t.Fatalf("notes span %+v", notes)
	}
	if _, ok := LocateSubsection(lines, r, markup.Context); ok {
		t.Fatal("context subsection does not exist")
	}
}

func TestEnsureSubsectionInsertsAtCanonicalPosition(t *testing.T) {
	lines := []string{
		"<h2>Monday, November 3, 2025</h2>",
		"<h3>Todos</h3>",
		`<ul data-type="todos">`,
		"</ul>",
		"<h3>References</h3>",
		"<h3>Notes</h3>",
	}
	l := Locator{}
	r, _ := l.LocateDay(lines, day(3))
	out, r2, sub := EnsureSubsection(lines, r, markup.Context)
	if out[sub.Start] != markup.Context.Heading() || sub.Start != 4 {
		t.Fatalf("context inserted at %d: %q", sub.Start, out)
	}
	if r2.End != r.End+1 {
		t.Fatalf("region not extended: %+v", r2)
	}
	again, _, sub2 := EnsureSubsection(out, r2, markup.Context)
	if len(again) != len(out) || sub2.Start != sub.Start {
		t.Fatal("second ensure should be a lookup")
	}
}

func TestDailyLayoutUsesWholeFile(t *testing.T) {
	l := Locator{Layout: Daily}
	lines, span := l.LocateOrCreateToday(nil, day(3))
	if span != (Span{Start: 0, End: len(lines)}) {
		t.Fatalf("unexpected span %+v", span)
	}
	if markup.IsDayHeading(lines[0]) {
		t.Fatal("daily files carry no day heading")
	}
	if _, ok := LocateSubsection(lines, span, markup.Notes); !ok {
		t.Fatal("notes subsection missing")
	}
}

func TestSplitJoin(t *testing.T) {
	if SplitLines("") != nil {
		t.Fatal("empty text has no lines")
	}
	text := "a\nb\n"
	if got := JoinLines(SplitLines(text)); got != text {
		t.Fatalf("round trip = %q", got)
	}
}
