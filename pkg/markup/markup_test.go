package markup

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{line: "<h2>Monday, November 3, 2025</h2>", want: "Monday, November 3, 2025", ok: true},
		{line: "  <h1>Monday, November 3, 2025</h1>  ", want: "Monday, November 3, 2025", ok: true},
		{line: "<h3>Monday, November 3, 2025</h3>"},
		{line: "<h1>November 2025</h1>"},
		{line: "<h2>Todos</h2>"},
		{line: "<p>Monday, November 3, 2025</p>"},
	}
	for _, tt := range tests {
		got, ok := DayOf(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("DayOf(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHeadingsRoundTrip(t *testing.T) {
	day := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)
	if got, ok := DayOf(DayHeading(day)); !ok || got != DayKey(day) {
		t.Fatalf("day heading not recognised: %q", DayHeading(day))
	}
	if !IsMonthBanner(MonthBanner(day)) {
		t.Fatalf("month banner not recognised: %q", MonthBanner(day))
	}
	for _, s := range Sections() {
		got, ok := SectionOf(s.Heading())
		if !ok || got != s {
			t.Fatalf("section heading %q not recognised", s.Heading())
		}
	}
	if _, ok := SectionOf("<h4>Notes</h4>"); !ok {
		t.Fatal("expected level four section heading to be accepted")
	}
	if _, ok := SectionOf("<h3>Note</h3>"); ok {
		t.Fatal("unexpected section for unknown name")
	}
}

func TestIsStructural(t *testing.T) {
	for _, line := range []string{"<hr />", "<hr>", "<h3>Todos</h3>", "<h1>March 2024</h1>", "<h2>Friday, March 1, 2024</h2>"} {
		if !IsStructural(line) {
			t.Errorf("expected %q to be structural", line)
		}
	}
	for _, line := range []string{"<p>hr</p>", "<h5>Todos</h5>", "<h2>hello</h2>"} {
		if IsStructural(line) {
			t.Errorf("expected %q not to be structural", line)
		}
	}
}

func TestContainsIDCoversEveryWriter(t *testing.T) {
	id := "calm-thinks-moon"
	for _, text := range []string{ContextLink(id), Title(id), refAttr(id)} {
		if !ContainsID(text, id) {
			t.Errorf("ContainsID missed %q", text)
		}
	}
	if ContainsID(ContextLink("calm-thinks-moons"), id) {
		t.Error("ContainsID matched a longer identifier")
	}
	if ContainsID("calm-thinks-moon in plain prose", id) {
		t.Error("ContainsID matched bare prose")
	}
}

func TestCDATA(t *testing.T) {
	for _, s := range []string{"", "plain", "a ]]> b", "<tag> & ]]]>"} {
		if got := UnCDATA(CDATA(s)); got != s {
			t.Errorf("UnCDATA(CDATA(%q)) = %q", s, got)
		}
	}
}

func TestTodoListOpen(t *testing.T) {
	if hw, ok := ParseTodoListOpen(TodoListOpen(0)); !ok || hw != 0 {
		t.Fatalf("got %d, %v", hw, ok)
	}
	if hw, ok := ParseTodoListOpen(TodoListOpen(17)); !ok || hw != 17 {
		t.Fatalf("got %d, %v", hw, ok)
	}
	if _, ok := ParseTodoListOpen("<ac:task-list>"); !ok {
		t.Fatal("expected legacy task list to be accepted")
	}
	if !IsTodoListClose("</ac:task-list>") || !IsTodoListClose(TodoListClose) {
		t.Fatal("expected list close markers to be accepted")
	}
}

func TestTimestamp(t *testing.T) {
	got, ok := TimestampOf(Timestamp("09:15"))
	if !ok || got != "09:15" {
		t.Fatalf("TimestampOf = %q, %v", got, ok)
	}
	if _, ok := TimestampOf("<p>09:15</p>"); ok {
		t.Fatal("plain paragraph is not a timestamp")
	}
}
