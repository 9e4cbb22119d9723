package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/xref"
)

func TestTodos(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	pp := &PrettyPrint{Out: &out}
	pp.Todos(
		item.Todo{ID: 2, Text: "ship it", ContextRefs: []string{"amber-river-stone"}},
		item.Todo{Text: "old style"},
	)
	got := out.String()
	for _, want := range []string{"2", "ship it", "amber-river-stone", "- ● old style"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}

	out.Reset()
	pp.Todos()
	if !strings.Contains(out.String(), "none") {
		t.Fatalf("empty list should say none, got %q", out.String())
	}
}

func TestContextsShowLinkedTodos(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	pp := &PrettyPrint{Out: &out}
	pp.Contexts(
		[]item.Context{{ID: "amber-river-stone", Text: "first\nsecond"}},
		map[string][]xref.Ref{"amber-river-stone": {{TodoID: 1}, {TodoID: 4}}},
	)
	got := out.String()
	if !strings.Contains(got, "(#1, #4)") || !strings.Contains(got, "    second") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestCalendar(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	pp := &PrettyPrint{Out: &out}
	nov := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)
	pp.Calendar(nov, []time.Time{nov})

	lines := strings.Split(out.String(), "\n")
	if !strings.Contains(lines[0], "November") {
		t.Fatalf("missing month header %q", lines[0])
	}
	// November 2025 starts on a Saturday.
	if lines[1] != strings.Repeat("   ", 6)+" 1 " {
		t.Fatalf("unexpected first week %q", lines[1])
	}
	if DaysIn(nov) != 30 || StartDay(nov) != time.Saturday {
		t.Fatalf("unexpected month shape %d %v", DaysIn(nov), StartDay(nov))
	}
}
