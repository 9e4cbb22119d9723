package todo

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
	"tableflip.dev/daylog/pkg/region"
	"tableflip.dev/daylog/pkg/store"
)

type fixedIDs struct{}

func (fixedIDs) GenerateUnique(func(string) (bool, error), int) (string, error) {
	return "amber-river-stone", nil
}

func newJournal(t *testing.T) *journal.Service {
	t.Helper()
	now := time.Date(2025, time.November, 3, 9, 30, 0, 0, time.Local)
	return &journal.Service{
		Store:   store.NewDocuments(t.TempDir()),
		Clock:   journal.ClockFunc(func() time.Time { return now }),
		Locator: region.Locator{Order: region.NewestFirst, Layout: region.Monthly},
		IDs:     fixedIDs{},
	}
}

func TestAddThenList(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	j := newJournal(t)
	var out bytes.Buffer
	pp := &printers.PrettyPrint{Out: &out}

	for _, text := range []string{"buy milk", "call bank"} {
		a := &Add{Journal: j, Text: text, Printer: pp}
		if err := a.Do(ctx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if !strings.Contains(out.String(), "added #2") {
		t.Fatalf("missing add confirmation in %q", out.String())
	}

	m := &Mark{Journal: j, ID: 1, Checked: true, Printer: pp}
	if err := m.Do(ctx); err != nil {
		t.Fatalf("mark: %v", err)
	}

	out.Reset()
	l := &List{Journal: j, Printer: pp}
	if err := l.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "buy milk") || !strings.Contains(got, "call bank") {
		t.Fatalf("open filter wrong:\n%s", got)
	}

	out.Reset()
	l.Filter = Done
	if err := l.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "buy milk") {
		t.Fatalf("done filter wrong:\n%s", out.String())
	}
}

func TestListDoesNotCreateToday(t *testing.T) {
	color.NoColor = true
	j := newJournal(t)
	var out bytes.Buffer
	l := &List{Journal: j, Printer: &printers.PrettyPrint{Out: &out}}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	keys, err := j.Keys(context.Background())
	if err != nil || len(keys) != 0 {
		t.Fatalf("list wrote a file: %v %v", keys, err)
	}
}

func TestFilter(t *testing.T) {
	open, done := item.Todo{}, item.Todo{Checked: true}
	if !Open.keep(open) || Open.keep(done) {
		t.Fatal("open filter")
	}
	if Done.keep(open) || !Done.keep(done) {
		t.Fatal("done filter")
	}
	if !All.keep(open) || !All.keep(done) {
		t.Fatal("all filter")
	}
}

func TestNilJournal(t *testing.T) {
	if err := (&Carry{}).Do(context.Background()); err != errNoJournal {
		t.Fatalf("expected errNoJournal, got %v", err)
	}
}

func TestTodoChoice(t *testing.T) {
	c := todoChoice(item.Todo{ID: 3, Text: "ship it", ContextRefs: []string{"amber-river-stone"}})
	if !strings.Contains(c.Name, "#3 ship it") || !strings.Contains(c.Details, "amber-river-stone") {
		t.Fatalf("unexpected choice %+v", c)
	}
	if validContextID("amber-river-stone") != nil || validContextID("nope") == nil {
		t.Fatal("context id validation")
	}
}

func TestManageLinkTrimsInput(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t)
	if _, err := j.AddTodo(ctx, "Backup"); err != nil {
		t.Fatalf("add todo: %v", err)
	}
	c, err := j.AddContext(ctx, "db host")
	if err != nil {
		t.Fatalf("add context: %v", err)
	}
	m := &Manage{Journal: j}
	if err := m.linkContext(ctx, 1, "  "+c.ID+"\n"); err != nil {
		t.Fatalf("link: %v", err)
	}
	day, err := j.Today(ctx)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if len(day.Todos) != 1 || !day.Todos[0].HasContext(c.ID) {
		t.Fatalf("expected todo linked to %s, got %+v", c.ID, day.Todos)
	}
}
