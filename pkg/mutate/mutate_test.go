package mutate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/markup"
)

func todos(ts ...item.Todo) []string {
	lines := []string{markup.Todos.Heading(), markup.TodoListOpen(0)}
	for _, t := range ts {
		lines = append(lines, item.FormatTodo(t))
	}
	return append(lines, markup.TodoListClose)
}

func handleOf(t *testing.T, lines []string, id int) int {
	t.Helper()
	for _, todo := range item.ParseTodos(lines) {
		if todo.ID == id {
			return todo.Handle
		}
	}
	t.Fatalf("todo %d not found", id)
	return -1
}

func TestSetCheckedLeavesOthersAlone(t *testing.T) {
	lines := todos(
		item.Todo{ID: 1, Text: "Buy milk"},
		item.Todo{ID: 2, Text: "Walk dog", ContextRefs: []string{"calm-thinks-moon"}},
	)
	out, err := SetChecked(lines, handleOf(t, lines, 1), true)
	if err != nil {
		t.Fatalf("SetChecked: %v", err)
	}
	got := item.ParseTodos(out)
	if !got[0].Checked || got[0].Text != "Buy milk" || got[0].ID != 1 {
		t.Fatalf("todo 1 = %+v", got[0])
	}
	before := item.ParseTodos(lines)[1]
	if diff := cmp.Diff(before, got[1]); diff != "" {
		t.Fatalf("todo 2 changed:\n%s", diff)
	}
	if lines[2] == out[2] {
		t.Fatal("input slice should be left untouched and output changed")
	}
}

func TestSetTextRoundTripKeepsStateAndLinks(t *testing.T) {
	lines := todos(item.Todo{ID: 3, Text: "draft", Checked: true, ContextRefs: []string{"calm-thinks-moon", "brave-runs-river"}})
	before := item.ParseTodos(lines)[0]

	same, err := SetText(lines, before.Handle, before.Text)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, item.ParseTodos(same)[0]); diff != "" {
		t.Fatalf("identity edit changed the todo:\n%s", diff)
	}

	edited, err := SetText(lines, before.Handle, "final")
	if err != nil {
		t.Fatal(err)
	}
	after := item.ParseTodos(edited)[0]
	if after.Text != "final" || after.Checked != before.Checked {
		t.Fatalf("unexpected todo %+v", after)
	}
	if diff := cmp.Diff(before.ContextRefs, after.ContextRefs); diff != "" {
		t.Fatalf("links changed:\n%s", diff)
	}
}

func TestLegacyTodoIsRewrittenCanonically(t *testing.T) {
	lines := []string{markup.Todos.Heading(), "<ac:task-list>", "<li>[ ] old [calm-thinks-moon]</li>", "</ac:task-list>"}
	out, err := SetChecked(lines, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := item.ParseTodo(out[2])
	if got.Dialect != item.Canonical || !got.Checked || !got.HasContext("calm-thinks-moon") {
		t.Fatalf("unexpected rewrite %q", out[2])
	}
	out, err = AssignID(out, 2, 12)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := item.ParseTodo(out[2]); got.ID != 12 {
		t.Fatalf("id not assigned: %q", out[2])
	}
}

func TestInsertIntoLegacyListKeepsHighWater(t *testing.T) {
	lines := []string{
		markup.Todos.Heading(),
		"<ac:task-list>",
		"<ac:task><ac:task-id>4</ac:task-id><ac:task-status>complete</ac:task-status><ac:task-body>old</ac:task-body></ac:task>",
		"</ac:task-list>",
	}
	out, h, err := InsertTodo(lines, End, item.Todo{ID: 5, Text: "new"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		markup.Todos.Heading(),
		markup.TodoListOpen(5),
		item.FormatTodo(item.Todo{ID: 4, Checked: true, Text: "old"}),
		item.FormatTodo(item.Todo{ID: 5, Text: "new"}),
		markup.TodoListClose,
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("insert (-want +got):\n%s", diff)
	}
	out, err = Remove(out, h)
	if err != nil {
		t.Fatal(err)
	}
	if got := item.NextTodoID(out); got != 6 {
		t.Fatalf("expected next id 6 after removing 5, got %d", got)
	}
}

func TestLinkAndUnlink(t *testing.T) {
	lines := todos(item.Todo{ID: 1, Text: "a", ContextRefs: []string{"calm-thinks-moon"}})
	h := handleOf(t, lines, 1)

	out, err := LinkContext(lines, h, "brave-runs-river")
	if err != nil {
		t.Fatal(err)
	}
	again, _ := LinkContext(out, h, "brave-runs-river")
	if diff := cmp.Diff(out, again); diff != "" {
		t.Fatalf("linking twice should be a no-op:\n%s", diff)
	}
	got := item.ParseTodos(out)[0].ContextRefs
	if diff := cmp.Diff([]string{"calm-thinks-moon", "brave-runs-river"}, got); diff != "" {
		t.Fatalf("refs (-want +got):\n%s", diff)
	}

	out, err = UnlinkContext(out, h, "calm-thinks-moon")
	if err != nil {
		t.Fatal(err)
	}
	got = item.ParseTodos(out)[0].ContextRefs
	if diff := cmp.Diff([]string{"brave-runs-river"}, got); diff != "" {
		t.Fatalf("refs (-want +got):\n%s", diff)
	}
}

func TestInsertTodoPositions(t *testing.T) {
	lines := todos(item.Todo{ID: 1, Text: "one"}, item.Todo{ID: 2, Text: "two"})

	out, h, err := InsertTodo(lines, End, item.Todo{ID: 3, Text: "three"})
	if err != nil {
		t.Fatal(err)
	}
	if h != 4 || !markup.IsTodoListClose(out[5]) {
		t.Fatalf("end insert at %d: %q", h, out)
	}
	if hw, _ := markup.ParseTodoListOpen(out[1]); hw != 3 {
		t.Fatalf("high-water mark = %d", hw)
	}

	out, h, err = InsertTodo(out, Start, item.Todo{ID: 4, Text: "zero"})
	if err != nil {
		t.Fatal(err)
	}
	if h != 2 {
		t.Fatalf("start insert at %d", h)
	}

	out, h, err = InsertTodo(out, After(handleOf(t, out, 1)), item.Todo{ID: 5, Text: "one and a half"})
	if err != nil {
		t.Fatal(err)
	}
	var order []int
	for _, todo := range item.ParseTodos(out) {
		order = append(order, todo.ID)
	}
	if diff := cmp.Diff([]int{4, 1, 5, 2, 3}, order); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if out[h] != item.FormatTodo(item.Todo{ID: 5, Text: "one and a half"}) {
		t.Fatalf("handle %d does not point at the new todo", h)
	}
}

func TestInsertTodoCreatesContainer(t *testing.T) {
	out, h, err := InsertTodo([]string{markup.Todos.Heading()}, End, item.Todo{ID: 7, Text: "x"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{markup.Todos.Heading(), markup.TodoListOpen(7), item.FormatTodo(item.Todo{ID: 7, Text: "x"}), markup.TodoListClose}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if h != 2 {
		t.Fatalf("handle = %d", h)
	}
}

func TestInsertTodoWithoutListEnd(t *testing.T) {
	lines := []string{markup.Todos.Heading(), markup.TodoListOpen(0), item.FormatTodo(item.Todo{ID: 1, Text: "a"})}
	out, h, err := InsertTodo(lines, End, item.Todo{ID: 2, Text: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if h != 3 || len(item.ParseTodos(out)) != 2 {
		t.Fatalf("unexpected result %q", out)
	}
}

func TestDeleteDoesNotLowerNextID(t *testing.T) {
	lines := todos()
	var err error
	for id := 1; id <= 4; id++ {
		lines, _, err = InsertTodo(lines, End, item.Todo{ID: item.NextTodoID(lines), Text: "t"})
		if err != nil {
			t.Fatal(err)
		}
	}
	issued := item.NextTodoID(lines) - 1
	for _, id := range []int{4, 3} {
		lines, err = Remove(lines, handleOf(t, lines, id))
		if err != nil {
			t.Fatal(err)
		}
	}
	if next := item.NextTodoID(lines); next <= issued {
		t.Fatalf("NextTodoID = %d after deleting, previously issued up to %d", next, issued)
	}
}

func TestRemoveTimestampedItems(t *testing.T) {
	lines := []string{markup.Notes.Heading(), markup.Timestamp("09:00"), "<p>a</p>", "<p>b</p>"}
	out, err := Remove(lines, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{markup.Notes.Heading(), "<p>b</p>"}, out); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if _, err := Remove(lines, 0); !errors.Is(err, ErrNoItem) {
		t.Fatalf("removing the heading should fail, got %v", err)
	}
	out, err = ReplaceContent(lines, 1, "<p>A</p>")
	if err != nil {
		t.Fatal(err)
	}
	if out[1] != lines[1] || out[2] != "<p>A</p>" {
		t.Fatalf("unexpected replace %q", out)
	}
}

func TestContextCRUD(t *testing.T) {
	lines := []string{markup.Context.Heading()}
	lines, err := AddContext(lines, "calm-thinks-moon", "backup db")
	if err != nil {
		t.Fatal(err)
	}
	lines, err = AddContext(lines, "brave-runs-river", "deploy")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AddContext(lines, "brave-runs-river", "again"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	// The last block has no following marker.
	lines, err = UpdateContext(lines, "brave-runs-river", "deploy\nand verify")
	if err != nil {
		t.Fatal(err)
	}
	c, _ := item.FindContext(lines, "brave-runs-river")
	if c.Text != "deploy\nand verify" {
		t.Fatalf("updated text = %q", c.Text)
	}
	first, _ := item.FindContext(lines, "calm-thinks-moon")
	if first.Text != "backup db" {
		t.Fatalf("neighbour changed: %q", first.Text)
	}

	lines, err = DeleteContext(lines, "calm-thinks-moon")
	if err != nil {
		t.Fatal(err)
	}
	got := item.ParseContexts(lines)
	if len(got) != 1 || got[0].ID != "brave-runs-river" || got[0].Text != "deploy\nand verify" {
		t.Fatalf("unexpected contexts %+v", got)
	}
	lines, err = DeleteContext(lines, "brave-runs-river")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{markup.Context.Heading()}, lines); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if _, err := DeleteContext(lines, "brave-runs-river"); !errors.Is(err, ErrNoItem) {
		t.Fatalf("expected ErrNoItem, got %v", err)
	}
}

func TestInsertReferenceAndNote(t *testing.T) {
	refs := InsertReference([]string{markup.References.Heading(), ""}, "quiet-sings-lake", "http://example.com", "10:15")
	got := item.ParseReferences(refs)
	if len(got) != 1 || !got[0].HasTimestamp || got[0].ID != "quiet-sings-lake" || got[0].Text != "http://example.com" {
		t.Fatalf("unexpected references %+v", got)
	}
	if refs[len(refs)-1] != "" {
		t.Fatal("trailing blank line should stay last")
	}
	notes := InsertNote([]string{markup.Notes.Heading()}, item.FormatNote("hi"), "")
	if n := item.ParseNotes(notes); len(n) != 1 || n[0].Text != "hi" || n[0].HasTimestamp {
		t.Fatalf("unexpected notes %+v", n)
	}
}
