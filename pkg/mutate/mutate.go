// Package mutate applies single edits to the lines of one subsection.
//
// Every function takes the subsection lines (heading included) and returns
// a new slice; the input is never modified. Callers splice the result back
// into the document with Splice and persist it, and must re-parse before
// computing another handle.
package mutate

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/markup"
	"tableflip.dev/daylog/pkg/region"
)

var (
	// ErrNoItem is returned when a handle or id does not name an item.
	ErrNoItem = errors.New("mutate: no such item")
	// ErrDuplicate is returned when adding a context whose id is present.
	ErrDuplicate = errors.New("mutate: item already exists")
)

// Splice replaces span in doc with repl.
func Splice(doc []string, span region.Span, repl []string) []string {
	out := make([]string, 0, len(doc)-span.Len()+len(repl))
	out = append(out, doc[:span.Start]...)
	out = append(out, repl...)
	out = append(out, doc[span.End:]...)
	return out
}

func replace(lines []string, at, n int, repl ...string) []string {
	return Splice(lines, region.Span{Start: at, End: at + n}, repl)
}

func insert(lines []string, at int, repl ...string) []string {
	return replace(lines, at, 0, repl...)
}

func todoAt(lines []string, handle int) (item.Todo, error) {
	if handle < 0 || handle >= len(lines) {
		return item.Todo{}, fmt.Errorf("%w: line %d", ErrNoItem, handle)
	}
	t, ok := item.ParseTodo(lines[handle])
	if !ok {
		return item.Todo{}, fmt.Errorf("%w: line %d is not a todo", ErrNoItem, handle)
	}
	t.Handle = handle
	return t, nil
}

func rewriteTodo(lines []string, handle int, edit func(*item.Todo)) ([]string, error) {
	t, err := todoAt(lines, handle)
	if err != nil {
		return nil, err
	}
	edit(&t)
	return canonicalList(replace(lines, handle, 1, item.FormatTodo(t)), t.ID), nil
}

// SetChecked sets the checked state of the todo at handle.
func SetChecked(lines []string, handle int, checked bool) ([]string, error) {
	return rewriteTodo(lines, handle, func(t *item.Todo) { t.Checked = checked })
}

// SetText replaces the text of the todo at handle. Its checked state and
// context links are kept.
func SetText(lines []string, handle int, text string) ([]string, error) {
	return rewriteTodo(lines, handle, func(t *item.Todo) { t.Text = text })
}

// AssignID gives an id to a todo written without one.
func AssignID(lines []string, handle int, id int) ([]string, error) {
	return rewriteTodo(lines, handle, func(t *item.Todo) { t.ID = id })
}

// LinkContext appends a link to contextID unless the todo already has it.
func LinkContext(lines []string, handle int, contextID string) ([]string, error) {
	return rewriteTodo(lines, handle, func(t *item.Todo) {
		if !t.HasContext(contextID) {
			t.ContextRefs = append(t.ContextRefs, contextID)
		}
	})
}

// UnlinkContext drops the link to contextID, keeping other links in order.
func UnlinkContext(lines []string, handle int, contextID string) ([]string, error) {
	return rewriteTodo(lines, handle, func(t *item.Todo) {
		kept := t.ContextRefs[:0:0]
		for _, ref := range t.ContextRefs {
			if ref != contextID {
				kept = append(kept, ref)
			}
		}
		t.ContextRefs = kept
	})
}

// Remove deletes the item at handle: one line, or two when handle is a
// timestamp line bound to the content line below it.
func Remove(lines []string, handle int) ([]string, error) {
	if handle < 0 || handle >= len(lines) {
		return nil, fmt.Errorf("%w: line %d", ErrNoItem, handle)
	}
	if _, ok := markup.SectionOf(lines[handle]); ok {
		return nil, fmt.Errorf("%w: line %d is a heading", ErrNoItem, handle)
	}
	if _, ok := markup.ParseTodoListOpen(lines[handle]); ok || markup.IsTodoListClose(lines[handle]) {
		return nil, fmt.Errorf("%w: line %d is a list marker", ErrNoItem, handle)
	}
	n := 1
	if _, ok := markup.TimestampOf(lines[handle]); ok && handle+1 < len(lines) {
		if _, ts := markup.TimestampOf(lines[handle+1]); !ts && strings.TrimSpace(lines[handle+1]) != "" && !markup.IsStructural(lines[handle+1]) {
			n = 2
		}
	}
	return replace(lines, handle, n), nil
}

// Position says where InsertTodo puts a new todo.
type Position int

const (
	// Start is the top of the list.
	Start Position = -1
	// End is the bottom of the list.
	End Position = -2
)

// After places a new todo below the todo at handle.
func After(handle int) Position {
	return Position(handle)
}

type todoList struct {
	open, close int
	highWater   int
	todos       []item.Todo
}

func scanList(lines []string) todoList {
	l := todoList{open: -1, close: -1}
	for i, line := range lines {
		if hw, ok := markup.ParseTodoListOpen(line); ok && l.open < 0 {
			l.open, l.highWater = i, hw
			continue
		}
		if l.open >= 0 && l.close < 0 && markup.IsTodoListClose(line) {
			l.close = i
		}
	}
	l.todos = item.ParseTodos(lines)
	return l
}

// canonicalList records id on the list container when it exceeds the
// current mark. A legacy <ac:task-list> is moved onto the current
// container first: its mark starts at the highest id it holds, its closer
// becomes </ul> and its <ac:task> lines are rewritten as list items.
func canonicalList(lines []string, id int) []string {
	l := scanList(lines)
	if l.open < 0 {
		return lines
	}
	legacy := !strings.HasPrefix(strings.TrimSpace(lines[l.open]), "<ul")
	if !legacy && id <= l.highWater {
		return lines
	}
	hw := max(id, l.highWater)
	out := append([]string(nil), lines...)
	if legacy {
		for _, t := range l.todos {
			hw = max(hw, t.ID)
			if t.Dialect == item.TaskMacro {
				out[t.Handle] = item.FormatTodo(t)
			}
		}
		if l.close >= 0 {
			out[l.close] = markup.TodoListClose
		}
	}
	out[l.open] = markup.TodoListOpen(hw)
	return out
}

// InsertTodo adds t to the Todos subsection and returns the new lines and
// the handle of the inserted line. A subsection without a list container
// gets one; a container missing its end marker takes the todo after its
// last item.
func InsertTodo(lines []string, pos Position, t item.Todo) ([]string, int, error) {
	line := item.FormatTodo(t)
	l := scanList(lines)

	at := -1
	switch {
	case pos >= 0:
		if _, err := todoAt(lines, int(pos)); err != nil {
			return nil, 0, err
		}
		at = int(pos) + 1
	case l.open < 0 && len(l.todos) == 0:
		// No container at all: create one below the heading.
		head := 0
		if len(lines) > 0 {
			if _, ok := markup.SectionOf(lines[0]); ok {
				head = 1
			}
		}
		out := insert(lines, head, markup.TodoListOpen(t.ID), line, markup.TodoListClose)
		return out, head + 1, nil
	case pos == Start:
		if l.open >= 0 {
			at = l.open + 1
		} else {
			at = l.todos[0].Handle
		}
	default:
		switch {
		case l.close >= 0:
			at = l.close
		case len(l.todos) > 0:
			at = l.todos[len(l.todos)-1].Handle + 1
		default:
			at = l.open + 1
		}
	}
	out := insert(lines, at, line)
	return canonicalList(out, t.ID), at, nil
}

// AddContext appends a context block to the Context subsection.
func AddContext(lines []string, id, text string) ([]string, error) {
	if _, ok := item.FindContext(lines, id); ok {
		return nil, fmt.Errorf("%w: context %s", ErrDuplicate, id)
	}
	end := trimBlankTail(lines)
	return insert(lines, end, item.FormatContext(id, text)...), nil
}

// UpdateContext replaces the body of the block for id, keeping its start
// marker.
func UpdateContext(lines []string, id, text string) ([]string, error) {
	c, ok := item.FindContext(lines, id)
	if !ok {
		return nil, fmt.Errorf("%w: context %s", ErrNoItem, id)
	}
	end := blockEnd(lines, c)
	return replace(lines, c.Handle+1, end-c.Handle-1, item.ContextBody(text, c.Legacy)...), nil
}

// DeleteContext removes the whole block for id. Todos linking to it are
// left alone.
func DeleteContext(lines []string, id string) ([]string, error) {
	c, ok := item.FindContext(lines, id)
	if !ok {
		return nil, fmt.Errorf("%w: context %s", ErrNoItem, id)
	}
	end := blockEnd(lines, c)
	return replace(lines, c.Handle, end-c.Handle), nil
}

// blockEnd is the end of a context block without the blank lines that
// separate it from whatever follows.
func blockEnd(lines []string, c item.Context) int {
	end := c.End
	for end > c.Handle+1 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return end
}

func trimBlankTail(lines []string) int {
	end := len(lines)
	for end > 1 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return end
}

// InsertReference appends a reference, with a timestamp line when
// timestamp is not empty.
func InsertReference(lines []string, id, text, timestamp string) []string {
	return appendItem(lines, item.FormatReference(id, text), timestamp)
}

// InsertNote appends a note content line, with a timestamp line when
// timestamp is not empty. content is written as given.
func InsertNote(lines []string, content, timestamp string) []string {
	return appendItem(lines, content, timestamp)
}

func appendItem(lines []string, content, timestamp string) []string {
	var add []string
	if timestamp != "" {
		add = append(add, markup.Timestamp(timestamp))
	}
	add = append(add, content)
	return insert(lines, trimBlankTail(lines), add...)
}

// ReplaceContent swaps the content line of the note or reference at
// handle, keeping its timestamp line.
func ReplaceContent(lines []string, handle int, content string) ([]string, error) {
	if handle < 0 || handle >= len(lines) {
		return nil, fmt.Errorf("%w: line %d", ErrNoItem, handle)
	}
	at := handle
	if _, ok := markup.TimestampOf(lines[handle]); ok && handle+1 < len(lines) {
		at = handle + 1
	}
	return replace(lines, at, 1, content), nil
}
