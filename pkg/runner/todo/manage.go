package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/markup"
	"tableflip.dev/daylog/pkg/printers"
	"tableflip.dev/daylog/pkg/snake"
)

// Manage is the interactive todo loop. Every action is one journal call,
// and today is read again before each prompt.
type Manage struct {
	Journal *journal.Service
	Prompt  snake.IO
	Printer *printers.PrettyPrint
}

type action int

const (
	toggle action = iota
	rename
	link
	unlink
	remove
	back
)

var actions = []snake.Choice{
	{Name: "toggle", Details: "mark done or open"},
	{Name: "edit", Details: "change the text"},
	{Name: "link", Details: "link a context"},
	{Name: "unlink", Details: "drop a context link"},
	{Name: "delete", Details: "remove the todo"},
	{Name: "back"},
}

func (m *Manage) Do(ctx context.Context) error {
	if m.Journal == nil {
		return errNoJournal
	}
	if n, err := m.Journal.NumberTodos(ctx); err != nil {
		return err
	} else if n > 0 {
		_, _ = fmt.Fprintf(printer(m.Printer).Writer(), "numbered %d todos\n", n)
	}

	cursor := 0
	for {
		day, err := m.Journal.Today(ctx)
		if err != nil {
			return err
		}
		choices := make([]snake.Choice, 0, len(day.Todos)+2)
		for _, t := range day.Todos {
			choices = append(choices, todoChoice(t))
		}
		addAt := len(choices)
		choices = append(choices, snake.Choice{Name: "+ add", Details: "new todo"}, snake.Choice{Name: "quit"})
		if cursor >= len(choices) {
			cursor = 0
		}

		i, err := m.Prompt.Select("Todos", choices, cursor)
		if err != nil {
			return quiet(err)
		}
		cursor = i
		switch {
		case i == addAt:
			err = m.add(ctx)
		case i > addAt:
			return nil
		default:
			err = m.act(ctx, day.Todos[i])
		}
		if errors.Is(err, snake.ErrAborted) {
			continue
		}
		if errors.Is(err, journal.ErrNotFound) {
			_, _ = fmt.Fprintln(printer(m.Printer).Writer(), err)
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (m *Manage) add(ctx context.Context) error {
	text, err := m.Prompt.Text("Todo", "", snake.NotEmpty)
	if err != nil {
		return err
	}
	_, err = m.Journal.AddTodo(ctx, text)
	return err
}

func (m *Manage) act(ctx context.Context, t item.Todo) error {
	if t.ID == 0 {
		return fmt.Errorf("%w: todo %q has no id", journal.ErrNotFound, t.Text)
	}
	a, err := m.Prompt.Select(fmt.Sprintf("#%d %s", t.ID, t.Text), actions, 0)
	if err != nil {
		return err
	}
	switch action(a) {
	case toggle:
		_, err = m.Journal.SetTodoChecked(ctx, t.ID, !t.Checked)
	case rename:
		var text string
		if text, err = m.Prompt.Text("Text", t.Text, snake.NotEmpty); err == nil {
			_, err = m.Journal.EditTodo(ctx, t.ID, text)
		}
	case link:
		var id string
		if id, err = m.Prompt.Text("Context id", "", validContextID); err == nil {
			err = m.linkContext(ctx, t.ID, id)
		}
	case unlink:
		if len(t.ContextRefs) == 0 {
			return nil
		}
		refs := make([]snake.Choice, len(t.ContextRefs))
		for i, id := range t.ContextRefs {
			refs[i] = snake.Choice{Name: id}
		}
		var r int
		if r, err = m.Prompt.Select("Unlink", refs, 0); err == nil {
			_, err = m.Journal.UnlinkTodo(ctx, t.ID, t.ContextRefs[r])
		}
	case remove:
		var sure bool
		if sure, err = m.Prompt.Confirm("Delete #"+fmt.Sprint(t.ID), false); err == nil && sure {
			_, err = m.Journal.DeleteTodo(ctx, t.ID)
		}
	}
	return err
}

func todoChoice(t item.Todo) snake.Choice {
	id := "-"
	if t.ID > 0 {
		id = fmt.Sprintf("#%d", t.ID)
	}
	details := ""
	if len(t.ContextRefs) > 0 {
		details = glyph.Link.String() + " " + strings.Join(t.ContextRefs, " ")
	}
	return snake.Choice{
		Name:    fmt.Sprintf("%s %s %s", glyph.ForTodo(t.Checked), id, t.Text),
		Details: details,
	}
}

// linkContext links todo id to the context typed at the prompt.
func (m *Manage) linkContext(ctx context.Context, id int, input string) error {
	_, err := m.Journal.LinkTodo(ctx, id, strings.TrimSpace(input))
	return err
}

func validContextID(input string) error {
	if !markup.IsWordID(strings.TrimSpace(input)) {
		return errors.New("expected word-word-word")
	}
	return nil
}

// quiet turns leaving the top level prompt into a normal exit.
func quiet(err error) error {
	if errors.Is(err, snake.ErrAborted) {
		return nil
	}
	return err
}
