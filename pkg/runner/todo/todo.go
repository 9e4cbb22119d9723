// Package todo provides the runners behind the todo commands.
package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
)

var errNoJournal = errors.New("todo: no journal")

// Filter picks which todos List shows.
type Filter int

const (
	Open Filter = iota
	Done
	All
)

func (f Filter) keep(t item.Todo) bool {
	switch f {
	case Done:
		return t.Checked
	case All:
		return true
	default:
		return !t.Checked
	}
}

// List prints today's todos.
type List struct {
	Journal *journal.Service
	Filter  Filter
	Printer *printers.PrettyPrint
}

// Do reads today without creating it.
func (l *List) Do(ctx context.Context) error {
	if l.Journal == nil {
		return errNoJournal
	}
	day, err := l.Journal.Today(ctx)
	if err != nil {
		return err
	}
	pp := printer(l.Printer)
	var todos []item.Todo
	for _, t := range day.Todos {
		if l.Filter.keep(t) {
			todos = append(todos, t)
		}
	}
	pp.TitleWithCount(title(day), len(todos))
	pp.Todos(todos...)
	return nil
}

// Add appends a todo to today.
type Add struct {
	Journal  *journal.Service
	Text     string
	Contexts []string
	Printer  *printers.PrettyPrint
}

func (a *Add) Do(ctx context.Context) error {
	if a.Journal == nil {
		return errNoJournal
	}
	t, err := a.Journal.AddTodo(ctx, a.Text, a.Contexts...)
	if err != nil {
		return err
	}
	pp := printer(a.Printer)
	_, _ = color.New(color.Faint).Fprintf(pp.Writer(), "added #%d\n", t.ID)
	pp.Todos(t)
	return nil
}

// Mark checks or unchecks one todo.
type Mark struct {
	Journal *journal.Service
	ID      int
	Checked bool
	Printer *printers.PrettyPrint
}

func (m *Mark) Do(ctx context.Context) error {
	if m.Journal == nil {
		return errNoJournal
	}
	t, err := m.Journal.SetTodoChecked(ctx, m.ID, m.Checked)
	if err != nil {
		return err
	}
	printer(m.Printer).Todos(t)
	return nil
}

// Edit replaces the text of one todo.
type Edit struct {
	Journal *journal.Service
	ID      int
	Text    string
	Printer *printers.PrettyPrint
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Journal == nil {
		return errNoJournal
	}
	t, err := e.Journal.EditTodo(ctx, e.ID, e.Text)
	if err != nil {
		return err
	}
	printer(e.Printer).Todos(t)
	return nil
}

// Remove deletes one todo.
type Remove struct {
	Journal *journal.Service
	ID      int
	Printer *printers.PrettyPrint
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Journal == nil {
		return errNoJournal
	}
	t, err := r.Journal.DeleteTodo(ctx, r.ID)
	if err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintf(printer(r.Printer).Writer(), "removed #%d %s\n", t.ID, t.Text)
	return nil
}

// Link adds or removes a context link on one todo.
type Link struct {
	Journal   *journal.Service
	ID        int
	ContextID string
	Unlink    bool
	Printer   *printers.PrettyPrint
}

func (l *Link) Do(ctx context.Context) error {
	if l.Journal == nil {
		return errNoJournal
	}
	var (
		t   item.Todo
		err error
	)
	if l.Unlink {
		t, err = l.Journal.UnlinkTodo(ctx, l.ID, l.ContextID)
	} else {
		t, err = l.Journal.LinkTodo(ctx, l.ID, l.ContextID)
	}
	if err != nil {
		return err
	}
	printer(l.Printer).Todos(t)
	return nil
}

// Carry copies yesterday's open todos into today.
type Carry struct {
	Journal *journal.Service
	Printer *printers.PrettyPrint
}

func (c *Carry) Do(ctx context.Context) error {
	if c.Journal == nil {
		return errNoJournal
	}
	carried, err := c.Journal.Carry(ctx)
	if err != nil {
		return err
	}
	pp := printer(c.Printer)
	pp.TitleWithCount("Carried", len(carried))
	pp.Todos(carried...)
	return nil
}

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}

func title(day journal.Day) string {
	return fmt.Sprintf("Todos for %s", day.Date.Format("Monday, January 2"))
}
