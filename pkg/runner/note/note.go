// Package note provides the runners behind the note commands.
package note

import (
	"context"
	"errors"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
)

var errNoJournal = errors.New("note: no journal")

// Add writes a timestamped note into today.
type Add struct {
	Journal *journal.Service
	Text    string
	Printer *printers.PrettyPrint
}

func (a *Add) Do(ctx context.Context) error {
	if a.Journal == nil {
		return errNoJournal
	}
	n, err := a.Journal.AddNote(ctx, a.Text)
	if err != nil {
		return err
	}
	printer(a.Printer).Notes(n)
	return nil
}

// List prints today's notes, numbered the way Edit and Remove take them.
type List struct {
	Journal *journal.Service
	Printer *printers.PrettyPrint
}

func (l *List) Do(ctx context.Context) error {
	if l.Journal == nil {
		return errNoJournal
	}
	day, err := l.Journal.Today(ctx)
	if err != nil {
		return err
	}
	pp := printer(l.Printer)
	pp.TitleWithCount("Notes", len(day.Notes))
	pp.Notes(day.Notes...)
	return nil
}

// Edit replaces the content of the nth note of today.
type Edit struct {
	Journal *journal.Service
	N       int
	Text    string
	Printer *printers.PrettyPrint
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Journal == nil {
		return errNoJournal
	}
	n, err := e.Journal.EditNote(ctx, e.N, e.Text)
	if err != nil {
		return err
	}
	printer(e.Printer).Notes(n)
	return nil
}

// Remove deletes the nth note of today.
type Remove struct {
	Journal *journal.Service
	N       int
	Printer *printers.PrettyPrint
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Journal == nil {
		return errNoJournal
	}
	_, err := r.Journal.DeleteNote(ctx, r.N)
	if err != nil {
		return err
	}
	return (&List{Journal: r.Journal, Printer: r.Printer}).Do(ctx)
}

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}
