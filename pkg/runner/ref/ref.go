// Package ref provides the runners behind the reference commands.
package ref

import (
	"context"
	"errors"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
)

var errNoJournal = errors.New("ref: no journal")

// Add files a reference under a fresh id.
type Add struct {
	Journal *journal.Service
	Text    string
	Printer *printers.PrettyPrint
}

func (a *Add) Do(ctx context.Context) error {
	if a.Journal == nil {
		return errNoJournal
	}
	r, err := a.Journal.AddReference(ctx, a.Text)
	if err != nil {
		return err
	}
	printer(a.Printer).References(r)
	return nil
}

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
	pp.TitleWithCount("References", len(day.References))
	pp.References(day.References...)
	return nil
}

type Remove struct {
	Journal *journal.Service
	ID      string
	Printer *printers.PrettyPrint
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Journal == nil {
		return errNoJournal
	}
	if _, err := r.Journal.DeleteReference(ctx, r.ID); err != nil {
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
