// Package contexts provides the runners behind the context commands.
package contexts

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
)

var errNoJournal = errors.New("contexts: no journal")

// Add writes a context block into today and links the given todos.
type Add struct {
	Journal *journal.Service
	Text    string
	Todos   []int
	Printer *printers.PrettyPrint
}

func (a *Add) Do(ctx context.Context) error {
	if a.Journal == nil {
		return errNoJournal
	}
	c, err := a.Journal.AddContext(ctx, a.Text, a.Todos...)
	if err != nil {
		return err
	}
	pp := printer(a.Printer)
	_, _ = color.New(color.Faint).Fprintf(pp.Writer(), "added context %s\n", c.ID)
	return nil
}

// List prints today's contexts and any link pointing at a context that no
// longer exists.
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
	dangling, err := l.Journal.Dangling(ctx)
	if err != nil {
		return err
	}
	pp := printer(l.Printer)
	pp.TitleWithCount("Context", len(day.Contexts))
	pp.Contexts(day.Contexts, day.Links)
	pp.Dangling(dangling...)
	return nil
}

// Show prints one context and every todo linking to it.
type Show struct {
	Journal *journal.Service
	ID      string
	Printer *printers.PrettyPrint
}

func (s *Show) Do(ctx context.Context) error {
	if s.Journal == nil {
		return errNoJournal
	}
	v, err := s.Journal.ShowContext(ctx, s.ID)
	if err != nil {
		return err
	}
	printer(s.Printer).ContextView(v)
	return nil
}

// Edit replaces the body of a context block wherever it was written.
type Edit struct {
	Journal *journal.Service
	ID      string
	Text    string
	Printer *printers.PrettyPrint
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Journal == nil {
		return errNoJournal
	}
	c, err := e.Journal.UpdateContext(ctx, e.ID, e.Text)
	if err != nil {
		return err
	}
	printer(e.Printer).Contexts([]item.Context{c}, nil)
	return nil
}

// Remove deletes a context block. With Unlink, todos lose their link too;
// otherwise the links are left dangling and reported.
type Remove struct {
	Journal *journal.Service
	ID      string
	Unlink  bool
	Printer *printers.PrettyPrint
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Journal == nil {
		return errNoJournal
	}
	refs, err := r.Journal.DeleteContext(ctx, r.ID, r.Unlink)
	if err != nil {
		return err
	}
	pp := printer(r.Printer)
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(pp.Writer(), "removed context %s\n", r.ID)
	switch {
	case len(refs) == 0:
	case r.Unlink:
		_, _ = faint.Fprintf(pp.Writer(), "unlinked %d todos\n", len(refs))
	default:
		_, _ = color.New(color.FgRed).Fprintf(pp.Writer(), "%d todos still link to %s, see daylog context list\n", len(refs), r.ID)
	}
	return nil
}

func printer(pp *printers.PrettyPrint) *printers.PrettyPrint {
	if pp == nil {
		return &printers.PrettyPrint{}
	}
	return pp
}
