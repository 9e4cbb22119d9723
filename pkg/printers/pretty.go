package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daylog/pkg/glyph"
	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/xref"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Writer is where pp prints.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) table(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func links(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	y := color.New(color.FgHiYellow, color.Faint)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = glyph.Link.String() + " " + id
	}
	return y.Sprint(strings.Join(parts, " "))
}

// Todos prints todos with their ids. Todos written without an id show "-".
func (pp *PrettyPrint) Todos(todos ...item.Todo) {
	if len(todos) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	tbl.Wrap = true
	for _, t := range todos {
		id := "-"
		if t.ID > 0 {
			id = strconv.Itoa(t.ID)
		}
		text := t.Text
		if t.Checked {
			text = faint.Sprint(glyph.Strike(text))
		}
		tbl.AddRow(faint.Sprint(id), glyph.ForTodo(t.Checked).String(), text, links(t.ContextRefs))
	}
	tbl.RightAlign(0)
	pp.table(tbl)
}

// Notes prints notes numbered from 1, the way note commands address them.
func (pp *PrettyPrint) Notes(notes ...item.Note) {
	if len(notes) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	tbl.Wrap = true
	for i, n := range notes {
		tbl.AddRow(faint.Sprint(i+1), glyph.Note.String(), faint.Sprint(n.Timestamp), n.Text)
	}
	tbl.RightAlign(0)
	pp.table(tbl)
}

func (pp *PrettyPrint) References(refs ...item.Reference) {
	if len(refs) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	tbl.Wrap = true
	for _, r := range refs {
		tbl.AddRow(glyph.Reference.String(), y.Sprint(r.ID), faint.Sprint(r.Timestamp), r.Text)
	}
	pp.table(tbl)
}

// Contexts prints context blocks with the ids of the todos linking to them.
func (pp *PrettyPrint) Contexts(contexts []item.Context, linked map[string][]xref.Ref) {
	if len(contexts) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	for _, c := range contexts {
		_, _ = fmt.Fprintf(pp.out(), "%s %s", glyph.Context.String(), y.Sprint(c.ID))
		if refs := linked[c.ID]; len(refs) > 0 {
			ids := make([]string, len(refs))
			for i, r := range refs {
				ids[i] = "#" + strconv.Itoa(r.TodoID)
			}
			_, _ = faint.Fprintf(pp.out(), "  (%s)", strings.Join(ids, ", "))
		}
		pp.NewLine()
		for _, line := range strings.Split(c.Text, "\n") {
			_, _ = fmt.Fprintf(pp.out(), "    %s\n", line)
		}
	}
	pp.NewLine()
}

// ContextView prints one context with every todo linking to it.
func (pp *PrettyPrint) ContextView(v journal.ContextView) {
	pp.Title(fmt.Sprintf("%s [%s]", v.Day, v.Context.ID))
	for _, line := range strings.Split(v.Context.Text, "\n") {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", line)
	}
	pp.NewLine()
	pp.TitleWithCount("Linked todos", len(v.Todos))
	if len(v.Todos) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = " "
	for _, r := range v.Todos {
		tbl.AddRow(color.New(color.Faint).Sprint(r.TodoID), glyph.Link.String(), r.Text)
	}
	tbl.RightAlign(0)
	pp.table(tbl)
}

// Dangling prints links whose context no longer exists.
func (pp *PrettyPrint) Dangling(dangling ...xref.Link) {
	if len(dangling) == 0 {
		return
	}
	w := color.New(color.FgRed)
	pp.Title("Dangling links")
	for _, l := range dangling {
		_, _ = w.Fprintf(pp.out(), "  todo %d %s %s\n", l.TodoID, glyph.Link.String(), l.ContextID)
	}
	pp.NewLine()
}

// Day prints every subsection of a day.
func (pp *PrettyPrint) Day(title string, d journal.Day) {
	pp.Title(title)
	pp.NewLine()
	pp.TitleWithCount("Todos", len(d.Todos))
	pp.Todos(d.Todos...)
	pp.TitleWithCount("Context", len(d.Contexts))
	pp.Contexts(d.Contexts, d.Links)
	pp.TitleWithCount("References", len(d.References))
	pp.References(d.References...)
	pp.TitleWithCount("Notes", len(d.Notes))
	pp.Notes(d.Notes...)
}
