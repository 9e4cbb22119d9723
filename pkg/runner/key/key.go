// Package key prints the legend of the glyphs daylog lists entries with.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daylog/pkg/glyph"
)

// Key prints a glyph legend.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}
