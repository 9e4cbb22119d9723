// Package convert turns Markdown input into note lines for a journal file.
package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/markup"
)

// lowestHeading is the smallest level a heading inside a note may have.
// Levels 1 to 4 are taken by the journal's own structure.
const lowestHeading = 5

// Converter renders Markdown to single line XHTML.
type Converter struct {
	md goldmark.Markdown
}

// New returns a converter with strikethrough and autolinks enabled.
func New() *Converter {
	return &Converter{md: goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(headingDemoter{}, 100)),
		),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)}
}

// Note converts src into one note content line. Output that would read as
// a journal marker, such as a rule or a timestamp, is written as plain
// text instead.
func (c *Converter) Note(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	out := strings.TrimSpace(buf.String())
	out = strings.ReplaceAll(out, "\n", "&#10;")
	if out == "" || markup.IsStructural(out) {
		return item.FormatNote(src), nil
	}
	if _, ok := markup.TimestampOf(out); ok {
		return item.FormatNote(src), nil
	}
	return out, nil
}

// headingDemoter pushes headings below the levels the journal uses.
type headingDemoter struct{}

func (headingDemoter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			h.Level = min(h.Level+lowestHeading-1, 6)
		}
		return ast.WalkContinue, nil
	})
}
