// Package item reads the entries of one subsection into typed records.
//
// Each record keeps a Handle: its line offset within the subsection lines
// it was parsed from. A handle is only good until those lines change.
package item

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tableflip.dev/daylog/pkg/markup"
)

// Dialect identifies which historical grammar an item was read from.
type Dialect int

const (
	// Canonical is the grammar written today.
	Canonical Dialect = iota
	// TaskMacro is the single line <ac:task> form.
	TaskMacro
	// Bracket is the oldest "[x] text" list item form.
	Bracket
)

// Todo is one entry of the Todos subsection.
type Todo struct {
	Handle      int
	ID          int
	Text        string
	Checked     bool
	ContextRefs []string
	Dialect     Dialect
}

// HasContext reports whether the todo links to id.
func (t Todo) HasContext(id string) bool {
	for _, ref := range t.ContextRefs {
		if ref == id {
			return true
		}
	}
	return false
}

// Context is one entry of the Context subsection. End is the offset one
// past the last line of the block.
type Context struct {
	Handle int
	End    int
	ID     string
	Text   string
	Legacy bool
}

// Reference is one entry of the References subsection. ID is a three word
// identifier, or a sequence number for references written by older
// versions.
type Reference struct {
	Handle       int
	HasTimestamp bool
	Timestamp    string
	ID           string
	Text         string
	Legacy       bool
}

// Lines is the number of lines the reference occupies.
func (r Reference) Lines() int {
	if r.HasTimestamp {
		return 2
	}
	return 1
}

// Note is one entry of the Notes subsection. Raw keeps the markup of the
// content line; Text is its display form.
type Note struct {
	Handle       int
	HasTimestamp bool
	Timestamp    string
	Text         string
	Raw          string
}

// Lines is the number of lines the note occupies.
func (n Note) Lines() int {
	if n.HasTimestamp {
		return 2
	}
	return 1
}

var (
	canonicalTodoRe = regexp.MustCompile(`^<li(?: data-todo-id="(\d+)")? data-status="(checked|unchecked)"><span>(.*)</span></li>$`)
	taskMacroRe     = regexp.MustCompile(`^<ac:task><ac:task-id>(\d+)</ac:task-id><ac:task-status>(complete|incomplete)</ac:task-status><ac:task-body>(.*)</ac:task-body></ac:task>$`)
	bracketTodoRe   = regexp.MustCompile(`^<li>\[([ xX])\]\s*(.*)</li>$`)

	linkTokenRe    = regexp.MustCompile(`\s*<a href="#context-(` + markup.WordIDPattern + `)">[^<]*</a>`)
	bracketTokenRe = regexp.MustCompile(`\s*\[(` + markup.WordIDPattern + `)\]`)

	contextStartRe  = regexp.MustCompile(`^<ac:structured-macro ac:name="info"><ac:parameter ac:name="title">\[(` + markup.WordIDPattern + `)\]</ac:parameter><ac:rich-text-body>$`)
	legacyContextRe = regexp.MustCompile(`^<h4>\[(` + markup.WordIDPattern + `)\]</h4>$`)

	referenceRe       = regexp.MustCompile(`^<ac:structured-macro ac:name="code" data-ref-id="([^"]+)">.*<ac:plain-text-body>(.*)</ac:plain-text-body></ac:structured-macro>$`)
	legacyReferenceRe = regexp.MustCompile(`^<p>\[(\d+)\]\s*(.*)</p>$`)
)

const contextClose = "</ac:rich-text-body></ac:structured-macro>"

// ParseTodo reads a single todo line in any dialect.
func ParseTodo(line string) (Todo, bool) {
	line = strings.TrimSpace(line)
	if m := canonicalTodoRe.FindStringSubmatch(line); m != nil {
		id, _ := strconv.Atoi(m[1])
		text, refs := splitTokens(m[3], false)
		return Todo{ID: id, Checked: m[2] == "checked", Text: text, ContextRefs: refs, Dialect: Canonical}, true
	}
	if m := taskMacroRe.FindStringSubmatch(line); m != nil {
		id, _ := strconv.Atoi(m[1])
		text, refs := splitTokens(m[3], true)
		return Todo{ID: id, Checked: m[2] == "complete", Text: text, ContextRefs: refs, Dialect: TaskMacro}, true
	}
	if m := bracketTodoRe.FindStringSubmatch(line); m != nil {
		text, refs := splitTokens(m[2], true)
		return Todo{Checked: m[1] != " ", Text: text, ContextRefs: refs, Dialect: Bracket}, true
	}
	return Todo{}, false
}

// splitTokens pulls context tokens out of a todo body. Bracket tokens are
// only honoured for the dialects that wrote them.
func splitTokens(body string, brackets bool) (string, []string) {
	var refs []string
	add := func(id string) {
		for _, r := range refs {
			if r == id {
				return
			}
		}
		refs = append(refs, id)
	}
	type token struct {
		start, end int
		id         string
	}
	var tokens []token
	for _, m := range linkTokenRe.FindAllStringSubmatchIndex(body, -1) {
		tokens = append(tokens, token{m[0], m[1], body[m[2]:m[3]]})
	}
	if brackets {
		for _, m := range bracketTokenRe.FindAllStringSubmatchIndex(body, -1) {
			tokens = append(tokens, token{m[0], m[1], body[m[2]:m[3]]})
		}
	}
	if len(tokens) == 0 {
		return markup.StripTags(body), nil
	}
	// Order by position so mixed token styles keep their written order.
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j].start < tokens[j-1].start; j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
	var b strings.Builder
	last := 0
	for _, tok := range tokens {
		if tok.start < last {
			continue
		}
		b.WriteString(body[last:tok.start])
		last = tok.end
		add(tok.id)
	}
	b.WriteString(body[last:])
	return markup.StripTags(b.String()), refs
}

// FormatTodo writes t in the canonical dialect.
func FormatTodo(t Todo) string {
	status := "unchecked"
	if t.Checked {
		status = "checked"
	}
	var b strings.Builder
	b.WriteString("<li")
	if t.ID > 0 {
		fmt.Fprintf(&b, ` data-todo-id="%d"`, t.ID)
	}
	fmt.Fprintf(&b, ` data-status="%s"><span>%s`, status, markup.Escape(markup.OneLine(t.Text)))
	for _, id := range t.ContextRefs {
		b.WriteString(" ")
		b.WriteString(markup.ContextLink(id))
	}
	b.WriteString("</span></li>")
	return b.String()
}

// ParseTodos lists every todo line in lines. Other lines are skipped.
func ParseTodos(lines []string) []Todo {
	var todos []Todo
	for i, line := range lines {
		if t, ok := ParseTodo(line); ok {
			t.Handle = i
			todos = append(todos, t)
		}
	}
	return todos
}

// NextTodoID is one more than the largest todo id or list high-water mark
// found anywhere in lines. Pass the whole file to keep ids unique within
// it; deleted ids stay covered by the high-water marks.
func NextTodoID(lines []string) int {
	high := 0
	for _, line := range lines {
		if hw, ok := markup.ParseTodoListOpen(line); ok && hw > high {
			high = hw
			continue
		}
		if t, ok := ParseTodo(line); ok && t.ID > high {
			high = t.ID
		}
	}
	return high + 1
}

func contextStart(line string) (string, bool, bool) {
	line = strings.TrimSpace(line)
	if m := contextStartRe.FindStringSubmatch(line); m != nil {
		return m[1], false, true
	}
	if m := legacyContextRe.FindStringSubmatch(line); m != nil {
		return m[1], true, true
	}
	return "", false, false
}

// ParseContexts lists the context blocks in lines. A block runs from its
// start marker to the next start marker or the end of lines.
func ParseContexts(lines []string) []Context {
	var out []Context
	for i, line := range lines {
		id, legacy, ok := contextStart(line)
		if !ok {
			continue
		}
		if n := len(out); n > 0 {
			out[n-1].End = i
		}
		out = append(out, Context{Handle: i, End: len(lines), ID: id, Legacy: legacy})
	}
	for i := range out {
		out[i].Text = contextText(lines[out[i].Handle+1 : out[i].End])
	}
	return out
}

func contextText(body []string) string {
	var parts []string
	for _, line := range body {
		if _, ok := markup.SectionOf(line); ok {
			break
		}
		if t := markup.StripTags(line); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// FormatContext writes a context block in the canonical dialect, one
// paragraph per line of text.
func FormatContext(id, text string) []string {
	out := []string{`<ac:structured-macro ac:name="info"><ac:parameter ac:name="title">` + markup.Title(id) + `</ac:parameter><ac:rich-text-body>`}
	out = append(out, ContextBody(text, false)...)
	return out
}

// ContextBody is the body of a context block; legacy blocks have no
// closing line.
func ContextBody(text string, legacy bool) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if para = strings.TrimSpace(para); para != "" {
			out = append(out, "<p>"+markup.Escape(para)+"</p>")
		}
	}
	if !legacy {
		out = append(out, contextClose)
	}
	return out
}

// FindContext returns the block for id.
func FindContext(lines []string, id string) (Context, bool) {
	for _, c := range ParseContexts(lines) {
		if c.ID == id {
			return c, true
		}
	}
	return Context{}, false
}

func parseReference(line string) (Reference, bool) {
	line = strings.TrimSpace(line)
	if m := referenceRe.FindStringSubmatch(line); m != nil {
		return Reference{ID: markup.Unescape(m[1]), Text: markup.UnCDATA(m[2])}, true
	}
	if m := legacyReferenceRe.FindStringSubmatch(line); m != nil {
		return Reference{ID: m[1], Text: markup.StripTags(m[2]), Legacy: true}, true
	}
	return Reference{}, false
}

// FormatReference writes the content line of a reference.
func FormatReference(id, text string) string {
	return `<ac:structured-macro ac:name="code" data-ref-id="` + id + `"><ac:parameter ac:name="title">` +
		markup.Title(id) + `</ac:parameter><ac:plain-text-body>` + markup.CDATA(markup.OneLine(text)) +
		`</ac:plain-text-body></ac:structured-macro>`
}

// ParseReferences lists the references in lines, pairing each with the
// timestamp line directly above it.
func ParseReferences(lines []string) []Reference {
	var out []Reference
	for i := 0; i < len(lines); i++ {
		if ts, ok := markup.TimestampOf(lines[i]); ok && i+1 < len(lines) {
			if r, ok := parseReference(lines[i+1]); ok {
				r.Handle, r.HasTimestamp, r.Timestamp = i, true, ts
				out = append(out, r)
				i++
				continue
			}
		}
		if r, ok := parseReference(lines[i]); ok {
			r.Handle = i
			out = append(out, r)
		}
	}
	return out
}

// NextLegacyReference is the next sequence number for files that still
// number their references.
func NextLegacyReference(refs []Reference) int {
	high := 0
	for _, r := range refs {
		if !r.Legacy {
			continue
		}
		if n, err := strconv.Atoi(r.ID); err == nil && n > high {
			high = n
		}
	}
	return high + 1
}

func isNoteContent(line string) bool {
	if strings.TrimSpace(line) == "" || markup.IsStructural(line) {
		return false
	}
	_, ts := markup.TimestampOf(line)
	return !ts
}

// ParseNotes lists the notes in lines. Any non-empty line that is not a
// heading is a note; a timestamp line binds to the content line below it
// and is skipped when there is none.
func ParseNotes(lines []string) []Note {
	var out []Note
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if ts, ok := markup.TimestampOf(line); ok && i+1 < len(lines) && isNoteContent(lines[i+1]) {
			raw := strings.TrimSpace(lines[i+1])
			out = append(out, Note{Handle: i, HasTimestamp: true, Timestamp: ts, Raw: raw, Text: markup.StripTags(raw)})
			i++
			continue
		}
		if _, ok := markup.TimestampOf(line); ok {
			// a timestamp with nothing under it
			continue
		}
		if strings.TrimSpace(line) == "" || markup.IsStructural(line) {
			continue
		}
		raw := strings.TrimSpace(line)
		out = append(out, Note{Handle: i, Raw: raw, Text: markup.StripTags(raw)})
	}
	return out
}

// FormatNote writes plain text as a note paragraph.
func FormatNote(text string) string {
	return "<p>" + markup.Escape(markup.OneLine(text)) + "</p>"
}
