package markup

import (
	"regexp"
	"strconv"
	"strings"
)

// WordIDPattern matches a three word identifier such as "calm-thinks-moon".
const WordIDPattern = `[a-z]+-[a-z]+-[a-z]+`

var wordIDRe = regexp.MustCompile(`^` + WordIDPattern + `$`)

// IsWordID reports whether s is a well formed three word identifier.
func IsWordID(s string) bool {
	return wordIDRe.MatchString(s)
}

// ContextLink is the token a todo carries for each linked context.
func ContextLink(id string) string {
	return `<a ` + contextHref(id) + `>📎 ` + id + `</a>`
}

func contextHref(id string) string {
	return `href="#context-` + id + `"`
}

// Title is the bracketed form used as a context or reference title.
func Title(id string) string {
	return "[" + id + "]"
}

func refAttr(id string) string {
	return `data-ref-id="` + id + `"`
}

// idForms lists every shape an identifier is written in. Writers build
// their tokens from the helpers above, so this list is the whole grammar.
func idForms(id string) []string {
	return []string{contextHref(id), Title(id), refAttr(id)}
}

// ContainsID reports whether text embeds id in any known form.
func ContainsID(text, id string) bool {
	for _, form := range idForms(id) {
		if strings.Contains(text, form) {
			return true
		}
	}
	return false
}

var (
	todoListOpenRe  = regexp.MustCompile(`^<(?:ul data-type="todos"(?: data-high-water="(\d+)")?|ac:task-list)>$`)
	todoListCloseRe = regexp.MustCompile(`^</(?:ul|ac:task-list)>$`)
)

// TodoListOpen opens the todo list container. highWater records the
// largest todo id ever issued into the list; zero omits it.
func TodoListOpen(highWater int) string {
	if highWater <= 0 {
		return `<ul data-type="todos">`
	}
	return `<ul data-type="todos" data-high-water="` + strconv.Itoa(highWater) + `">`
}

// TodoListClose closes the todo list container.
const TodoListClose = "</ul>"

// ParseTodoListOpen recognises a todo list opening line and returns its
// high-water mark.
func ParseTodoListOpen(line string) (int, bool) {
	m := todoListOpenRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	hw, _ := strconv.Atoi(m[1])
	return hw, true
}

// IsTodoListClose recognises the end of a todo list container.
func IsTodoListClose(line string) bool {
	return todoListCloseRe.MatchString(strings.TrimSpace(line))
}
