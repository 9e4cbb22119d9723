package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	italicCode    = 3
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Italic(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, italicCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:     "o",
		Symbol:  "●",
		Meaning: "open todo",
	}, {
		Key:     "x",
		Symbol:  "✘",
		Meaning: "done todo",
	}, {
		Key:     "-",
		Symbol:  "⁃",
		Meaning: "note",
	}, {
		Key:     "r",
		Symbol:  "§",
		Meaning: "reference",
	}, {
		Key:     "c",
		Symbol:  "ⓘ",
		Meaning: "context",
	}, {
		Key:     "l",
		Symbol:  "📎",
		Meaning: "linked context",
	}}
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int

const (
	Open Bullet = iota
	Done
	Note
	Reference
	Context
	Link
)

// ForTodo picks the bullet for a todo's checked state.
func ForTodo(checked bool) Bullet {
	if checked {
		return Done
	}
	return Open
}

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}
