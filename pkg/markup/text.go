package markup

import (
	"html"
	"regexp"
	"strings"
)

var (
	escaper     = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	tagRe       = regexp.MustCompile(`<[^>]*>`)
	cdataRe     = regexp.MustCompile(`<!\[CDATA\[((?s).*?)\]\]>`)
	timestampRe = regexp.MustCompile(`^<p><em>([^<]+)</em></p>$`)
	newlines    = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// Escape makes free text safe to embed in element content.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape and decodes any other entity references.
func Unescape(s string) string {
	return html.UnescapeString(s)
}

// OneLine folds line breaks into spaces. Every item is written on one line.
func OneLine(s string) string {
	return strings.TrimSpace(newlines.Replace(s))
}

// StripTags removes markup and decodes entities, leaving display text.
func StripTags(s string) string {
	return strings.TrimSpace(Unescape(tagRe.ReplaceAllString(s, "")))
}

// CDATA wraps s in a CDATA section, splitting any "]]>" it contains.
func CDATA(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// UnCDATA concatenates the contents of every CDATA section in s. Text with
// no CDATA section is treated as escaped element content.
func UnCDATA(s string) string {
	matches := cdataRe.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return StripTags(s)
	}
	var b strings.Builder
	for _, m := range matches {
		b.WriteString(m[1])
	}
	return b.String()
}

// Timestamp is the line written above a timestamped note or reference.
func Timestamp(display string) string {
	return "<p><em>" + Escape(display) + "</em></p>"
}

// TimestampOf returns the display string of a timestamp line.
func TimestampOf(line string) (string, bool) {
	m := timestampRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return Unescape(m[1]), true
}
