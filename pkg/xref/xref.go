// Package xref resolves the links between todos and context blocks.
package xref

import (
	"tableflip.dev/daylog/pkg/item"
)

// Ref is a todo that links to a context.
type Ref struct {
	TodoID int
	Handle int
	Text   string
}

// ReferencingTodos returns, in document order, every todo in lines that
// links to contextID.
func ReferencingTodos(lines []string, contextID string) []Ref {
	var refs []Ref
	for _, t := range item.ParseTodos(lines) {
		if t.HasContext(contextID) {
			refs = append(refs, Ref{TodoID: t.ID, Handle: t.Handle, Text: t.Text})
		}
	}
	return refs
}

// Link is one todo to context association.
type Link struct {
	TodoID    int
	ContextID string
}

// Dangling lists the links whose context block no longer exists.
func Dangling(todos []item.Todo, contexts []item.Context) []Link {
	known := make(map[string]struct{}, len(contexts))
	for _, c := range contexts {
		known[c.ID] = struct{}{}
	}
	var out []Link
	for _, t := range todos {
		for _, ref := range t.ContextRefs {
			if _, ok := known[ref]; !ok {
				out = append(out, Link{TodoID: t.ID, ContextID: ref})
			}
		}
	}
	return out
}

// ContextsOf groups the todos in lines by the contexts they link to,
// keeping first-seen order of contexts.
func ContextsOf(lines []string) (order []string, byContext map[string][]Ref) {
	byContext = make(map[string][]Ref)
	for _, t := range item.ParseTodos(lines) {
		for _, id := range t.ContextRefs {
			if _, ok := byContext[id]; !ok {
				order = append(order, id)
			}
			byContext[id] = append(byContext[id], Ref{TodoID: t.ID, Handle: t.Handle, Text: t.Text})
		}
	}
	return order, byContext
}
