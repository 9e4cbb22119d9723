package journal

import (
	"context"
	"errors"
	"sort"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/markup"
	"tableflip.dev/daylog/pkg/mutate"
	"tableflip.dev/daylog/pkg/region"
	"tableflip.dev/daylog/pkg/xref"
)

// ContextView is a context block with the todos that link to it.
type ContextView struct {
	Key     string
	Day     string
	Context item.Context
	Todos   []xref.Ref
}

// AddContext writes a context block under a new identifier into today's
// region and links the given todos to it.
func (s *Service) AddContext(ctx context.Context, text string, todoIDs ...int) (item.Context, error) {
	id, err := s.newID(ctx)
	if err != nil {
		return item.Context{}, err
	}
	var added item.Context
	err = s.editToday(ctx, func(doc []string, day region.Span) ([]string, error) {
		var sub region.Span
		doc, day, sub = region.EnsureSubsection(doc, day, markup.Context)
		lines, err := mutate.AddContext(sub.Of(doc), id, text)
		if err != nil {
			return nil, err
		}
		added, _ = item.FindContext(lines, id)
		doc = mutate.Splice(doc, sub, lines)
		day.End += len(lines) - sub.Len()
		if len(todoIDs) == 0 {
			return doc, nil
		}

		var todos region.Span
		doc, _, todos = region.EnsureSubsection(doc, day, markup.Todos)
		tl := todos.Of(doc)
		for _, tid := range todoIDs {
			t, err := findTodo(tl, tid)
			if err != nil {
				return nil, err
			}
			if tl, err = mutate.LinkContext(tl, t.Handle, id); err != nil {
				return nil, err
			}
		}
		return mutate.Splice(doc, todos, tl), nil
	})
	if err != nil {
		return item.Context{}, err
	}
	s.logger().Info("added context", "id", id, "todos", len(todoIDs))
	return added, nil
}

// contextIn finds the region and Context subsection holding the block
// for id.
func (s *Service) contextIn(doc []string, id string) (region.Span, region.Span, item.Context, bool) {
	for _, day := range s.Locator.Regions(doc) {
		sub, ok := region.LocateSubsection(doc, day, markup.Context)
		if !ok {
			continue
		}
		if c, ok := item.FindContext(sub.Of(doc), id); ok {
			return day, sub, c, true
		}
	}
	return region.Span{}, region.Span{}, item.Context{}, false
}

// contextKey finds the file holding the block for id, newest file first.
func (s *Service) contextKey(ctx context.Context, id string) (string, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return "", err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, key := range keys {
		text, err := s.Document(ctx, key)
		if err != nil {
			return "", err
		}
		if !markup.ContainsID(text, id) {
			continue
		}
		if _, _, _, ok := s.contextIn(region.SplitLines(text), id); ok {
			return key, nil
		}
	}
	return "", notFound("context %s", id)
}

// ShowContext returns the block for id, wherever it was written, and the
// todos in that file and today's file that link to it.
func (s *Service) ShowContext(ctx context.Context, id string) (ContextView, error) {
	key, err := s.contextKey(ctx, id)
	if err != nil {
		return ContextView{}, err
	}
	doc, err := s.load(ctx, key)
	if err != nil {
		return ContextView{}, err
	}
	day, _, c, ok := s.contextIn(doc, id)
	if !ok {
		return ContextView{}, notFound("context %s", id)
	}
	v := ContextView{Key: key, Day: key, Context: c, Todos: xref.ReferencingTodos(doc, id)}
	if name, ok := markup.DayOf(doc[day.Start]); ok {
		v.Day = name
	}
	if today := s.Key(s.now()); today != key {
		other, err := s.load(ctx, today)
		if err != nil {
			return ContextView{}, err
		}
		v.Todos = append(v.Todos, xref.ReferencingTodos(other, id)...)
	}
	return v, nil
}

// UpdateContext replaces the text of the block for id, wherever it was
// written.
func (s *Service) UpdateContext(ctx context.Context, id, text string) (item.Context, error) {
	key, err := s.contextKey(ctx, id)
	if err != nil {
		return item.Context{}, err
	}
	var updated item.Context
	err = s.edit(ctx, key, func(doc []string) ([]string, error) {
		_, sub, _, ok := s.contextIn(doc, id)
		if !ok {
			return nil, notFound("context %s", id)
		}
		lines, err := mutate.UpdateContext(sub.Of(doc), id, text)
		if err != nil {
			return nil, err
		}
		updated, _ = item.FindContext(lines, id)
		return mutate.Splice(doc, sub, lines), nil
	})
	return updated, err
}

// DeleteContext removes the block for id and returns the todos in its file
// that linked to it. With unlink those todos lose their link in the same
// write; otherwise their links are left dangling.
func (s *Service) DeleteContext(ctx context.Context, id string, unlink bool) ([]xref.Ref, error) {
	key, err := s.contextKey(ctx, id)
	if err != nil {
		return nil, err
	}
	var refs []xref.Ref
	err = s.edit(ctx, key, func(doc []string) ([]string, error) {
		_, sub, _, ok := s.contextIn(doc, id)
		if !ok {
			return nil, notFound("context %s", id)
		}
		lines, err := mutate.DeleteContext(sub.Of(doc), id)
		if err != nil {
			return nil, err
		}
		doc = mutate.Splice(doc, sub, lines)
		refs = xref.ReferencingTodos(doc, id)
		if !unlink {
			return doc, nil
		}
		for _, r := range refs {
			if doc, err = mutate.UnlinkContext(doc, r.Handle, id); err != nil {
				return nil, err
			}
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	if today := s.Key(s.now()); today != key {
		more, err := s.unlinkIn(ctx, today, id, unlink)
		if err != nil {
			return nil, err
		}
		refs = append(refs, more...)
	}
	s.logger().Info("deleted context", "id", id, "linked", len(refs), "unlinked", unlink)
	return refs, nil
}

// unlinkIn collects the todos in the file for key linking to id and, with
// unlink, removes those links. The file is written only when it changed.
func (s *Service) unlinkIn(ctx context.Context, key, id string, unlink bool) ([]xref.Ref, error) {
	doc, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	refs := xref.ReferencingTodos(doc, id)
	if !unlink || len(refs) == 0 {
		return refs, nil
	}
	for _, r := range refs {
		if doc, err = mutate.UnlinkContext(doc, r.Handle, id); err != nil {
			return nil, err
		}
	}
	return refs, s.save(key, doc)
}

// Dangling lists the links in today's todos whose context block exists
// nowhere in the journal.
func (s *Service) Dangling(ctx context.Context) ([]xref.Link, error) {
	now := s.now()
	doc, err := s.load(ctx, s.Key(now))
	if err != nil {
		return nil, err
	}
	day, ok := s.Locator.LocateDay(doc, now)
	if !ok {
		return nil, nil
	}
	sub, ok := region.LocateSubsection(doc, day, markup.Todos)
	if !ok {
		return nil, nil
	}
	var out []xref.Link
	for _, l := range xref.Dangling(item.ParseTodos(sub.Of(doc)), item.ParseContexts(doc)) {
		_, err := s.contextKey(ctx, l.ContextID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
