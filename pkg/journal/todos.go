package journal

import (
	"context"
	"fmt"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/markup"
	"tableflip.dev/daylog/pkg/mutate"
	"tableflip.dev/daylog/pkg/region"
)

func findTodo(sub []string, id int) (item.Todo, error) {
	for _, t := range item.ParseTodos(sub) {
		if t.ID == id {
			return t, nil
		}
	}
	return item.Todo{}, notFound("todo %d", id)
}

// checkContexts makes sure every id names a context block written somewhere
// in the journal. Reference ids and links left behind by a deleted context
// do not count.
func (s *Service) checkContexts(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if !markup.IsWordID(id) {
			return fmt.Errorf("journal: %q is not a context id", id)
		}
		if _, err := s.contextKey(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func uniq(ids []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AddTodo appends an unchecked todo to today's list, optionally linked to
// existing contexts.
func (s *Service) AddTodo(ctx context.Context, text string, contexts ...string) (item.Todo, error) {
	contexts = uniq(contexts)
	if err := s.checkContexts(ctx, contexts); err != nil {
		return item.Todo{}, err
	}
	var added item.Todo
	err := s.editSection(ctx, markup.Todos, func(doc, sub []string) ([]string, error) {
		t := item.Todo{ID: item.NextTodoID(doc), Text: text, ContextRefs: contexts}
		out, h, err := mutate.InsertTodo(sub, mutate.End, t)
		if err != nil {
			return nil, err
		}
		added, _ = item.ParseTodo(out[h])
		added.Handle = h
		return out, nil
	})
	if err != nil {
		return item.Todo{}, err
	}
	s.logger().Info("added todo", "id", added.ID)
	return added, nil
}

// editTodo runs fn on today's todo id and returns the todo as it reads
// afterwards, or as it was when fn removed it.
func (s *Service) editTodo(ctx context.Context, id int, fn func(sub []string, t item.Todo) ([]string, error)) (item.Todo, error) {
	var result item.Todo
	err := s.editSection(ctx, markup.Todos, func(_, sub []string) ([]string, error) {
		t, err := findTodo(sub, id)
		if err != nil {
			return nil, err
		}
		out, err := fn(sub, t)
		if err != nil {
			return nil, err
		}
		result = t
		if after, err := findTodo(out, id); err == nil {
			result = after
		}
		return out, nil
	})
	return result, err
}

// SetTodoChecked checks or unchecks today's todo id.
func (s *Service) SetTodoChecked(ctx context.Context, id int, checked bool) (item.Todo, error) {
	return s.editTodo(ctx, id, func(sub []string, t item.Todo) ([]string, error) {
		return mutate.SetChecked(sub, t.Handle, checked)
	})
}

// EditTodo replaces the text of today's todo id.
func (s *Service) EditTodo(ctx context.Context, id int, text string) (item.Todo, error) {
	return s.editTodo(ctx, id, func(sub []string, t item.Todo) ([]string, error) {
		return mutate.SetText(sub, t.Handle, text)
	})
}

// DeleteTodo removes today's todo id. Its id is not issued again.
func (s *Service) DeleteTodo(ctx context.Context, id int) (item.Todo, error) {
	return s.editTodo(ctx, id, func(sub []string, t item.Todo) ([]string, error) {
		return mutate.Remove(sub, t.Handle)
	})
}

// LinkTodo links today's todo id to an existing context.
func (s *Service) LinkTodo(ctx context.Context, id int, contextID string) (item.Todo, error) {
	if err := s.checkContexts(ctx, []string{contextID}); err != nil {
		return item.Todo{}, err
	}
	return s.editTodo(ctx, id, func(sub []string, t item.Todo) ([]string, error) {
		return mutate.LinkContext(sub, t.Handle, contextID)
	})
}

// UnlinkTodo drops the link from today's todo id to contextID.
func (s *Service) UnlinkTodo(ctx context.Context, id int, contextID string) (item.Todo, error) {
	return s.editTodo(ctx, id, func(sub []string, t item.Todo) ([]string, error) {
		if !t.HasContext(contextID) {
			return nil, notFound("link from todo %d to %s", id, contextID)
		}
		return mutate.UnlinkContext(sub, t.Handle, contextID)
	})
}

// NumberTodos gives an id to every todo in today's region written by an
// older version without one, and returns how many it numbered.
func (s *Service) NumberTodos(ctx context.Context) (int, error) {
	day, err := s.Today(ctx)
	if err != nil || !day.Found {
		return 0, err
	}
	missing := false
	for _, t := range day.Todos {
		if t.ID == 0 {
			missing = true
			break
		}
	}
	if !missing {
		return 0, nil
	}
	n := 0
	err = s.editSection(ctx, markup.Todos, func(doc, sub []string) ([]string, error) {
		next := item.NextTodoID(doc)
		for _, t := range item.ParseTodos(sub) {
			if t.ID != 0 {
				continue
			}
			var err error
			if sub, err = mutate.AssignID(sub, t.Handle, next); err != nil {
				return nil, err
			}
			next++
			n++
		}
		return sub, nil
	})
	if err != nil {
		return 0, err
	}
	s.logger().Info("numbered legacy todos", "count", n)
	return n, nil
}

// Carry copies the open todos of the previous day into today with fresh
// ids, keeping their context links. Todos whose text is already open today
// are skipped. When this file holds no earlier day, the newest day of the
// previous file is used.
func (s *Service) Carry(ctx context.Context) ([]item.Todo, error) {
	now := s.now()
	key := s.Key(now)
	doc, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	doc, day := s.Locator.LocateOrCreateToday(doc, now)

	var open []item.Todo
	if prev, ok := s.Locator.LocatePrevious(doc, now); ok {
		open = openTodos(doc, prev)
	} else if open, err = s.openInEarlierFile(ctx, key); err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}

	doc, _, sub := region.EnsureSubsection(doc, day, markup.Todos)
	lines := sub.Of(doc)
	have := make(map[string]struct{})
	for _, t := range item.ParseTodos(lines) {
		if !t.Checked {
			have[t.Text] = struct{}{}
		}
	}

	next := item.NextTodoID(doc)
	var carried []item.Todo
	for _, t := range open {
		if _, ok := have[t.Text]; ok {
			continue
		}
		var h int
		lines, h, err = mutate.InsertTodo(lines, mutate.End, item.Todo{ID: next, Text: t.Text, ContextRefs: t.ContextRefs})
		if err != nil {
			return nil, err
		}
		nt, _ := item.ParseTodo(lines[h])
		nt.Handle = h
		carried = append(carried, nt)
		have[t.Text] = struct{}{}
		next++
	}
	if len(carried) == 0 {
		return nil, nil
	}
	if err := s.save(key, mutate.Splice(doc, sub, lines)); err != nil {
		return nil, err
	}
	s.logger().Info("carried todos", "count", len(carried))
	return carried, nil
}

func openTodos(doc []string, day region.Span) []item.Todo {
	sub, ok := region.LocateSubsection(doc, day, markup.Todos)
	if !ok {
		return nil
	}
	var open []item.Todo
	for _, t := range item.ParseTodos(sub.Of(doc)) {
		if !t.Checked {
			open = append(open, t)
		}
	}
	return open
}

// openInEarlierFile reads the open todos of the newest day in the file
// before key.
func (s *Service) openInEarlierFile(ctx context.Context, key string) ([]item.Todo, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}
	earlier := ""
	for _, k := range keys {
		if k < key && k > earlier {
			earlier = k
		}
	}
	if earlier == "" {
		return nil, nil
	}
	doc, err := s.load(ctx, earlier)
	if err != nil {
		return nil, err
	}
	latest, ok := s.Locator.Latest(doc)
	if !ok {
		return nil, nil
	}
	s.logger().Debug("carrying from earlier file", "key", earlier)
	return openTodos(doc, latest), nil
}
