package journal

import (
	"context"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/markup"
	"tableflip.dev/daylog/pkg/mutate"
)

func (s *Service) timestamp() string {
	return s.now().Format(markup.TimestampFormat)
}

func (s *Service) noteContent(text string) (string, error) {
	if s.FormatNote == nil {
		return item.FormatNote(text), nil
	}
	return s.FormatNote(text)
}

// AddNote appends a timestamped note to today's region.
func (s *Service) AddNote(ctx context.Context, text string) (item.Note, error) {
	content, err := s.noteContent(text)
	if err != nil {
		return item.Note{}, err
	}
	ts := s.timestamp()
	var added item.Note
	err = s.editSection(ctx, markup.Notes, func(_, sub []string) ([]string, error) {
		out := mutate.InsertNote(sub, content, ts)
		notes := item.ParseNotes(out)
		added = notes[len(notes)-1]
		return out, nil
	})
	if err != nil {
		return item.Note{}, err
	}
	s.logger().Info("added note", "at", ts)
	return added, nil
}

// EditNote replaces the content of today's nth note, counting from 1. The
// timestamp is kept.
func (s *Service) EditNote(ctx context.Context, n int, text string) (item.Note, error) {
	content, err := s.noteContent(text)
	if err != nil {
		return item.Note{}, err
	}
	var edited item.Note
	err = s.editSection(ctx, markup.Notes, func(_, sub []string) ([]string, error) {
		note, err := nthNote(sub, n)
		if err != nil {
			return nil, err
		}
		out, err := mutate.ReplaceContent(sub, note.Handle, content)
		if err != nil {
			return nil, err
		}
		edited, err = nthNote(out, n)
		return out, err
	})
	return edited, err
}

// DeleteNote removes today's nth note, counting from 1, with its
// timestamp line.
func (s *Service) DeleteNote(ctx context.Context, n int) (item.Note, error) {
	var removed item.Note
	err := s.editSection(ctx, markup.Notes, func(_, sub []string) ([]string, error) {
		note, err := nthNote(sub, n)
		if err != nil {
			return nil, err
		}
		removed = note
		return mutate.Remove(sub, note.Handle)
	})
	return removed, err
}

func nthNote(sub []string, n int) (item.Note, error) {
	notes := item.ParseNotes(sub)
	if n < 1 || n > len(notes) {
		return item.Note{}, notFound("note %d", n)
	}
	return notes[n-1], nil
}

// AddReference appends a timestamped reference under a new identifier.
func (s *Service) AddReference(ctx context.Context, text string) (item.Reference, error) {
	id, err := s.newID(ctx)
	if err != nil {
		return item.Reference{}, err
	}
	ts := s.timestamp()
	var added item.Reference
	err = s.editSection(ctx, markup.References, func(_, sub []string) ([]string, error) {
		out := mutate.InsertReference(sub, id, text, ts)
		refs := item.ParseReferences(out)
		added = refs[len(refs)-1]
		return out, nil
	})
	if err != nil {
		return item.Reference{}, err
	}
	s.logger().Info("added reference", "id", id)
	return added, nil
}

// DeleteReference removes today's reference id with its timestamp line.
func (s *Service) DeleteReference(ctx context.Context, id string) (item.Reference, error) {
	var removed item.Reference
	err := s.editSection(ctx, markup.References, func(_, sub []string) ([]string, error) {
		for _, r := range item.ParseReferences(sub) {
			if r.ID == id {
				removed = r
				return mutate.Remove(sub, r.Handle)
			}
		}
		return nil, notFound("reference %s", id)
	})
	return removed, err
}
