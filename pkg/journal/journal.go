// Package journal runs the read-modify-write cycles behind every daylog
// command. Each public method reads the file from the store, locates the
// region it needs, applies one edit and writes the file back. Nothing parsed
// is kept between calls.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/markup"
	"tableflip.dev/daylog/pkg/mutate"
	"tableflip.dev/daylog/pkg/region"
	"tableflip.dev/daylog/pkg/store"
	"tableflip.dev/daylog/pkg/words"
	"tableflip.dev/daylog/pkg/xref"
)

var (
	// ErrNotFound is returned when a todo, note, reference or context
	// named by the caller does not exist.
	ErrNotFound = errors.New("journal: not found")

	errNoStore = errors.New("journal: no store configured")
	errNoIDs   = errors.New("journal: no identifier generator configured")
)

// Documents is the file store the service reads and writes.
type Documents interface {
	Load(key string) (string, error)
	Save(key string, text string) error
	Keys() ([]string, error)
}

// Clock supplies the current time, which decides what "today" is.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// Generator issues collision-checked identifiers.
type Generator interface {
	GenerateUnique(exists func(id string) (bool, error), maxAttempts int) (string, error)
}

// Service provides the journal operations shared by the CLI commands.
type Service struct {
	Store   Documents
	Clock   Clock
	Locator region.Locator
	IDs     Generator

	// FormatNote turns user input into a note content line. When nil the
	// input is written as an escaped paragraph.
	FormatNote func(text string) (string, error)

	Log *slog.Logger
}

// Day is a read-only view of one day region.
type Day struct {
	Key   string
	Date  time.Time
	Found bool

	Todos      []item.Todo
	Contexts   []item.Context
	References []item.Reference
	Notes      []item.Note

	// Links groups the todos by the contexts they link to.
	Links map[string][]xref.Ref
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// Key is the file key holding day t.
func (s *Service) Key(t time.Time) string {
	if s.Locator.Layout == region.Daily {
		return store.DayKey(t)
	}
	return store.MonthKey(t)
}

// Keys lists the journal files, oldest first.
func (s *Service) Keys(ctx context.Context) ([]string, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Store.Keys()
}

// Document returns the full text of the file for key.
func (s *Service) Document(ctx context.Context, key string) (string, error) {
	if s.Store == nil {
		return "", errNoStore
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Store.Load(key)
}

func (s *Service) load(ctx context.Context, key string) ([]string, error) {
	text, err := s.Document(ctx, key)
	if err != nil {
		return nil, err
	}
	return region.SplitLines(text), nil
}

func (s *Service) save(key string, doc []string) error {
	if err := s.Store.Save(key, region.JoinLines(doc)); err != nil {
		return err
	}
	s.logger().Debug("saved journal file", "key", key, "lines", len(doc))
	return nil
}

// edit runs one read-modify-write cycle on the file for key. Nothing is
// written when fn fails.
func (s *Service) edit(ctx context.Context, key string, fn func(doc []string) ([]string, error)) error {
	doc, err := s.load(ctx, key)
	if err != nil {
		return err
	}
	out, err := fn(doc)
	if err != nil {
		return err
	}
	return s.save(key, out)
}

// editToday is edit on today's region, creating it first when missing.
func (s *Service) editToday(ctx context.Context, fn func(doc []string, day region.Span) ([]string, error)) error {
	now := s.now()
	return s.edit(ctx, s.Key(now), func(doc []string) ([]string, error) {
		doc, day := s.Locator.LocateOrCreateToday(doc, now)
		return fn(doc, day)
	})
}

// editSection hands fn the lines of one of today's subsections and splices
// the result back. doc is the whole file, for file-wide id scans.
func (s *Service) editSection(ctx context.Context, name markup.Section, fn func(doc, sub []string) ([]string, error)) error {
	return s.editToday(ctx, func(doc []string, day region.Span) ([]string, error) {
		doc, _, span := region.EnsureSubsection(doc, day, name)
		out, err := fn(doc, span.Of(doc))
		if err != nil {
			return nil, err
		}
		return mutate.Splice(doc, span, out), nil
	})
}

// Today reads today's region. It never creates it.
func (s *Service) Today(ctx context.Context) (Day, error) {
	now := s.now()
	key := s.Key(now)
	doc, err := s.load(ctx, key)
	if err != nil {
		return Day{}, err
	}
	d := Day{Key: key, Date: now, Links: map[string][]xref.Ref{}}
	span, ok := s.Locator.LocateDay(doc, now)
	if !ok {
		return d, nil
	}
	d.Found = true
	readDay(&d, doc, span)
	return d, nil
}

func readDay(d *Day, doc []string, day region.Span) {
	if sub, ok := region.LocateSubsection(doc, day, markup.Todos); ok {
		lines := sub.Of(doc)
		d.Todos = item.ParseTodos(lines)
		_, d.Links = xref.ContextsOf(lines)
	}
	if sub, ok := region.LocateSubsection(doc, day, markup.Context); ok {
		d.Contexts = item.ParseContexts(sub.Of(doc))
	}
	if sub, ok := region.LocateSubsection(doc, day, markup.References); ok {
		d.References = item.ParseReferences(sub.Of(doc))
	}
	if sub, ok := region.LocateSubsection(doc, day, markup.Notes); ok {
		d.Notes = item.ParseNotes(sub.Of(doc))
	}
}

// IDExists reports whether id is written anywhere in the journal, in any
// of the forms identifiers are embedded in.
func (s *Service) IDExists(ctx context.Context, id string) (bool, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return false, err
	}
	for _, key := range keys {
		text, err := s.Document(ctx, key)
		if err != nil {
			return false, err
		}
		if markup.ContainsID(text, id) {
			return true, nil
		}
	}
	return false, nil
}

// newID draws a fresh identifier. It runs before any file is read for
// mutation so an exhausted generator never leaves a partial write.
func (s *Service) newID(ctx context.Context) (string, error) {
	if s.IDs == nil {
		return "", errNoIDs
	}
	id, err := s.IDs.GenerateUnique(func(id string) (bool, error) {
		return s.IDExists(ctx, id)
	}, words.DefaultAttempts)
	if err != nil {
		return "", err
	}
	s.logger().Debug("issued identifier", "id", id)
	return id, nil
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Days lists the dates of the day regions in the file for key, in file
// order.
func (s *Service) Days(ctx context.Context, key string) ([]time.Time, error) {
	doc, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	var days []time.Time
	for _, span := range s.Locator.Regions(doc) {
		if name, ok := markup.DayOf(doc[span.Start]); ok {
			if t, ok := markup.ParseDay(name); ok {
				days = append(days, t)
			}
			continue
		}
		if t, ok := store.ParseKey(key); ok {
			days = append(days, t)
		}
	}
	return days, nil
}
