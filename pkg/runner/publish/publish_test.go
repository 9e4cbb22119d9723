package publish

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/region"
	"tableflip.dev/daylog/pkg/store"
	"tableflip.dev/daylog/pkg/wiki"
)

type fakeSink struct {
	titles []string
	err    error
}

func (f *fakeSink) Upsert(_ context.Context, title, _ string) (wiki.Page, error) {
	if f.err != nil {
		return wiki.Page{}, f.err
	}
	f.titles = append(f.titles, title)
	return wiki.Page{ID: "7", Title: title, Version: len(f.titles)}, nil
}

type memoryState map[string]store.PageState

func (m memoryState) Get(title string) (store.PageState, bool, error) {
	st, ok := m[title]
	return st, ok, nil
}

func (m memoryState) Put(title string, st store.PageState) error {
	m[title] = st
	return nil
}

type fakeWatcher struct {
	keys []string
}

func (f fakeWatcher) Watch(context.Context, time.Duration) (<-chan store.Event, error) {
	ch := make(chan store.Event, len(f.keys))
	for _, k := range f.keys {
		ch <- store.Event{Key: k}
	}
	close(ch)
	return ch, nil
}

var now = time.Date(2025, time.November, 3, 9, 30, 0, 0, time.Local)

func setup(t *testing.T, layout region.Layout) (*journal.Service, *fakeSink, *wiki.Projector) {
	t.Helper()
	color.NoColor = true
	j := &journal.Service{
		Store:   store.NewDocuments(t.TempDir()),
		Clock:   journal.ClockFunc(func() time.Time { return now }),
		Locator: region.Locator{Order: region.NewestFirst, Layout: layout},
	}
	if _, err := j.AddTodo(context.Background(), "write report"); err != nil {
		t.Fatalf("add: %v", err)
	}
	sink := &fakeSink{}
	p := &wiki.Projector{
		Sink:  sink,
		State: memoryState{},
		Title: func(key string) string { return wiki.PageTitle("Journal", key) },
	}
	return j, sink, p
}

func TestSyncSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	j, sink, p := setup(t, region.Monthly)
	var out bytes.Buffer
	s := &Sync{Journal: j, Projector: p, Month: now, Out: &out}

	if err := s.Do(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if err := s.Do(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(sink.titles) != 1 || sink.titles[0] != "Journal: November 2025" {
		t.Fatalf("unexpected uploads %v", sink.titles)
	}
	if !strings.Contains(out.String(), "2025-11 unchanged") {
		t.Fatalf("second run should report unchanged:\n%s", out.String())
	}

	s.Force = true
	if err := s.Do(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(sink.titles) != 2 {
		t.Fatalf("force should upload again, got %v", sink.titles)
	}
}

func TestSyncDailyLayoutPicksMonthFiles(t *testing.T) {
	j, sink, p := setup(t, region.Daily)
	s := &Sync{Journal: j, Projector: p, Month: now, Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(sink.titles) != 1 || !strings.HasPrefix(sink.titles[0], "Journal: Monday") {
		t.Fatalf("unexpected uploads %v", sink.titles)
	}

	s.Month = now.AddDate(0, -1, 0)
	var out bytes.Buffer
	s.Out = &out
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !strings.Contains(out.String(), "nothing to sync") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSyncFailureStops(t *testing.T) {
	j, sink, p := setup(t, region.Monthly)
	sink.err = errors.New("boom")
	s := &Sync{Journal: j, Projector: p, Month: now, Out: &bytes.Buffer{}}
	if err := s.Do(context.Background()); err == nil || !strings.Contains(err.Error(), "sync 2025-11") {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}

func TestSyncWithoutWiki(t *testing.T) {
	j, _, _ := setup(t, region.Monthly)
	if err := (&Sync{Journal: j}).Do(context.Background()); err != errNoProjector {
		t.Fatalf("expected errNoProjector, got %v", err)
	}
}

func TestWatchSyncsChangedFiles(t *testing.T) {
	j, sink, p := setup(t, region.Monthly)
	var out bytes.Buffer
	w := &Watch{Journal: j, Projector: p, Files: fakeWatcher{keys: []string{"2025-11", "2025-11"}}, Out: &out}
	if err := w.Do(context.Background()); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if len(sink.titles) != 1 {
		t.Fatalf("unchanged file uploaded twice: %v", sink.titles)
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestTestConnection(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	if err := (&TestConnection{Wiki: fakePinger{}, Space: "JRNL", Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if !strings.Contains(out.String(), "JRNL") {
		t.Fatalf("unexpected output %q", out.String())
	}
	want := &wiki.ServiceError{Status: 401, Message: "bad credentials"}
	err := (&TestConnection{Wiki: fakePinger{err: want}}).Do(context.Background())
	var se *wiki.ServiceError
	if !errors.As(err, &se) || se.Status != 401 {
		t.Fatalf("expected service error, got %v", err)
	}
}
