// Package publish provides the runners that push journal files to the
// wiki: sync, watch and test-connection.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/store"
	"tableflip.dev/daylog/pkg/wiki"
)

var (
	errNoJournal   = errors.New("publish: no journal")
	errNoProjector = errors.New("publish: wiki is not configured, run daylog config")
)

// Sync pushes the files of one month.
type Sync struct {
	Journal   *journal.Service
	Projector *wiki.Projector
	Month     time.Time
	Force     bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Do projects every non-empty file of the month. It stops at the first
// failure; files already pushed keep their recorded state.
func (s *Sync) Do(ctx context.Context) error {
	if s.Journal == nil {
		return errNoJournal
	}
	if s.Projector == nil {
		return errNoProjector
	}
	keys, err := s.keys(ctx)
	if err != nil {
		return err
	}
	w := out(s.Out)
	if len(keys) == 0 {
		_, _ = color.New(color.Faint).Fprintf(w, "nothing to sync for %s\n", s.Month.Format("January 2006"))
		return nil
	}
	for _, key := range keys {
		res, err := project(ctx, s.Journal, s.Projector, key, s.Force)
		if err != nil {
			return fmt.Errorf("sync %s: %w", key, err)
		}
		report(w, res)
	}
	return nil
}

// keys lists the files holding days of the month, which is one file for
// the monthly layout and up to a month of files for the daily one.
func (s *Sync) keys(ctx context.Context) ([]string, error) {
	all, err := s.Journal.Keys(ctx)
	if err != nil {
		return nil, err
	}
	prefix := store.MonthKey(s.Month)
	var keys []string
	for _, k := range all {
		if k == prefix || strings.HasPrefix(k, prefix+"-") {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Watcher reports which journal files changed.
type Watcher interface {
	Watch(ctx context.Context, delay time.Duration) (<-chan store.Event, error)
}

// Watch syncs each file as it changes until ctx is done. Failed syncs are
// logged and retried on the next change.
type Watch struct {
	Journal   *journal.Service
	Projector *wiki.Projector
	Files     Watcher
	Delay     time.Duration
	Out       io.Writer
	Log       *slog.Logger
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Journal == nil {
		return errNoJournal
	}
	if w.Projector == nil {
		return errNoProjector
	}
	log := w.Log
	if log == nil {
		log = slog.Default()
	}
	events, err := w.Files.Watch(ctx, w.Delay)
	if err != nil {
		return err
	}
	o := out(w.Out)
	_, _ = color.New(color.Faint).Fprintln(o, "watching for changes, ctrl-c to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			res, err := project(ctx, w.Journal, w.Projector, ev.Key, false)
			if err != nil {
				log.Warn("sync failed", "key", ev.Key, "error", err)
				continue
			}
			report(o, res)
		}
	}
}

// Pinger checks the wiki credentials.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TestConnection reports whether the wiki accepts the configured
// credentials.
type TestConnection struct {
	Wiki  Pinger
	Space string
	Out   io.Writer
}

func (t *TestConnection) Do(ctx context.Context) error {
	if t.Wiki == nil {
		return errNoProjector
	}
	if err := t.Wiki.Ping(ctx); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(out(t.Out), "connected, space %s is reachable\n", t.Space)
	return nil
}

func project(ctx context.Context, j *journal.Service, p *wiki.Projector, key string, force bool) (wiki.Result, error) {
	body, err := j.Document(ctx, key)
	if err != nil {
		return wiki.Result{Key: key}, err
	}
	if strings.TrimSpace(body) == "" {
		return wiki.Result{Key: key, Skipped: true}, nil
	}
	return p.Project(ctx, key, body, force)
}

func report(w io.Writer, res wiki.Result) {
	if res.Skipped {
		_, _ = color.New(color.Faint).Fprintf(w, "%s unchanged\n", res.Key)
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s %s (version %d)\n",
		color.GreenString("synced"), res.Key, color.New(color.Bold).Sprint(res.Title), res.Page.Version)
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
