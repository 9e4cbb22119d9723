package wiki

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"tableflip.dev/daylog/pkg/markup"
	"tableflip.dev/daylog/pkg/store"
)

// Sink receives (title, body) pairs and upserts them by title.
type Sink interface {
	Upsert(ctx context.Context, title, body string) (Page, error)
}

// State remembers what was last pushed for each title.
type State interface {
	Get(title string) (store.PageState, bool, error)
	Put(title string, st store.PageState) error
}

// Projector pushes journal files to a Sink, skipping files whose content
// has not changed since the last push.
type Projector struct {
	Sink  Sink
	State State
	// Title names the page for a file key.
	Title func(key string) string
	Now   func() time.Time
}

// Result reports what Project did for one file.
type Result struct {
	Key     string
	Title   string
	Page    Page
	Skipped bool
}

// Project sends the file for key. The local file is never written.
func (p *Projector) Project(ctx context.Context, key, body string, force bool) (Result, error) {
	title := key
	if p.Title != nil {
		title = p.Title(key)
	}
	res := Result{Key: key, Title: title}
	hash := digest(body)

	if p.State != nil && !force {
		prev, ok, err := p.State.Get(title)
		if err != nil {
			return res, err
		}
		if ok && prev.Hash == hash {
			res.Skipped = true
			res.Page = Page{ID: prev.PageID, Title: title, Version: prev.Version}
			slog.Debug("page unchanged", "title", title)
			return res, nil
		}
	}

	page, err := p.Sink.Upsert(ctx, title, body)
	if err != nil {
		return res, err
	}
	res.Page = page
	slog.Info("synced page", "title", title, "id", page.ID, "version", page.Version)

	if p.State != nil {
		now := time.Now
		if p.Now != nil {
			now = p.Now
		}
		st := store.PageState{PageID: page.ID, Version: page.Version, Hash: hash, Synced: now()}
		if err := p.State.Put(title, st); err != nil {
			return res, err
		}
	}
	return res, nil
}

func digest(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// PageTitle names the page for a file key: "Journal: November 2025" for a
// monthly file, the long date for a daily one.
func PageTitle(prefix, key string) string {
	name := key
	if t, ok := store.ParseKey(key); ok {
		if len(key) == len("2006-01") {
			name = t.Format("January 2006")
		} else {
			name = markup.DayKey(t)
		}
	}
	if prefix == "" {
		return name
	}
	return prefix + ": " + name
}
