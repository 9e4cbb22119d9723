package store

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

const syncStateDir = ".sync"

// PageState is what daylog remembers about the last successful sync of a
// wiki page.
type PageState struct {
	PageID  string    `json:"page_id"`
	Version int       `json:"version"`
	Hash    string    `json:"hash"`
	Synced  time.Time `json:"synced"`
}

// SyncState keeps one PageState per page title, backed by diskv.
type SyncState struct {
	d *diskv.Diskv
}

// OpenSyncState opens the sync state kept under the journal directory.
func OpenSyncState(journalDir string) *SyncState {
	return &SyncState{d: diskv.New(diskv.Options{
		BasePath:     filepath.Join(journalDir, syncStateDir),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
	})}
}

// Get returns the state recorded for title.
func (s *SyncState) Get(title string) (PageState, bool, error) {
	val, err := s.d.Read(toKey(title))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return PageState{}, false, nil
		}
		return PageState{}, false, fmt.Errorf("store: read sync state for %q: %w", title, err)
	}
	var st PageState
	if err := json.Unmarshal(val, &st); err != nil {
		return PageState{}, false, fmt.Errorf("store: decode sync state for %q: %w", title, err)
	}
	return st, true, nil
}

// Put records the state for title.
func (s *SyncState) Put(title string, st PageState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.d.Write(toKey(title), data); err != nil {
		return fmt.Errorf("store: write sync state for %q: %w", title, err)
	}
	return nil
}

// Forget drops the state for title.
func (s *SyncState) Forget(title string) error {
	err := s.d.Erase(toKey(title))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase sync state for %q: %w", title, err)
	}
	return nil
}

// toKey makes a title safe to use as a file name.
func toKey(title string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(title))
}
