// Package store reads and writes journal files and keeps the small bits of
// local state daylog needs besides them.
//
// There is no lock file. Each write atomically replaces the file, but a
// concurrent edit made between a read and the following write is lost;
// daylog assumes a single user in a single session.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

const (
	// Ext is the extension of journal files.
	Ext = ".html"

	monthKeyLayout = "2006-01"
	dayKeyLayout   = "2006-01-02"

	filePerms = 0o644
	dirPerms  = 0o755
)

// Error is a storage failure on a journal file.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MonthKey names the monthly file holding t.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// DayKey names the daily file holding t.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseKey returns the first day covered by a file key.
func ParseKey(key string) (time.Time, bool) {
	if t, err := time.ParseInLocation(dayKeyLayout, key, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(monthKeyLayout, key, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Documents keeps journal files in a directory, one file per key.
type Documents struct {
	dir string
}

// NewDocuments returns a store rooted at dir. The directory is created on
// first write.
func NewDocuments(dir string) *Documents {
	return &Documents{dir: dir}
}

// Dir is the journal directory.
func (d *Documents) Dir() string {
	return d.dir
}

// Path is the file backing key.
func (d *Documents) Path(key string) string {
	return filepath.Join(d.dir, key+Ext)
}

// Load returns the text stored under key, or "" when there is none yet.
func (d *Documents) Load(key string) (string, error) {
	path := d.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", &Error{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// Save replaces the text stored under key.
func (d *Documents) Save(key string, text string) error {
	path := d.Path(key)
	if err := os.MkdirAll(d.dir, dirPerms); err != nil {
		return &Error{Op: "create dir", Path: d.dir, Err: err}
	}
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}
	// atomic.WriteFile doesn't set permissions for new files.
	if err := os.Chmod(path, filePerms); err != nil {
		return &Error{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

// Keys lists every journal file key, oldest first.
func (d *Documents) Keys() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &Error{Op: "list", Path: d.dir, Err: err}
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		key := strings.TrimSuffix(name, Ext)
		if _, ok := ParseKey(key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
