package info

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/region"
	"tableflip.dev/daylog/pkg/store"
)

func TestInfo(t *testing.T) {
	color.NoColor = true
	t.Setenv("DAYLOG_CONFIG_PATH", "")
	dir := t.TempDir()
	now := time.Date(2025, time.November, 3, 9, 30, 0, 0, time.Local)
	j := &journal.Service{
		Store:   store.NewDocuments(dir),
		Clock:   journal.ClockFunc(func() time.Time { return now }),
		Locator: region.Locator{Order: region.NewestFirst, Layout: region.Monthly},
	}
	if _, err := j.AddTodo(context.Background(), "plan week"); err != nil {
		t.Fatalf("add: %v", err)
	}
	cfg := &store.Config{Path: dir, Order: store.OrderNewestFirst, Layout: store.LayoutMonthly}

	var out bytes.Buffer
	if err := (&Info{Config: cfg, Journal: j, Now: now, Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	got := out.String()
	for _, want := range []string{"env var not set", "Journal dir: " + dir, "  2025-11", "Wiki: not configured", "November"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}
