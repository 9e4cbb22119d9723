// Package info prints where daylog keeps its files.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/printers"
	"tableflip.dev/daylog/pkg/store"
)

type Info struct {
	Config  *store.Config
	Journal *journal.Service
	Now     time.Time
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil || n.Journal == nil {
		return errors.New("info: not configured")
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv("DAYLOG_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "DAYLOG_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "DAYLOG_CONFIG_PATH env var not set")
	}
	file := n.Config.File
	if file == "" {
		file = "none, using defaults"
	}
	_, _ = fmt.Fprintln(w, "Config file:", file)

	dir, err := n.Config.Dir()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "Journal dir:", dir)
	_, _ = fmt.Fprintf(w, "Layout: %s, %s\n", n.Config.Layout, n.Config.Order)
	if n.Config.Wiki.Enabled() {
		_, _ = fmt.Fprintf(w, "Wiki: %s space %s\n", n.Config.Wiki.URL, n.Config.Wiki.Space)
	} else {
		_, _ = fmt.Fprintln(w, "Wiki: not configured")
	}

	keys, err := n.Journal.Keys(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Files:\n")
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "  %s\n", k)
	}
	if len(keys) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", "no files")
	}
	_, _ = fmt.Fprintln(w, "")

	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	var days []time.Time
	month := store.MonthKey(now)
	for _, k := range keys {
		if k != month && !strings.HasPrefix(k, month+"-") {
			continue
		}
		d, err := n.Journal.Days(ctx, k)
		if err != nil {
			return err
		}
		days = append(days, d...)
	}
	pp := &printers.PrettyPrint{Out: w}
	pp.Calendar(now, days)
	return nil
}
