// Package configure provides the config wizard and config show.
package configure

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/daylog/pkg/snake"
	"tableflip.dev/daylog/pkg/store"
)

// Wizard walks through every setting and writes the config file.
type Wizard struct {
	Config *store.Config
	Prompt snake.IO
	// File defaults to the file the config was read from, or
	// ~/.daylog.yaml.
	File string
	Out  io.Writer
}

func (w *Wizard) Do(_ context.Context) error {
	cfg := *w.Config
	p := w.Prompt
	var err error

	if cfg.Path, err = p.Text("Journal directory", cfg.Path, snake.NotEmpty); err != nil {
		return err
	}
	if cfg.Order, err = w.pick("Day order", []string{store.OrderNewestFirst, store.OrderOldestFirst}, cfg.Order); err != nil {
		return err
	}
	if cfg.Layout, err = w.pick("File layout", []string{store.LayoutMonthly, store.LayoutDaily}, cfg.Layout); err != nil {
		return err
	}

	sync, err := p.Confirm("Mirror to a wiki", cfg.Wiki.Enabled())
	if err != nil {
		return err
	}
	if sync {
		wc := &cfg.Wiki
		if wc.URL, err = p.Text("Wiki base URL", wc.URL, snake.NotEmpty); err != nil {
			return err
		}
		if wc.Space, err = p.Text("Space key", wc.Space, snake.NotEmpty); err != nil {
			return err
		}
		if wc.User, err = p.Text("User", wc.User, snake.NotEmpty); err != nil {
			return err
		}
		if wc.Token, err = p.Secret("API token (empty keeps current, or set DAYLOG_WIKI_TOKEN)", wc.Token); err != nil {
			return err
		}
		if wc.ParentID, err = p.Text("Parent page id (optional)", wc.ParentID, nil); err != nil {
			return err
		}
		if wc.TitlePrefix, err = p.Text("Page title prefix", wc.TitlePrefix, nil); err != nil {
			return err
		}
	} else {
		cfg.Wiki = store.WikiConfig{TitlePrefix: cfg.Wiki.TitlePrefix}
	}

	file := w.File
	if file == "" {
		file = cfg.File
	}
	if file == "" {
		if file, err = store.DefaultConfigFile(); err != nil {
			return err
		}
	}
	if err := store.SaveConfig(&cfg, file); err != nil {
		return err
	}
	*w.Config = cfg
	_, _ = color.New(color.FgGreen).Fprintf(out(w.Out), "wrote %s\n", file)
	return nil
}

func (w *Wizard) pick(label string, values []string, current string) (string, error) {
	choices := make([]snake.Choice, len(values))
	cursor := 0
	for i, v := range values {
		choices[i] = snake.Choice{Name: v}
		if v == current {
			cursor = i
		}
	}
	i, err := w.Prompt.Select(label, choices, cursor)
	if err != nil {
		return "", err
	}
	return values[i], nil
}

// Show prints the effective configuration as YAML with the token masked.
type Show struct {
	Config *store.Config
	Out    io.Writer
}

func (s *Show) Do(_ context.Context) error {
	cfg := *s.Config
	if cfg.Wiki.Token != "" {
		cfg.Wiki.Token = "********"
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	w := out(s.Out)
	if cfg.File != "" {
		_, _ = color.New(color.Faint).Fprintf(w, "# %s\n", cfg.File)
	} else {
		_, _ = color.New(color.Faint).Fprintln(w, "# defaults, no config file found")
	}
	_, err = fmt.Fprint(w, string(b))
	return err
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
