package commands

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/runner/publish"
	"tableflip.dev/daylog/pkg/store"
	"tableflip.dev/daylog/pkg/wiki"
)

// loadPublisher builds the journal plus, when a wiki is configured, the
// projector that pushes to it.
func loadPublisher() (*store.Config, *journal.Service, *wiki.Projector, error) {
	cfg, err := setup()
	if err != nil {
		return nil, nil, nil, err
	}
	j, err := newJournal(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if !cfg.Wiki.Enabled() {
		return cfg, j, nil, nil
	}
	dir, err := cfg.Dir()
	if err != nil {
		return nil, nil, nil, err
	}
	prefix := cfg.Wiki.TitlePrefix
	p := &wiki.Projector{
		Sink:  wiki.NewClient(cfg.Wiki),
		State: store.OpenSyncState(dir),
		Title: func(key string) string { return wiki.PageTitle(prefix, key) },
	}
	return cfg, j, p, nil
}

func addSync(topLevel *cobra.Command) {
	so := &options.SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: base.Wrap80("Push this month's journal to the wiki, one page per file. Unchanged pages are skipped."),
		Example: `
daylog sync
daylog sync --month 2025-10 --force
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			month, err := so.GetMonth(time.Now())
			if err != nil {
				return err
			}
			_, j, p, err := loadPublisher()
			if err != nil {
				return err
			}
			s := publish.Sync{Journal: j, Projector: p, Month: month, Force: so.Force}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddSyncArgs(cmd, so)
	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command) {
	so := &options.SyncOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync journal files to the wiki whenever they change.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, j, p, err := loadPublisher()
			if err != nil {
				return err
			}
			dir, err := cfg.Dir()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			s := publish.Watch{Journal: j, Projector: p, Files: store.NewDocuments(dir), Delay: so.Delay}
			return oo.HandleError(s.Do(ctx))
		},
	}

	options.AddWatchArgs(cmd, so)
	topLevel.AddCommand(cmd)
}

func addTestConnection(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "test-connection",
		Short: "Check that the configured wiki accepts the credentials.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := setup()
			if err != nil {
				return err
			}
			s := publish.TestConnection{Space: cfg.Wiki.Space}
			if cfg.Wiki.Enabled() {
				s.Wiki = wiki.NewClient(cfg.Wiki)
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
