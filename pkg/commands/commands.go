package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/convert"
	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/store"
	"tableflip.dev/daylog/pkg/words"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daylog",
		Short: base.Wrap80("A day-by-day journal of todos, context, references and notes, kept as wiki storage markup."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArgs(cmd, oo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTodo(topLevel)
	addNote(topLevel)
	addRef(topLevel)
	addContext(topLevel)
	addConfig(topLevel)
	addSync(topLevel)
	addWatch(topLevel)
	addTestConnection(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
}

// setup loads the config and installs the logger. Every command that
// touches the journal starts here.
func setup() (*store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.SlogLevel()
	if oo.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

func newJournal(cfg *store.Config) (*journal.Service, error) {
	dir, err := cfg.Dir()
	if err != nil {
		return nil, err
	}
	return &journal.Service{
		Store:      store.NewDocuments(dir),
		Clock:      journal.ClockFunc(time.Now),
		Locator:    cfg.Locator(),
		IDs:        words.New(nil),
		FormatNote: convert.New().Note,
		Log:        slog.Default(),
	}, nil
}

// loadJournal is setup followed by newJournal.
func loadJournal() (*journal.Service, error) {
	cfg, err := setup()
	if err != nil {
		return nil, err
	}
	return newJournal(cfg)
}
