package commands

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/item"
	"tableflip.dev/daylog/pkg/region"
	"tableflip.dev/daylog/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(daylog completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(daylog completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// contextCompletions offers the context ids written in the current file.
func contextCompletions(toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	j, err := newJournal(cfg)
	if err != nil {
		return nil
	}
	ctx := context.Background()
	doc, err := j.Document(ctx, j.Key(time.Now()))
	if err != nil {
		return nil
	}
	var ids []string
	for _, c := range item.ParseContexts(region.SplitLines(doc)) {
		if strings.HasPrefix(c.ID, toComplete) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
