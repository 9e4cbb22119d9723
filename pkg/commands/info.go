package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where journal files are stored.",
		Example: `
daylog info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := setup()
			if err != nil {
				return err
			}
			j, err := newJournal(cfg)
			if err != nil {
				return err
			}
			s := info.Info{Config: cfg, Journal: j, Now: time.Now()}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
