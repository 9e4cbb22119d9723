package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/runner/configure"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Set up daylog interactively and write ~/.daylog.yaml.",
		Example: `
daylog config
daylog config show
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := setup()
			if err != nil {
				return err
			}
			s := configure.Wizard{Config: cfg}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	addConfigShow(cmd)
	topLevel.AddCommand(cmd)
}

func addConfigShow(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := setup()
			if err != nil {
				return err
			}
			s := configure.Show{Config: cfg}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}
