package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "key",
		Aliases: []string{"legend"},
		Short:   "Show the glyphs entries are listed with.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s := key.Key{}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
