package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/runner/ref"
)

func addRef(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ref",
		Aliases: []string{"refs", "reference", "r"},
		Short:   "File references, such as links or ticket numbers, under an id.",
		Example: `
daylog ref add https://example.com/rfc/42
daylog ref rm brisk-finds-harbor
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := ref.List{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	addRefAdd(cmd)
	addRefList(cmd)
	addRefRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addRefAdd(parent *cobra.Command) {
	var text string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a reference to today.",
		Args: func(_ *cobra.Command, args []string) error {
			return options.RequireText("reference text", args, &text)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := ref.Add{Journal: j, Text: text}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addRefList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List today's references.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := ref.List{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addRefRemove(parent *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete", "remove"},
		Short:   "Delete a reference of today.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 || args[0] == "" {
				return errors.New("requires a reference id")
			}
			id = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := ref.Remove{Journal: j, ID: id}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}
