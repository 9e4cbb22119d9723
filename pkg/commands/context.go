package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/runner/contexts"
)

func addContext(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "context",
		Aliases: []string{"contexts", "ctx", "c"},
		Short:   "Write context blocks that todos can link to.",
		Example: `
daylog context add --todo 2 --todo 3 the vendor contract renews in march
daylog context show amber-river-stone
daylog context rm amber-river-stone --unlink
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := contexts.List{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	addContextAdd(cmd)
	addContextList(cmd)
	addContextShow(cmd)
	addContextEdit(cmd)
	addContextRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addContextAdd(parent *cobra.Command) {
	co := &options.ContextOptions{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a context block to today, optionally linking todos to it.",
		Args: func(_ *cobra.Command, args []string) error {
			return options.RequireText("context text", args, &co.Text)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := contexts.Add{Journal: j, Text: co.Text, Todos: co.Todos}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTodoLinkArgs(cmd, co)
	parent.AddCommand(cmd)
}

func addContextList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List today's context blocks and any dangling links.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := contexts.List{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

// contextIDArg validates a single context id argument.
func contextIDArg(co *options.ContextOptions) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("requires a context id")
		}
		return options.ParseContextID(args[0], &co.ID)
	}
}

func completeContextID(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return contextCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func addContextShow(parent *cobra.Command) {
	co := &options.ContextOptions{}

	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show a context block with every todo linking to it.",
		Args:              contextIDArg(co),
		ValidArgsFunction: completeContextID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := contexts.Show{Journal: j, ID: co.ID}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addContextEdit(parent *cobra.Command) {
	co := &options.ContextOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the body of a context block, on whichever day it was written.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a context id and the new text")
			}
			if err := options.ParseContextID(args[0], &co.ID); err != nil {
				return err
			}
			return options.RequireText("context text", args[1:], &co.Text)
		},
		ValidArgsFunction: completeContextID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := contexts.Edit{Journal: j, ID: co.ID, Text: co.Text}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addContextRemove(parent *cobra.Command) {
	co := &options.ContextOptions{}

	cmd := &cobra.Command{
		Use:               "rm <id>",
		Aliases:           []string{"delete", "remove"},
		Short:             "Delete a context block.",
		Args:              contextIDArg(co),
		ValidArgsFunction: completeContextID,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := contexts.Remove{Journal: j, ID: co.ID, Unlink: co.Unlink}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddUnlinkArgs(cmd, co)
	parent.AddCommand(cmd)
}
