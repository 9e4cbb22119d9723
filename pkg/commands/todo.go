package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/runner/todo"
)

func addTodo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos", "t"},
		Short:   "Work with today's todos.",
		Example: `
daylog todo add buy milk
daylog todo list --all
daylog todo done 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.List{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	addTodoAdd(cmd)
	addTodoList(cmd)
	addTodoMark(cmd, "done", []string{"complete", "x"}, true)
	addTodoMark(cmd, "undo", []string{"open", "reopen"}, false)
	addTodoEdit(cmd)
	addTodoRemove(cmd)
	addTodoLink(cmd, false)
	addTodoLink(cmd, true)
	addTodoCarry(cmd)
	addTodoManage(cmd)
	topLevel.AddCommand(cmd)
}

func addTodoAdd(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo to today.",
		Example: `
daylog todo add review the design doc
daylog todo add --context amber-river-stone follow up with legal
`,
		Args: func(_ *cobra.Command, args []string) error {
			return options.RequireText("todo text", args, &to.Text)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.Add{Journal: j, Text: to.Text, Contexts: to.Contexts}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddContextArgs(cmd, to)
	_ = cmd.RegisterFlagCompletionFunc("context", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return contextCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	parent.AddCommand(cmd)
}

func addTodoList(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List today's todos. Open ones unless told otherwise.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if to.All && to.Done {
				return errors.New("--all and --done are exclusive")
			}
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.List{Journal: j}
			switch {
			case to.All:
				s.Filter = todo.All
			case to.Done:
				s.Filter = todo.Done
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddFilterArgs(cmd, to)
	parent.AddCommand(cmd)
}

func addTodoMark(parent *cobra.Command, use string, aliases []string, checked bool) {
	to := &options.TodoOptions{}

	short := "Mark a todo done."
	if !checked {
		short = "Mark a done todo open again."
	}
	cmd := &cobra.Command{
		Use:     use + " <id>",
		Aliases: aliases,
		Short:   short,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a todo id")
			}
			return options.ParseTodoID(args[0], &to.ID)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.Mark{Journal: j, ID: to.ID, Checked: checked}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addTodoEdit(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of a todo. Links and state are kept.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a todo id and the new text")
			}
			if err := options.ParseTodoID(args[0], &to.ID); err != nil {
				return err
			}
			return options.RequireText("todo text", args[1:], &to.Text)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.Edit{Journal: j, ID: to.ID, Text: to.Text}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addTodoRemove(parent *cobra.Command) {
	to := &options.TodoOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete", "remove"},
		Short:   "Delete a todo. Its id is never handed out again in this file.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a todo id")
			}
			return options.ParseTodoID(args[0], &to.ID)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.Remove{Journal: j, ID: to.ID}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addTodoLink(parent *cobra.Command, unlink bool) {
	to := &options.TodoOptions{}
	co := &options.ContextOptions{}

	use, short := "link", "Link a todo to a context."
	if unlink {
		use, short = "unlink", "Drop the link from a todo to a context."
	}
	cmd := &cobra.Command{
		Use:   use + " <id> <context-id>",
		Short: short,
		Example: `
daylog todo ` + use + ` 3 amber-river-stone
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a todo id and a context id")
			}
			if err := options.ParseTodoID(args[0], &to.ID); err != nil {
				return err
			}
			return options.ParseContextID(args[1], &co.ID)
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return contextCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.Link{Journal: j, ID: to.ID, ContextID: co.ID, Unlink: unlink}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addTodoCarry(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "carry",
		Aliases: []string{"migrate"},
		Short:   "Copy the open todos of the previous day into today.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.Carry{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addTodoManage(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "manage",
		Short: "Pick todos from a list to check, edit, link or delete.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := todo.Manage{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}
