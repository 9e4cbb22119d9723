package commands

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daylog/pkg/commands/options"
	"tableflip.dev/daylog/pkg/runner/note"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Write timestamped notes into today.",
		Example: `
daylog note add shipped the **beta**
daylog note list
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := note.List{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	addNoteAdd(cmd)
	addNoteList(cmd)
	addNoteEdit(cmd)
	addNoteRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addNoteAdd(parent *cobra.Command) {
	var text string

	cmd := &cobra.Command{
		Use:   "add <markdown>",
		Short: base.Wrap80("Add a note. Markdown is converted; the note is stamped with the current time."),
		Args: func(_ *cobra.Command, args []string) error {
			return options.RequireText("a note", args, &text)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := note.Add{Journal: j, Text: text}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addNoteList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List today's notes, numbered.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := note.List{Journal: j}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addNoteEdit(parent *cobra.Command) {
	var (
		n    int
		text string
	)

	cmd := &cobra.Command{
		Use:   "edit <n> <markdown>",
		Short: "Replace the nth note of today. The timestamp is kept.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a note number and the new text")
			}
			if err := noteNumber(args[0], &n); err != nil {
				return err
			}
			return options.RequireText("a note", args[1:], &text)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := note.Edit{Journal: j, N: n, Text: text}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func addNoteRemove(parent *cobra.Command) {
	var n int

	cmd := &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete", "remove"},
		Short:   "Delete the nth note of today.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a note number")
			}
			return noteNumber(args[0], &n)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := loadJournal()
			if err != nil {
				return err
			}
			s := note.Remove{Journal: j, N: n}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}

func noteNumber(arg string, into *int) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return errors.New("note numbers start at 1, see daylog note list")
	}
	*into = n
	return nil
}
