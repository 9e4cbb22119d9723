package options

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/journal"
	"tableflip.dev/daylog/pkg/words"
)

// OutputOptions
type OutputOptions struct {
	Verbose bool
}

func AddOutputArgs(cmd *cobra.Command, o *OutputOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug output to stderr.")
}

// HandleError prints a one line hint for errors the user can fix and
// passes err through so the command still exits non-zero.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil {
		return nil
	}
	hint := ""
	switch {
	case errors.Is(err, journal.ErrNotFound):
		hint = "check the id with a list command"
	case errors.Is(err, words.ErrGenerationExhausted):
		hint = "the journal is crowded with ids, try again"
	}
	if hint != "" {
		_, _ = color.New(color.Faint).Fprintf(color.Error, "hint: %s\n", hint)
	}
	return err
}

// RequireText joins args into the free text a command needs.
func RequireText(what string, args []string, into *string) error {
	text := JoinArgs(args)
	if text == "" {
		return fmt.Errorf("requires %s", what)
	}
	*into = text
	return nil
}
