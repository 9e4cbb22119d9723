package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daylog/pkg/markup"
)

// ContextOptions
type ContextOptions struct {
	ID     string
	Text   string
	Todos  []int
	Unlink bool
}

func AddTodoLinkArgs(cmd *cobra.Command, o *ContextOptions) {
	cmd.Flags().IntSliceVarP(&o.Todos, "todo", "t", nil,
		"Link a todo of today to the new context. Repeatable.")
}

func AddUnlinkArgs(cmd *cobra.Command, o *ContextOptions) {
	cmd.Flags().BoolVar(&o.Unlink, "unlink", false,
		"Also remove the links todos hold to the context.")
}

// ParseContextID checks arg against the three word id grammar.
func ParseContextID(arg string, into *string) error {
	if !markup.IsWordID(arg) {
		return fmt.Errorf("%q is not a context id, expected word-word-word", arg)
	}
	*into = arg
	return nil
}
