package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// TodoOptions
type TodoOptions struct {
	ID       int
	Text     string
	Contexts []string
	All      bool
	Done     bool
}

func AddContextArgs(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().StringArrayVarP(&o.Contexts, "context", "c", nil,
		"Link the todo to a context id. Repeatable.")
}

func AddFilterArgs(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().BoolVarP(&o.All, "all", "a", false,
		"Show open and done todos.")
	cmd.Flags().BoolVarP(&o.Done, "done", "d", false,
		"Show only done todos.")
}

// ParseTodoID reads a todo id argument. A leading "#" is accepted.
func ParseTodoID(arg string, into *int) error {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id < 1 {
		return fmt.Errorf("%q is not a todo id", arg)
	}
	*into = id
	return nil
}

// JoinArgs joins free text arguments with single spaces.
func JoinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
