package commands

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

func addUpgrade(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade daylog cli.",
		Example: `
daylog upgrade
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ex := exec.Command("go", "install", "tableflip.dev/daylog/cmd/daylog@latest")
			var out bytes.Buffer
			ex.Stdout = &out
			ex.Stderr = &out
			if err := ex.Run(); err != nil {
				return oo.HandleError(fmt.Errorf("%s: %w\n%s", ex.String(), err, out.String()))
			}
			fmt.Printf("%s\n", ex.String())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
