package states

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// helpCommand replaces the cobra default help with a flat command list.
func (app *ApplicationState) helpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "prints this message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCommands(cmd.OutOrStdout(), cmd.Root().Commands(), "")
			return nil
		},
	}
}

func printCommands(w io.Writer, cmds []*cobra.Command, prefix string) {
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		use := strings.TrimSpace(prefix + " " + cmd.Use)
		if cmd.HasSubCommands() {
			printCommands(w, cmd.Commands(), use)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", use, cmd.Short)
	}
}
