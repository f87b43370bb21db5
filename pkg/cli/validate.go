package cli

import (
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a flow definition file without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flows, err := loadFlowFile(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s: %d valid flow(s)\n", args[0], len(flows))
			return nil
		},
	}
}
