package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/boardflow/pkg/storage"
)

// NewCredentialCommand creates the credential command group.
func NewCredentialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the backend relay token",
	}

	cmd.AddCommand(newCredentialSetCommand())
	cmd.AddCommand(newCredentialClearCommand())

	return cmd
}

func newCredentialSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-relay-token [token]",
		Short: "Store the relay bearer token in the system keyring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				cmd.Print("Relay token: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			store := storage.NewKeyringCredentialStore()
			if err := store.Set(storage.RelayTokenKey, token); err != nil {
				return err
			}
			cmd.Println("Relay token stored.")
			return nil
		},
	}
}

func newCredentialClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-relay-token",
		Short: "Remove the relay bearer token from the system keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storage.NewKeyringCredentialStore()
			if err := store.Delete(storage.RelayTokenKey); err != nil {
				return err
			}
			cmd.Println("Relay token removed.")
			return nil
		},
	}
}
