// Package cli implements the boardflow command line interface.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	// Version is the current version of Boardflow.
	Version = "1.0.0"
)

// Config holds the global configuration for the Boardflow CLI.
type Config struct {
	ConfigDir string
	Debug     bool
}

// GlobalConfig is the shared configuration instance.
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for Boardflow.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boardflow",
		Short: "Boardflow - automation flows for the project workspace",
		Long: `Boardflow runs the workspace automation core: a snapshot-based
undo/redo/commit history engine and a rule-based flow engine that reacts
to workspace events, evaluates declarative conditions, and executes
actions, optionally relaying executions to a backend.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.boardflow)")

	cmd.AddCommand(NewFlowsCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewExecutionsCommand())
	cmd.AddCommand(NewCredentialCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}

// initConfig resolves the config directory and makes sure it exists.
func initConfig() error {
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".boardflow")
	}

	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// databasePath returns the execution archive location under the config
// directory.
func databasePath() string {
	return filepath.Join(GlobalConfig.ConfigDir, "boardflow.db")
}
