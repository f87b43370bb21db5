package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/flow"
	"github.com/dshills/boardflow/pkg/storage"
)

// NewFlowsCommand creates the flows command group.
func NewFlowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flows",
		Short: "Manage the flow library",
	}

	cmd.AddCommand(newFlowsListCommand())
	cmd.AddCommand(newFlowsShowCommand())
	cmd.AddCommand(newFlowsImportCommand())
	cmd.AddCommand(newFlowsExportCommand())
	cmd.AddCommand(newFlowsDeleteCommand())

	return cmd
}

func newFlowsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored flows",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flowRepository()
			if err != nil {
				return err
			}
			flows, err := repo.List()
			if err != nil {
				return err
			}
			if len(flows) == 0 {
				cmd.Println("No flows stored.")
				return nil
			}

			cmd.Printf("%-38s %-24s %-20s %s\n", "ID", "NAME", "TRIGGER", "ENABLED")
			for _, f := range flows {
				trigger := f.Trigger.Type
				if trigger == "" {
					trigger = "(any)"
				}
				cmd.Printf("%-38s %-24s %-20s %v\n", f.ID, f.Name, trigger, f.Enabled)
			}
			return nil
		},
	}
}

func newFlowsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <flow-id>",
		Short: "Print one flow as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flowRepository()
			if err != nil {
				return err
			}
			f, err := repo.Load(types.FlowID(args[0]))
			if err != nil {
				return err
			}
			data, err := flow.ExportFlow(f)
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
}

func newFlowsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import flows from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flows, err := loadFlowFile(args[0])
			if err != nil {
				return err
			}

			repo, err := flowRepository()
			if err != nil {
				return err
			}
			for _, f := range flows {
				if err := repo.Save(f); err != nil {
					return err
				}
				cmd.Printf("Imported %s (%s)\n", f.Name, f.ID)
			}
			return nil
		},
	}
}

func newFlowsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every stored flow to one YAML document",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flowRepository()
			if err != nil {
				return err
			}
			flows, err := repo.List()
			if err != nil {
				return err
			}
			data, err := flow.ExportFlows(flows)
			if err != nil {
				return err
			}
			if output == "" {
				cmd.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			cmd.Printf("Exported %d flow(s) to %s\n", len(flows), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newFlowsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <flow-id>",
		Short: "Delete a stored flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flowRepository()
			if err != nil {
				return err
			}
			if err := repo.Delete(types.FlowID(args[0])); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

// flowRepository opens the flow repository under the config directory.
func flowRepository() (*storage.FilesystemFlowRepository, error) {
	return storage.NewFilesystemFlowRepositoryWithPath(GlobalConfig.ConfigDir)
}

// loadFlowFile parses a flow definition file, choosing the decoder by
// extension. JSON files are schema-validated before decoding.
func loadFlowFile(path string) ([]*flow.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return flow.ParseFlowsJSON(data)
	}
	return flow.ParseFlows(data)
}
