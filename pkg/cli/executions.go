package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/flow"
	"github.com/dshills/boardflow/pkg/storage"
)

// ExecutionsListFlags holds the flags for the executions command.
type ExecutionsListFlags struct {
	Limit  int
	Offset int
	Flow   string
	Status string
}

// NewExecutionsCommand creates the executions command group.
func NewExecutionsCommand() *cobra.Command {
	flags := &ExecutionsListFlags{}

	cmd := &cobra.Command{
		Use:   "executions",
		Short: "List archived flow executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecutionsList(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.Limit, "limit", 20, "Maximum number of executions to display")
	cmd.Flags().IntVar(&flags.Offset, "offset", 0, "Number of executions to skip")
	cmd.Flags().StringVar(&flags.Flow, "flow", "", "Filter by flow ID")
	cmd.Flags().StringVar(&flags.Status, "status", "",
		"Filter by status (running, skipped, completed, completed_with_errors, failed)")

	cmd.AddCommand(newExecutionsPruneCommand())

	return cmd
}

func newExecutionsPruneCommand() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent archived executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := storage.NewSQLiteExecutionRepositoryWithPath(databasePath())
			if err != nil {
				return err
			}
			defer func() { _ = archive.Close() }()

			if err := archive.Prune(keep); err != nil {
				return err
			}
			cmd.Printf("Pruned archive to the most recent %d execution(s)\n", keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", flow.DefaultLogCapacity, "Number of executions to keep")
	return cmd
}

func runExecutionsList(cmd *cobra.Command, flags *ExecutionsListFlags) error {
	archive, err := storage.NewSQLiteExecutionRepositoryWithPath(databasePath())
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	records, err := archive.List(storage.ListOptions{
		Limit:  flags.Limit,
		Offset: flags.Offset,
		FlowID: types.FlowID(flags.Flow),
		Status: flow.ExecutionStatus(flags.Status),
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No archived executions.")
		return nil
	}

	cmd.Printf("%-38s %-24s %-22s %-22s %s\n", "ID", "FLOW", "EVENT", "STATUS", "STARTED")
	for _, r := range records {
		cmd.Printf("%-38s %-24s %-22s %-22s %s\n",
			r.ID, r.FlowName, r.EventType, r.Status,
			r.StartTime.Format(time.RFC3339))
	}
	return nil
}
