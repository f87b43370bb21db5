package cli

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/dshills/boardflow/pkg/dispatch"
	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/flow"
	"github.com/dshills/boardflow/pkg/history"
	"github.com/dshills/boardflow/pkg/relay"
	"github.com/dshills/boardflow/pkg/storage"
	"github.com/dshills/boardflow/pkg/workspace"
)

// RunFlags holds the flags for the run command.
type RunFlags struct {
	Attach        []string
	Archive       bool
	RelayEndpoint string
}

// NewRunCommand creates the run command: fire one domain event at the
// flow engine over a seeded workspace.
func NewRunCommand() *cobra.Command {
	flags := &RunFlags{}

	cmd := &cobra.Command{
		Use:   "run <event.json>",
		Short: "Fire a domain event at the stored flows",
		Long: `Run loads the stored flow library, seeds a demo workspace, binds
flows to the event target, and handles the event from the given JSON
file. Execution records are printed and optionally archived.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvent(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.Attach, "attach", nil,
		"Binding as target=flow-id[:event-type]; repeatable (default: bind every flow to the event target)")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Persist execution records to the archive database")
	cmd.Flags().StringVar(&flags.RelayEndpoint, "relay-endpoint", "", "Backend relay URL (token read from the keyring)")

	return cmd
}

func runEvent(cmd *cobra.Command, eventPath string, flags *RunFlags) error {
	event, err := readEventFile(eventPath)
	if err != nil {
		return err
	}

	repo, err := flowRepository()
	if err != nil {
		return err
	}
	flows, err := repo.List()
	if err != nil {
		return err
	}
	if len(flows) == 0 {
		return fmt.Errorf("no flows stored; import some with 'boardflow flows import'")
	}

	engine := flow.NewEngine()
	hist := history.New(workspace.Seed())
	dispatcher := dispatch.New(hist, engine, cliLogSink{})

	engine.SetSnapshotProvider(hist)
	engine.SetDispatcher(dispatcher)
	engine.SetLogSink(cliLogSink{})

	if flags.RelayEndpoint != "" {
		token, err := storage.NewKeyringCredentialStore().Get(storage.RelayTokenKey)
		if err != nil {
			log.Printf("relay token unavailable, sending unauthenticated: %v", err)
		}
		engine.SetRelay(relay.NewHTTPRelay(flags.RelayEndpoint, token))
	}

	for _, f := range flows {
		if err := engine.SaveFlow(f); err != nil {
			return err
		}
	}

	if err := attachBindings(engine, flows, event, flags.Attach); err != nil {
		return err
	}

	results := engine.HandleEvent(event)
	printResults(cmd, engine, results)

	if flags.Archive {
		archive, err := storage.NewSQLiteExecutionRepositoryWithPath(databasePath())
		if err != nil {
			return err
		}
		defer func() { _ = archive.Close() }()
		if err := archive.SaveAll(engine.Executions()); err != nil {
			return err
		}
	}

	return nil
}

// attachBindings applies the --attach flags, or binds every loaded flow
// to the event target when none are given.
func attachBindings(engine *flow.Engine, flows []*flow.Flow, event flow.Event, specs []string) error {
	if len(specs) == 0 {
		target := event.Target()
		if target == "" {
			return fmt.Errorf("event has no target; use --attach to bind flows explicitly")
		}
		for _, f := range flows {
			engine.Attach(target, f.ID, f.Trigger.Type)
		}
		return nil
	}

	for _, spec := range specs {
		target, rest, ok := strings.Cut(spec, "=")
		if !ok || target == "" || rest == "" {
			return fmt.Errorf("invalid --attach %q; expected target=flow-id[:event-type]", spec)
		}
		flowID, eventType, _ := strings.Cut(rest, ":")
		engine.Attach(types.TargetKey(target), types.FlowID(flowID), eventType)
	}
	return nil
}

// readEventFile decodes an event JSON file. Top-level fields other than
// "type" and "targetKey" become the payload.
func readEventFile(path string) (flow.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return flow.Event{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return flow.Event{}, fmt.Errorf("%s is not valid JSON", path)
	}

	eventType := gjson.GetBytes(data, "type").String()
	if eventType == "" {
		return flow.Event{}, fmt.Errorf("event file is missing \"type\"")
	}

	event := flow.Event{
		Type:      eventType,
		TargetKey: types.TargetKey(gjson.GetBytes(data, "targetKey").String()),
		Payload:   make(map[string]interface{}),
	}

	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if name == "type" || name == "targetKey" {
			return true
		}
		event.Payload[name] = value.Value()
		return true
	})

	return event, nil
}

func printResults(cmd *cobra.Command, engine *flow.Engine, results []flow.ExecutionResult) {
	if len(results) == 0 {
		cmd.Println("No flows matched the event.")
		return
	}

	records := engine.Executions()
	byID := make(map[types.ExecutionID]*flow.ExecutionRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	for _, result := range results {
		record := byID[result.ExecutionID]
		if record == nil {
			cmd.Printf("- %s (no record)\n", result.Reason)
			continue
		}
		cmd.Printf("- %s: %s (%d action(s), %d error(s), %s)\n",
			record.FlowName, record.Status,
			len(record.ActionsPerformed), len(record.Errors),
			record.Duration.Round(time.Millisecond))
		for _, e := range record.Errors {
			cmd.Printf("    action %d: %s\n", e.ActionIndex, e.Message)
		}
	}
}

// cliLogSink writes leveled engine output through the standard logger so
// --debug controls its visibility.
type cliLogSink struct{}

func (cliLogSink) Log(level, message string) {
	log.Printf("[%s] %s", level, message)
}
