package workspace

import "github.com/dshills/boardflow/pkg/domain/types"

// CommandType identifies a typed workspace command.
type CommandType string

// Command types recognized by the dispatcher. Unknown types are logged
// and ignored, never treated as errors.
const (
	CmdSetView                CommandType = "SetView"
	CmdCreateTask             CommandType = "CreateTask"
	CmdMoveTask               CommandType = "MoveTask"
	CmdUpdateTaskField        CommandType = "UpdateTaskField"
	CmdUpdateBrief            CommandType = "UpdateBrief"
	CmdLockBrief              CommandType = "LockBrief"
	CmdUnlockBrief            CommandType = "UnlockBrief"
	CmdGenerateTasksFromBrief CommandType = "GenerateTasksFromBrief"
	CmdUpdateTimeline         CommandType = "UpdateTimeline"
	CmdCreateDoc              CommandType = "CreateDoc"
	CmdCommit                 CommandType = "Commit"
)

// Command is a typed UI or automation intent consumed by the dispatcher.
// Only the fields relevant to a given Type are populated.
type Command struct {
	Type CommandType

	// Task commands
	TaskID   types.TaskID
	Title    string
	Status   string // CreateTask initial status
	ToStatus string // MoveTask destination column
	Field    string // UpdateTaskField
	Value    string // UpdateTaskField

	// View / brief commands
	View  string
	Brief string

	// Timeline commands
	Timeline []TimelineItem

	// Doc commands
	DocTitle string
	DocBody  string
}

// CommandFromParams builds a Command from a string command type and a flat
// parameter map. This is the entry point used by flow actions, where every
// parameter value has already been interpolated.
func CommandFromParams(commandType string, params map[string]string) Command {
	cmd := Command{Type: CommandType(commandType)}
	if params == nil {
		return cmd
	}

	cmd.TaskID = types.TaskID(params["taskId"])
	cmd.Title = params["title"]
	cmd.Status = params["status"]
	cmd.ToStatus = params["toStatus"]
	cmd.Field = params["field"]
	cmd.Value = params["value"]
	cmd.View = params["view"]
	cmd.Brief = params["brief"]
	cmd.DocTitle = params["docTitle"]
	cmd.DocBody = params["docBody"]

	return cmd
}
