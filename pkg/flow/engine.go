package flow

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/workspace"
)

// ExecutionResult is the consumer-visible outcome of one ExecuteFlow
// call. Nothing from the engine throws across this boundary; all failure
// is captured here and in the execution log.
type ExecutionResult struct {
	Success          bool              `json:"success"`
	Reason           string            `json:"reason,omitempty"`
	ExecutionID      types.ExecutionID `json:"execution_id,omitempty"`
	ActionsPerformed int               `json:"actions_performed"`
	Errors           []ExecutionError  `json:"errors,omitempty"`
}

// Engine owns the flow library, the per-target binding map, and the
// bounded execution log. It is driven synchronously by a single logical
// owner; flows triggered by one event run to completion one at a time.
type Engine struct {
	flows    map[types.FlowID]*Flow
	bindings map[types.TargetKey][]Binding

	executions *Log
	cond       *ConditionEvaluator

	snapshots  SnapshotProvider
	dispatcher CommandDispatcher
	notifier   NotificationSink
	relay      RelaySink
	logSink    LogSink
}

// NewEngine creates an engine with an empty flow library and a
// default-capacity execution log. Collaborator sinks are wired with the
// Set* methods before events are handled.
func NewEngine() *Engine {
	return &Engine{
		flows:      make(map[types.FlowID]*Flow),
		bindings:   make(map[types.TargetKey][]Binding),
		executions: NewLog(DefaultLogCapacity),
		cond:       NewConditionEvaluator(),
		logSink:    stdLogSink{},
	}
}

// SetSnapshotProvider wires the source of the current workspace snapshot.
func (e *Engine) SetSnapshotProvider(p SnapshotProvider) { e.snapshots = p }

// SetDispatcher wires the command dispatcher used by run_command and
// update_field actions.
func (e *Engine) SetDispatcher(d CommandDispatcher) { e.dispatcher = d }

// SetNotifier wires the notification sink.
func (e *Engine) SetNotifier(n NotificationSink) { e.notifier = n }

// SetRelay wires the backend relay sink.
func (e *Engine) SetRelay(r RelaySink) { e.relay = r }

// SetLogSink replaces the leveled log output. Passing nil restores the
// standard logger.
func (e *Engine) SetLogSink(s LogSink) {
	if s == nil {
		s = stdLogSink{}
	}
	e.logSink = s
}

// SaveFlow stores a flow, replacing any existing flow with the same ID.
// A missing ID is generated. This is the only way to modify a stored
// flow.
func (e *Engine) SaveFlow(f *Flow) error {
	if f == nil {
		return fmt.Errorf("%w: nil flow", ErrInvalidFlow)
	}
	if f.ID.IsZero() {
		f.ID = types.NewFlowID()
	}
	if err := ValidateFlow(f); err != nil {
		return err
	}
	e.flows[f.ID] = f
	return nil
}

// DeleteFlow removes a flow from the library. Bindings referencing it are
// left in place; they are skipped (and logged) at event time.
func (e *Engine) DeleteFlow(id types.FlowID) bool {
	if _, ok := e.flows[id]; !ok {
		return false
	}
	delete(e.flows, id)
	return true
}

// GetFlow looks up a flow by ID.
func (e *Engine) GetFlow(id types.FlowID) (*Flow, bool) {
	f, ok := e.flows[id]
	return f, ok
}

// Flows returns the library sorted by name.
func (e *Engine) Flows() []*Flow {
	out := make([]*Flow, 0, len(e.flows))
	for _, f := range e.flows {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Attach binds a flow to a target, scoped by event type. An empty
// eventType matches any event on the target.
func (e *Engine) Attach(target types.TargetKey, flowID types.FlowID, eventType string) Binding {
	binding := Binding{
		ID:        types.NewBindingID(),
		FlowID:    flowID,
		EventType: eventType,
	}
	e.bindings[target] = append(e.bindings[target], binding)
	return binding
}

// Detach removes a binding from a target.
func (e *Engine) Detach(target types.TargetKey, id types.BindingID) bool {
	list := e.bindings[target]
	for i, b := range list {
		if b.ID == id {
			e.bindings[target] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// BindingsFor returns a copy of the bindings attached to a target, in
// insertion order.
func (e *Engine) BindingsFor(target types.TargetKey) []Binding {
	list := e.bindings[target]
	out := make([]Binding, len(list))
	copy(out, list)
	return out
}

// Executions returns the execution log, most recent first.
func (e *Engine) Executions() []*ExecutionRecord {
	return e.executions.Records()
}

// HandleEvent matches the event against the binding map and executes
// every candidate flow in binding insertion order. Each flow runs to
// completion (relay included) before the next begins. A binding whose
// flow has been deleted is logged and skipped.
func (e *Engine) HandleEvent(event Event) []ExecutionResult {
	target := event.Target()
	if target == "" {
		return nil
	}

	var results []ExecutionResult
	for _, binding := range e.bindings[target] {
		if !binding.Matches(event.Type) {
			continue
		}
		f, ok := e.flows[binding.FlowID]
		if !ok {
			e.logSink.Log("warn", fmt.Sprintf("binding %s on %s references missing flow %s", binding.ID, target, binding.FlowID))
			continue
		}
		results = append(results, e.ExecuteFlow(f, event))
	}
	return results
}

// ExecuteFlow runs one flow against one event. Conditions gate the
// action list; actions run sequentially and best-effort, each failure
// captured per index without aborting the rest. The execution record is
// appended to the bounded log in every case except disabled/missing
// flows.
func (e *Engine) ExecuteFlow(f *Flow, event Event) (result ExecutionResult) {
	if f == nil || !f.Enabled {
		return ExecutionResult{Success: false, Reason: ReasonDisabledOrNotFound}
	}

	record := &ExecutionRecord{
		ID:        types.NewExecutionID(),
		FlowID:    f.ID,
		FlowName:  f.Name,
		EventType: event.Type,
		StartTime: time.Now(),
		Status:    StatusRunning,
	}

	// An engine-level panic outside the per-action recovery marks the
	// whole record failed; the record is still logged.
	defer func() {
		if r := recover(); r != nil {
			record.Status = StatusFailed
			record.Errors = append(record.Errors, ExecutionError{
				ActionIndex: -1,
				Message:     fmt.Sprintf("engine failure: %v", r),
			})
			record.Duration = time.Since(record.StartTime)
			e.executions.Append(record)
			result = ExecutionResult{
				Success:     false,
				ExecutionID: record.ID,
				Errors:      record.Errors,
			}
		}
	}()

	snap := e.currentSnapshot()

	if len(f.Conditions) > 0 && !e.cond.EvaluateAll(f.Conditions, event.Payload, snap) {
		record.Status = StatusSkipped
		record.Duration = time.Since(record.StartTime)
		e.executions.Append(record)
		return ExecutionResult{
			Success:     false,
			Reason:      ReasonConditionsNotMet,
			ExecutionID: record.ID,
		}
	}

	for i, action := range f.Actions {
		res := e.runActionGuarded(action, event, snap)

		record.ActionsPerformed = append(record.ActionsPerformed, ActionOutcome{
			Index:   i,
			Kind:    action.Kind(),
			Success: res.success,
			Detail:  res.detail,
		})
		if !res.success {
			msg := res.detail
			if res.err != nil {
				msg = res.err.Error()
			}
			record.Errors = append(record.Errors, ExecutionError{ActionIndex: i, Message: msg})
		}
	}

	if f.ShouldRelay() && e.relay != nil {
		summary := RelaySummary{
			FlowID:      f.ID,
			FlowName:    f.Name,
			EventType:   event.Type,
			TargetKey:   event.Target(),
			Payload:     event.Payload,
			ExecutionID: record.ID,
			Timestamp:   time.Now(),
		}
		// Best-effort delivery: failures are logged, never propagated.
		if err := e.relay.Relay(summary); err != nil {
			e.logSink.Log("warn", fmt.Sprintf("relay failed for execution %s: %v", record.ID, err))
		}
	}

	if len(record.Errors) == 0 {
		record.Status = StatusCompleted
	} else {
		record.Status = StatusCompletedWithErrors
	}
	record.Duration = time.Since(record.StartTime)
	e.executions.Append(record)

	return ExecutionResult{
		Success:          len(record.Errors) == 0,
		ExecutionID:      record.ID,
		ActionsPerformed: len(record.ActionsPerformed),
		Errors:           record.Errors,
	}
}

// runActionGuarded wraps one action execution with its own recovery so a
// panicking action cannot abort the remainder of the list.
func (e *Engine) runActionGuarded(action Action, event Event, snap *workspace.Snapshot) (res actionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = actionResult{err: fmt.Errorf("action panic: %v", r)}
		}
	}()
	return e.executeAction(action, event, snap)
}

// currentSnapshot fetches the current snapshot once per execution.
func (e *Engine) currentSnapshot() *workspace.Snapshot {
	if e.snapshots == nil {
		return nil
	}
	return e.snapshots.Current()
}

// stdLogSink writes leveled lines through the standard logger.
type stdLogSink struct{}

func (stdLogSink) Log(level, message string) {
	log.Printf("[%s] %s", level, message)
}
