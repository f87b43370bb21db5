package flow

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dshills/boardflow/pkg/domain/types"
)

// flowDoc is the on-disk document shape: either a single flow at the top
// level or a list under "flows".
type flowDoc struct {
	Flows []flowSpec `yaml:"flows,omitempty" json:"flows,omitempty"`

	// Inline single-flow fields.
	flowSpec `yaml:",inline"`
}

// flowSpec is the serialized form of a Flow before conversion to domain
// objects.
type flowSpec struct {
	ID             string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name           string          `yaml:"name,omitempty" json:"name,omitempty"`
	Description    string          `yaml:"description,omitempty" json:"description,omitempty"`
	Enabled        *bool           `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	SendToBackend  *bool           `yaml:"send_to_backend,omitempty" json:"send_to_backend,omitempty"`
	Trigger        triggerSpec     `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	DefaultTrigger string          `yaml:"default_trigger,omitempty" json:"default_trigger,omitempty"`
	Conditions     []conditionSpec `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Actions        []actionSpec    `yaml:"actions,omitempty" json:"actions,omitempty"`
}

type triggerSpec struct {
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

type conditionSpec struct {
	Field      string      `yaml:"field,omitempty" json:"field,omitempty"`
	Operator   string      `yaml:"operator,omitempty" json:"operator,omitempty"`
	Value      interface{} `yaml:"value,omitempty" json:"value,omitempty"`
	Expression string      `yaml:"expression,omitempty" json:"expression,omitempty"`
}

// actionSpec carries the union of all action fields; Type discriminates.
type actionSpec struct {
	Type string `yaml:"type" json:"type"`

	// show_notification
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`

	// run_command
	Command string            `yaml:"command,omitempty" json:"command,omitempty"`
	Params  map[string]string `yaml:"params,omitempty" json:"params,omitempty"`

	// update_field
	TargetType string `yaml:"target_type,omitempty" json:"target_type,omitempty"`
	TargetID   string `yaml:"target_id,omitempty" json:"target_id,omitempty"`
	Field      string `yaml:"field,omitempty" json:"field,omitempty"`
	Value      string `yaml:"value,omitempty" json:"value,omitempty"`

	// log_message
	Level string `yaml:"level,omitempty" json:"level,omitempty"`
}

// ParseFlows parses one or more flow definitions from YAML. A document
// may hold a single flow at the top level or a list under "flows". Every
// parsed flow is validated.
func ParseFlows(data []byte) ([]*Flow, error) {
	if len(data) == 0 {
		return nil, errors.New("empty YAML input")
	}

	var doc flowDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	specs := doc.Flows
	if len(specs) == 0 {
		specs = []flowSpec{doc.flowSpec}
	}

	flows := make([]*Flow, 0, len(specs))
	for i, spec := range specs {
		f, err := spec.toFlow()
		if err != nil {
			return nil, fmt.Errorf("flow %d: %w", i, err)
		}
		if err := ValidateFlow(f); err != nil {
			return nil, fmt.Errorf("flow %d (%s): %w", i, f.Name, err)
		}
		flows = append(flows, f)
	}

	return flows, nil
}

// ParseFlow parses exactly one flow definition.
func ParseFlow(data []byte) (*Flow, error) {
	flows, err := ParseFlows(data)
	if err != nil {
		return nil, err
	}
	if len(flows) != 1 {
		return nil, fmt.Errorf("%w: expected one flow, found %d", ErrInvalidFlow, len(flows))
	}
	return flows[0], nil
}

// ExportFlow serializes a flow to YAML.
func ExportFlow(f *Flow) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil flow", ErrInvalidFlow)
	}
	return yaml.Marshal(specFromFlow(f))
}

// ExportFlows serializes a flow list to a "flows:" YAML document.
func ExportFlows(flows []*Flow) ([]byte, error) {
	doc := flowDoc{Flows: make([]flowSpec, 0, len(flows))}
	for _, f := range flows {
		if f == nil {
			continue
		}
		doc.Flows = append(doc.Flows, specFromFlow(f))
	}
	return yaml.Marshal(doc)
}

func (s flowSpec) toFlow() (*Flow, error) {
	f := &Flow{
		ID:             types.FlowID(s.ID),
		Name:           s.Name,
		Description:    s.Description,
		Enabled:        s.Enabled == nil || *s.Enabled,
		SendToBackend:  s.SendToBackend,
		Trigger:        Trigger{Type: s.Trigger.Type},
		DefaultTrigger: s.DefaultTrigger,
	}
	if f.ID.IsZero() {
		f.ID = types.NewFlowID()
	}

	for _, c := range s.Conditions {
		f.Conditions = append(f.Conditions, Condition{
			Field:      c.Field,
			Operator:   Operator(c.Operator),
			Value:      c.Value,
			Expression: c.Expression,
		})
	}

	for i, a := range s.Actions {
		action, err := a.toAction()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		f.Actions = append(f.Actions, action)
	}

	return f, nil
}

func (a actionSpec) toAction() (Action, error) {
	switch ActionKind(a.Type) {
	case ActionShowNotification:
		return &ShowNotificationAction{Title: a.Title, Message: a.Message}, nil
	case ActionRunCommand:
		return &RunCommandAction{CommandType: a.Command, Params: a.Params}, nil
	case ActionUpdateField:
		return &UpdateFieldAction{
			TargetType: a.TargetType,
			TargetID:   a.TargetID,
			Field:      a.Field,
			Value:      a.Value,
		}, nil
	case ActionLogMessage:
		return &LogMessageAction{Level: a.Level, Message: a.Message}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
}

func specFromFlow(f *Flow) flowSpec {
	enabled := f.Enabled
	spec := flowSpec{
		ID:             f.ID.String(),
		Name:           f.Name,
		Description:    f.Description,
		Enabled:        &enabled,
		SendToBackend:  f.SendToBackend,
		Trigger:        triggerSpec{Type: f.Trigger.Type},
		DefaultTrigger: f.DefaultTrigger,
	}

	for _, c := range f.Conditions {
		spec.Conditions = append(spec.Conditions, conditionSpec{
			Field:      c.Field,
			Operator:   string(c.Operator),
			Value:      c.Value,
			Expression: c.Expression,
		})
	}

	for _, action := range f.Actions {
		spec.Actions = append(spec.Actions, specFromAction(action))
	}

	return spec
}

func specFromAction(action Action) actionSpec {
	switch a := action.(type) {
	case *ShowNotificationAction:
		return actionSpec{Type: string(ActionShowNotification), Title: a.Title, Message: a.Message}
	case *RunCommandAction:
		return actionSpec{Type: string(ActionRunCommand), Command: a.CommandType, Params: a.Params}
	case *UpdateFieldAction:
		return actionSpec{
			Type:       string(ActionUpdateField),
			TargetType: a.TargetType,
			TargetID:   a.TargetID,
			Field:      a.Field,
			Value:      a.Value,
		}
	case *LogMessageAction:
		return actionSpec{Type: string(ActionLogMessage), Level: a.Level, Message: a.Message}
	default:
		return actionSpec{Type: string(action.Kind())}
	}
}
