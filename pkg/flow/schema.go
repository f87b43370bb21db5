package flow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// flowSchema is the JSON Schema applied to imported JSON flow
// definitions before decoding. YAML imports go through ParseFlows, which
// validates structurally after decoding instead.
const flowSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "condition": {
      "type": "object",
      "properties": {
        "field": {"type": "string"},
        "operator": {
          "type": "string",
          "enum": ["equals", "not_equals", "contains", "greater_than", "less_than", "exists", "not_exists"]
        },
        "value": {},
        "expression": {"type": "string"}
      },
      "additionalProperties": false
    },
    "action": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {
          "type": "string",
          "enum": ["show_notification", "run_command", "update_field", "log_message"]
        },
        "title": {"type": "string"},
        "message": {"type": "string"},
        "command": {"type": "string"},
        "params": {"type": "object", "additionalProperties": {"type": "string"}},
        "target_type": {"type": "string"},
        "target_id": {"type": "string"},
        "field": {"type": "string"},
        "value": {"type": "string"},
        "level": {"type": "string", "enum": ["info", "warn", "error"]}
      },
      "additionalProperties": false
    },
    "flow": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "id": {"type": "string"},
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "enabled": {"type": "boolean"},
        "send_to_backend": {"type": "boolean"},
        "trigger": {
          "type": "object",
          "properties": {"type": {"type": "string"}},
          "additionalProperties": false
        },
        "default_trigger": {"type": "string"},
        "conditions": {"type": "array", "items": {"$ref": "#/definitions/condition"}},
        "actions": {"type": "array", "items": {"$ref": "#/definitions/action"}}
      },
      "additionalProperties": false
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/flow"},
    {
      "type": "object",
      "required": ["flows"],
      "properties": {
        "flows": {"type": "array", "items": {"$ref": "#/definitions/flow"}}
      },
      "additionalProperties": false
    }
  ]
}`

// ValidateJSONDefinition checks a JSON flow document against the flow
// schema, reporting every violation.
func ValidateJSONDefinition(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(flowSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidFlow, strings.Join(problems, "; "))
}

// ParseFlowsJSON validates and decodes a JSON flow document.
func ParseFlowsJSON(data []byte) ([]*Flow, error) {
	if err := ValidateJSONDefinition(data); err != nil {
		return nil, err
	}

	var doc flowDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
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
