package flow

import (
	"fmt"
	"strings"

	"github.com/dshills/boardflow/pkg/workspace"
)

// lookupPath resolves a dotted path against the merged evaluation
// context: the event payload first, then the current snapshot when the
// payload does not carry the field.
func lookupPath(path string, payload map[string]interface{}, snap *workspace.Snapshot) (interface{}, bool) {
	if path == "" {
		return nil, false
	}

	if value, ok := lookupPayload(path, payload); ok {
		return value, true
	}
	if snap != nil {
		return snap.Resolve(path)
	}
	return nil, false
}

// lookupPayload walks nested map values in the payload using dot
// notation.
func lookupPayload(path string, payload map[string]interface{}) (interface{}, bool) {
	if payload == nil {
		return nil, false
	}

	parts := strings.Split(path, ".")
	var current interface{} = payload

	for _, part := range parts {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		value, ok := node[part]
		if !ok {
			return nil, false
		}
		current = value
	}

	return current, true
}

// Interpolate replaces every {{dotted.path}} token in template with the
// resolved value, stringified. Unresolved tokens are left verbatim so a
// broken flow shows its placeholder instead of silently blanking out.
func Interpolate(template string, payload map[string]interface{}, snap *workspace.Snapshot) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	var result strings.Builder
	i := 0
	n := len(template)

	for i < n {
		if i < n-1 && template[i] == '{' && template[i+1] == '{' {
			end := strings.Index(template[i+2:], "}}")
			if end == -1 {
				// Unterminated token: emit the rest verbatim.
				result.WriteString(template[i:])
				break
			}
			end += i + 2

			path := strings.TrimSpace(template[i+2 : end])
			if value, ok := lookupPath(path, payload, snap); ok {
				result.WriteString(stringify(value))
			} else {
				result.WriteString(template[i : end+2])
			}
			i = end + 2
			continue
		}

		result.WriteByte(template[i])
		i++
	}

	return result.String()
}

// interpolateParams interpolates every value of a parameter map.
func interpolateParams(params map[string]string, payload map[string]interface{}, snap *workspace.Snapshot) map[string]string {
	if params == nil {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = Interpolate(v, payload, snap)
	}
	return out
}

// stringify renders a resolved value for interpolation output.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// Trim the ".0" JSON decoding leaves on integral numbers.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
