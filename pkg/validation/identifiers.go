package validation

// IsValidIdentifierChar checks if a character is valid for identifiers
// (alphanumeric, hyphen, or underscore).
//
// This function is used to validate flow IDs, task IDs, and other
// user-provided identifiers in Boardflow. It enforces a consistent naming
// convention across the application.
//
// Valid characters:
//   - Lowercase letters: a-z
//   - Uppercase letters: A-Z
//   - Digits: 0-9
//   - Hyphen: -
//   - Underscore: _
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// IsValidIdentifier checks that s is non-empty and contains only valid
// identifier characters.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !IsValidIdentifierChar(ch) {
			return false
		}
	}
	return true
}

// IsValidDottedPath checks that s is a non-empty dotted path such as
// "task.status" or "payload.toStatus". Each segment must be a valid
// identifier; empty segments (leading, trailing, or doubled dots) are
// rejected.
func IsValidDottedPath(s string) bool {
	if s == "" {
		return false
	}
	segStart := 0
	for i, ch := range s {
		if ch == '.' {
			if i == segStart {
				return false
			}
			segStart = i + 1
			continue
		}
		if !IsValidIdentifierChar(ch) {
			return false
		}
	}
	return segStart < len(s)
}
