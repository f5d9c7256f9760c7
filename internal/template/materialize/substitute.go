package materialize

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Variables maps token names to their substitution values. A token
// "name" is written as {{name}} in template file contents and paths.
type Variables map[string]string

// Substitute replaces every {{name}} token in s with its value.
// Unrecognized tokens are left untouched.
func Substitute(s string, vars Variables) string {
	for name, value := range vars {
		s = strings.ReplaceAll(s, token(name), value)
	}
	return s
}

// SubstituteContent applies token substitution to file content,
// leaving binary files untouched.
func SubstituteContent(content []byte, vars Variables) []byte {
	if isBinaryContent(content) {
		return content
	}
	return []byte(Substitute(string(content), vars))
}

// SubstitutePath applies token substitution to each component of a
// slash-separated relative path and validates the result. A component
// that substitutes into a traversal sequence, a path separator, or an
// empty string is rejected.
func SubstitutePath(path string, vars Variables) (string, error) {
	components := strings.Split(path, "/")
	processed := make([]string, 0, len(components))

	for _, component := range components {
		if component == "" {
			continue
		}

		sub := Substitute(component, vars)
		if err := validatePathComponent(sub, component); err != nil {
			return "", err
		}
		processed = append(processed, sub)
	}

	result := strings.Join(processed, "/")
	if err := validatePath(result, path); err != nil {
		return "", err
	}
	return result, nil
}

func token(name string) string {
	return "{{" + name + "}}"
}

// validatePathComponent validates a single substituted path component.
func validatePathComponent(processed, original string) error {
	if strings.Contains(processed, "..") {
		return NewInvalidPathError(original,
			fmt.Sprintf("component %q contains path traversal after substitution", processed))
	}
	if strings.Contains(processed, "/") || strings.Contains(processed, "\\") {
		return NewInvalidPathError(original,
			fmt.Sprintf("component %q contains a path separator after substitution", processed))
	}
	if strings.TrimSpace(processed) == "" {
		return NewInvalidPathError(original, "component is empty after substitution")
	}
	return nil
}

// validatePath validates the complete substituted path.
func validatePath(processed, original string) error {
	if filepath.IsAbs(processed) {
		return NewInvalidPathError(original, "path is absolute after substitution")
	}
	cleaned := filepath.Clean(processed)
	if strings.HasPrefix(cleaned, "..") {
		return NewInvalidPathError(original, "path escapes the target directory after substitution")
	}
	if cleaned == "." {
		return NewInvalidPathError(original, "path resolves to the target directory itself")
	}
	return nil
}

// isBinaryContent checks if content appears to be binary.
// Simple heuristic: check first 512 bytes for null bytes.
func isBinaryContent(content []byte) bool {
	size := len(content)
	if size > 512 {
		size = 512
	}
	for i := 0; i < size; i++ {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
