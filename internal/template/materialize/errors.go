package materialize

import "fmt"

// MaterializeErrorType classifies materialization failures.
type MaterializeErrorType int

const (
	// InvalidTemplate indicates the template directory does not exist
	// or is not a directory.
	InvalidTemplate MaterializeErrorType = iota
	// TargetNotEmpty indicates the target directory already contains
	// files; detected before any write occurs.
	TargetNotEmpty
	// InvalidPath indicates variable substitution produced an unsafe
	// file path (traversal, separator, or empty component).
	InvalidPath
	// MaterializationFailed indicates an I/O error while copying or
	// substituting template files.
	MaterializationFailed
)

// String returns the string representation of the error type.
func (t MaterializeErrorType) String() string {
	switch t {
	case InvalidTemplate:
		return "InvalidTemplate"
	case TargetNotEmpty:
		return "TargetNotEmpty"
	case InvalidPath:
		return "InvalidPath"
	case MaterializationFailed:
		return "MaterializationFailed"
	default:
		return "Unknown"
	}
}

// MaterializeError represents a failure while materializing a template
// into a target directory.
type MaterializeError struct {
	// Type is the error type classification.
	Type MaterializeErrorType
	// Path is the file or directory involved.
	Path string
	// Message is the human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *MaterializeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("materialize error [%s] at %s: %s (caused by: %v)",
			e.Type.String(), e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("materialize error [%s] at %s: %s", e.Type.String(), e.Path, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *MaterializeError) Unwrap() error {
	return e.Cause
}

// newMaterializeError creates a new MaterializeError.
func newMaterializeError(typ MaterializeErrorType, path, message string, cause error) *MaterializeError {
	return &MaterializeError{
		Type:    typ,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidTemplateError creates an invalid template error.
func NewInvalidTemplateError(path string, cause error) *MaterializeError {
	return newMaterializeError(InvalidTemplate, path, "template directory does not exist", cause)
}

// NewTargetNotEmptyError creates a non-empty target error.
func NewTargetNotEmptyError(path string) *MaterializeError {
	return newMaterializeError(TargetNotEmpty, path,
		"target directory is not empty (choose an empty directory or pass --force)", nil)
}

// NewInvalidPathError creates an unsafe path error.
func NewInvalidPathError(path, message string) *MaterializeError {
	return newMaterializeError(InvalidPath, path, message, nil)
}

// NewWriteError creates a materialization I/O error.
func NewWriteError(path string, cause error) *MaterializeError {
	return newMaterializeError(MaterializationFailed, path, "failed to write project files", cause)
}
