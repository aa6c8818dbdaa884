package scheduler

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNoNodes indicates the status table contained no node rows
	ErrNoNodes = errors.New("no nodes available")

	// ErrSinfoNotFound indicates the sinfo binary was not found
	ErrSinfoNotFound = errors.New("sinfo binary not found in PATH")

	// ErrInvalidTimeFormat indicates time format is invalid
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidMemoryFormat indicates memory format is invalid
	ErrInvalidMemoryFormat = errors.New("invalid memory format")

	// ErrUnlimitedTime indicates a time limit that has no upper bound
	ErrUnlimitedTime = errors.New("time limit is unlimited")

	// ErrVersionParseFailed indicates the Slurm version could not be parsed
	ErrVersionParseFailed = errors.New("failed to parse Slurm version")

	// ErrBadOutputDir is returned when scripts cannot be written to the output directory
	ErrBadOutputDir = errors.New("output directory is not usable")
)

// ValidationError represents an operator answer that failed validation
type ValidationError struct {
	Field  string // Field that failed validation
	Value  string // Value as entered
	Reason string // Why it was rejected
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is allows errors.Is to match ValidationError
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// SelectionError represents a node index outside the listed range
type SelectionError struct {
	Index int // Requested 1-based index
	Count int // Number of listed nodes
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("node %d is out of range (1-%d)", e.Index, e.Count)
}

// ClusterError represents an error querying cluster information
type ClusterError struct {
	Operation string // Operation that failed (e.g., "query nodes")
	Output    string // Captured command output
	Err       error  // Underlying error
}

func (e *ClusterError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("SLURM cluster error during %s: %v\nOutput: %s",
			e.Operation, e.Err, e.Output)
	}
	return fmt.Sprintf("SLURM cluster error during %s: %v", e.Operation, e.Err)
}

func (e *ClusterError) Unwrap() error {
	return e.Err
}

// ScriptCreationError represents an error creating a batch script
type ScriptCreationError struct {
	JobName string // Job name
	Path    string // Script path
	Err     error  // Underlying error
}

func (e *ScriptCreationError) Error() string {
	return fmt.Sprintf("failed to create script for job %s at %s: %v",
		e.JobName, e.Path, e.Err)
}

func (e *ScriptCreationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value string, reason string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewClusterError creates a new ClusterError
func NewClusterError(operation string, output string, err error) *ClusterError {
	return &ClusterError{
		Operation: operation,
		Output:    output,
		Err:       err,
	}
}

// NewScriptCreationError creates a new ScriptCreationError
func NewScriptCreationError(jobName string, path string, err error) *ScriptCreationError {
	return &ScriptCreationError{
		JobName: jobName,
		Path:    path,
		Err:     err,
	}
}

// IsClusterError checks if an error is a ClusterError
func IsClusterError(err error) bool {
	var ce *ClusterError
	return errors.As(err, &ce)
}
