package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrSchemaConflict indicates two distinct types claimed the same schema identifier.
	ErrSchemaConflict = errors.New("schema identifier conflict")

	// ErrFilter indicates a filter failed during generation.
	ErrFilter = errors.New("filter error")

	// ErrContract indicates a type contract could not be resolved or used.
	ErrContract = errors.New("contract error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// SchemaConflictError is returned when a schema identifier is already bound to a
// different type. Generation of the enclosing document must be abandoned, since
// continuing would silently merge two unrelated shapes under one name.
type SchemaConflictError struct {
	// ID is the contested schema identifier
	ID string
	// Existing describes the type that first claimed ID
	Existing string
	// Incoming describes the type that tried to claim ID
	Incoming string
	// Hint suggests a configuration that avoids the conflict (may be empty)
	Hint string
}

// Error returns a human-readable error message.
func (e *SchemaConflictError) Error() string {
	msg := fmt.Sprintf("schema identifier conflict: %q", e.ID)
	if e.Existing != "" || e.Incoming != "" {
		msg += fmt.Sprintf(" is used by %s and %s", e.Existing, e.Incoming)
	}
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SchemaConflictError) Is(target error) bool {
	return target == ErrSchemaConflict
}

// FilterStage identifies which part of the filter pipeline failed.
type FilterStage string

const (
	// FilterStageSchema is the per-schema filter stage.
	FilterStageSchema FilterStage = "schema"
	// FilterStageModel is the object-contract filter stage.
	FilterStageModel FilterStage = "model"
	// FilterStageRepository is the stage run over all stored schemas.
	FilterStageRepository FilterStage = "repository"
)

// FilterError represents a failure raised by a user-supplied filter.
type FilterError struct {
	// Stage is the pipeline stage the filter was registered in
	Stage FilterStage
	// Index is the filter's position in its registration list
	Index int
	// Filter describes the failing filter (its Go type)
	Filter string
	// Type is the type whose schema was being filtered (empty for repository filters)
	Type string
	// Cause is the error returned by the filter
	Cause error
}

// Error returns a human-readable error message.
func (e *FilterError) Error() string {
	msg := "filter error"
	if e.Stage != "" {
		msg += fmt.Sprintf(" in %s filter #%d", e.Stage, e.Index)
	}
	if e.Filter != "" {
		msg += " (" + e.Filter + ")"
	}
	if e.Type != "" {
		msg += " for " + e.Type
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FilterError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FilterError) Is(target error) bool {
	return target == ErrFilter
}

// ContractError represents a failure to describe a type's serialized shape.
type ContractError struct {
	// Type is the Go type being described
	Type string
	// Member is the struct member involved, if any
	Member string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ContractError) Error() string {
	msg := "contract error"
	if e.Type != "" {
		msg += " for " + e.Type
	}
	if e.Member != "" {
		msg += "." + e.Member
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ContractError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ContractError) Is(target error) bool {
	return target == ErrContract
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, malformed configuration files, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
