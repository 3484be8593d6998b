// Package oaserrors provides structured error types for the oastypes library.
//
// Import path: github.com/erraggy/oastypes/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between the failure modes of schema generation.
//
// # Error Types
//
//   - [SchemaConflictError]: two distinct types resolved to the same schema identifier
//   - [FilterError]: a registered filter failed and aborted generation
//   - [ContractError]: a type's contract could not be resolved or is unusable
//   - [ConfigError]: invalid generator options or configuration file
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrSchemaConflict]: Matches any [SchemaConflictError]
//   - [ErrFilter]: Matches any [FilterError]
//   - [ErrContract]: Matches any [ContractError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Example
//
//	_, err := gen.GenerateSchema(ctx, reflect.TypeFor[Order](), repo)
//	var conflict *oaserrors.SchemaConflictError
//	if errors.As(err, &conflict) {
//	    log.Printf("%s is claimed by %s and %s", conflict.ID, conflict.Existing, conflict.Incoming)
//	}
//
// Unclassifiable types are never reported as errors; they produce an open schema.
package oaserrors
