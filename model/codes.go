package model

import "github.com/hexforge/hexforge/diag"

// Diagnostic codes raised during resolution. Structural codes abort the
// offending aggregate; the remaining codes accompany a still-usable model.
const (
	// Structural validation failures, aggregate-fatal.

	// CodeMissingIdentityField indicates an entity whose first field is not
	// literally named id.
	CodeMissingIdentityField diag.Code = "MISSING_IDENTITY_FIELD"

	// CodeDuplicateName indicates an entity, value-object, or enum name
	// collision within its scope.
	CodeDuplicateName diag.Code = "DUPLICATE_NAME"

	// CodeInvalidAggregateRoot indicates an aggregate with zero or multiple
	// root entities.
	CodeInvalidAggregateRoot diag.Code = "INVALID_AGGREGATE_ROOT"

	// CodeUnknownRelationshipTarget indicates a relationship whose target
	// is not declared in the same aggregate.
	CodeUnknownRelationshipTarget diag.Code = "UNKNOWN_RELATIONSHIP_TARGET"

	// CodeInvalidRelationship indicates a relationship with an unsupported
	// kind, fetch strategy, or cascade type.
	CodeInvalidRelationship diag.Code = "INVALID_RELATIONSHIP"

	// CodeUnresolvedFieldType indicates a declared type string that matches
	// no value object, enum, primitive keyword, or collection form.
	CodeUnresolvedFieldType diag.Code = "UNRESOLVED_FIELD_TYPE"

	// CodeUnsupportedIdentityType indicates an id field whose type maps to
	// no identity-generation strategy.
	CodeUnsupportedIdentityType diag.Code = "UNSUPPORTED_IDENTITY_TYPE"

	// Non-fatal findings.

	// CodeCycleDetected indicates an enrichment branch that closed a cycle
	// and was halted.
	CodeCycleDetected diag.Code = "CYCLE_DETECTED"

	// CodeMaxDepthReached indicates an enrichment branch halted at the
	// depth ceiling.
	CodeMaxDepthReached diag.Code = "MAX_DEPTH_REACHED"

	// CodeRelationshipConsistency indicates both sides of an association
	// were declared with disagreeing join columns.
	CodeRelationshipConsistency diag.Code = "RELATIONSHIP_CONSISTENCY"
)
