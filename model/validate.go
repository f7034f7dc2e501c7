package model

import (
	"strings"

	"github.com/hexforge/hexforge/diag"
	"github.com/hexforge/hexforge/naming"
)

// validateAggregate records every structural violation of the aggregate
// into the report. Violations are collected, not returned one at a time,
// so a single pass surfaces all of them. Names are compared in their
// canonical form but reported exactly as authored.
func validateAggregate(agg *AggregateSpec, report *diag.Report) {
	validateRootCount(agg, report)
	validateUniqueNames(agg, report)

	index := make(map[string]struct{}, len(agg.Entities))
	for _, e := range agg.Entities {
		index[naming.Pascal(e.Name)] = struct{}{}
	}

	for _, e := range agg.Entities {
		validateIdentityField(agg, e, report)
		for _, r := range e.Relationships {
			validateRelationship(agg, e, r, index, report)
		}
	}
}

// validateRootCount checks that exactly one entity is marked root.
func validateRootCount(agg *AggregateSpec, report *diag.Report) {
	count := 0
	for _, e := range agg.Entities {
		if e.Root {
			count++
		}
	}
	if count == 1 {
		return
	}
	report.Add(diag.Errorf(CodeInvalidAggregateRoot,
		"aggregate declares %d root entities, exactly one is required", count).
		WithAggregate(agg.Name))
}

// validateUniqueNames checks that entity and value-object names do not
// collide. The two kinds share one namespace: both become classes in the
// same generated package.
func validateUniqueNames(agg *AggregateSpec, report *diag.Report) {
	seen := make(map[string]string, len(agg.Entities)+len(agg.ValueObjects))

	record := func(kind, name string) {
		canonical := naming.Pascal(name)
		if prev, ok := seen[canonical]; ok {
			report.Add(diag.Errorf(CodeDuplicateName,
				"%s %q collides with %s of the same name", kind, name, prev).
				WithAggregate(agg.Name).
				WithContext("name", canonical))
			return
		}
		seen[canonical] = kind
	}

	for _, e := range agg.Entities {
		record("entity", e.Name)
	}
	for _, vo := range agg.ValueObjects {
		record("value object", vo.Name)
	}
}

// validateIdentityField checks that the entity's first field is literally
// named id.
func validateIdentityField(agg *AggregateSpec, e *EntitySpec, report *diag.Report) {
	if len(e.Fields) > 0 && e.Fields[0].Name == "id" {
		return
	}

	msg := "entity declares no id field"
	for _, f := range e.Fields {
		if f.Name == "id" {
			msg = "the id field must be the entity's first field"
			break
		}
	}
	report.Add(diag.Errorf(CodeMissingIdentityField, "%s", msg).
		WithAggregate(agg.Name).
		WithEntity(e.Name))
}

// validateRelationship checks the relationship's kind, fetch strategy,
// cascade set, and that its target names an entity of the same aggregate.
func validateRelationship(
	agg *AggregateSpec,
	e *EntitySpec,
	r *RelationshipSpec,
	index map[string]struct{},
	report *diag.Report,
) {
	if !r.Kind.Valid() {
		report.Add(diag.Errorf(CodeInvalidRelationship,
			"unsupported relationship kind %q", string(r.Kind)).
			WithAggregate(agg.Name).
			WithEntity(e.Name))
	}
	if r.Fetch != "" && !r.Fetch.Valid() {
		report.Add(diag.Errorf(CodeInvalidRelationship,
			"unsupported fetch strategy %q", string(r.Fetch)).
			WithAggregate(agg.Name).
			WithEntity(e.Name))
	}
	for _, c := range r.Cascade {
		if !c.Valid() {
			report.Add(diag.Errorf(CodeInvalidRelationship,
				"unsupported cascade type %q", string(c)).
				WithAggregate(agg.Name).
				WithEntity(e.Name))
		}
	}

	if _, ok := index[naming.Pascal(r.Target)]; !ok {
		report.Add(diag.Errorf(CodeUnknownRelationshipTarget,
			"relationship target %q is not declared in the aggregate", r.Target).
			WithAggregate(agg.Name).
			WithEntity(e.Name).
			WithContext("target", r.Target))
	}
}

// normalizeAggregate canonicalizes every name of a validated aggregate:
// PascalCase for type names, camelCase for fields and association names,
// snake_case for tables. Missing table names default to the snake_case
// plural of the entity name, and missing fetch strategies default to lazy.
// Normalizing an already-normalized aggregate changes nothing.
func normalizeAggregate(agg *AggregateSpec) {
	agg.Name = naming.Pascal(agg.Name)
	agg.Table = naming.Snake(agg.Table)

	// The aggregate-level table name applies to the root entity unless the
	// root declares its own.
	if root := agg.Root(); root != nil && root.Table == "" && agg.Table != "" {
		root.Table = agg.Table
	}

	for _, e := range agg.Entities {
		e.Name = naming.Pascal(e.Name)
		if agg.Audit {
			e.Audit = true
		}
		if e.Table == "" {
			e.Table = naming.Snake(naming.Plural(e.Name))
		} else {
			e.Table = naming.Snake(e.Table)
		}
		normalizeFields(e.Fields)
		for _, r := range e.Relationships {
			r.Target = naming.Pascal(r.Target)
			if r.Field != "" {
				r.Field = naming.Camel(r.Field)
			}
			if r.MappedBy != "" {
				r.MappedBy = naming.Camel(r.MappedBy)
			}
			if r.Fetch == "" {
				r.Fetch = FetchLazy
			}
		}
	}

	// Enum declarations are canonicalized when the module-wide registry is
	// assembled, before aggregates resolve; other aggregates may already be
	// reading them here.
	for _, vo := range agg.ValueObjects {
		vo.Name = naming.Pascal(vo.Name)
		normalizeFields(vo.Fields)
	}
}

func normalizeFields(fields []*FieldSpec) {
	for _, f := range fields {
		f.Name = naming.Camel(f.Name)
		f.Type = strings.TrimSpace(f.Type)
	}
}
