package model

import (
	"github.com/hexforge/hexforge/diag"
	"github.com/hexforge/hexforge/naming"
)

// resolveRelationships closes the aggregate's relationship graph under
// inversion. For every bidirectional association declared through mappedBy
// it either synthesizes the missing back-reference on the target entity or
// normalizes the explicitly declared one, so that the resolved model is
// identical whichever way the blueprint was written. Entities are
// processed root first, then in declaration order; the resulting model is
// the same regardless, only diagnostic ordering follows the pass.
func resolveRelationships(agg *AggregateSpec, report *diag.Report) {
	index := agg.entityIndex()
	order := agg.passOrder()

	// Association field names must exist before back-references are
	// matched, so derivation runs as its own pass.
	for _, owner := range order {
		for _, rel := range owner.Relationships {
			if rel.Field == "" {
				rel.Field = deriveFieldName(rel)
			}
		}
	}

	for _, owner := range order {
		for _, rel := range owner.Relationships {
			if rel.IsInverse {
				continue
			}
			complement, ok := rel.Kind.complement()
			if !ok || rel.MappedBy == "" {
				continue
			}
			target := index[rel.Target]
			if target == nil {
				continue
			}
			closeEdge(agg, owner, rel, target, complement, report)
		}
	}

	// Owning many-to-one and unidirectional one-to-one associations carry
	// the foreign key; fill in the derived column name where no override
	// was declared.
	for _, owner := range order {
		for _, rel := range owner.Relationships {
			if rel.JoinColumn != "" {
				continue
			}
			if rel.Kind == ManyToOne || (rel.Kind == OneToOne && rel.MappedBy == "") {
				rel.JoinColumn = naming.Snake(rel.Field) + "_id"
			}
		}
	}
}

// closeEdge resolves one mappedBy declaration: synthesize the missing
// back-reference, normalize a consistent explicit one, or record a
// consistency warning when the two sides disagree.
func closeEdge(
	agg *AggregateSpec,
	owner *EntitySpec,
	rel *RelationshipSpec,
	target *EntitySpec,
	complement RelationshipKind,
	report *diag.Report,
) {
	expected := naming.Snake(rel.MappedBy) + "_id"

	back := findBackReference(target, owner.Name, complement, rel.MappedBy)
	if back == nil {
		target.Relationships = append(target.Relationships, &RelationshipSpec{
			Kind:       complement,
			Field:      rel.MappedBy,
			Target:     owner.Name,
			JoinColumn: expected,
			Fetch:      FetchLazy,
			IsInverse:  true,
		})
		return
	}

	if back.IsInverse {
		report.Add(diag.Warnf(CodeRelationshipConsistency,
			"association %s.%s duplicates an edge to %q that is already closed",
			owner.Name, rel.Field, target.Name).
			WithAggregate(agg.Name).
			WithEntity(owner.Name))
		return
	}

	actual := back.JoinColumn
	if actual == "" {
		actual = naming.Snake(back.Field) + "_id"
	}

	if actual == expected {
		back.IsInverse = true
		back.JoinColumn = expected
		return
	}

	// Both sides are declared but their join columns disagree. The
	// explicit declaration wins and no back-reference is synthesized.
	report.Add(diag.Warnf(CodeRelationshipConsistency,
		"both sides of the association between %s.%s and %s.%s are declared but their join columns disagree: mappedBy %q implies %q, the declared side uses %q",
		owner.Name, rel.Field, target.Name, back.Field, rel.MappedBy, expected, actual).
		WithAggregate(agg.Name).
		WithEntity(owner.Name).
		WithContext("expected", expected).
		WithContext("declared", actual))
}

// findBackReference locates the target's relationship that closes the
// edge back to the owner. A field matching mappedBy wins exactly, even if
// it was synthesized earlier in the pass; otherwise the first declared
// candidate of the complement kind is returned.
func findBackReference(
	target *EntitySpec,
	ownerName string,
	kind RelationshipKind,
	mappedBy string,
) *RelationshipSpec {
	var fallback *RelationshipSpec
	for _, r := range target.Relationships {
		if r.Kind != kind || r.Target != ownerName {
			continue
		}
		if r.Field == mappedBy {
			return r
		}
		if fallback == nil && !r.IsInverse {
			fallback = r
		}
	}
	return fallback
}

// deriveFieldName names an unnamed association after its target: the
// camelCase target name for to-one kinds, its plural for to-many kinds.
func deriveFieldName(rel *RelationshipSpec) string {
	switch rel.Kind {
	case OneToMany, ManyToMany:
		return naming.Camel(naming.Plural(rel.Target))
	default:
		return naming.Camel(rel.Target)
	}
}
