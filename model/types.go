package model

import (
	"fmt"
	"strings"

	"github.com/hexforge/hexforge/diag"
	"github.com/hexforge/hexforge/naming"
)

// scalarKeywords are the plain scalar types a field can declare.
var scalarKeywords = map[string]struct{}{
	"String":  {},
	"Integer": {},
	"Long":    {},
	"Double":  {},
	"Boolean": {},
}

// temporalKeywords are the date and time types a field can declare, mapped
// to the import each one requires.
var temporalKeywords = map[string]string{
	"LocalDate":     "java.time.LocalDate",
	"LocalDateTime": "java.time.LocalDateTime",
	"Instant":       "java.time.Instant",
}

const (
	decimalKeyword = "BigDecimal"
	decimalImport  = "java.math.BigDecimal"

	collectionKeyword = "List"
	collectionImport  = "java.util.List"
)

// classifyType resolves a declared type string. Precedence: a value object
// declared in the aggregate, an enum declared in the module, a
// scalar/temporal/decimal keyword, then a List of any of those. Anything
// else is an unresolved type.
func classifyType(declared string, vos map[string]*ValueObjectSpec, enums EnumRegistry) (*TypeRef, error) {
	trimmed := strings.TrimSpace(declared)

	if vo, ok := vos[naming.Pascal(trimmed)]; ok {
		return &TypeRef{Name: vo.Name, Class: ClassValueObject}, nil
	}
	if en, ok := enums.Lookup(trimmed); ok {
		return &TypeRef{Name: en.Name, Class: ClassEnum}, nil
	}
	if _, ok := scalarKeywords[trimmed]; ok {
		return &TypeRef{Name: trimmed, Class: ClassScalar}, nil
	}
	if _, ok := temporalKeywords[trimmed]; ok {
		return &TypeRef{Name: trimmed, Class: ClassTemporal}, nil
	}
	if trimmed == decimalKeyword {
		return &TypeRef{Name: trimmed, Class: ClassDecimal}, nil
	}

	if inner, ok := collectionElement(trimmed); ok {
		element, err := classifyType(inner, vos, enums)
		if err != nil {
			return nil, err
		}
		if element.Class == ClassCollection {
			return nil, fmt.Errorf("nested collections are not supported: %q", declared)
		}
		return &TypeRef{Name: collectionKeyword, Class: ClassCollection, Element: element}, nil
	}

	return nil, fmt.Errorf(
		"type %q matches no declared value object, enum, or supported primitive", declared)
}

// collectionElement extracts X from List<X>.
func collectionElement(declared string) (string, bool) {
	if !strings.HasPrefix(declared, collectionKeyword+"<") || !strings.HasSuffix(declared, ">") {
		return "", false
	}
	inner := declared[len(collectionKeyword)+1 : len(declared)-1]
	return strings.TrimSpace(inner), true
}

// classifyAggregate resolves the declared type of every entity and
// value-object field and derives each entity's identity strategy. Failures
// are recorded as diagnostics; classification continues so one pass
// reports every unresolved type.
func classifyAggregate(agg *AggregateSpec, enums EnumRegistry, report *diag.Report) {
	vos := make(map[string]*ValueObjectSpec, len(agg.ValueObjects))
	for _, vo := range agg.ValueObjects {
		vos[vo.Name] = vo
	}

	for _, e := range agg.Entities {
		for _, f := range e.Fields {
			ref, err := classifyType(f.Type, vos, enums)
			if err != nil {
				report.Add(diag.Errorf(CodeUnresolvedFieldType, "field %q: %v", f.Name, err).
					WithAggregate(agg.Name).
					WithEntity(e.Name))
				continue
			}
			f.Resolved = ref
		}
		deriveIdentity(agg, e, report)
	}

	for _, vo := range agg.ValueObjects {
		for _, f := range vo.Fields {
			ref, err := classifyType(f.Type, vos, enums)
			if err != nil {
				report.Add(diag.Errorf(CodeUnresolvedFieldType,
					"value object %q, field %q: %v", vo.Name, f.Name, err).
					WithAggregate(agg.Name))
				continue
			}
			f.Resolved = ref
		}
	}
}

// deriveIdentity maps the id field's declared type to a generation
// strategy: string identifiers are generated as UUIDs, integer identifiers
// from a database sequence.
func deriveIdentity(agg *AggregateSpec, e *EntitySpec, report *diag.Report) {
	id := e.IdentityField()
	if id == nil || id.Name != "id" || id.Resolved == nil {
		return
	}

	switch id.Resolved.Name {
	case "String":
		e.Identity = IdentityUUID
	case "Integer", "Long":
		e.Identity = IdentitySequence
	default:
		report.Add(diag.Errorf(CodeUnsupportedIdentityType,
			"id field type %q maps to no identity strategy, use String, Integer, or Long",
			id.Type).
			WithAggregate(agg.Name).
			WithEntity(e.Name))
	}
}
