package model

import (
	"github.com/hexforge/hexforge/diag"
	"github.com/hexforge/hexforge/naming"
)

// RelationshipKind enumerates the association kinds an entity can declare.
type RelationshipKind string

const (
	// OneToMany associates one owning entity with many target entities.
	OneToMany RelationshipKind = "OneToMany"
	// ManyToOne associates many owning entities with one target entity.
	ManyToOne RelationshipKind = "ManyToOne"
	// OneToOne associates one owning entity with one target entity.
	OneToOne RelationshipKind = "OneToOne"
	// ManyToMany associates many owning entities with many target entities.
	ManyToMany RelationshipKind = "ManyToMany"
)

// Valid reports whether the kind is one of the supported association kinds.
func (k RelationshipKind) Valid() bool {
	switch k {
	case OneToMany, ManyToOne, OneToOne, ManyToMany:
		return true
	default:
		return false
	}
}

// complement returns the kind of the back-reference that closes a
// bidirectional association, and whether the kind supports one.
func (k RelationshipKind) complement() (RelationshipKind, bool) {
	switch k {
	case OneToMany:
		return ManyToOne, true
	case OneToOne:
		return OneToOne, true
	default:
		return "", false
	}
}

// FetchStrategy controls how an association is loaded.
type FetchStrategy string

const (
	// FetchLazy loads the association on first access.
	FetchLazy FetchStrategy = "LAZY"
	// FetchEager loads the association together with its owner.
	FetchEager FetchStrategy = "EAGER"
)

// Valid reports whether the strategy is a supported fetch strategy.
func (f FetchStrategy) Valid() bool {
	return f == FetchLazy || f == FetchEager
}

// CascadeType enumerates the persistence operations that cascade across an
// association.
type CascadeType string

const (
	CascadeAll     CascadeType = "ALL"
	CascadePersist CascadeType = "PERSIST"
	CascadeMerge   CascadeType = "MERGE"
	CascadeRemove  CascadeType = "REMOVE"
	CascadeRefresh CascadeType = "REFRESH"
	CascadeDetach  CascadeType = "DETACH"
)

// Valid reports whether the cascade type is supported.
func (c CascadeType) Valid() bool {
	switch c {
	case CascadeAll, CascadePersist, CascadeMerge, CascadeRemove, CascadeRefresh, CascadeDetach:
		return true
	default:
		return false
	}
}

// IdentityStrategy describes how identifier values are generated for an
// entity, derived from the declared type of its id field.
type IdentityStrategy string

const (
	// IdentityUUID generates string identifiers as UUIDs.
	IdentityUUID IdentityStrategy = "UUID"
	// IdentitySequence generates integer identifiers from a database sequence.
	IdentitySequence IdentityStrategy = "SEQUENCE"
)

// TypeClassification buckets a declared field type after resolution.
type TypeClassification string

const (
	// ClassScalar marks plain scalar types such as String or Long.
	ClassScalar TypeClassification = "scalar"
	// ClassTemporal marks date and time types.
	ClassTemporal TypeClassification = "temporal"
	// ClassDecimal marks arbitrary-precision decimal types.
	ClassDecimal TypeClassification = "decimal"
	// ClassValueObject marks references to a value object declared in the
	// same aggregate.
	ClassValueObject TypeClassification = "value-object"
	// ClassEnum marks references to an enum declared in the same module.
	ClassEnum TypeClassification = "enum"
	// ClassEntity marks references to an entity, reachable only through
	// relationships, never through field declarations.
	ClassEntity TypeClassification = "entity"
	// ClassCollection marks parametrized collections of any non-collection
	// classification.
	ClassCollection TypeClassification = "collection"
)

// TypeRef is the resolved form of a declared type string.
type TypeRef struct {
	// Name is the canonical type name: the keyword for scalars, temporals,
	// and decimals, the PascalCase name for value-object and enum
	// references, and the container name for collections.
	Name string `json:"name" yaml:"name"`
	// Class is the resolved classification of the type.
	Class TypeClassification `json:"class" yaml:"class"`
	// Element is the element type of a collection, nil otherwise.
	Element *TypeRef `json:"element,omitempty" yaml:"element,omitempty"`
}

// JavaType renders the reference as a Java type expression.
func (t *TypeRef) JavaType() string {
	if t == nil {
		return ""
	}
	if t.Class == ClassCollection && t.Element != nil {
		return t.Name + "<" + t.Element.JavaType() + ">"
	}
	return t.Name
}

// FieldSpec describes one declared field of an entity or value object.
type FieldSpec struct {
	// Name is the field name, canonicalized to camelCase during resolution.
	Name string `json:"name" yaml:"name"`
	// Type is the declared type string exactly as authored.
	Type string `json:"type" yaml:"type"`
	// Resolved is the classification of Type, filled during resolution.
	Resolved *TypeRef `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	// Validations carries validation annotations as opaque strings. They
	// are passed through to generated code, never interpreted.
	Validations []string `json:"validations,omitempty" yaml:"validations,omitempty"`
	// ReadOnly excludes the field from command projections.
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	// Hidden excludes the field from command and response projections.
	Hidden bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// RelationshipSpec describes one declared or synthesized association.
type RelationshipSpec struct {
	// Kind is the association kind.
	Kind RelationshipKind `json:"kind" yaml:"kind"`
	// Field is the name of the association field on the owning entity.
	// When left empty it is derived from the target name during resolution.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Target names the target entity. It must be declared in the same
	// aggregate.
	Target string `json:"target" yaml:"target"`
	// MappedBy names the back-reference field on the target entity for
	// bidirectional OneToMany and OneToOne associations.
	MappedBy string `json:"mappedBy,omitempty" yaml:"mappedBy,omitempty"`
	// JoinColumn overrides the foreign-key column name. When empty, the
	// column is derived from the association field name.
	JoinColumn string `json:"joinColumn,omitempty" yaml:"joinColumn,omitempty"`
	// Cascade lists the operations that cascade across the association.
	Cascade []CascadeType `json:"cascade,omitempty" yaml:"cascade,omitempty"`
	// Fetch is the loading strategy, defaulted to lazy during resolution.
	Fetch FetchStrategy `json:"fetch,omitempty" yaml:"fetch,omitempty"`
	// IsInverse marks the navigation-only side of a bidirectional
	// association. It is set by the resolver, never authored.
	IsInverse bool `json:"isInverse,omitempty" yaml:"isInverse,omitempty"`
}

// EnrichedRelationship is one node in the nested payload tree computed for
// an entity's forward one-to-many associations.
type EnrichedRelationship struct {
	// Target is the canonical name of the target entity.
	Target string `json:"target" yaml:"target"`
	// Field is the association field name on the owning entity.
	Field string `json:"field" yaml:"field"`
	// Fields are the target's projectable fields, excluding identity and
	// audit fields.
	Fields []*FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Children are the target's own enriched associations.
	Children []*EnrichedRelationship `json:"children,omitempty" yaml:"children,omitempty"`
}

// EntitySpec describes one entity of an aggregate.
type EntitySpec struct {
	// Name is the entity name, canonicalized to PascalCase during resolution.
	Name string `json:"name" yaml:"name"`
	// Table is the relational table name. When empty it defaults to the
	// snake_case plural of the entity name.
	Table string `json:"table,omitempty" yaml:"table,omitempty"`
	// Root marks the aggregate root. Exactly one entity per aggregate
	// carries it.
	Root bool `json:"root,omitempty" yaml:"root,omitempty"`
	// Audit adds created/updated timestamp columns to the generated entity.
	Audit bool `json:"audit,omitempty" yaml:"audit,omitempty"`
	// TrackUser adds created-by/updated-by columns to the generated entity.
	TrackUser bool `json:"trackUser,omitempty" yaml:"trackUser,omitempty"`
	// Fields is the ordered field list. The first field must be the id.
	Fields []*FieldSpec `json:"fields" yaml:"fields"`
	// Relationships lists declared associations plus the inverses
	// synthesized during resolution.
	Relationships []*RelationshipSpec `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	// Identity is the generation strategy derived from the id field type.
	Identity IdentityStrategy `json:"identity,omitempty" yaml:"identity,omitempty"`
	// Imports is the computed, lexicographically sorted set of type
	// references the generated entity needs.
	Imports []string `json:"imports,omitempty" yaml:"imports,omitempty"`
	// Enrichment is the nested payload tree of forward one-to-many
	// associations.
	Enrichment []*EnrichedRelationship `json:"enrichment,omitempty" yaml:"enrichment,omitempty"`
}

// IdentityField returns the entity's id field, or nil when the entity
// declares no fields.
func (e *EntitySpec) IdentityField() *FieldSpec {
	if len(e.Fields) == 0 {
		return nil
	}
	return e.Fields[0]
}

// auditFieldNames are the column-backed fields implied by the Audit and
// TrackUser flags. Explicit declarations of these names are excluded from
// projections.
var auditFieldNames = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
	"createdBy": {},
	"updatedBy": {},
}

// ProjectableFields returns the fields that participate in command and
// response projections: everything except the identity field, audit
// fields, and fields flagged read-only or hidden.
func (e *EntitySpec) ProjectableFields() []*FieldSpec {
	var out []*FieldSpec
	for i, f := range e.Fields {
		if i == 0 && f.Name == "id" {
			continue
		}
		if _, isAudit := auditFieldNames[f.Name]; isAudit {
			continue
		}
		if f.ReadOnly || f.Hidden {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ForwardRelationships returns the entity's owning-side associations,
// excluding synthesized and normalized inverses.
func (e *EntitySpec) ForwardRelationships() []*RelationshipSpec {
	var out []*RelationshipSpec
	for _, r := range e.Relationships {
		if !r.IsInverse {
			out = append(out, r)
		}
	}
	return out
}

// ValueObjectSpec describes an immutable, identity-less composite type
// embedded within entities of the owning aggregate.
type ValueObjectSpec struct {
	// Name is the value object name, canonicalized to PascalCase.
	Name string `json:"name" yaml:"name"`
	// Fields is the ordered field list.
	Fields []*FieldSpec `json:"fields" yaml:"fields"`
	// Imports is the computed import set for the generated type.
	Imports []string `json:"imports,omitempty" yaml:"imports,omitempty"`
}

// EnumSpec describes an enumeration. Enums are declared inside an
// aggregate but shared across every aggregate of the module.
type EnumSpec struct {
	// Name is the enum name, canonicalized to PascalCase.
	Name string `json:"name" yaml:"name"`
	// Values is the ordered value list, canonicalized to UPPER_SNAKE_CASE.
	Values []string `json:"values" yaml:"values"`
}

// AggregateSpec describes one aggregate: a root entity, its secondary
// entities, and the value objects and enums declared with them.
type AggregateSpec struct {
	// Name is the aggregate name, canonicalized to PascalCase.
	Name string `json:"name" yaml:"name"`
	// Table overrides the root entity's table name.
	Table string `json:"table,omitempty" yaml:"table,omitempty"`
	// Audit applies the audit flag to every entity of the aggregate.
	Audit bool `json:"audit,omitempty" yaml:"audit,omitempty"`
	// Entities is the entity list. Exactly one entry is marked Root.
	Entities []*EntitySpec `json:"entities" yaml:"entities"`
	// ValueObjects lists the value objects declared by the aggregate.
	ValueObjects []*ValueObjectSpec `json:"valueObjects,omitempty" yaml:"valueObjects,omitempty"`
	// Enums lists the enums declared by the aggregate. Their scope is the
	// whole module.
	Enums []*EnumSpec `json:"enums,omitempty" yaml:"enums,omitempty"`
}

// Root returns the aggregate's root entity, or nil before validation has
// established that exactly one exists.
func (a *AggregateSpec) Root() *EntitySpec {
	for _, e := range a.Entities {
		if e.Root {
			return e
		}
	}
	return nil
}

// Secondaries returns the aggregate's non-root entities in declaration order.
func (a *AggregateSpec) Secondaries() []*EntitySpec {
	var out []*EntitySpec
	for _, e := range a.Entities {
		if !e.Root {
			out = append(out, e)
		}
	}
	return out
}

// entityIndex returns the aggregate's entities keyed by canonical name.
func (a *AggregateSpec) entityIndex() map[string]*EntitySpec {
	index := make(map[string]*EntitySpec, len(a.Entities))
	for _, e := range a.Entities {
		index[naming.Pascal(e.Name)] = e
	}
	return index
}

// passOrder returns the aggregate's entities with the root first and the
// secondary entities following in declaration order.
func (a *AggregateSpec) passOrder() []*EntitySpec {
	out := make([]*EntitySpec, 0, len(a.Entities))
	if root := a.Root(); root != nil {
		out = append(out, root)
	}
	out = append(out, a.Secondaries()...)
	return out
}

// ModuleSpec is the raw, in-memory form of a domain blueprint: the unit a
// single resolution pass consumes. Loading a blueprint document from disk
// into a ModuleSpec is the blueprint package's concern.
type ModuleSpec struct {
	// Name is the module name.
	Name string `json:"name" yaml:"name"`
	// BasePackage is the root Java package generated code lives under.
	BasePackage string `json:"basePackage" yaml:"basePackage"`
	// Aggregates lists the module's aggregates in declaration order.
	Aggregates []*AggregateSpec `json:"aggregates" yaml:"aggregates"`
}

// ResolvedModel is the output of a resolution pass: every aggregate that
// validated cleanly, with relationships closed under inversion, types
// classified, imports computed, and payload trees enriched. It is created
// fresh per invocation and never cached.
type ResolvedModel struct {
	// Module is the module name.
	Module string `json:"module" yaml:"module"`
	// BasePackage is the root Java package generated code lives under.
	BasePackage string `json:"basePackage" yaml:"basePackage"`
	// Aggregates are the cleanly resolved aggregates in declaration order.
	// Aggregates that failed validation are absent.
	Aggregates []*AggregateSpec `json:"aggregates" yaml:"aggregates"`
	// Enums is the module-wide enum registry, sorted by name.
	Enums []*EnumSpec `json:"enums,omitempty" yaml:"enums,omitempty"`

	report *diag.Report
}

// Diagnostics returns the report accumulated during resolution: structural
// errors for failed aggregates and non-fatal enrichment and consistency
// findings for resolved ones.
func (m *ResolvedModel) Diagnostics() *diag.Report {
	return m.report
}

// ModelPackage returns the Java package generated domain types live under.
func (m *ResolvedModel) ModelPackage() string {
	return naming.JavaPackage(m.BasePackage, "domain", "model")
}
