package blueprint

// Document is the decoded form of a blueprint YAML file. It mirrors the
// authored structure exactly; canonicalization and semantic validation
// happen later, during resolution.
type Document struct {
	// Version is the schema version the document declares.
	Version string `yaml:"version"`
	// Module is the module name.
	Module string `yaml:"module"`
	// BasePackage is the root Java package generated code lives under.
	BasePackage string `yaml:"basePackage"`
	// Aggregates lists the module's aggregates in declaration order.
	Aggregates []*AggregateDoc `yaml:"aggregates"`

	// Source is the path or name the document was loaded from.
	Source string `yaml:"-"`
	// Digest is the sha256 digest of the raw document bytes.
	Digest string `yaml:"-"`
}

// AggregateDoc is one authored aggregate.
type AggregateDoc struct {
	Name         string            `yaml:"name"`
	Table        string            `yaml:"table,omitempty"`
	Audit        bool              `yaml:"audit,omitempty"`
	Entities     []*EntityDoc      `yaml:"entities"`
	ValueObjects []*ValueObjectDoc `yaml:"valueObjects,omitempty"`
	Enums        []*EnumDoc        `yaml:"enums,omitempty"`
}

// EntityDoc is one authored entity.
type EntityDoc struct {
	Name          string             `yaml:"name"`
	Table         string             `yaml:"table,omitempty"`
	Root          bool               `yaml:"root,omitempty"`
	Audit         bool               `yaml:"audit,omitempty"`
	TrackUser     bool               `yaml:"trackUser,omitempty"`
	Fields        []*FieldDoc        `yaml:"fields"`
	Relationships []*RelationshipDoc `yaml:"relationships,omitempty"`
}

// FieldDoc is one authored field of an entity or value object.
type FieldDoc struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Validations []string `yaml:"validations,omitempty"`
	ReadOnly    bool     `yaml:"readOnly,omitempty"`
	Hidden      bool     `yaml:"hidden,omitempty"`
}

// RelationshipDoc is one authored association. The inverse side of a
// bidirectional association is never authored; it is synthesized during
// resolution, which is why no isInverse key exists here.
type RelationshipDoc struct {
	Kind       string   `yaml:"kind"`
	Field      string   `yaml:"field,omitempty"`
	Target     string   `yaml:"target"`
	MappedBy   string   `yaml:"mappedBy,omitempty"`
	JoinColumn string   `yaml:"joinColumn,omitempty"`
	Cascade    []string `yaml:"cascade,omitempty"`
	Fetch      string   `yaml:"fetch,omitempty"`
}

// ValueObjectDoc is one authored value object.
type ValueObjectDoc struct {
	Name   string      `yaml:"name"`
	Fields []*FieldDoc `yaml:"fields"`
}

// EnumDoc is one authored enumeration.
type EnumDoc struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}
