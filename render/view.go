package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hexforge/hexforge/model"
	"github.com/hexforge/hexforge/naming"
)

// Packages holds the Java package of each layer of the generated
// hexagonal project, derived from the module's base package.
type Packages struct {
	Base        string
	Model       string
	Port        string
	Service     string
	Command     string
	Response    string
	Persistence string
	Web         string
}

// PackagesFor derives the layer packages from the module's base package.
func PackagesFor(basePackage string) Packages {
	return Packages{
		Base:        basePackage,
		Model:       naming.JavaPackage(basePackage, "domain", "model"),
		Port:        naming.JavaPackage(basePackage, "domain", "port"),
		Service:     naming.JavaPackage(basePackage, "application", "service"),
		Command:     naming.JavaPackage(basePackage, "application", "command"),
		Response:    naming.JavaPackage(basePackage, "application", "response"),
		Persistence: naming.JavaPackage(basePackage, "infrastructure", "persistence"),
		Web:         naming.JavaPackage(basePackage, "infrastructure", "web"),
	}
}

// FieldView is one column-backed field prepared for entity and value-object
// templates: the Java type plus every annotation line above the declaration.
type FieldView struct {
	Name        string
	JavaType    string
	Annotations []string
}

// RelationshipView is one association field prepared for the entity
// template.
type RelationshipView struct {
	Name        string
	JavaType    string
	Annotations []string
}

// EntityData is the view for the entity template.
type EntityData struct {
	Package       string
	Imports       []string
	Name          string
	Table         string
	Identity      string
	IdType        string
	Audit         bool
	TrackUser     bool
	Fields        []FieldView
	Relationships []RelationshipView
}

// NewEntityData projects a resolved entity onto the entity template's view.
func NewEntityData(pkgs Packages, e *model.EntitySpec) *EntityData {
	data := &EntityData{
		Package:   pkgs.Model,
		Imports:   append([]string(nil), e.Imports...),
		Name:      e.Name,
		Table:     e.Table,
		Identity:  string(e.Identity),
		IdType:    idType(e),
		Audit:     e.Audit,
		TrackUser: e.TrackUser,
	}

	needsValidation := false
	for i, f := range e.Fields {
		if i == 0 && f.Name == "id" {
			continue
		}
		if flaggedAuditField(e, f.Name) {
			continue
		}
		if len(f.Validations) > 0 {
			needsValidation = true
		}
		data.Fields = append(data.Fields, fieldView(f))
	}
	for _, rel := range e.Relationships {
		data.Relationships = append(data.Relationships, relationshipView(rel))
	}
	if needsValidation {
		data.Imports = append(data.Imports, validationImport)
		sort.Strings(data.Imports)
	}
	return data
}

// ValueObjectData is the view for the value-object template.
type ValueObjectData struct {
	Package string
	Imports []string
	Name    string
	Fields  []FieldView
}

// NewValueObjectData projects a value object onto its template's view.
func NewValueObjectData(pkgs Packages, vo *model.ValueObjectSpec) *ValueObjectData {
	set := make(map[string]struct{}, len(vo.Imports)+2)
	for _, imp := range vo.Imports {
		set[imp] = struct{}{}
	}
	set["java.util.Objects"] = struct{}{}
	if hasValidations(vo.Fields) {
		set[validationImport] = struct{}{}
	}

	data := &ValueObjectData{
		Package: pkgs.Model,
		Imports: sortedSet(set),
		Name:    vo.Name,
	}
	for _, f := range vo.Fields {
		data.Fields = append(data.Fields, fieldView(f))
	}
	return data
}

// EnumData is the view for the enum template.
type EnumData struct {
	Package string
	Name    string
	Values  []string
}

// NewEnumData projects an enum onto its template's view.
func NewEnumData(pkgs Packages, en *model.EnumSpec) *EnumData {
	return &EnumData{
		Package: pkgs.Model,
		Name:    en.Name,
		Values:  append([]string(nil), en.Values...),
	}
}

func fieldView(f *model.FieldSpec) FieldView {
	v := FieldView{
		Name:     f.Name,
		JavaType: f.Resolved.JavaType(),
	}
	for _, val := range f.Validations {
		v.Annotations = append(v.Annotations, annotationText(val))
	}
	v.Annotations = append(v.Annotations, persistenceAnnotations(f)...)
	return v
}

// validationImport covers the authored validation annotations. They are
// opaque strings, so the exact constraint classes are unknown.
const validationImport = "jakarta.validation.constraints.*"

// annotationText normalizes an authored validation into annotation syntax,
// so blueprints may write either NotBlank or @NotBlank.
func annotationText(v string) string {
	if strings.HasPrefix(v, "@") {
		return v
	}
	return "@" + v
}

func hasValidations(fields []*model.FieldSpec) bool {
	for _, f := range fields {
		if len(f.Validations) > 0 {
			return true
		}
	}
	return false
}

// persistenceAnnotations derives the JPA annotations a field's resolved
// classification implies.
func persistenceAnnotations(f *model.FieldSpec) []string {
	column := fmt.Sprintf("@Column(name = %q)", naming.Snake(f.Name))
	ref := f.Resolved
	if ref == nil {
		return []string{column}
	}

	switch ref.Class {
	case model.ClassValueObject:
		return []string{"@Embedded"}
	case model.ClassEnum:
		return []string{"@Enumerated(EnumType.STRING)", column}
	case model.ClassCollection:
		annotations := []string{"@ElementCollection"}
		if ref.Element != nil && ref.Element.Class == model.ClassEnum {
			annotations = append(annotations, "@Enumerated(EnumType.STRING)")
		}
		return annotations
	default:
		return []string{column}
	}
}

func relationshipView(rel *model.RelationshipSpec) RelationshipView {
	v := RelationshipView{Name: rel.Field}

	if rel.Kind == model.OneToMany || rel.Kind == model.ManyToMany {
		v.JavaType = "List<" + rel.Target + ">"
	} else {
		v.JavaType = rel.Target
	}

	v.Annotations = append(v.Annotations, associationAnnotation(rel))
	if rel.MappedBy == "" && rel.JoinColumn != "" &&
		(rel.Kind == model.ManyToOne || rel.Kind == model.OneToOne) {
		v.Annotations = append(v.Annotations, fmt.Sprintf("@JoinColumn(name = %q)", rel.JoinColumn))
	}
	return v
}

// associationAnnotation renders the main association annotation. Which side
// carries the foreign key follows from the data: mappedBy marks the mapped
// side, a join column the owning one.
func associationAnnotation(rel *model.RelationshipSpec) string {
	var args []string
	if rel.MappedBy != "" {
		args = append(args, fmt.Sprintf("mappedBy = %q", rel.MappedBy))
	}
	if c := cascadeArg(rel.Cascade); c != "" {
		args = append(args, c)
	}
	if rel.Fetch != "" {
		args = append(args, "fetch = FetchType."+string(rel.Fetch))
	}

	name := "@" + string(rel.Kind)
	if len(args) == 0 {
		return name
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

func cascadeArg(cascade []model.CascadeType) string {
	if len(cascade) == 0 {
		return ""
	}
	if len(cascade) == 1 {
		return "cascade = CascadeType." + string(cascade[0])
	}
	parts := make([]string, len(cascade))
	for i, c := range cascade {
		parts[i] = "CascadeType." + string(c)
	}
	return "cascade = {" + strings.Join(parts, ", ") + "}"
}

// auditNames are the column-backed fields the audit and user-tracking
// flags generate. An explicit declaration under an active flag would
// collide with the generated member, so entity views skip it.
var auditNames = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
	"createdBy": {},
	"updatedBy": {},
}

func flaggedAuditField(e *model.EntitySpec, name string) bool {
	if _, ok := auditNames[name]; !ok {
		return false
	}
	switch name {
	case "createdAt", "updatedAt":
		return e.Audit
	default:
		return e.TrackUser
	}
}

func idType(e *model.EntitySpec) string {
	if id := e.IdentityField(); id != nil && id.Resolved != nil {
		return id.Resolved.JavaType()
	}
	return "String"
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
