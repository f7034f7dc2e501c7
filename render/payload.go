package render

import (
	"fmt"
	"strings"

	"github.com/hexforge/hexforge/model"
	"github.com/hexforge/hexforge/naming"
)

// RecordView is one Java record declaration of a command or response file:
// its components in declaration order and, for responses, the argument
// expressions of its from factory.
type RecordView struct {
	Name       string
	Entity     string
	Components []string
	FromArgs   []string
}

// CommandData is the view for the create-command and update-command
// templates. Update commands carry flat fields only; nested record shapes
// exist on the create side, driven by the enricher's payload tree.
type CommandData struct {
	Package string
	Imports []string
	Entity  string
	Record  RecordView
	Nested  []RecordView
}

// NewCreateCommandData projects a root entity onto the create-command view.
func NewCreateCommandData(pkgs Packages, e *model.EntitySpec) *CommandData {
	set := make(map[string]struct{})

	record := RecordView{Name: "Create" + e.Name + "Command", Entity: e.Name}
	for _, f := range e.ProjectableFields() {
		record.Components = append(record.Components, component(f, true))
		addRefImport(set, pkgs.Model, f.Resolved)
		if len(f.Validations) > 0 {
			set[validationImport] = struct{}{}
		}
	}
	for _, node := range e.Enrichment {
		record.Components = append(record.Components, listComponent(node, "Payload"))
		set["java.util.List"] = struct{}{}
	}

	nested := flattenPayloads(e.Enrichment, "Payload", pkgs.Model, set, false)

	return &CommandData{
		Package: pkgs.Command,
		Imports: sortedSet(set),
		Entity:  e.Name,
		Record:  record,
		Nested:  nested,
	}
}

// NewUpdateCommandData projects a root entity onto the update-command view.
func NewUpdateCommandData(pkgs Packages, e *model.EntitySpec) *CommandData {
	set := make(map[string]struct{})

	record := RecordView{Name: "Update" + e.Name + "Command", Entity: e.Name}
	for _, f := range e.ProjectableFields() {
		record.Components = append(record.Components, component(f, true))
		addRefImport(set, pkgs.Model, f.Resolved)
		if len(f.Validations) > 0 {
			set[validationImport] = struct{}{}
		}
	}

	return &CommandData{
		Package: pkgs.Command,
		Imports: sortedSet(set),
		Entity:  e.Name,
		Record:  record,
	}
}

// ResponseData is the view for the response template.
type ResponseData struct {
	Package string
	Imports []string
	Entity  string
	Record  RecordView
	Nested  []RecordView
}

// NewResponseData projects a root entity onto the response view. Responses
// expose the identity plus every non-hidden field; audit columns surface
// when their flag is set, and nested record shapes follow the enrichment
// tree.
func NewResponseData(pkgs Packages, e *model.EntitySpec) *ResponseData {
	set := map[string]struct{}{
		pkgs.Model + "." + e.Name: {},
	}

	record := RecordView{Name: e.Name + "Response", Entity: e.Name}
	record.Components = append(record.Components, idType(e)+" id")
	record.FromArgs = append(record.FromArgs, "entity.getId()")

	for i, f := range e.Fields {
		if i == 0 && f.Name == "id" {
			continue
		}
		if _, isAudit := auditNames[f.Name]; isAudit {
			continue
		}
		if f.Hidden {
			continue
		}
		record.Components = append(record.Components, component(f, false))
		record.FromArgs = append(record.FromArgs, fieldFromArg(f))
		addRefImport(set, pkgs.Model, f.Resolved)
	}
	for _, node := range e.Enrichment {
		record.Components = append(record.Components, listComponent(node, "Response"))
		record.FromArgs = append(record.FromArgs, listFromArg(node, "Response"))
		set["java.util.List"] = struct{}{}
	}
	if e.Audit {
		record.Components = append(record.Components, "Instant createdAt", "Instant updatedAt")
		record.FromArgs = append(record.FromArgs, "entity.getCreatedAt()", "entity.getUpdatedAt()")
		set["java.time.Instant"] = struct{}{}
	}
	if e.TrackUser {
		record.Components = append(record.Components, "String createdBy", "String updatedBy")
		record.FromArgs = append(record.FromArgs, "entity.getCreatedBy()", "entity.getUpdatedBy()")
	}

	nested := flattenPayloads(e.Enrichment, "Response", pkgs.Model, set, true)

	return &ResponseData{
		Package: pkgs.Response,
		Imports: sortedSet(set),
		Entity:  e.Name,
		Record:  record,
		Nested:  nested,
	}
}

// flattenPayloads walks the payload tree in pre-order and collects one
// nested record per distinct target; when a diamond reaches the same target
// twice, the first visit decides its shape. Field-type imports are recorded
// into set as the walk goes; withFrom additionally builds the from-factory
// arguments and imports each target's entity class.
func flattenPayloads(
	nodes []*model.EnrichedRelationship,
	suffix string,
	modelPkg string,
	set map[string]struct{},
	withFrom bool,
) []RecordView {
	var out []RecordView
	seen := make(map[string]struct{})

	var walk func(nodes []*model.EnrichedRelationship)
	walk = func(nodes []*model.EnrichedRelationship) {
		for _, node := range nodes {
			if _, ok := seen[node.Target]; ok {
				continue
			}
			seen[node.Target] = struct{}{}

			record := RecordView{Name: node.Target + suffix, Entity: node.Target}
			for _, f := range node.Fields {
				record.Components = append(record.Components, component(f, !withFrom))
				if withFrom {
					record.FromArgs = append(record.FromArgs, fieldFromArg(f))
				} else if len(f.Validations) > 0 {
					set[validationImport] = struct{}{}
				}
				addRefImport(set, modelPkg, f.Resolved)
			}
			for _, child := range node.Children {
				record.Components = append(record.Components, listComponent(child, suffix))
				if withFrom {
					record.FromArgs = append(record.FromArgs, listFromArg(child, suffix))
				}
				set["java.util.List"] = struct{}{}
			}
			if withFrom {
				set[modelPkg+"."+node.Target] = struct{}{}
			}
			out = append(out, record)

			walk(node.Children)
		}
	}
	walk(nodes)
	return out
}

// component renders one record component declaration, optionally prefixed
// with the field's authored validation annotations.
func component(f *model.FieldSpec, withValidations bool) string {
	var parts []string
	if withValidations {
		for _, v := range f.Validations {
			parts = append(parts, annotationText(v))
		}
	}
	parts = append(parts, f.Resolved.JavaType(), f.Name)
	return strings.Join(parts, " ")
}

func listComponent(node *model.EnrichedRelationship, suffix string) string {
	return "List<" + node.Target + suffix + "> " + node.Field
}

func fieldFromArg(f *model.FieldSpec) string {
	return "entity.get" + naming.Pascal(f.Name) + "()"
}

func listFromArg(node *model.EnrichedRelationship, suffix string) string {
	getter := "entity.get" + naming.Pascal(node.Field) + "()"
	return fmt.Sprintf("%s == null ? List.of() : %s.stream().map(%s::from).toList()",
		getter, getter, node.Target+suffix)
}

// addRefImport records the import a resolved type needs from a file outside
// the model package.
func addRefImport(set map[string]struct{}, modelPkg string, ref *model.TypeRef) {
	if ref == nil {
		return
	}
	switch ref.Class {
	case model.ClassTemporal:
		set["java.time."+ref.Name] = struct{}{}
	case model.ClassDecimal:
		set["java.math.BigDecimal"] = struct{}{}
	case model.ClassValueObject, model.ClassEnum:
		set[modelPkg+"."+ref.Name] = struct{}{}
	case model.ClassCollection:
		set["java.util.List"] = struct{}{}
		addRefImport(set, modelPkg, ref.Element)
	}
}
