package blueprint

import "github.com/hexforge/hexforge/model"

// ModuleSpec converts the document into the resolver's input form. The
// conversion is purely structural; canonicalization, defaulting, and
// semantic validation are the resolver's job.
func (d *Document) ModuleSpec() *model.ModuleSpec {
	spec := &model.ModuleSpec{
		Name:        d.Module,
		BasePackage: d.BasePackage,
	}
	for _, agg := range d.Aggregates {
		if agg == nil {
			continue
		}
		spec.Aggregates = append(spec.Aggregates, agg.aggregateSpec())
	}
	return spec
}

func (a *AggregateDoc) aggregateSpec() *model.AggregateSpec {
	spec := &model.AggregateSpec{
		Name:  a.Name,
		Table: a.Table,
		Audit: a.Audit,
	}
	for _, e := range a.Entities {
		if e == nil {
			continue
		}
		spec.Entities = append(spec.Entities, e.entitySpec())
	}
	for _, vo := range a.ValueObjects {
		if vo == nil {
			continue
		}
		spec.ValueObjects = append(spec.ValueObjects, &model.ValueObjectSpec{
			Name:   vo.Name,
			Fields: fieldSpecs(vo.Fields),
		})
	}
	for _, en := range a.Enums {
		if en == nil {
			continue
		}
		spec.Enums = append(spec.Enums, &model.EnumSpec{
			Name:   en.Name,
			Values: append([]string(nil), en.Values...),
		})
	}
	return spec
}

func (e *EntityDoc) entitySpec() *model.EntitySpec {
	spec := &model.EntitySpec{
		Name:      e.Name,
		Table:     e.Table,
		Root:      e.Root,
		Audit:     e.Audit,
		TrackUser: e.TrackUser,
		Fields:    fieldSpecs(e.Fields),
	}
	for _, r := range e.Relationships {
		if r == nil {
			continue
		}
		spec.Relationships = append(spec.Relationships, r.relationshipSpec())
	}
	return spec
}

func (r *RelationshipDoc) relationshipSpec() *model.RelationshipSpec {
	spec := &model.RelationshipSpec{
		Kind:       model.RelationshipKind(r.Kind),
		Field:      r.Field,
		Target:     r.Target,
		MappedBy:   r.MappedBy,
		JoinColumn: r.JoinColumn,
		Fetch:      model.FetchStrategy(r.Fetch),
	}
	for _, c := range r.Cascade {
		spec.Cascade = append(spec.Cascade, model.CascadeType(c))
	}
	return spec
}

func fieldSpecs(fields []*FieldDoc) []*model.FieldSpec {
	var out []*model.FieldSpec
	for _, f := range fields {
		if f == nil {
			continue
		}
		out = append(out, &model.FieldSpec{
			Name:        f.Name,
			Type:        f.Type,
			Validations: append([]string(nil), f.Validations...),
			ReadOnly:    f.ReadOnly,
			Hidden:      f.Hidden,
		})
	}
	return out
}
