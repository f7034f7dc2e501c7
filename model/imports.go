package model

import "sort"

// computeAggregateImports fills the import set of every entity and value
// object in the aggregate. Each set is the deduplicated union of the
// imports its fields and associations require, sorted lexicographically so
// the same spec always yields byte-identical lists.
func computeAggregateImports(agg *AggregateSpec, modelPackage string) {
	for _, e := range agg.Entities {
		e.Imports = entityImports(e, modelPackage)
	}
	for _, vo := range agg.ValueObjects {
		set := make(map[string]struct{})
		addFieldImports(set, vo.Fields)
		vo.Imports = sortedImports(set)
	}
}

// entityImports collects the type references a generated entity needs:
// temporal, decimal, and collection-container imports from its fields, the
// collection container for its to-many associations, the target type of
// every owning-side association, and the timestamp type implied by the
// audit flag.
func entityImports(e *EntitySpec, modelPackage string) []string {
	set := make(map[string]struct{})
	addFieldImports(set, e.Fields)

	for _, rel := range e.Relationships {
		if rel.IsInverse {
			continue
		}
		if rel.Kind == OneToMany || rel.Kind == ManyToMany {
			set[collectionImport] = struct{}{}
		}
		set[modelPackage+"."+rel.Target] = struct{}{}
	}

	if e.Audit {
		set[temporalKeywords["Instant"]] = struct{}{}
	}

	return sortedImports(set)
}

func addFieldImports(set map[string]struct{}, fields []*FieldSpec) {
	for _, f := range fields {
		addTypeRefImports(set, f.Resolved)
	}
}

func addTypeRefImports(set map[string]struct{}, ref *TypeRef) {
	if ref == nil {
		return
	}
	switch ref.Class {
	case ClassTemporal:
		set[temporalKeywords[ref.Name]] = struct{}{}
	case ClassDecimal:
		set[decimalImport] = struct{}{}
	case ClassCollection:
		set[collectionImport] = struct{}{}
		addTypeRefImports(set, ref.Element)
	}
}

func sortedImports(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}
