package model

import (
	"github.com/hexforge/hexforge/diag"
)

// maxEnrichDepth is the hard ceiling on nested payload trees. Traversal
// halts at this depth regardless of cycle state, so enrichment terminates
// for any relationship graph.
const maxEnrichDepth = 5

// enrichAggregate computes the nested payload tree of every entity. An
// entity with no forward one-to-many associations enriches to an empty
// tree; cycles and the depth ceiling stop individual branches with a
// diagnostic, never the whole pass.
func enrichAggregate(agg *AggregateSpec, report *diag.Report) {
	index := agg.entityIndex()
	for _, e := range agg.passOrder() {
		path := map[string]struct{}{e.Name: {}}
		e.Enrichment = enrichEntity(agg, e, index, path, 0, report)
	}
}

// enrichEntity walks the entity's forward one-to-many edges depth first.
// The path set carries the entities on the current branch only; siblings
// do not see each other's visits, so a diamond enriches both arms while a
// true cycle is cut where it closes.
func enrichEntity(
	agg *AggregateSpec,
	e *EntitySpec,
	index map[string]*EntitySpec,
	path map[string]struct{},
	depth int,
	report *diag.Report,
) []*EnrichedRelationship {
	var nodes []*EnrichedRelationship

	for _, rel := range e.Relationships {
		if rel.Kind != OneToMany || rel.IsInverse {
			continue
		}
		target := index[rel.Target]
		if target == nil {
			continue
		}

		if _, onPath := path[target.Name]; onPath {
			report.Add(diag.Warnf(CodeCycleDetected,
				"enrichment stopped: association %s.%s closes a cycle back to %q",
				e.Name, rel.Field, target.Name).
				WithAggregate(agg.Name).
				WithEntity(e.Name).
				WithContext("target", target.Name))
			continue
		}
		if depth+1 > maxEnrichDepth {
			report.Add(diag.Warnf(CodeMaxDepthReached,
				"enrichment stopped: association %s.%s exceeds the maximum nesting depth of %d",
				e.Name, rel.Field, maxEnrichDepth).
				WithAggregate(agg.Name).
				WithEntity(e.Name).
				WithContext("target", target.Name))
			continue
		}

		node := &EnrichedRelationship{
			Target: target.Name,
			Field:  rel.Field,
			Fields: target.ProjectableFields(),
		}
		path[target.Name] = struct{}{}
		node.Children = enrichEntity(agg, target, index, path, depth+1, report)
		delete(path, target.Name)

		nodes = append(nodes, node)
	}

	return nodes
}
