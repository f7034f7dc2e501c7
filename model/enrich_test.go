package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexforge/hexforge/diag"
)

// graph builds a normalized aggregate whose entities are linked by forward
// one-to-many edges, one per (owner, target) pair. The first entity is the
// root.
func graph(names []string, edges [][2]string) *AggregateSpec {
	agg := &AggregateSpec{Name: names[0]}
	for i, name := range names {
		agg.Entities = append(agg.Entities, &EntitySpec{
			Name: name,
			Root: i == 0,
			Fields: []*FieldSpec{
				{Name: "id", Type: "Long"},
				{Name: "label", Type: "String"},
			},
		})
	}
	index := agg.entityIndex()
	for _, edge := range edges {
		owner := index[edge[0]]
		owner.Relationships = append(owner.Relationships, &RelationshipSpec{
			Kind:   OneToMany,
			Field:  fmt.Sprintf("%s%s", edge[0], edge[1]),
			Target: edge[1],
			Fetch:  FetchLazy,
		})
	}
	return agg
}

// treeDepth measures the deepest nesting of an enrichment tree.
func treeDepth(nodes []*EnrichedRelationship) int {
	depth := 0
	for _, n := range nodes {
		if d := 1 + treeDepth(n.Children); d > depth {
			depth = d
		}
	}
	return depth
}

func TestEnrichThreeNodeCycle(t *testing.T) {
	// A -> B -> C -> A. Every walk must terminate, cutting the branch at
	// the point the cycle closes.
	agg := graph(
		[]string{"Alpha", "Beta", "Gamma"},
		[][2]string{{"Alpha", "Beta"}, {"Beta", "Gamma"}, {"Gamma", "Alpha"}},
	)

	report := diag.NewReport()
	enrichAggregate(agg, report)

	alpha := agg.Entities[0]
	require.Len(t, alpha.Enrichment, 1)
	assert.Equal(t, "Beta", alpha.Enrichment[0].Target)
	require.Len(t, alpha.Enrichment[0].Children, 1)
	assert.Equal(t, "Gamma", alpha.Enrichment[0].Children[0].Target)
	assert.Empty(t, alpha.Enrichment[0].Children[0].Children,
		"the edge back to Alpha closes the cycle and must not recurse")
	assert.Equal(t, 2, treeDepth(alpha.Enrichment), "the cycle leaves a finite tree")

	// Each of the three walks closes the cycle exactly once.
	warnings := report.Warnings()
	require.Len(t, warnings, 3)
	for _, w := range warnings {
		assert.Equal(t, CodeCycleDetected, w.Code)
	}
	assert.Equal(t, "Gamma", warnings[0].Entity,
		"the diagnostic names the entity whose edge closed the cycle")
	assert.Equal(t, "Alpha", warnings[0].Context["target"])
	assert.False(t, report.HasErrors(), "a cycle is a warning, not a failure")
}

func TestEnrichSelfCycle(t *testing.T) {
	agg := graph([]string{"Node"}, [][2]string{{"Node", "Node"}})

	report := diag.NewReport()
	enrichAggregate(agg, report)

	assert.Empty(t, agg.Entities[0].Enrichment,
		"a self-edge closes the cycle before the first node is built")
	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, CodeCycleDetected, report.Warnings()[0].Code)
}

func TestEnrichDepthCeiling(t *testing.T) {
	// A strict chain two entities longer than the ceiling. The walk from
	// the head must stop at maxEnrichDepth and record the cut.
	names := []string{"L1", "L2", "L3", "L4", "L5", "L6", "L7"}
	var edges [][2]string
	for i := 0; i < len(names)-1; i++ {
		edges = append(edges, [2]string{names[i], names[i+1]})
	}
	agg := graph(names, edges)

	report := diag.NewReport()
	enrichAggregate(agg, report)

	head := agg.Entities[0]
	assert.Equal(t, maxEnrichDepth, treeDepth(head.Enrichment),
		"the tree must stop exactly at the ceiling")

	var cuts []diag.Diagnostic
	for _, w := range report.Warnings() {
		if w.Code == CodeMaxDepthReached {
			cuts = append(cuts, w)
		}
	}
	require.NotEmpty(t, cuts, "the chain exceeds the ceiling, so a cut must be recorded")
	assert.Equal(t, "L6", cuts[0].Entity,
		"the first cut happens where the walk from the head runs out of depth")
	assert.False(t, report.HasErrors())
}

func TestEnrichAcyclicDepthMatchesGraph(t *testing.T) {
	// Root -> Branch -> Leaf is two levels deep; enrichment must not
	// exceed that, and a clean walk records nothing.
	agg := graph(
		[]string{"Root", "Branch", "Leaf"},
		[][2]string{{"Root", "Branch"}, {"Branch", "Leaf"}},
	)

	report := diag.NewReport()
	enrichAggregate(agg, report)

	assert.Equal(t, 2, treeDepth(agg.Entities[0].Enrichment))
	assert.Equal(t, 1, treeDepth(agg.Entities[1].Enrichment))
	assert.Empty(t, agg.Entities[2].Enrichment,
		"an entity with no forward one-to-many edges enriches to an empty tree")
	assert.Zero(t, report.Len(), "an acyclic graph within the ceiling is diagnostic-free")
}

func TestEnrichDiamondVisitsBothArms(t *testing.T) {
	// Top -> Left -> Bottom and Top -> Right -> Bottom. The visited set is
	// path-local, so Bottom appears under both arms.
	agg := graph(
		[]string{"Top", "Left", "Right", "Bottom"},
		[][2]string{{"Top", "Left"}, {"Top", "Right"}, {"Left", "Bottom"}, {"Right", "Bottom"}},
	)

	report := diag.NewReport()
	enrichAggregate(agg, report)

	top := agg.Entities[0]
	require.Len(t, top.Enrichment, 2)
	for _, arm := range top.Enrichment {
		require.Len(t, arm.Children, 1, "each arm reaches Bottom independently")
		assert.Equal(t, "Bottom", arm.Children[0].Target)
	}
	assert.Zero(t, report.Len(), "a diamond is not a cycle")
}

func TestEnrichFollowsOnlyForwardToManyEdges(t *testing.T) {
	agg := graph([]string{"Order", "OrderItem"}, nil)
	order := agg.Entities[0]
	item := agg.Entities[1]
	order.Relationships = []*RelationshipSpec{
		{Kind: OneToMany, Field: "items", Target: "OrderItem", MappedBy: "order", Fetch: FetchLazy},
		{Kind: OneToOne, Field: "receipt", Target: "OrderItem", Fetch: FetchLazy},
	}
	item.Relationships = []*RelationshipSpec{
		// Synthesized inverses never contribute nodes.
		{Kind: ManyToOne, Field: "order", Target: "Order", Fetch: FetchLazy, IsInverse: true},
	}

	report := diag.NewReport()
	enrichAggregate(agg, report)

	require.Len(t, order.Enrichment, 1, "only the one-to-many edge is followed")
	assert.Equal(t, "items", order.Enrichment[0].Field)
	assert.Empty(t, item.Enrichment, "the inverse side contributes nothing")
	assert.Zero(t, report.Len())
}

func TestEnrichNodeCarriesProjectableFields(t *testing.T) {
	agg := graph([]string{"Order", "OrderItem"}, [][2]string{{"Order", "OrderItem"}})
	item := agg.Entities[1]
	item.Audit = true
	item.Fields = []*FieldSpec{
		{Name: "id", Type: "Long"},
		{Name: "sku", Type: "String"},
		{Name: "createdAt", Type: "Instant"},
		{Name: "internalNote", Type: "String", Hidden: true},
	}

	enrichAggregate(agg, diag.NewReport())

	node := agg.Entities[0].Enrichment[0]
	names := make([]string, 0, len(node.Fields))
	for _, f := range node.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"sku"}, names,
		"payload fields exclude identity, audit, and hidden fields")
}
