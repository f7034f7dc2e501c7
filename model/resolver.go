package model

import (
	"sort"
	"sync"

	"github.com/hexforge/hexforge/diag"
	"github.com/hexforge/hexforge/naming"
)

// defaultMaxWorkers is the number of aggregates resolved concurrently when
// the caller does not choose one.
const defaultMaxWorkers = 5

// ResolveOptions tunes a resolution pass.
type ResolveOptions struct {
	// MaxWorkers caps how many aggregates resolve concurrently. Zero or a
	// negative value selects the default.
	MaxWorkers int
}

// applyDefaults fills unset options with their defaults.
func (o *ResolveOptions) applyDefaults() {
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = defaultMaxWorkers
	}
}

// EnumRegistry is the module-wide enum index. It is assembled once, before
// any aggregate resolves, and passed to each resolution as an immutable
// input; enum references resolve against the whole module, not the
// declaring aggregate.
type EnumRegistry map[string]*EnumSpec

// Lookup finds an enum by name in any casing.
func (r EnumRegistry) Lookup(name string) (*EnumSpec, bool) {
	en, ok := r[naming.Pascal(name)]
	return en, ok
}

// sorted returns the registered enums ordered by name.
func (r EnumRegistry) sorted() []*EnumSpec {
	out := make([]*EnumSpec, 0, len(r))
	for _, en := range r {
		out = append(out, en)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// buildEnumRegistry assembles the module-wide registry, canonicalizing
// each declaration as it is registered. A name declared twice keeps its
// first declaration and records a warning; later aggregates reference the
// first one.
func buildEnumRegistry(spec *ModuleSpec, report *diag.Report) EnumRegistry {
	registry := make(EnumRegistry)
	for _, agg := range spec.Aggregates {
		for _, en := range agg.Enums {
			key := naming.Pascal(en.Name)
			if _, exists := registry[key]; exists {
				report.Add(diag.Warnf(CodeDuplicateName,
					"enum %q is declared more than once in the module, the first declaration wins", en.Name).
					WithAggregate(agg.Name))
				continue
			}
			en.Name = key
			for i, v := range en.Values {
				en.Values[i] = naming.UpperSnake(v)
			}
			registry[key] = en
		}
	}
	return registry
}

// Resolve turns a module spec into a resolved model: aggregates are
// validated, names canonicalized, field types classified, relationship
// graphs closed under inversion, import sets computed, and payload trees
// enriched.
func Resolve(spec *ModuleSpec) (*ResolvedModel, error) {
	return ResolveWithOptions(spec, nil)
}

// ResolveWithOptions resolves the module spec with explicit options.
//
// Aggregates resolve independently and concurrently; their diagnostics are
// merged in declaration order, so the report reads the same regardless of
// scheduling. An aggregate with structural errors contributes no model at
// all, while the remaining aggregates still resolve. When any aggregate
// failed, the returned error wraps ErrValidationFailed and the returned
// model is still non-nil, carrying the clean aggregates and the full
// diagnostics report.
func ResolveWithOptions(spec *ModuleSpec, opts *ResolveOptions) (*ResolvedModel, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}

	var options ResolveOptions
	if opts != nil {
		options = *opts
	}
	options.applyDefaults()

	report := diag.NewReport()
	registry := buildEnumRegistry(spec, report)
	modelPackage := naming.JavaPackage(spec.BasePackage, "domain", "model")

	type outcome struct {
		ok     bool
		report *diag.Report
	}
	outcomes := make([]outcome, len(spec.Aggregates))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, options.MaxWorkers)
	for i, agg := range spec.Aggregates {
		semaphore <- struct{}{}
		wg.Add(1)
		go func(i int, agg *AggregateSpec) {
			defer func() {
				<-semaphore
				wg.Done()
			}()
			ok, aggReport := resolveAggregate(agg, registry, modelPackage)
			outcomes[i] = outcome{ok: ok, report: aggReport}
		}(i, agg)
	}
	wg.Wait()

	resolved := &ResolvedModel{
		Module:      spec.Name,
		BasePackage: spec.BasePackage,
		Enums:       registry.sorted(),
		report:      report,
	}
	for i, agg := range spec.Aggregates {
		report.Merge(outcomes[i].report)
		if outcomes[i].ok {
			resolved.Aggregates = append(resolved.Aggregates, agg)
		}
	}

	if report.HasErrors() {
		return resolved, &ValidationError{Report: report}
	}
	return resolved, nil
}

// resolveAggregate runs the resolution pipeline for one aggregate.
// Validation and classification findings are batched; an aggregate with
// any structural error is dropped without touching its relationship graph.
func resolveAggregate(agg *AggregateSpec, enums EnumRegistry, modelPackage string) (bool, *diag.Report) {
	report := diag.NewReport()

	validateAggregate(agg, report)
	normalizeAggregate(agg)
	classifyAggregate(agg, enums, report)
	if report.HasErrors() {
		return false, report
	}

	resolveRelationships(agg, report)
	computeAggregateImports(agg, modelPackage)
	enrichAggregate(agg, report)
	return true, report
}
