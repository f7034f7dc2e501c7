// Package model resolves a declarative domain specification into the
// internally consistent intermediate model every code-generation template
// consumes.
//
// A resolution pass takes a ModuleSpec, the in-memory form of a domain
// blueprint, and produces a ResolvedModel in which every aggregate has
// been validated, every name canonicalized, every field type classified,
// every bidirectional relationship closed under inversion, every import
// set computed, and every nested payload tree enriched. The pass is a
// pure, synchronous, in-memory transformation: the package performs no
// I/O, keeps no state between invocations, and always terminates.
//
// # Resolution Pipeline
//
// Each aggregate moves through five stages:
//
//   - Validation: structural rules such as the mandatory id field, unique
//     type names, a single root entity, and known relationship targets.
//     Violations are batched so one pass reports every problem.
//   - Classification: declared type strings resolve against the
//     aggregate's value objects, the module-wide enum registry, the
//     primitive keyword tables, and the List collection form.
//   - Relationship resolution: mappedBy declarations synthesize or
//     normalize the inverse side, so explicitly bidirectional blueprints
//     and mappedBy-only blueprints resolve to the same model.
//   - Import computation: the deduplicated, sorted union of the type
//     references each generated class needs.
//   - Enrichment: a depth-first walk of forward one-to-many edges into a
//     nested payload tree, guarded by a path-local visited set and a hard
//     depth ceiling.
//
// Aggregates resolve independently; ResolveWithOptions fans them out over
// a bounded worker pool and merges diagnostics in declaration order, so
// output and report are deterministic regardless of scheduling.
//
// # Errors and Diagnostics
//
// Structural problems are aggregate-fatal: the offending aggregate
// contributes nothing to the model, the remaining aggregates still
// resolve, and Resolve returns a ValidationError wrapping the full
// diagnostics report. Enrichment findings such as cycles and depth cuts
// are warnings on a still-usable model. Nothing in this package is
// transient or retryable.
//
// # Basic Usage
//
//	spec := &model.ModuleSpec{
//	    Name:        "billing",
//	    BasePackage: "com.acme.billing",
//	    Aggregates:  aggregates,
//	}
//
//	resolved, err := model.Resolve(spec)
//	if err != nil {
//	    for _, d := range resolved.Diagnostics().Errors() {
//	        fmt.Println(d)
//	    }
//	    return err
//	}
package model
