// Package blueprint loads domain blueprint documents from YAML sources.
//
// A blueprint document is the authored form of a domain module: aggregates,
// entities, fields, relationships, value objects, and enums, together with
// the schema version it was written against. Loading validates the document
// against the embedded CUE schema, decodes it strictly, and gates it on
// schema version compatibility. The loaded Document converts to a
// model.ModuleSpec for resolution.
package blueprint
