package schema

import _ "embed"

// Source contains the embedded CUE schema for blueprint documents.
// The blueprint loader validates every document against the #Blueprint
// definition in this schema before handing it to the resolver.
//
//go:embed blueprint.cue
var Source []byte
