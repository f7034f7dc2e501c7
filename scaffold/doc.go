// Package scaffold writes generated project trees to disk.
//
// A Scaffolder plans the Maven layout for a resolved model, renders every
// file through the render package, and writes the result through a billy
// filesystem so tests can target an in-memory tree. Each run records a
// manifest under .hexforge/ and can optionally initialize a git repository
// holding the generated tree as its first commit.
package scaffold
