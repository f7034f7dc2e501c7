// Package render turns a resolved domain model into generated source text.
//
// The renderer is a pure function boundary: view constructors project
// model types into template data, Render executes one embedded template
// over that data and returns the text. Output paths, filesystems, and
// write ordering are the scaffolder's concern, never this package's.
package render
