// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Configuration fields.
	FieldFlavor      = "flavor"
	FieldConfigFiles = "config_files"
	FieldStyle       = "style"

	// Highlighting fields.
	FieldLanguage = "language"
	FieldLength   = "length"
	FieldSpans    = "spans"
	FieldClass    = "class"
	FieldDetected = "detected"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
