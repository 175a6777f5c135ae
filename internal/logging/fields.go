package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldCommand    = "command"
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWritten    = "written"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldLexer    = "lexer"
	FieldFormat   = "format"
	FieldJobs     = "jobs"
	FieldMarkings = "markings"
	FieldConfig   = "config"

	// Scan fields.
	FieldStart     = "start"
	FieldLength    = "length"
	FieldRuns      = "runs"
	FieldLines     = "lines"
	FieldFirstLine = "first_line"
	FieldLastLine  = "last_line"
	FieldEdits     = "edits"
	FieldDuration  = "duration"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Lexer listing fields.
	FieldName   = "name"
	FieldStyles = "styles"
)
