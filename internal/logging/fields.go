package logging

// Keys of structured log fields.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run settings.
	FieldLanguage = "language"
	FieldMode     = "mode"
	FieldWrite    = "write"
	FieldUnsafe   = "unsafe"
	FieldJobs     = "jobs"

	// Run statistics.
	FieldFilesProcessed   = "files_processed"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"

	FieldVersion = "version"

	// Fix passes.
	FieldPass    = "pass"
	FieldActions = "actions"
	FieldSize    = "size"

	FieldRules = "rules"
	FieldRule  = "rule"
)
