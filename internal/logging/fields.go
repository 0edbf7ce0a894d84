package logging

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldSource    = "source"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldDuration  = "duration"
	FieldWorkers   = "workers"
	FieldError     = "error"
)

// Component names used by the binaries.
const (
	ComponentReport  = "report"
	ComponentIngest  = "ingest"
	ComponentDatagen = "datagen"
	ComponentSource  = "source"
	ComponentStorage = "storage"
	ComponentGraph   = "graph"
)
