package ir

// Version constants for the model and the toolkit.
const (
	// ModelVersion is the entity model version recorded with schema builds.
	ModelVersion = "1"

	// ToolVersion is the neoschema version.
	ToolVersion = "0.1.0"
)
