// Package pwf is the entry point for the Portable Workout Format toolkit:
// schema validation for Plan and History YAML documents, converters between
// History and the FIT/TCX/GPX device formats, and derived CSV/Parquet views
// of telemetry.
//
// Every function is pure and synchronous. Calls share no state, so callers
// wanting parallelism drive the package from multiple goroutines.
package pwf

import (
	"pwf/convert"
	"pwf/resolve"
	"pwf/schema"
	"pwf/validate"
)

// ValidatePlan parses and validates a Plan YAML document.
func ValidatePlan(doc []byte) validate.PlanResult {
	return validate.Plan(doc)
}

// ValidateHistory parses and validates a History YAML document.
func ValidateHistory(doc []byte) validate.HistoryResult {
	return validate.History(doc)
}

// FITToPWF converts a FIT activity file into History YAML.
func FITToPWF(data []byte, summaryOnly bool) (*convert.Result, error) {
	return convert.FITToPWF(data, summaryOnly)
}

// TCXToPWF converts a TCX document into History YAML.
func TCXToPWF(data []byte, summaryOnly bool) (*convert.Result, error) {
	return convert.TCXToPWF(data, summaryOnly)
}

// GPXToPWF converts a GPX document into History YAML.
func GPXToPWF(data []byte, summaryOnly bool) (*convert.Result, error) {
	return convert.GPXToPWF(data, summaryOnly)
}

// PWFToTCX renders a History document as TCX XML.
func PWFToTCX(history *schema.History) (*convert.TCXExportResult, error) {
	return convert.PWFToTCX(history)
}

// PWFToGPX renders a History document as GPX 1.1 XML.
func PWFToGPX(history *schema.History) (*convert.GPXExportResult, error) {
	return convert.PWFToGPX(history)
}

// PWFToCSV flattens a History document's time series into one wide CSV.
func PWFToCSV(history *schema.History) (*convert.CSVExportResult, error) {
	return convert.PWFToCSV(history)
}

// ResolveExercise merges a plan exercise against the plan's exercise
// library. It returns nil when an exercise_ref does not resolve.
func ResolveExercise(ex *schema.PlanExercise, library []schema.ExerciseLibraryEntry) *resolve.ResolvedExercise {
	return resolve.Exercise(ex, library)
}
