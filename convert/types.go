// Package convert implements the PWF conversion engine: FIT, TCX and GPX
// ingest into History documents, and TCX, GPX, CSV and parquet export out of
// them. Warnings never halt a conversion; the typed errors below do.
package convert

import (
	"fmt"

	"pwf/schema"
)

// WarningKind tags a conversion warning variant.
type WarningKind string

const (
	WarnMissingField       WarningKind = "missing_field"
	WarnValueClamped       WarningKind = "value_clamped"
	WarnUnsupportedFeature WarningKind = "unsupported_feature"
	WarnTimeSeriesSkipped  WarningKind = "time_series_skipped"
	WarnDataQualityIssue   WarningKind = "data_quality_issue"
)

// Warning describes one lossy or synthesized mapping decision. Only the
// fields belonging to the variant are populated.
type Warning struct {
	Kind        WarningKind `json:"kind"`
	SourceField string      `json:"source_field,omitempty"`
	Field       string      `json:"field,omitempty"`
	Original    float64     `json:"original,omitempty"`
	Clamped     float64     `json:"clamped,omitempty"`
	Feature     string      `json:"feature,omitempty"`
	Reason      string      `json:"reason,omitempty"`
	Issue       string      `json:"issue,omitempty"`
}

func missingField(sourceField, reason string) Warning {
	return Warning{Kind: WarnMissingField, SourceField: sourceField, Reason: reason}
}

func valueClamped(field string, original, clamped float64) Warning {
	return Warning{Kind: WarnValueClamped, Field: field, Original: original, Clamped: clamped}
}

func unsupportedFeature(feature string) Warning {
	return Warning{Kind: WarnUnsupportedFeature, Feature: feature}
}

func timeSeriesSkipped(reason string) Warning {
	return Warning{Kind: WarnTimeSeriesSkipped, Reason: reason}
}

func dataQualityIssue(issue string) Warning {
	return Warning{Kind: WarnDataQualityIssue, Issue: issue}
}

// String renders a warning for log and CLI output.
func (w Warning) String() string {
	switch w.Kind {
	case WarnMissingField:
		return fmt.Sprintf("missing field %s: %s", w.SourceField, w.Reason)
	case WarnValueClamped:
		return fmt.Sprintf("value clamped %s: %.3f -> %.3f", w.Field, w.Original, w.Clamped)
	case WarnUnsupportedFeature:
		return fmt.Sprintf("unsupported feature: %s", w.Feature)
	case WarnTimeSeriesSkipped:
		return fmt.Sprintf("time series skipped: %s", w.Reason)
	case WarnDataQualityIssue:
		return fmt.Sprintf("data quality issue: %s", w.Issue)
	}
	return string(w.Kind)
}

// ParseError reports unreadable source input.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Format, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// InvalidDataError reports structurally readable input that cannot be
// converted. Kind is a stable machine key.
type InvalidDataError struct {
	Kind    string
	Message string
}

func (e *InvalidDataError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// MissingRequiredFieldError reports an absent identity field.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

// UnsupportedFormatError reports input in a shape the converter does not
// handle (e.g. a non-activity FIT file).
type UnsupportedFormatError struct {
	Format string
	Detail string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported %s input: %s", e.Format, e.Detail)
}

// SerializationError reports a failure producing the output artifact.
type SerializationError struct {
	Format string
	Err    error
}

func (e *SerializationError) Error() string { return fmt.Sprintf("serialize %s: %v", e.Format, e.Err) }
func (e *SerializationError) Unwrap() error { return e.Err }

// CsvWriteError reports a CSV emission failure.
type CsvWriteError struct {
	Err error
}

func (e *CsvWriteError) Error() string { return fmt.Sprintf("write csv: %v", e.Err) }
func (e *CsvWriteError) Unwrap() error { return e.Err }

// Result is a source-to-PWF conversion outcome.
type Result struct {
	PWFYAML  []byte          `json:"pwf_yaml"`
	History  *schema.History `json:"history"`
	Warnings []Warning       `json:"warnings"`
}

// TCXExportResult is a PWF-to-TCX outcome.
type TCXExportResult struct {
	TCXXML   string    `json:"tcx_xml"`
	Warnings []Warning `json:"warnings"`
}

// GPXExportResult is a PWF-to-GPX outcome.
type GPXExportResult struct {
	GPXXML   string    `json:"gpx_xml"`
	Warnings []Warning `json:"warnings"`
}

// CSVExportResult is a PWF-to-CSV outcome. DataPoints is the number of
// emitted sample rows across all included time-series blocks.
type CSVExportResult struct {
	CSVData           string    `json:"csv_data"`
	Warnings          []Warning `json:"warnings"`
	DataPoints        int       `json:"data_points"`
	WorkoutsProcessed int       `json:"workouts_processed"`
}

// ParquetExportResult is the columnar twin of CSVExportResult.
type ParquetExportResult struct {
	ParquetData       []byte    `json:"parquet_data"`
	Warnings          []Warning `json:"warnings"`
	DataPoints        int       `json:"data_points"`
	WorkoutsProcessed int       `json:"workouts_processed"`
}

func finishHistory(h *schema.History, warnings []Warning) (*Result, error) {
	out, err := schema.SerializeHistory(h)
	if err != nil {
		return nil, &SerializationError{Format: "yaml", Err: err}
	}
	if warnings == nil {
		warnings = []Warning{}
	}
	return &Result{PWFYAML: out, History: h, Warnings: warnings}, nil
}

func strPtr(s string) *string   { return &s }
func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool      { return &v }
