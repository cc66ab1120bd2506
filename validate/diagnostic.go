// Package validate implements the PWF Plan and History validators. Every rule
// accumulates into an ordered diagnostic list; no rule ever halts the walk.
package validate

import (
	"fmt"
	"time"

	"pwf/schema"
)

// Severity grades a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one validation finding. Path is a dotted document path such
// as cycle.days[2].exercises[0].group. Code, when set, is one of the stable
// PWF-P### / PWF-H### identifiers.
type Diagnostic struct {
	Path     string   `json:"path"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
}

// PlanResult is the outcome of validating a Plan document.
// Valid is true exactly when Errors is empty; Plan and Statistics are
// populated only for valid documents.
type PlanResult struct {
	Valid      bool            `json:"valid"`
	Plan       *schema.Plan    `json:"plan,omitempty"`
	Errors     []Diagnostic    `json:"errors"`
	Warnings   []Diagnostic    `json:"warnings"`
	Statistics *PlanStatistics `json:"statistics,omitempty"`
}

// PlanStatistics summarizes an error-free plan.
type PlanStatistics struct {
	TotalDays      int      `json:"total_days"`
	TotalExercises int      `json:"total_exercises"`
	StrengthCount  int      `json:"strength_count"`
	CountdownCount int      `json:"countdown_count"`
	StopwatchCount int      `json:"stopwatch_count"`
	IntervalCount  int      `json:"interval_count"`
	Equipment      []string `json:"equipment,omitempty"`
}

// HistoryResult is the outcome of validating a History document.
type HistoryResult struct {
	Valid      bool               `json:"valid"`
	History    *schema.History    `json:"history,omitempty"`
	Errors     []Diagnostic       `json:"errors"`
	Warnings   []Diagnostic       `json:"warnings"`
	Statistics *HistoryStatistics `json:"statistics,omitempty"`
}

// HistoryStatistics summarizes an error-free history.
type HistoryStatistics struct {
	TotalWorkouts        int     `json:"total_workouts"`
	TotalExercises       int     `json:"total_exercises"`
	TotalSets            int     `json:"total_sets"`
	TotalVolumeKG        float64 `json:"total_volume_kg"`
	FirstDate            string  `json:"first_date,omitempty"`
	LastDate             string  `json:"last_date,omitempty"`
	PersonalRecordCount  int     `json:"personal_record_count"`
	BodyMeasurementCount int     `json:"body_measurement_count"`
	SportSegmentCount    int     `json:"sport_segment_count"`
}

// LBToKG converts pounds to kilograms.
const LBToKG = 0.45359237

// collector accumulates diagnostics in document walk order.
type collector struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

func (c *collector) errorf(path, code, format string, args ...any) {
	c.errors = append(c.errors, Diagnostic{
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
		Code:     code,
	})
}

func (c *collector) warnf(path, code, format string, args ...any) {
	c.warnings = append(c.warnings, Diagnostic{
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityWarning,
		Code:     code,
	})
}

// parseTimestamp accepts ISO-8601 datetimes with an explicit timezone.
func parseTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999Z07:00", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}
