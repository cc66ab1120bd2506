package convert

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"pwf/schema"
)

// csvHeader is the fixed wide header: the label and time columns followed by
// every sample series in wire order.
func csvHeader() []string {
	header := []string{"workout_label", "timestamp", "elapsed_sec"}
	empty := &schema.TimeSeriesData{}
	for _, series := range empty.ParallelArrays() {
		header = append(header, series.Name)
	}
	return header
}

// PWFToCSV flattens every set-level time series in the history into one wide
// CSV. Series whose parallel arrays disagree on length are skipped with a
// warning and contribute no rows.
func PWFToCSV(history *schema.History) (*CSVExportResult, error) {
	if history == nil {
		return nil, &MissingRequiredFieldError{Field: "history"}
	}

	var warnings []Warning
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader()); err != nil {
		return nil, &CsvWriteError{Err: err}
	}

	anyTelemetry := false
	skippedSeries := 0
	dataPoints := 0
	workoutsProcessed := 0

	for wi := range history.Workouts {
		workout := &history.Workouts[wi]
		if workout.Telemetry != nil {
			anyTelemetry = true
		}
		contributed := false
		for ei := range workout.Exercises {
			exercise := &workout.Exercises[ei]
			for si := range exercise.Sets {
				set := &exercise.Sets[si]
				if set.Telemetry == nil {
					continue
				}
				anyTelemetry = true
				series := set.Telemetry.TimeSeries
				if series == nil {
					continue
				}
				label := workoutLabel(workout, exercise, set)
				rows, skip := writeTimeSeriesRows(w, label, series)
				if skip != "" {
					warnings = append(warnings, timeSeriesSkipped(skip))
					skippedSeries++
					continue
				}
				dataPoints += rows
				contributed = contributed || rows > 0
			}
		}
		if contributed {
			workoutsProcessed++
		}
	}

	if dataPoints == 0 {
		switch {
		case !anyTelemetry:
			return nil, &InvalidDataError{Kind: "no_telemetry", Message: "history contains no telemetry"}
		case skippedSeries > 0:
			return nil, &InvalidDataError{Kind: "all_series_invalid", Message: "every time series was skipped for inconsistent array lengths"}
		default:
			return nil, &InvalidDataError{Kind: "no_time_series", Message: "telemetry holds only aggregates, no time series"}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &CsvWriteError{Err: err}
	}

	return &CSVExportResult{
		CSVData:           buf.String(),
		Warnings:          warnings,
		DataPoints:        dataPoints,
		WorkoutsProcessed: workoutsProcessed,
	}, nil
}

// workoutLabel derives the row label: workout id, falling back to title,
// falling back to "workout", joined with the exercise name and set number.
func workoutLabel(workout *schema.Workout, exercise *schema.CompletedExercise, set *schema.CompletedSet) string {
	base := "workout"
	switch {
	case workout.ID != nil && *workout.ID != "":
		base = *workout.ID
	case workout.Title != nil && *workout.Title != "":
		base = *workout.Title
	}
	setPart := ""
	if set.SetNumber != nil {
		setPart = fmt.Sprintf("%d", *set.SetNumber)
	}
	return fmt.Sprintf("%s-%s-set%s", base, exercise.Name, setPart)
}

// writeTimeSeriesRows emits one row per timestamp. A non-empty skip reason
// means the series failed length validation and wrote nothing.
func writeTimeSeriesRows(w *csv.Writer, label string, series *schema.TimeSeriesData) (int, string) {
	n := len(series.Timestamps)
	arrays := series.ParallelArrays()
	for _, a := range arrays {
		if len(a.Values) > 0 && len(a.Values) != n {
			return 0, fmt.Sprintf("series %q in %s has %d samples for %d timestamps", a.Name, label, len(a.Values), n)
		}
	}

	var start time.Time
	haveStart := false
	if n > 0 {
		if t, err := time.Parse(time.RFC3339, series.Timestamps[0]); err == nil {
			start = t
			haveStart = true
		}
	}

	rows := 0
	for i := 0; i < n; i++ {
		row := make([]string, 0, 3+len(arrays))
		row = append(row, label, series.Timestamps[i])

		elapsed := ""
		if haveStart {
			if t, err := time.Parse(time.RFC3339, series.Timestamps[i]); err == nil {
				elapsed = formatFloat(t.Sub(start).Seconds())
			}
		}
		row = append(row, elapsed)

		for _, a := range arrays {
			if i < len(a.Values) {
				row = append(row, formatFloat(a.Values[i]))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return rows, fmt.Sprintf("write row for %s: %v", label, err)
		}
		rows++
	}
	return rows, ""
}
