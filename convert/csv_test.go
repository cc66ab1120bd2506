package convert

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"pwf/schema"
)

func csvHistory() *schema.History {
	return &schema.History{
		HistoryVersion: 2,
		ExportedAt:     strPtr("2026-04-02T09:00:00Z"),
		Workouts: []schema.Workout{
			{
				ID:   strPtr("w1"),
				Date: "2026-04-01",
				Exercises: []schema.CompletedExercise{
					{
						Name:     "Ride",
						Modality: schema.ModalityStopwatch,
						Sets: []schema.CompletedSet{
							{
								SetNumber:   intPtr(1),
								DurationSec: f64Ptr(2),
								Telemetry: &schema.Telemetry{
									TimeSeries: &schema.TimeSeriesData{
										Timestamps: []string{"2026-04-01T08:00:00Z", "2026-04-01T08:00:01Z", "2026-04-01T08:00:02Z"},
										HeartRate:  []float64{120, 121, 122},
										Power:      []float64{250, 252, 255},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestPWFToCSV(t *testing.T) {
	result, err := PWFToCSV(csvHistory())
	if err != nil {
		t.Fatalf("PWFToCSV error: %v", err)
	}
	if result.DataPoints != 3 {
		t.Fatalf("expected 3 data points, got %d", result.DataPoints)
	}
	if result.WorkoutsProcessed != 1 {
		t.Fatalf("expected 1 workout processed, got %d", result.WorkoutsProcessed)
	}

	rows, err := csv.NewReader(strings.NewReader(result.CSVData)).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	header := rows[0]
	if header[0] != "workout_label" || header[1] != "timestamp" || header[2] != "elapsed_sec" {
		t.Fatalf("unexpected header prefix: %v", header[:3])
	}
	if header[3] != "heart_rate" || header[len(header)-1] != "swolf" {
		t.Fatalf("unexpected series columns: first %q last %q", header[3], header[len(header)-1])
	}

	first := rows[1]
	if first[0] != "w1-Ride-set1" {
		t.Fatalf("unexpected label %q", first[0])
	}
	if first[2] != "0" {
		t.Fatalf("expected elapsed 0 on the first row, got %q", first[2])
	}
	if rows[3][2] != "2" {
		t.Fatalf("expected elapsed 2 on the last row, got %q", rows[3][2])
	}
	if first[3] != "120" {
		t.Fatalf("expected heart_rate 120, got %q", first[3])
	}
	// cadence has no samples, so its column is empty.
	if first[5] != "" {
		t.Fatalf("expected empty cadence field, got %q", first[5])
	}
}

func TestPWFToCSVNoTelemetry(t *testing.T) {
	history := &schema.History{
		HistoryVersion: 1,
		Workouts: []schema.Workout{
			{
				Date: "2026-04-01",
				Exercises: []schema.CompletedExercise{
					{Name: "Squat", Modality: schema.ModalityStrength, Sets: []schema.CompletedSet{{Reps: intPtr(5), WeightKG: f64Ptr(100)}}},
				},
			},
		},
	}
	_, err := PWFToCSV(history)
	var invalid *InvalidDataError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDataError, got %v", err)
	}
	if invalid.Kind != "no_telemetry" {
		t.Fatalf("expected no_telemetry, got %q", invalid.Kind)
	}
}

func TestPWFToCSVOnlyAggregates(t *testing.T) {
	history := &schema.History{
		HistoryVersion: 1,
		Workouts: []schema.Workout{
			{
				Date:      "2026-04-01",
				Telemetry: &schema.Telemetry{HRAvg: f64Ptr(140)},
				Exercises: []schema.CompletedExercise{
					{Name: "Ride", Modality: schema.ModalityStopwatch, Sets: []schema.CompletedSet{{DurationSec: f64Ptr(600)}}},
				},
			},
		},
	}
	_, err := PWFToCSV(history)
	var invalid *InvalidDataError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDataError, got %v", err)
	}
	if invalid.Kind != "no_time_series" {
		t.Fatalf("expected no_time_series, got %q", invalid.Kind)
	}
}

func TestPWFToCSVSkipsMismatchedSeries(t *testing.T) {
	history := csvHistory()
	series := history.Workouts[0].Exercises[0].Sets[0].Telemetry.TimeSeries
	series.Power = []float64{250}

	_, err := PWFToCSV(history)
	var invalid *InvalidDataError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected error once the only series is skipped, got %v", err)
	}
	if invalid.Kind != "all_series_invalid" {
		t.Fatalf("skipped series are not mere aggregates, got kind %q", invalid.Kind)
	}

	// A second, consistent series keeps the export alive.
	history.Workouts[0].Exercises[0].Sets = append(history.Workouts[0].Exercises[0].Sets, schema.CompletedSet{
		SetNumber: intPtr(2),
		Telemetry: &schema.Telemetry{
			TimeSeries: &schema.TimeSeriesData{
				Timestamps: []string{"2026-04-01T08:10:00Z"},
				HeartRate:  []float64{118},
			},
		},
	})
	result, err := PWFToCSV(history)
	if err != nil {
		t.Fatalf("PWFToCSV error: %v", err)
	}
	if result.DataPoints != 1 {
		t.Fatalf("expected only the consistent series counted, got %d", result.DataPoints)
	}
	skipped := false
	for _, w := range result.Warnings {
		if w.Kind == WarnTimeSeriesSkipped {
			skipped = true
		}
	}
	if !skipped {
		t.Fatalf("expected a skip warning, got %v", result.Warnings)
	}
}
