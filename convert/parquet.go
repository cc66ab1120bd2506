//go:build !js

package convert

import (
	"time"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"pwf/schema"
)

type telemetryParquetRow struct {
	WorkoutLabel string  `parquet:"name=workout_label, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TSUTCISO     string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ElapsedS     float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	HRBPM        float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	PowerW       float64 `parquet:"name=power_w, type=DOUBLE"`
	CadenceRPM   float64 `parquet:"name=cadence_rpm, type=DOUBLE"`
	SpeedMPS     float64 `parquet:"name=speed_mps, type=DOUBLE"`
	ElevationM   float64 `parquet:"name=elevation_m, type=DOUBLE"`
	Latitude     float64 `parquet:"name=latitude, type=DOUBLE"`
	Longitude    float64 `parquet:"name=longitude, type=DOUBLE"`
	DistanceM    float64 `parquet:"name=distance_m, type=DOUBLE"`
	TemperatureC float64 `parquet:"name=temperature_c, type=DOUBLE"`
}

// PWFToParquet flattens every set-level time series into a columnar Parquet
// artifact with the same row selection rules as the CSV export.
func PWFToParquet(history *schema.History) (*ParquetExportResult, error) {
	if history == nil {
		return nil, &MissingRequiredFieldError{Field: "history"}
	}

	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(telemetryParquetRow), 4)
	if err != nil {
		return nil, &SerializationError{Format: "parquet", Err: err}
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	var warnings []Warning
	anyTelemetry := false
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
				rows, skip, werr := writeParquetRows(pw, label, series)
				if werr != nil {
					_ = pw.WriteStop()
					return nil, &SerializationError{Format: "parquet", Err: werr}
				}
				if skip != "" {
					warnings = append(warnings, timeSeriesSkipped(skip))
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
		_ = pw.WriteStop()
		if !anyTelemetry {
			return nil, &InvalidDataError{Kind: "no_telemetry", Message: "history contains no telemetry"}
		}
		return nil, &InvalidDataError{Kind: "no_time_series", Message: "telemetry holds only aggregates, no time series"}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, &SerializationError{Format: "parquet", Err: err}
	}
	if err := fw.Close(); err != nil {
		return nil, &SerializationError{Format: "parquet", Err: err}
	}

	return &ParquetExportResult{
		ParquetData:       append([]byte(nil), fw.Bytes()...),
		Warnings:          warnings,
		DataPoints:        dataPoints,
		WorkoutsProcessed: workoutsProcessed,
	}, nil
}

func writeParquetRows(pw *writer.ParquetWriter, label string, series *schema.TimeSeriesData) (int, string, error) {
	n := len(series.Timestamps)
	for _, a := range series.ParallelArrays() {
		if len(a.Values) > 0 && len(a.Values) != n {
			return 0, "series " + a.Name + " in " + label + " disagrees with timestamps on length", nil
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

	at := func(values []float64, i int) float64 {
		if i < len(values) {
			return values[i]
		}
		return 0
	}

	for i := 0; i < n; i++ {
		row := telemetryParquetRow{
			WorkoutLabel: label,
			TSUTCISO:     series.Timestamps[i],
			HRBPM:        at(series.HeartRate, i),
			PowerW:       at(series.Power, i),
			CadenceRPM:   at(series.Cadence, i),
			SpeedMPS:     at(series.SpeedMPS, i),
			ElevationM:   at(series.ElevationM, i),
			Latitude:     at(series.Latitude, i),
			Longitude:    at(series.Longitude, i),
			DistanceM:    at(series.DistanceM, i),
			TemperatureC: at(series.TemperatureC, i),
		}
		if haveStart {
			if t, err := time.Parse(time.RFC3339, series.Timestamps[i]); err == nil {
				row.ElapsedS = t.Sub(start).Seconds()
			}
		}
		if err := pw.Write(row); err != nil {
			return i, "", err
		}
	}
	return n, "", nil
}
