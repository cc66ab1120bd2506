package validate

import (
	"math"
	"testing"

	"pwf/schema"
)

func TestHistoryMinimalValid(t *testing.T) {
	doc := []byte(`history_version: 1
exported_at: "2026-03-01T10:00:00Z"
workouts:
  - date: "2026-02-28"
    exercises:
      - name: Bench Press
        modality: strength
        sets:
          - set_number: 1
            reps: 8
            weight_kg: 80
          - set_number: 2
            reps: 8
            weight_kg: 80
`)
	result := History(doc)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", codes(result.Errors))
	}
	stats := result.Statistics
	if stats == nil {
		t.Fatal("expected statistics")
	}
	if stats.TotalWorkouts != 1 || stats.TotalExercises != 1 || stats.TotalSets != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.TotalVolumeKG != 1280 {
		t.Fatalf("expected volume 1280, got %v", stats.TotalVolumeKG)
	}
	if stats.FirstDate != "2026-02-28" || stats.LastDate != "2026-02-28" {
		t.Fatalf("unexpected date range: %+v", stats)
	}
}

func TestHistoryMissingExportedAt(t *testing.T) {
	doc := []byte(`history_version: 1
workouts: []
`)
	result := History(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-H002") {
		t.Fatalf("expected PWF-H002, got %v", codes(result.Errors))
	}
}

func TestHistoryMultiSportValid(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-05-10T14:00:00Z"
workouts:
  - date: "2026-05-10"
    exercises:
      - id: swim-1
        name: Swim leg
        modality: stopwatch
        sport: swimming
        sets:
          - set_number: 1
            duration_sec: 1800
      - id: bike-1
        name: Bike leg
        modality: stopwatch
        sport: cycling
        sets:
          - set_number: 1
            duration_sec: 3600
      - id: run-1
        name: Run leg
        modality: stopwatch
        sport: running
        sets:
          - set_number: 1
            duration_sec: 2400
    sport_segments:
      - sport: swimming
        segment_index: 0
        exercise_ids: [swim-1]
        transition:
          from_sport: swimming
          to_sport: cycling
      - sport: cycling
        segment_index: 1
        exercise_ids: [bike-1]
        transition:
          from_sport: cycling
          to_sport: running
      - sport: running
        segment_index: 2
        exercise_ids: [run-1]
`)
	result := History(doc)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", codes(result.Errors))
	}
	if result.Statistics.TotalExercises != 3 || result.Statistics.SportSegmentCount != 3 {
		t.Fatalf("unexpected statistics: %+v", result.Statistics)
	}
}

func TestHistorySegmentSequenceAndTransition(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-05-10T14:00:00Z"
workouts:
  - date: "2026-05-10"
    exercises:
      - name: Leg
        modality: stopwatch
        sets:
          - duration_sec: 600
    sport_segments:
      - sport: swimming
        segment_index: 0
        transition:
          from_sport: swimming
          to_sport: running
      - sport: cycling
        segment_index: 2
`)
	result := History(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-H841") {
		t.Fatalf("expected PWF-H841 for the index gap, got %v", codes(result.Errors))
	}
	if !hasCode(result.Errors, "PWF-H861") {
		t.Fatalf("expected PWF-H861 for the transition mismatch, got %v", codes(result.Errors))
	}
}

func TestHistoryTimeSeriesLengthMismatch(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-04-02T09:00:00Z"
workouts:
  - date: "2026-04-01"
    exercises:
      - name: Ride
        modality: stopwatch
        sets:
          - set_number: 1
            duration_sec: 120
            telemetry:
              time_series:
                timestamps:
                  - "2026-04-01T08:00:00Z"
                  - "2026-04-01T08:00:01Z"
                  - "2026-04-01T08:00:02Z"
                heart_rate: [120, 121]
`)
	result := History(doc)
	if !result.Valid {
		t.Fatalf("mismatch should be a warning, got errors %v", codes(result.Errors))
	}
	if !hasCode(result.Warnings, "PWF-H821") {
		t.Fatalf("expected PWF-H821, got %v", codes(result.Warnings))
	}
}

func TestHistoryNegativeElevationWarns(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-04-02T09:00:00Z"
workouts:
  - date: "2026-04-01"
    telemetry:
      gps_route:
        id: route-1
        points:
          - latitude_deg: 47.6062
            longitude_deg: -122.3321
            elevation_m: -12
    exercises:
      - name: Ride
        modality: stopwatch
        sets:
          - set_number: 1
            duration_sec: 120
            telemetry:
              time_series:
                timestamps:
                  - "2026-04-01T08:00:00Z"
                  - "2026-04-01T08:00:01Z"
                elevation_m: [55, -3]
`)
	result := History(doc)
	if !result.Valid {
		t.Fatalf("range findings are warnings, got errors %v", codes(result.Errors))
	}
	hits := 0
	for _, d := range result.Warnings {
		if d.Code == "PWF-H705" {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("expected PWF-H705 for the route point and the series, got %v", codes(result.Warnings))
	}
}

func TestHistorySwolfTolerance(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-06-01T07:00:00Z"
workouts:
  - date: "2026-06-01"
    exercises:
      - name: Swim
        modality: stopwatch
        pool_config:
          length: 25
          unit: meters
        sets:
          - set_number: 1
            duration_sec: 95
            swimming:
              lengths:
                - length_number: 1
                  duration_sec: 45.4
                  stroke: freestyle
                  stroke_count: 30
                  swolf: 76
                - length_number: 2
                  duration_sec: 50
                  stroke: freestyle
                  stroke_count: 32
                  swolf: 90
`)
	result := History(doc)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", codes(result.Errors))
	}
	// 76 is within tolerance of 30+45; 90 is not within tolerance of 32+50.
	count := 0
	for _, w := range result.Warnings {
		if w.Code == "PWF-H801" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one PWF-H801, got %d (%v)", count, codes(result.Warnings))
	}
}

func TestHistoryV2FeatureOnV1(t *testing.T) {
	doc := []byte(`history_version: 1
exported_at: "2026-03-01T10:00:00Z"
workouts:
  - date: "2026-02-28"
    exercises:
      - name: Ride
        modality: stopwatch
        sets:
          - duration_sec: 60
    devices:
      - type: watch
        manufacturer: Garmin
`)
	result := History(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-H003") {
		t.Fatalf("expected PWF-H003, got %v", codes(result.Errors))
	}
}

func TestHistoryUnitsMismatch(t *testing.T) {
	doc := []byte(`history_version: 1
exported_at: "2026-03-01T10:00:00Z"
units:
  weight: lb
workouts:
  - date: "2026-02-28"
    exercises:
      - name: Squat
        modality: strength
        sets:
          - reps: 5
            weight_kg: 100
`)
	result := History(doc)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", codes(result.Errors))
	}
	if !hasCode(result.Warnings, "PWF-H601") {
		t.Fatalf("expected PWF-H601, got %v", codes(result.Warnings))
	}
}

func TestHistoryVolumeConvertsPoundOnlySets(t *testing.T) {
	doc := []byte(`history_version: 1
exported_at: "2026-03-01T10:00:00Z"
units:
  weight: lb
workouts:
  - date: "2026-02-28"
    exercises:
      - name: Squat
        modality: strength
        sets:
          - reps: 5
            weight_lb: 225
`)
	result := History(doc)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", codes(result.Errors))
	}
	want := 5 * 225 * LBToKG
	if math.Abs(result.Statistics.TotalVolumeKG-want) > 1e-9 {
		t.Fatalf("expected volume %.4f, got %.4f", want, result.Statistics.TotalVolumeKG)
	}
}

func TestHistoryGpsRangeErrors(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-03-01T10:00:00Z"
workouts:
  - date: "2026-02-28"
    exercises:
      - name: Run
        modality: stopwatch
        sets:
          - duration_sec: 600
    telemetry:
      gps_route:
        id: route-1
        points:
          - latitude_deg: 95.0
            longitude_deg: 10.0
`)
	result := History(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-H881") {
		t.Fatalf("expected PWF-H881, got %v", codes(result.Errors))
	}
}

func TestHistoryRoundTripKeepsValidity(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-03-01T10:00:00Z"
workouts:
  - date: "2026-02-28"
    started_at: "2026-02-28T06:30:00Z"
    exercises:
      - name: Row intervals
        modality: interval
        sets:
          - set_number: 1
            duration_sec: 300
            distance_meters: 1250
`)
	first := History(doc)
	if !first.Valid {
		t.Fatalf("expected valid, got %v", codes(first.Errors))
	}
	reserialized, err := schema.SerializeHistory(first.History)
	if err != nil {
		t.Fatalf("serialize history: %v", err)
	}
	second := History(reserialized)
	if !second.Valid {
		t.Fatalf("round trip lost validity: %v", codes(second.Errors))
	}
	if *first.Statistics != *second.Statistics {
		t.Fatalf("statistics changed across round trip: %+v vs %+v", first.Statistics, second.Statistics)
	}
}
