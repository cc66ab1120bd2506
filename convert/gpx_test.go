package convert

import (
	"strings"
	"testing"

	"pwf/schema"
	"pwf/validate"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <metadata>
    <time>2026-05-03T06:00:00Z</time>
  </metadata>
  <trk>
    <name>Morning trail run</name>
    <trkseg>
      <trkpt lat="47.6062" lon="-122.3321">
        <ele>56</ele>
        <time>2026-05-03T06:00:00Z</time>
      </trkpt>
      <trkpt lat="47.6072" lon="-122.3311">
        <ele>60</ele>
        <time>2026-05-03T06:01:00Z</time>
      </trkpt>
      <trkpt lat="47.6082" lon="-122.3301">
        <ele>58</ele>
        <time>2026-05-03T06:02:00Z</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestGPXToPWF(t *testing.T) {
	result, err := GPXToPWF([]byte(sampleGPX), false)
	if err != nil {
		t.Fatalf("GPXToPWF error: %v", err)
	}
	if len(result.History.Workouts) != 1 {
		t.Fatalf("expected one workout per track, got %d", len(result.History.Workouts))
	}
	workout := result.History.Workouts[0]
	if workout.Sport != "running" {
		t.Fatalf("expected sport inferred from the track name, got %q", workout.Sport)
	}
	if workout.Date != "2026-05-03" {
		t.Fatalf("unexpected date %q", workout.Date)
	}
	if workout.DurationSec == nil || *workout.DurationSec != 120 {
		t.Fatalf("expected 120s from timestamps, got %v", workout.DurationSec)
	}
	if len(workout.Exercises) != 1 || workout.Exercises[0].Name != "GPS Activity" {
		t.Fatalf("expected a single GPS Activity exercise, got %+v", workout.Exercises)
	}
	route := workout.Telemetry.GpsRoute
	if route == nil || len(route.Points) != 3 {
		t.Fatalf("expected a 3-point route, got %+v", route)
	}
	if route.TotalAscentM == nil || *route.TotalAscentM != 4 {
		t.Fatalf("expected 4m ascent, got %v", route.TotalAscentM)
	}
	if route.TotalDescentM == nil || *route.TotalDescentM != 2 {
		t.Fatalf("expected 2m descent, got %v", route.TotalDescentM)
	}
	if route.Bounds == nil || route.Bounds.MinLat > route.Bounds.MaxLat {
		t.Fatalf("expected ordered bounds, got %+v", route.Bounds)
	}
	set := workout.Exercises[0].Sets[0]
	if set.DistanceM == nil || *set.DistanceM <= 0 {
		t.Fatalf("expected haversine distance on the set, got %v", set.DistanceM)
	}
	if set.Telemetry == nil || set.Telemetry.TimeSeries == nil || len(set.Telemetry.TimeSeries.Timestamps) != 3 {
		t.Fatalf("expected a 3-sample time series, got %+v", set.Telemetry)
	}

	hr := validate.History(result.PWFYAML)
	if !hr.Valid {
		t.Fatalf("conversion output must validate, got %+v", hr.Errors)
	}
}

func TestGPXSportInferenceFromTrackType(t *testing.T) {
	doc := strings.Replace(sampleGPX, "<name>Morning trail run</name>", "<name>Commute</name>\n    <type>cycling</type>", 1)
	result, err := GPXToPWF([]byte(doc), false)
	if err != nil {
		t.Fatalf("GPXToPWF error: %v", err)
	}
	if result.History.Workouts[0].Sport != "cycling" {
		t.Fatalf("expected trk/type to win, got %q", result.History.Workouts[0].Sport)
	}
}

func TestGPXMissingTimestampsWarn(t *testing.T) {
	doc := strings.Replace(sampleGPX, "<time>2026-05-03T06:01:00Z</time>", "", 1)
	result, err := GPXToPWF([]byte(doc), false)
	if err != nil {
		t.Fatalf("GPXToPWF error: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if w.Kind == WarnDataQualityIssue {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a data quality warning for the missing timestamp, got %v", result.Warnings)
	}
	series := result.History.Workouts[0].Exercises[0].Sets[0].Telemetry.TimeSeries
	if len(series.Timestamps) != 2 {
		t.Fatalf("expected the untimed point excluded from the series, got %d samples", len(series.Timestamps))
	}
}

func TestGPXSummaryOnly(t *testing.T) {
	result, err := GPXToPWF([]byte(sampleGPX), true)
	if err != nil {
		t.Fatalf("GPXToPWF error: %v", err)
	}
	workout := result.History.Workouts[0]
	if workout.Telemetry.GpsRoute != nil {
		t.Fatal("summary mode must not build a route")
	}
	if workout.Telemetry.TotalDistanceKM == nil {
		t.Fatal("summary mode must keep the distance aggregate")
	}
}

func TestPWFToGPX(t *testing.T) {
	history := &schema.History{
		HistoryVersion: 2,
		Workouts: []schema.Workout{
			{
				Date:  "2026-05-03",
				Title: strPtr("Trail run"),
				Sport: schema.SportRunning,
				Telemetry: &schema.Telemetry{
					GpsRoute: &schema.GpsRoute{
						ID: "route-1",
						Points: []schema.GpsPoint{
							{LatitudeDeg: 47.6062, LongitudeDeg: -122.3321, ElevationM: f64Ptr(56), Timestamp: strPtr("2026-05-03T06:00:00Z"), HeartRate: f64Ptr(150)},
						},
					},
				},
				Exercises: []schema.CompletedExercise{
					{Name: "GPS Activity", Modality: schema.ModalityStopwatch, Sets: []schema.CompletedSet{{DurationSec: f64Ptr(120)}}},
				},
			},
			{
				Date: "2026-05-04",
				Exercises: []schema.CompletedExercise{
					{Name: "Squat", Modality: schema.ModalityStrength, Sets: []schema.CompletedSet{{Reps: intPtr(5), WeightKG: f64Ptr(100)}}},
				},
			},
		},
	}

	result, err := PWFToGPX(history)
	if err != nil {
		t.Fatalf("PWFToGPX error: %v", err)
	}
	xml := result.GPXXML
	if !strings.Contains(xml, `creator="PWF Converters"`) {
		t.Fatal("expected the PWF Converters creator string")
	}
	if !strings.Contains(xml, "<name>Trail run</name>") {
		t.Fatal("expected the workout title as track name")
	}
	if !strings.Contains(xml, "<ele>56</ele>") {
		t.Fatal("expected elevation preserved")
	}
	if strings.Contains(xml, "150") {
		t.Fatal("heart rate must not leak into standard GPX")
	}

	biometricWarned, routelessWarned := false, false
	for _, w := range result.Warnings {
		if w.Kind == WarnMissingField && strings.Contains(w.SourceField, "heart_rate") {
			biometricWarned = true
		}
		if w.Kind == WarnMissingField && w.SourceField == "gps_route" {
			routelessWarned = true
		}
	}
	if !biometricWarned {
		t.Fatalf("expected a biometric discard warning, got %v", result.Warnings)
	}
	if !routelessWarned {
		t.Fatalf("expected a warning for the workout without GPS, got %v", result.Warnings)
	}
}
