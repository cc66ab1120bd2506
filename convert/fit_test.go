package convert

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/tormoder/fit"

	"pwf/validate"
)

func encodeFIT(t *testing.T, file *fit.File) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}

func newActivityFile(t *testing.T) (*fit.File, *fit.ActivityFile) {
	t.Helper()
	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}
	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}
	return file, activity
}

func buildCyclingFIT(t *testing.T) []byte {
	t.Helper()
	file, activity := newActivityFile(t)

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		record := fit.NewRecordMsg()
		record.Timestamp = start.Add(time.Duration(i) * time.Second)
		record.PositionLat = fit.NewLatitudeDegrees(47.6062 + float64(i)*0.0001)
		record.PositionLong = fit.NewLongitudeDegrees(-122.3321 + float64(i)*0.0001)
		record.HeartRate = uint8(130 + i)
		record.Power = uint16(240 + i)
		record.Cadence = 90
		activity.Records = append(activity.Records, record)
	}

	lap := fit.NewLapMsg()
	lap.Timestamp = start.Add(5 * time.Second)
	lap.StartTime = start
	lap.TotalTimerTime = 5000
	lap.TotalDistance = 4500
	activity.Laps = append(activity.Laps, lap)

	session := fit.NewSessionMsg()
	session.Timestamp = start.Add(5 * time.Second)
	session.StartTime = start
	session.Sport = fit.SportCycling
	session.TotalElapsedTime = 5000
	session.TotalDistance = 4500
	session.AvgHeartRate = 132
	session.MaxHeartRate = 140
	session.AvgPower = 242
	session.MaxPower = 250
	session.TotalCalories = 12
	activity.Sessions = append(activity.Sessions, session)

	return encodeFIT(t, file)
}

func buildSwimmingFIT(t *testing.T) []byte {
	t.Helper()
	file, activity := newActivityFile(t)

	start := time.Date(2026, 4, 2, 7, 0, 0, 0, time.UTC)

	durations := []uint32{45000, 50000}
	strokes := []uint16{30, 32}
	for i := range durations {
		length := fit.NewLengthMsg()
		length.Timestamp = start.Add(time.Duration(i) * time.Minute)
		length.TotalTimerTime = durations[i]
		length.TotalStrokes = strokes[i]
		length.SwimStroke = fit.SwimStrokeFreestyle
		length.LengthType = fit.LengthTypeActive
		activity.Lengths = append(activity.Lengths, length)
	}

	session := fit.NewSessionMsg()
	session.Timestamp = start.Add(2 * time.Minute)
	session.StartTime = start
	session.Sport = fit.SportSwimming
	session.TotalElapsedTime = 95000
	session.PoolLength = 2500
	activity.Sessions = append(activity.Sessions, session)

	return encodeFIT(t, file)
}

func TestFITToPWFCycling(t *testing.T) {
	data := buildCyclingFIT(t)

	result, err := FITToPWF(data, false)
	if err != nil {
		t.Fatalf("FITToPWF error: %v", err)
	}
	if len(result.History.Workouts) != 1 {
		t.Fatalf("expected one workout, got %d", len(result.History.Workouts))
	}
	workout := result.History.Workouts[0]
	if workout.Sport != "cycling" {
		t.Fatalf("unexpected sport %q", workout.Sport)
	}
	if workout.Date != "2026-03-14" {
		t.Fatalf("unexpected date %q", workout.Date)
	}
	if workout.DurationSec == nil || *workout.DurationSec != 5 {
		t.Fatalf("expected duration 5s, got %v", workout.DurationSec)
	}
	if workout.Telemetry == nil || workout.Telemetry.HRAvg == nil || *workout.Telemetry.HRAvg != 132 {
		t.Fatalf("expected hr_avg 132, got %+v", workout.Telemetry)
	}
	route := workout.Telemetry.GpsRoute
	if route == nil {
		t.Fatal("expected a GPS route")
	}
	if len(route.Points) != 5 {
		t.Fatalf("expected 5 route points, got %d", len(route.Points))
	}
	if route.TotalDistanceM == nil || *route.TotalDistanceM != 45 {
		t.Fatalf("expected session distance 45m preferred, got %v", route.TotalDistanceM)
	}
	if len(workout.Exercises) != 1 || workout.Exercises[0].Name != "Activity" {
		t.Fatalf("expected one synthetic Activity exercise, got %+v", workout.Exercises)
	}
	if len(workout.Exercises[0].Sets) != 1 {
		t.Fatalf("expected one set per lap, got %d", len(workout.Exercises[0].Sets))
	}

	hr := validate.History(result.PWFYAML)
	if !hr.Valid {
		t.Fatalf("conversion output must validate, got errors %+v", hr.Errors)
	}
}

func TestFITToPWFSwimming(t *testing.T) {
	data := buildSwimmingFIT(t)

	result, err := FITToPWF(data, false)
	if err != nil {
		t.Fatalf("FITToPWF error: %v", err)
	}
	if len(result.History.Workouts) != 1 {
		t.Fatalf("expected one workout, got %d", len(result.History.Workouts))
	}
	exercise := result.History.Workouts[0].Exercises[0]
	if exercise.PoolConfig == nil || exercise.PoolConfig.LengthM != 25 || exercise.PoolConfig.Unit != "meters" {
		t.Fatalf("expected 25m pool, got %+v", exercise.PoolConfig)
	}
	swim := exercise.Sets[0].Swimming
	if swim == nil {
		t.Fatal("expected swimming data on the first set")
	}
	if len(swim.Lengths) != 2 {
		t.Fatalf("expected 2 lengths, got %d", len(swim.Lengths))
	}
	if *swim.Lengths[0].Swolf != 75 || *swim.Lengths[1].Swolf != 82 {
		t.Fatalf("unexpected SWOLFs %v/%v", *swim.Lengths[0].Swolf, *swim.Lengths[1].Swolf)
	}
	if swim.AvgSwolf == nil || *swim.AvgSwolf != 78 {
		t.Fatalf("expected average SWOLF 78, got %v", swim.AvgSwolf)
	}
	if swim.ActiveLengths == nil || *swim.ActiveLengths != 2 {
		t.Fatalf("expected 2 active lengths, got %v", swim.ActiveLengths)
	}

	hr := validate.History(result.PWFYAML)
	if !hr.Valid {
		t.Fatalf("conversion output must validate, got errors %+v", hr.Errors)
	}
}

func TestFITToPWFNoSessions(t *testing.T) {
	file, activity := newActivityFile(t)
	record := fit.NewRecordMsg()
	record.Timestamp = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	record.HeartRate = 120
	activity.Records = append(activity.Records, record)
	data := encodeFIT(t, file)

	result, err := FITToPWF(data, false)
	if err != nil {
		t.Fatalf("FITToPWF error: %v", err)
	}
	if len(result.History.Workouts) != 0 {
		t.Fatalf("expected no workouts, got %d", len(result.History.Workouts))
	}
	found := false
	for _, w := range result.Warnings {
		if w.Kind == WarnDataQualityIssue {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a data quality warning, got %v", result.Warnings)
	}

	hr := validate.History(result.PWFYAML)
	if !hr.Valid {
		t.Fatalf("empty conversion output must still validate, got %+v", hr.Errors)
	}
}

func TestFITToPWFSummaryOnly(t *testing.T) {
	data := buildCyclingFIT(t)

	result, err := FITToPWF(data, true)
	if err != nil {
		t.Fatalf("FITToPWF error: %v", err)
	}
	workout := result.History.Workouts[0]
	if workout.Telemetry == nil || workout.Telemetry.HRAvg == nil {
		t.Fatal("summary mode must keep aggregates")
	}
	if workout.Telemetry.GpsRoute != nil {
		t.Fatal("summary mode must not build a GPS route")
	}
	if workout.Exercises[0].Sets[0].Telemetry != nil {
		t.Fatal("summary mode must not build time series")
	}
}

func TestFITToPWFDeterministic(t *testing.T) {
	data := buildCyclingFIT(t)

	first, err := FITToPWF(data, false)
	if err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	second, err := FITToPWF(data, false)
	if err != nil {
		t.Fatalf("second conversion: %v", err)
	}
	if !bytes.Equal(first.PWFYAML, second.PWFYAML) {
		t.Fatal("conversion output must be byte-for-byte identical across runs")
	}
}

func buildTriathlonFIT(t *testing.T) []byte {
	t.Helper()
	file, activity := newActivityFile(t)

	start := time.Date(2026, 6, 7, 8, 0, 0, 0, time.UTC)
	legs := []struct {
		sport    fit.Sport
		duration time.Duration
		distance uint32
	}{
		{fit.SportSwimming, 30 * time.Minute, 150000},
		{fit.SportCycling, 60 * time.Minute, 4000000},
		{fit.SportRunning, 45 * time.Minute, 1000000},
	}

	legStart := start
	for _, leg := range legs {
		session := fit.NewSessionMsg()
		session.StartTime = legStart
		session.Timestamp = legStart.Add(leg.duration)
		session.Sport = leg.sport
		session.TotalElapsedTime = uint32(leg.duration / time.Millisecond)
		session.TotalDistance = leg.distance
		activity.Sessions = append(activity.Sessions, session)
		legStart = legStart.Add(leg.duration)
	}

	return encodeFIT(t, file)
}

func TestFITToPWFMultiSport(t *testing.T) {
	data := buildTriathlonFIT(t)

	result, err := FITToPWF(data, false)
	if err != nil {
		t.Fatalf("FITToPWF error: %v", err)
	}
	if len(result.History.Workouts) != 1 {
		t.Fatalf("expected one merged workout, got %d", len(result.History.Workouts))
	}
	workout := result.History.Workouts[0]
	if len(workout.SportSegments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(workout.SportSegments))
	}
	for i, seg := range workout.SportSegments {
		if seg.SegmentIndex != i {
			t.Fatalf("segment %d has index %d", i, seg.SegmentIndex)
		}
	}
	wantSports := []string{"swimming", "cycling", "running"}
	for i, want := range wantSports {
		if string(workout.SportSegments[i].Sport) != want {
			t.Fatalf("segment %d sport %q, want %q", i, workout.SportSegments[i].Sport, want)
		}
	}
	first := workout.SportSegments[0]
	if first.Transition == nil || first.Transition.FromSport != "swimming" || first.Transition.ToSport != "cycling" {
		t.Fatalf("unexpected first transition %+v", first.Transition)
	}
	if workout.SportSegments[2].Transition != nil {
		t.Fatal("final segment must carry no transition")
	}
	if len(workout.Exercises) != 3 {
		t.Fatalf("expected one exercise per leg, got %d", len(workout.Exercises))
	}

	hr := validate.History(result.PWFYAML)
	if !hr.Valid {
		t.Fatalf("conversion output must validate, got %+v", hr.Errors)
	}
}

func TestFITToPWFRejectsGarbage(t *testing.T) {
	if _, err := FITToPWF([]byte("not a fit file at all"), false); err == nil {
		t.Fatal("expected an error on malformed input")
	}
}
