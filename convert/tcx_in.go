package convert

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"pwf/schema"
)

// tcxDatabase mirrors the subset of the Training Center Database schema the
// importer reads. Parsing is tolerant: unknown elements are ignored and
// optional values stay nil.
type tcxDatabase struct {
	XMLName    xml.Name      `xml:"TrainingCenterDatabase"`
	Activities []tcxActivity `xml:"Activities>Activity"`
}

type tcxActivity struct {
	Sport string   `xml:"Sport,attr"`
	ID    string   `xml:"Id"`
	Laps  []tcxLap `xml:"Lap"`
}

type tcxLap struct {
	StartTime        string          `xml:"StartTime,attr"`
	TotalTimeSeconds *float64        `xml:"TotalTimeSeconds"`
	DistanceMeters   *float64        `xml:"DistanceMeters"`
	Calories         *float64        `xml:"Calories"`
	AverageHeartRate *tcxHeartRate   `xml:"AverageHeartRateBpm"`
	MaximumHeartRate *tcxHeartRate   `xml:"MaximumHeartRateBpm"`
	Cadence          *float64        `xml:"Cadence"`
	Tracks           []tcxTrack      `xml:"Track"`
}

type tcxHeartRate struct {
	Value float64 `xml:"Value"`
}

type tcxPosition struct {
	LatitudeDegrees  float64 `xml:"LatitudeDegrees"`
	LongitudeDegrees float64 `xml:"LongitudeDegrees"`
}

type tcxTrack struct {
	Trackpoints []tcxTrackpoint `xml:"Trackpoint"`
}

type tcxTrackpoint struct {
	Time           string        `xml:"Time"`
	Position       *tcxPosition  `xml:"Position"`
	AltitudeMeters *float64      `xml:"AltitudeMeters"`
	DistanceMeters *float64      `xml:"DistanceMeters"`
	HeartRate      *tcxHeartRate `xml:"HeartRateBpm"`
	Cadence        *float64      `xml:"Cadence"`
}

// TCXToPWF converts a TCX document into a PWF History document.
func TCXToPWF(data []byte, summaryOnly bool) (*Result, error) {
	var db tcxDatabase
	if err := xml.Unmarshal(data, &db); err != nil {
		return nil, &ParseError{Format: "tcx", Err: err}
	}

	var warnings []Warning
	history := &schema.History{
		HistoryVersion: 1,
		ExportedAt:     strPtr(tcxExportTimestamp(db.Activities)),
		ExportSource: &schema.ExportSource{
			AppName: strPtr("PWF Converters"),
		},
		Workouts: []schema.Workout{},
	}

	hasDetail := false
	for _, activity := range db.Activities {
		workout, detail, ws := buildTCXWorkout(activity, summaryOnly)
		warnings = append(warnings, ws...)
		if workout == nil {
			continue
		}
		hasDetail = hasDetail || detail
		history.Workouts = append(history.Workouts, *workout)
	}
	if hasDetail {
		history.HistoryVersion = 2
	}

	return finishHistory(history, warnings)
}

func tcxExportTimestamp(activities []tcxActivity) string {
	latest := time.Time{}
	for _, a := range activities {
		if t, err := time.Parse(time.RFC3339, a.ID); err == nil && t.After(latest) {
			latest = t
		}
		for _, lap := range a.Laps {
			if t, err := time.Parse(time.RFC3339, lap.StartTime); err == nil && t.After(latest) {
				latest = t
			}
		}
	}
	if latest.IsZero() {
		latest = fitEpoch
	}
	return latest.UTC().Format(time.RFC3339)
}

func mapTCXSport(name string) schema.Sport {
	switch strings.ToLower(name) {
	case "running":
		return schema.SportRunning
	case "biking", "cycling":
		return schema.SportCycling
	case "swimming":
		return schema.SportSwimming
	case "rowing":
		return schema.SportRowing
	default:
		return schema.SportOther
	}
}

// buildTCXWorkout returns the workout and whether it carries version 2
// content (GPS route or telemetry detail).
func buildTCXWorkout(activity tcxActivity, summaryOnly bool) (*schema.Workout, bool, []Warning) {
	var warnings []Warning

	start, err := time.Parse(time.RFC3339, activity.ID)
	if err != nil {
		for _, lap := range activity.Laps {
			if t, lerr := time.Parse(time.RFC3339, lap.StartTime); lerr == nil {
				start = t
				break
			}
		}
		if start.IsZero() {
			warnings = append(warnings, missingField("Activity.Id", "activity has no parseable timestamp; skipped"))
			return nil, false, warnings
		}
	}
	startISO := start.UTC().Format(time.RFC3339)

	workout := &schema.Workout{
		Date:      startISO[:10],
		StartedAt: strPtr(startISO),
		Sport:     mapTCXSport(activity.Sport),
	}

	if len(activity.Laps) == 0 {
		warnings = append(warnings, missingField("Lap", "activity has no laps; skipped"))
		return nil, false, warnings
	}

	var (
		totalTime    float64
		totalDist    float64
		totalCal     float64
		maxHR        float64
		hrSum        float64
		hrCount      int
		cadenceSum   float64
		cadenceCount int
		points       []schema.GpsPoint
	)

	for i, lap := range activity.Laps {
		exercise := schema.CompletedExercise{
			ID:       strPtr(fmt.Sprintf("exercise-%d", i+1)),
			Name:     fmt.Sprintf("Lap %d", i+1),
			Modality: schema.ModalityStopwatch,
		}
		set := schema.CompletedSet{SetNumber: intPtr(1), SetType: schema.SetWorking}
		if lap.TotalTimeSeconds != nil && *lap.TotalTimeSeconds > 0 {
			set.DurationSec = lap.TotalTimeSeconds
			totalTime += *lap.TotalTimeSeconds
		}
		if lap.DistanceMeters != nil && *lap.DistanceMeters > 0 {
			set.DistanceM = lap.DistanceMeters
			totalDist += *lap.DistanceMeters
		}
		exercise.Sets = []schema.CompletedSet{set}
		workout.Exercises = append(workout.Exercises, exercise)

		if lap.Calories != nil {
			totalCal += *lap.Calories
		}
		if lap.AverageHeartRate != nil && lap.AverageHeartRate.Value > 0 {
			hrSum += lap.AverageHeartRate.Value
			hrCount++
		}
		if lap.MaximumHeartRate != nil && lap.MaximumHeartRate.Value > maxHR {
			maxHR = lap.MaximumHeartRate.Value
		}
		if lap.Cadence != nil && *lap.Cadence > 0 {
			cadenceSum += *lap.Cadence
			cadenceCount++
		}

		for _, track := range lap.Tracks {
			for _, tp := range track.Trackpoints {
				if tp.Position == nil {
					continue
				}
				lat := tp.Position.LatitudeDegrees
				lon := tp.Position.LongitudeDegrees
				if isNullIsland(lat, lon) {
					continue
				}
				point := schema.GpsPoint{LatitudeDeg: lat, LongitudeDeg: lon}
				if t, terr := time.Parse(time.RFC3339, tp.Time); terr == nil {
					point.Timestamp = strPtr(t.UTC().Format(time.RFC3339))
				}
				point.ElevationM = tp.AltitudeMeters
				if tp.HeartRate != nil && tp.HeartRate.Value > 0 {
					point.HeartRate = f64Ptr(tp.HeartRate.Value)
				}
				if tp.Cadence != nil && *tp.Cadence > 0 {
					point.Cadence = tp.Cadence
				}
				points = append(points, point)
			}
		}
	}

	telemetry := &schema.Telemetry{}
	haveAggregate := false
	if hrCount > 0 {
		telemetry.HRAvg = f64Ptr(hrSum / float64(hrCount))
		haveAggregate = true
	}
	if maxHR > 0 {
		telemetry.HRMax = f64Ptr(maxHR)
		haveAggregate = true
	}
	if cadenceCount > 0 {
		telemetry.CadenceAvg = f64Ptr(cadenceSum / float64(cadenceCount))
		haveAggregate = true
	}
	if totalDist > 0 {
		telemetry.TotalDistanceKM = f64Ptr(totalDist / 1000)
		haveAggregate = true
	}
	if totalCal > 0 {
		telemetry.TotalCalories = f64Ptr(totalCal)
		haveAggregate = true
	}

	hasRoute := false
	if !summaryOnly && len(points) > 0 {
		route := &schema.GpsRoute{ID: "route-1", Points: points}
		finalizeRoute(route)
		if totalDist > 0 {
			route.TotalDistanceM = f64Ptr(totalDist)
		} else {
			route.TotalDistanceM = f64Ptr(routeDistanceM(points))
		}
		telemetry.GpsRoute = route
		haveAggregate = true
		hasRoute = true
	}

	if haveAggregate {
		workout.Telemetry = telemetry
	}
	if totalTime > 0 {
		workout.DurationSec = f64Ptr(totalTime)
	}

	return workout, hasRoute || haveAggregate, warnings
}
