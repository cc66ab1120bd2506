package convert

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"pwf/schema"
)

type gpxDocument struct {
	XMLName  xml.Name     `xml:"gpx"`
	Metadata *gpxMetadata `xml:"metadata"`
	Tracks   []gpxTrack   `xml:"trk"`
}

type gpxMetadata struct {
	Name        string `xml:"name"`
	Description string `xml:"desc"`
	Keywords    string `xml:"keywords"`
	Time        string `xml:"time"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Type     string       `xml:"type"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele"`
	Time      string   `xml:"time"`
}

// maxPlausibleSpeedMPS bounds the implied speed between consecutive points
// less than a minute apart. Faster pairs are reported, not dropped.
const maxPlausibleSpeedMPS = 200.0

// GPXToPWF converts a GPX document into a PWF History document. Each track
// becomes one workout holding a single "GPS Activity" exercise.
func GPXToPWF(data []byte, summaryOnly bool) (*Result, error) {
	var doc gpxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: "gpx", Err: err}
	}

	var warnings []Warning
	history := &schema.History{
		HistoryVersion: 2,
		ExportedAt:     strPtr(gpxExportTimestamp(&doc)),
		ExportSource: &schema.ExportSource{
			AppName: strPtr("PWF Converters"),
		},
		Workouts: []schema.Workout{},
	}

	for _, track := range doc.Tracks {
		workout, ws := buildGPXWorkout(track, doc.Metadata, summaryOnly)
		warnings = append(warnings, ws...)
		if workout != nil {
			history.Workouts = append(history.Workouts, *workout)
		}
	}

	return finishHistory(history, warnings)
}

func gpxExportTimestamp(doc *gpxDocument) string {
	latest := time.Time{}
	if doc.Metadata != nil {
		if t, err := time.Parse(time.RFC3339, doc.Metadata.Time); err == nil {
			latest = t
		}
	}
	for _, track := range doc.Tracks {
		for _, seg := range track.Segments {
			for _, p := range seg.Points {
				if t, err := time.Parse(time.RFC3339, p.Time); err == nil && t.After(latest) {
					latest = t
				}
			}
		}
	}
	if latest.IsZero() {
		latest = fitEpoch
	}
	return latest.UTC().Format(time.RFC3339)
}

// inferGPXSport prefers the explicit track type, then scans metadata text
// for sport keywords.
func inferGPXSport(track gpxTrack, meta *gpxMetadata) schema.Sport {
	if s, ok := sportFromKeywords(track.Type); ok {
		return s
	}
	if meta != nil {
		for _, text := range []string{meta.Keywords, meta.Description, meta.Name} {
			if s, ok := sportFromKeywords(text); ok {
				return s
			}
		}
	}
	if s, ok := sportFromKeywords(track.Name); ok {
		return s
	}
	return schema.SportOther
}

func sportFromKeywords(text string) (schema.Sport, bool) {
	lower := strings.ToLower(text)
	switch {
	case lower == "":
		return "", false
	case strings.Contains(lower, "run"):
		return schema.SportRunning, true
	case strings.Contains(lower, "bike"), strings.Contains(lower, "cycl"):
		return schema.SportCycling, true
	case strings.Contains(lower, "hike"):
		return schema.SportHiking, true
	case strings.Contains(lower, "walk"):
		return schema.SportWalking, true
	case strings.Contains(lower, "swim"):
		return schema.SportSwimming, true
	default:
		return "", false
	}
}

func buildGPXWorkout(track gpxTrack, meta *gpxMetadata, summaryOnly bool) (*schema.Workout, []Warning) {
	var warnings []Warning

	var points []schema.GpsPoint
	var times []time.Time
	skipped := 0
	for _, seg := range track.Segments {
		for _, p := range seg.Points {
			if isNullIsland(p.Lat, p.Lon) {
				continue
			}
			point := schema.GpsPoint{LatitudeDeg: p.Lat, LongitudeDeg: p.Lon, ElevationM: p.Elevation}
			t, err := time.Parse(time.RFC3339, p.Time)
			if err != nil {
				skipped++
			} else {
				point.Timestamp = strPtr(t.UTC().Format(time.RFC3339))
				times = append(times, t.UTC())
			}
			points = append(points, point)
		}
	}
	if skipped > 0 {
		warnings = append(warnings, dataQualityIssue(fmt.Sprintf("%d track points have no timestamp and are excluded from time series", skipped)))
	}
	if len(points) == 0 {
		warnings = append(warnings, missingField("trkpt", "track has no usable positions; skipped"))
		return nil, warnings
	}

	warnings = append(warnings, gpxSpeedSanity(points)...)

	start := fitEpoch
	if len(times) > 0 {
		start = times[0]
		for _, t := range times {
			if t.Before(start) {
				start = t
			}
		}
	}
	startISO := start.Format(time.RFC3339)

	workout := &schema.Workout{
		Date:      startISO[:10],
		StartedAt: strPtr(startISO),
		Sport:     inferGPXSport(track, meta),
	}
	if track.Name != "" {
		workout.Title = strPtr(track.Name)
	}

	distance := routeDistanceM(points)
	var duration float64
	if len(times) > 1 {
		end := times[0]
		for _, t := range times {
			if t.After(end) {
				end = t
			}
		}
		duration = end.Sub(start).Seconds()
	}
	if duration > 0 {
		workout.DurationSec = f64Ptr(duration)
	}

	exercise := schema.CompletedExercise{
		ID:       strPtr("exercise-1"),
		Name:     "GPS Activity",
		Modality: schema.ModalityStopwatch,
	}
	set := schema.CompletedSet{SetNumber: intPtr(1), SetType: schema.SetWorking}
	if duration > 0 {
		set.DurationSec = f64Ptr(duration)
	}
	if distance > 0 {
		set.DistanceM = f64Ptr(distance)
	}

	telemetry := &schema.Telemetry{}
	if distance > 0 {
		telemetry.TotalDistanceKM = f64Ptr(distance / 1000)
	}

	if !summaryOnly {
		route := &schema.GpsRoute{ID: "route-1", Points: points}
		finalizeRoute(route)
		route.TotalDistanceM = f64Ptr(distance)
		telemetry.GpsRoute = route

		if series := buildGPXTimeSeries(points); series != nil {
			set.Telemetry = &schema.Telemetry{TimeSeries: series}
		}
	}

	exercise.Sets = []schema.CompletedSet{set}
	workout.Exercises = []schema.CompletedExercise{exercise}
	workout.Telemetry = telemetry
	return workout, warnings
}

// gpxSpeedSanity reports consecutive timestamped points whose implied speed
// is beyond anything a human-powered activity can reach.
func gpxSpeedSanity(points []schema.GpsPoint) []Warning {
	var warnings []Warning
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if prev.Timestamp == nil || cur.Timestamp == nil {
			continue
		}
		t0, err0 := time.Parse(time.RFC3339, *prev.Timestamp)
		t1, err1 := time.Parse(time.RFC3339, *cur.Timestamp)
		if err0 != nil || err1 != nil {
			continue
		}
		gap := t1.Sub(t0).Seconds()
		if gap <= 0 || gap >= 60 {
			continue
		}
		d := haversineM(prev.LatitudeDeg, prev.LongitudeDeg, cur.LatitudeDeg, cur.LongitudeDeg)
		if d/gap > maxPlausibleSpeedMPS {
			warnings = append(warnings, dataQualityIssue(fmt.Sprintf("implied speed %.0f m/s between points %d and %d exceeds %.0f m/s", d/gap, i-1, i, maxPlausibleSpeedMPS)))
		}
	}
	return warnings
}

func buildGPXTimeSeries(points []schema.GpsPoint) *schema.TimeSeriesData {
	ts := &schema.TimeSeriesData{}
	cumulative := 0.0
	var last *schema.GpsPoint
	for i := range points {
		p := &points[i]
		if last != nil {
			cumulative += haversineM(last.LatitudeDeg, last.LongitudeDeg, p.LatitudeDeg, p.LongitudeDeg)
		}
		last = p
		if p.Timestamp == nil {
			continue
		}
		ts.Timestamps = append(ts.Timestamps, *p.Timestamp)
		ts.Latitude = append(ts.Latitude, p.LatitudeDeg)
		ts.Longitude = append(ts.Longitude, p.LongitudeDeg)
		if p.ElevationM != nil {
			ts.ElevationM = append(ts.ElevationM, *p.ElevationM)
		} else {
			ts.ElevationM = append(ts.ElevationM, 0)
		}
		ts.DistanceM = append(ts.DistanceM, cumulative)
	}
	if len(ts.Timestamps) == 0 {
		return nil
	}
	return ts
}
