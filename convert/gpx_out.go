package convert

import (
	"fmt"
	"strings"

	"pwf/schema"
)

const gpxPrelude = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="PWF Converters" xmlns="http://www.topografix.com/GPX/1/1" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://www.topografix.com/GPX/1/1 http://www.topografix.com/GPX/1/1/gpx.xsd">
`

// PWFToGPX renders every workout carrying a GPS route as a GPX 1.1 track.
// The output may legitimately hold no tracks.
func PWFToGPX(history *schema.History) (*GPXExportResult, error) {
	if history == nil {
		return nil, &MissingRequiredFieldError{Field: "history"}
	}

	var warnings []Warning
	var b strings.Builder
	b.WriteString(gpxPrelude)

	for i := range history.Workouts {
		workout := &history.Workouts[i]
		route := workoutRoute(workout)
		if route == nil {
			warnings = append(warnings, missingField("gps_route", fmt.Sprintf("workout %s has no GPS route; no track emitted", workout.Date)))
			continue
		}
		ws := writeGPXTrack(&b, workout, route)
		warnings = append(warnings, ws...)
	}

	b.WriteString("</gpx>\n")
	return &GPXExportResult{GPXXML: b.String(), Warnings: warnings}, nil
}

func workoutRoute(workout *schema.Workout) *schema.GpsRoute {
	if workout.Telemetry != nil && workout.Telemetry.GpsRoute != nil {
		return workout.Telemetry.GpsRoute
	}
	for i := range workout.SportSegments {
		seg := &workout.SportSegments[i]
		if seg.Telemetry != nil && seg.Telemetry.GpsRoute != nil {
			return seg.Telemetry.GpsRoute
		}
	}
	return nil
}

func writeGPXTrack(b *strings.Builder, workout *schema.Workout, route *schema.GpsRoute) []Warning {
	var warnings []Warning

	name := workout.Date
	if workout.Title != nil {
		name = *workout.Title
	}

	biometric := false
	for _, p := range route.Points {
		if p.HeartRate != nil || p.Power != nil || p.Cadence != nil {
			biometric = true
			break
		}
	}
	if biometric {
		warnings = append(warnings, missingField("heart_rate/power/cadence", "standard GPX has no biometric fields; samples discarded"))
	}

	b.WriteString("  <trk>\n")
	fmt.Fprintf(b, "    <name>%s</name>\n", xmlEscape(name))
	if workout.Sport != "" {
		fmt.Fprintf(b, "    <type>%s</type>\n", xmlEscape(string(workout.Sport)))
	}
	b.WriteString("    <trkseg>\n")
	for _, p := range route.Points {
		fmt.Fprintf(b, "      <trkpt lat=%q lon=%q>\n", formatFloat(p.LatitudeDeg), formatFloat(p.LongitudeDeg))
		if p.ElevationM != nil {
			fmt.Fprintf(b, "        <ele>%s</ele>\n", formatFloat(*p.ElevationM))
		}
		if p.Timestamp != nil {
			fmt.Fprintf(b, "        <time>%s</time>\n", xmlEscape(*p.Timestamp))
		}
		b.WriteString("      </trkpt>\n")
	}
	b.WriteString("    </trkseg>\n")
	b.WriteString("  </trk>\n")
	return warnings
}
