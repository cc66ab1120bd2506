package convert

import (
	"fmt"
	"strconv"
	"strings"

	"pwf/schema"
)

const tcxPrelude = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2" xmlns:ns3="http://www.garmin.com/xmlschemas/ActivityExtension/v2" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2 http://www.garmin.com/xmlschemas/TrainingCenterDatabasev2.xsd">
`

// PWFToTCX renders a History document as Training Center Database XML.
// One Activity per workout, one Lap per exercise.
func PWFToTCX(history *schema.History) (*TCXExportResult, error) {
	if history == nil {
		return nil, &MissingRequiredFieldError{Field: "history"}
	}

	var warnings []Warning
	var b strings.Builder
	b.WriteString(tcxPrelude)
	b.WriteString("  <Activities>\n")

	for i := range history.Workouts {
		ws := writeTCXActivity(&b, &history.Workouts[i])
		warnings = append(warnings, ws...)
	}

	b.WriteString("  </Activities>\n")
	b.WriteString("</TrainingCenterDatabase>\n")

	return &TCXExportResult{TCXXML: b.String(), Warnings: warnings}, nil
}

// mapSportToTCX maps PWF sports onto the closed TCX v2 sport attribute.
func mapSportToTCX(sport schema.Sport) string {
	switch sport {
	case schema.SportRunning:
		return "Running"
	case schema.SportCycling:
		return "Biking"
	default:
		// TCX v2 only defines Running, Biking and Other.
		return "Other"
	}
}

func writeTCXActivity(b *strings.Builder, workout *schema.Workout) []Warning {
	var warnings []Warning

	if workout.Sport == schema.SportStrength {
		warnings = append(warnings, unsupportedFeature("strength workouts have no TCX sport; exported as Other"))
	}
	if len(workout.Exercises) > 1 && hasLapAggregates(workout.Telemetry) {
		warnings = append(warnings, unsupportedFeature("TCX has no workout-level aggregate scope; calories and heart-rate totals written to the first lap only"))
	}

	startISO := workoutStartISO(workout)

	fmt.Fprintf(b, "    <Activity Sport=%q>\n", mapSportToTCX(workout.Sport))
	fmt.Fprintf(b, "      <Id>%s</Id>\n", xmlEscape(startISO))

	for i := range workout.Exercises {
		writeTCXLap(b, workout, &workout.Exercises[i], startISO)
	}

	b.WriteString("    </Activity>\n")
	return warnings
}

func workoutStartISO(workout *schema.Workout) string {
	if workout.StartedAt != nil {
		return *workout.StartedAt
	}
	return workout.Date + "T00:00:00Z"
}

// hasLapAggregates reports whether the workout telemetry carries any field
// that maps onto TCX lap aggregates.
func hasLapAggregates(t *schema.Telemetry) bool {
	if t == nil {
		return false
	}
	return t.TotalCalories != nil || t.HRAvg != nil || t.HRMax != nil || t.CadenceAvg != nil
}

// writeTCXLap folds an exercise's set aggregates into a single lap. Workout
// telemetry has no scope of its own in TCX, so the aggregates and the GPS
// route are attached to the first lap only; summing lap calories over the
// activity then reproduces the workout total.
func writeTCXLap(b *strings.Builder, workout *schema.Workout, exercise *schema.CompletedExercise, startISO string) {
	var duration, distance float64
	for _, set := range exercise.Sets {
		if set.DurationSec != nil {
			duration += *set.DurationSec
		}
		if set.DistanceM != nil {
			distance += *set.DistanceM
		}
	}

	first := exercise == &workout.Exercises[0]

	fmt.Fprintf(b, "      <Lap StartTime=%q>\n", xmlEscape(startISO))
	fmt.Fprintf(b, "        <TotalTimeSeconds>%s</TotalTimeSeconds>\n", formatFloat(duration))
	fmt.Fprintf(b, "        <DistanceMeters>%s</DistanceMeters>\n", formatFloat(distance))

	if first && workout.Telemetry != nil {
		t := workout.Telemetry
		if t.TotalCalories != nil {
			fmt.Fprintf(b, "        <Calories>%d</Calories>\n", int(*t.TotalCalories))
		}
		if t.HRAvg != nil {
			fmt.Fprintf(b, "        <AverageHeartRateBpm><Value>%d</Value></AverageHeartRateBpm>\n", int(*t.HRAvg))
		}
		if t.HRMax != nil {
			fmt.Fprintf(b, "        <MaximumHeartRateBpm><Value>%d</Value></MaximumHeartRateBpm>\n", int(*t.HRMax))
		}
		if t.CadenceAvg != nil {
			fmt.Fprintf(b, "        <Cadence>%d</Cadence>\n", int(*t.CadenceAvg))
		}
	}
	b.WriteString("        <Intensity>Active</Intensity>\n")
	b.WriteString("        <TriggerMethod>Manual</TriggerMethod>\n")

	if first && workout.Telemetry != nil && workout.Telemetry.GpsRoute != nil {
		writeTCXTrack(b, workout.Telemetry.GpsRoute)
	}

	b.WriteString("      </Lap>\n")
}

func writeTCXTrack(b *strings.Builder, route *schema.GpsRoute) {
	b.WriteString("        <Track>\n")
	for _, p := range route.Points {
		b.WriteString("          <Trackpoint>\n")
		if p.Timestamp != nil {
			fmt.Fprintf(b, "            <Time>%s</Time>\n", xmlEscape(*p.Timestamp))
		}
		b.WriteString("            <Position>\n")
		fmt.Fprintf(b, "              <LatitudeDegrees>%s</LatitudeDegrees>\n", formatFloat(p.LatitudeDeg))
		fmt.Fprintf(b, "              <LongitudeDegrees>%s</LongitudeDegrees>\n", formatFloat(p.LongitudeDeg))
		b.WriteString("            </Position>\n")
		if p.ElevationM != nil {
			fmt.Fprintf(b, "            <AltitudeMeters>%s</AltitudeMeters>\n", formatFloat(*p.ElevationM))
		}
		if p.HeartRate != nil {
			fmt.Fprintf(b, "            <HeartRateBpm><Value>%d</Value></HeartRateBpm>\n", int(*p.HeartRate))
		}
		if p.Cadence != nil {
			fmt.Fprintf(b, "            <Cadence>%d</Cadence>\n", int(*p.Cadence))
		}
		if p.Power != nil || p.SpeedMPS != nil {
			b.WriteString("            <Extensions>\n")
			b.WriteString("              <ns3:TPX>\n")
			if p.SpeedMPS != nil {
				fmt.Fprintf(b, "                <ns3:Speed>%s</ns3:Speed>\n", formatFloat(*p.SpeedMPS))
			}
			if p.Power != nil {
				fmt.Fprintf(b, "                <ns3:Watts>%d</ns3:Watts>\n", int(*p.Power))
			}
			b.WriteString("              </ns3:TPX>\n")
			b.WriteString("            </Extensions>\n")
		}
		b.WriteString("          </Trackpoint>\n")
	}
	b.WriteString("        </Track>\n")
}

// xmlEscape escapes the five XML special characters. Output is built by
// string construction, so escaping is explicit here.
func xmlEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
