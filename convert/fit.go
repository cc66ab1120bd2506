package convert

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/tormoder/fit"

	"pwf/schema"
)

// fitEpoch is the zero point of FIT timestamps.
var fitEpoch = time.Date(1989, 12, 31, 0, 0, 0, 0, time.UTC)

// FITToPWF converts a FIT activity file into a PWF History document.
// summaryOnly suppresses GPS route and time-series construction but keeps
// every aggregate.
func FITToPWF(data []byte, summaryOnly bool) (*Result, error) {
	warnings, err := fitPreflight(data)
	if err != nil {
		return nil, &ParseError{Format: "fit", Err: err}
	}

	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: "fit", Err: err}
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, &UnsupportedFormatError{Format: "fit", Detail: "activity file expected"}
	}

	history := &schema.History{
		HistoryVersion: 2,
		ExportedAt:     strPtr(fitExportTimestamp(activity)),
		ExportSource: &schema.ExportSource{
			AppName: strPtr("PWF Converters"),
		},
		Workouts: []schema.Workout{},
	}

	if len(activity.Sessions) == 0 {
		warnings = append(warnings, dataQualityIssue("fit file contains no session records"))
		return finishHistory(history, warnings)
	}

	devices := mapDevices(activity.DeviceInfos)

	if distinctSports(activity.Sessions) > 1 {
		workout, ws := buildMultiSportWorkout(activity, devices, summaryOnly)
		warnings = append(warnings, ws...)
		history.Workouts = append(history.Workouts, *workout)
	} else {
		for i, session := range activity.Sessions {
			if session == nil {
				continue
			}
			workout, ws := buildSessionWorkout(session, activity, i, summaryOnly)
			warnings = append(warnings, ws...)
			workout.Devices = devices
			history.Workouts = append(history.Workouts, *workout)
		}
	}

	return finishHistory(history, warnings)
}

func fitExportTimestamp(activity *fit.ActivityFile) string {
	latest := time.Time{}
	for _, s := range activity.Sessions {
		if s != nil && !fitInvalidTime(s.Timestamp) && s.Timestamp.After(latest) {
			latest = s.Timestamp
		}
	}
	if latest.IsZero() {
		latest = fitEpoch
	}
	return latest.UTC().Format(time.RFC3339)
}

func fitInvalidTime(t time.Time) bool {
	return t.IsZero() || fit.IsBaseTime(t)
}

func distinctSports(sessions []*fit.SessionMsg) int {
	seen := map[schema.Sport]bool{}
	for _, s := range sessions {
		if s == nil {
			continue
		}
		sport := mapFITSport(s.Sport)
		if s.Sport == fit.SportTransition {
			continue
		}
		seen[sport] = true
	}
	return len(seen)
}

// mapFITSport maps the FIT session sport to the PWF sport tag. Transition
// legs are treated as running.
func mapFITSport(sport fit.Sport) schema.Sport {
	switch sport {
	case fit.SportRunning, fit.SportTransition:
		return schema.SportRunning
	case fit.SportCycling:
		return schema.SportCycling
	case fit.SportSwimming:
		return schema.SportSwimming
	case fit.SportRowing:
		return schema.SportRowing
	case fit.SportHiking:
		return schema.SportHiking
	case fit.SportWalking:
		return schema.SportWalking
	default:
		return schema.SportOther
	}
}

func buildSessionWorkout(session *fit.SessionMsg, activity *fit.ActivityFile, index int, summaryOnly bool) (*schema.Workout, []Warning) {
	var warnings []Warning

	workout := &schema.Workout{
		Sport: mapFITSport(session.Sport),
	}

	start := session.StartTime
	if fitInvalidTime(start) {
		start = fitEpoch
		warnings = append(warnings, missingField("session.start_time", "session has no start time; using the FIT epoch"))
	}
	startISO := start.UTC().Format(time.RFC3339)
	workout.StartedAt = strPtr(startISO)
	workout.Date = startISO[:10]

	duration := scaledUint32(session.TotalElapsedTime, 1000)
	if duration == 0 {
		duration = scaledUint32(session.TotalTimerTime, 1000)
	}
	if duration > 0 {
		workout.DurationSec = f64Ptr(duration)
	}

	laps, records, lengths := sessionMessages(session, activity)

	telemetry, ws := buildSessionTelemetry(session, records, summaryOnly)
	warnings = append(warnings, ws...)
	workout.Telemetry = telemetry

	exercise, ws := buildActivityExercise(session, laps, records, lengths, index, summaryOnly)
	warnings = append(warnings, ws...)
	workout.Exercises = []schema.CompletedExercise{*exercise}

	return workout, warnings
}

func buildMultiSportWorkout(activity *fit.ActivityFile, devices []schema.Device, summaryOnly bool) (*schema.Workout, []Warning) {
	var warnings []Warning

	first := activity.Sessions[0]
	start := first.StartTime
	if fitInvalidTime(start) {
		start = fitEpoch
	}
	startISO := start.UTC().Format(time.RFC3339)

	workout := &schema.Workout{
		Date:      startISO[:10],
		StartedAt: strPtr(startISO),
		Title:     strPtr("Multi-sport activity"),
		Devices:   devices,
	}

	total := 0.0
	for i, session := range activity.Sessions {
		if session == nil {
			continue
		}
		sport := mapFITSport(session.Sport)
		laps, records, lengths := sessionMessages(session, activity)

		exercise, ws := buildActivityExercise(session, laps, records, lengths, i, summaryOnly)
		warnings = append(warnings, ws...)
		exercise.Sport = sport
		workout.Exercises = append(workout.Exercises, *exercise)

		telemetry, ws := buildSessionTelemetry(session, records, summaryOnly)
		warnings = append(warnings, ws...)

		segIndex := len(workout.SportSegments)
		segment := schema.SportSegment{
			ID:           strPtr(fmt.Sprintf("segment-%d", segIndex)),
			Sport:        sport,
			SegmentIndex: segIndex,
			ExerciseIDs:  []string{*exercise.ID},
			Telemetry:    telemetry,
		}
		if d := scaledUint32(session.TotalElapsedTime, 1000); d > 0 {
			segment.DurationSec = f64Ptr(d)
			total += d
		}
		if d := scaledUint32(session.TotalDistance, 100); d > 0 {
			segment.DistanceM = f64Ptr(d)
		}
		workout.SportSegments = append(workout.SportSegments, segment)
	}

	// Transition legs look forward to the next segment's sport.
	for i := range workout.SportSegments {
		if i == len(workout.SportSegments)-1 {
			break
		}
		workout.SportSegments[i].Transition = &schema.Transition{
			FromSport: workout.SportSegments[i].Sport,
			ToSport:   workout.SportSegments[i+1].Sport,
		}
	}

	if total > 0 {
		workout.DurationSec = f64Ptr(total)
	}
	return workout, warnings
}

// sessionMessages selects the laps, records and lengths belonging to a
// session by timestamp window. A single-session file keeps everything.
func sessionMessages(session *fit.SessionMsg, activity *fit.ActivityFile) ([]*fit.LapMsg, []*fit.RecordMsg, []*fit.LengthMsg) {
	if len(activity.Sessions) <= 1 {
		return activity.Laps, activity.Records, activity.Lengths
	}

	start := session.StartTime
	end := session.Timestamp
	inWindow := func(t time.Time) bool {
		if fitInvalidTime(t) || fitInvalidTime(start) || fitInvalidTime(end) {
			return false
		}
		return !t.Before(start) && !t.After(end)
	}

	var laps []*fit.LapMsg
	for _, lap := range activity.Laps {
		if lap != nil && inWindow(lap.Timestamp) {
			laps = append(laps, lap)
		}
	}
	var records []*fit.RecordMsg
	for _, rec := range activity.Records {
		if rec != nil && inWindow(rec.Timestamp) {
			records = append(records, rec)
		}
	}
	var lengths []*fit.LengthMsg
	for _, length := range activity.Lengths {
		if length != nil && inWindow(length.Timestamp) {
			lengths = append(lengths, length)
		}
	}
	return laps, records, lengths
}

func buildSessionTelemetry(session *fit.SessionMsg, records []*fit.RecordMsg, summaryOnly bool) (*schema.Telemetry, []Warning) {
	var warnings []Warning
	t := &schema.Telemetry{}

	if v := validUint8(session.AvgHeartRate); v > 0 {
		t.HRAvg = f64Ptr(float64(v))
	}
	if v := validUint8(session.MaxHeartRate); v > 0 {
		t.HRMax = f64Ptr(float64(v))
	}
	if v := validUint16(session.AvgPower); v > 0 {
		t.PowerAvg = f64Ptr(float64(v))
	}
	if v := validUint16(session.MaxPower); v > 0 {
		t.PowerMax = f64Ptr(float64(v))
	}
	if v := validUint8(session.AvgCadence); v > 0 {
		t.CadenceAvg = f64Ptr(float64(v))
	}
	if d := scaledUint32(session.TotalDistance, 100); d > 0 {
		t.TotalDistanceKM = f64Ptr(d / 1000)
	}
	if v := validUint16(session.TotalCalories); v > 0 {
		t.TotalCalories = f64Ptr(float64(v))
	}

	pm := &schema.PowerMetrics{}
	havePower := false
	if v := validUint16(session.NormalizedPower); v > 0 {
		pm.NormalizedPower = f64Ptr(float64(v))
		havePower = true
	}
	if v := validUint16(session.TrainingStressScore); v > 0 {
		pm.TSS = f64Ptr(float64(v) / 10)
		havePower = true
	}
	if v := validUint16(session.IntensityFactor); v > 0 {
		pm.IntensityFactor = f64Ptr(float64(v) / 1000)
		havePower = true
	}
	if v := validUint16(session.ThresholdPower); v > 0 {
		pm.FTPWatts = f64Ptr(float64(v))
		havePower = true
	}
	if v := validUint32(session.TotalWork); v > 0 {
		pm.TotalWorkKJ = f64Ptr(float64(v) / 1000)
		havePower = true
	}
	if havePower {
		t.Power = pm
	}

	if v := validUint8(session.TotalTrainingEffect); v > 0 {
		t.Advanced = &schema.AdvancedMetrics{
			TrainingEffect: f64Ptr(float64(v) / 10),
		}
	}

	if !summaryOnly {
		route, ws := buildFITRoute(session, records)
		warnings = append(warnings, ws...)
		t.GpsRoute = route
	}

	if *t == (schema.Telemetry{}) {
		return nil, warnings
	}
	return t, warnings
}

func buildFITRoute(session *fit.SessionMsg, records []*fit.RecordMsg) (*schema.GpsRoute, []Warning) {
	route := &schema.GpsRoute{ID: "route-1"}

	for _, rec := range records {
		if rec == nil || rec.PositionLat.Invalid() || rec.PositionLong.Invalid() {
			continue
		}
		lat := rec.PositionLat.Degrees()
		lon := rec.PositionLong.Degrees()
		if isNullIsland(lat, lon) {
			continue
		}
		point := schema.GpsPoint{LatitudeDeg: lat, LongitudeDeg: lon}
		if !fitInvalidTime(rec.Timestamp) {
			point.Timestamp = strPtr(rec.Timestamp.UTC().Format(time.RFC3339))
		}
		if elev, ok := fitRecordAltitude(rec); ok {
			point.ElevationM = f64Ptr(elev)
		}
		if speed := rec.GetSpeedScaled(); isFiniteNonNegative(speed) && validUint16(rec.Speed) > 0 {
			point.SpeedMPS = f64Ptr(speed)
		}
		if v := validUint8(rec.HeartRate); v > 0 {
			point.HeartRate = f64Ptr(float64(v))
		}
		if v := validUint16(rec.Power); v > 0 {
			point.Power = f64Ptr(float64(v))
		}
		if v := validUint8(rec.Cadence); v > 0 {
			point.Cadence = f64Ptr(float64(v))
		}
		if rec.Temperature != 0x7F {
			point.TemperatureC = f64Ptr(float64(rec.Temperature))
		}
		route.Points = append(route.Points, point)
	}

	if len(route.Points) == 0 {
		return nil, nil
	}

	finalizeRoute(route)
	// The session total is the device's authoritative distance; haversine
	// over recorded points under-counts on sparse tracks.
	if d := scaledUint32(session.TotalDistance, 100); d > 0 {
		route.TotalDistanceM = f64Ptr(d)
	} else {
		route.TotalDistanceM = f64Ptr(routeDistanceM(route.Points))
	}
	return route, nil
}

func fitRecordAltitude(rec *fit.RecordMsg) (float64, bool) {
	if validUint32(rec.EnhancedAltitude) > 0 {
		if v := rec.GetEnhancedAltitudeScaled(); isFinite(v) {
			return v, true
		}
	}
	if validUint16(rec.Altitude) > 0 {
		if v := rec.GetAltitudeScaled(); isFinite(v) {
			return v, true
		}
	}
	return 0, false
}

func buildActivityExercise(session *fit.SessionMsg, laps []*fit.LapMsg, records []*fit.RecordMsg, lengths []*fit.LengthMsg, index int, summaryOnly bool) (*schema.CompletedExercise, []Warning) {
	var warnings []Warning

	exercise := &schema.CompletedExercise{
		ID:       strPtr(fmt.Sprintf("exercise-%d", index+1)),
		Name:     "Activity",
		Modality: schema.ModalityStopwatch,
	}

	for i, lap := range laps {
		if lap == nil {
			continue
		}
		set := schema.CompletedSet{
			SetNumber: intPtr(i + 1),
			SetType:   schema.SetWorking,
		}
		duration := scaledUint32(lap.TotalTimerTime, 1000)
		if duration == 0 {
			duration = scaledUint32(lap.TotalElapsedTime, 1000)
		}
		if duration > 0 {
			set.DurationSec = f64Ptr(duration)
		}
		if d := scaledUint32(lap.TotalDistance, 100); d > 0 {
			set.DistanceM = f64Ptr(d)
		}
		exercise.Sets = append(exercise.Sets, set)
	}

	if len(exercise.Sets) == 0 {
		warnings = append(warnings, missingField("lap", "no lap records; synthesized one set covering the session"))
		set := schema.CompletedSet{SetNumber: intPtr(1), SetType: schema.SetWorking}
		if d := scaledUint32(session.TotalElapsedTime, 1000); d > 0 {
			set.DurationSec = f64Ptr(d)
		}
		if d := scaledUint32(session.TotalDistance, 100); d > 0 {
			set.DistanceM = f64Ptr(d)
		}
		exercise.Sets = append(exercise.Sets, set)
	}

	if session.Sport == fit.SportSwimming && len(lengths) > 0 {
		swim, pool := buildSwimmingData(session, lengths)
		exercise.Sets[0].Swimming = swim
		exercise.PoolConfig = pool
	}

	if !summaryOnly {
		if series := buildFITTimeSeries(records); series != nil {
			if exercise.Sets[0].Telemetry == nil {
				exercise.Sets[0].Telemetry = &schema.Telemetry{}
			}
			exercise.Sets[0].Telemetry.TimeSeries = series
		}
	}

	return exercise, warnings
}

func buildSwimmingData(session *fit.SessionMsg, lengths []*fit.LengthMsg) (*schema.SwimmingSetData, *schema.PoolConfig) {
	swim := &schema.SwimmingSetData{}

	strokes := map[schema.StrokeType]bool{}
	active := 0
	swolfSum := 0.0
	swolfCount := 0

	for i, length := range lengths {
		if length == nil {
			continue
		}
		l := schema.SwimmingLength{LengthNumber: i + 1}

		duration := scaledUint32(length.TotalTimerTime, 1000)
		if duration > 0 {
			l.DurationSec = f64Ptr(duration)
		}
		if v := validUint16(length.TotalStrokes); v > 0 {
			l.StrokeCount = intPtr(int(v))
		}
		if l.StrokeCount != nil && l.DurationSec != nil {
			swolf := float64(*l.StrokeCount) + math.Floor(*l.DurationSec)
			l.Swolf = f64Ptr(swolf)
			swolfSum += swolf
			swolfCount++
		}
		l.Stroke = mapFITStroke(length.SwimStroke)
		if l.Stroke != "" {
			strokes[l.Stroke] = true
		}
		isActive := length.LengthType == fit.LengthTypeActive
		l.Active = boolPtr(isActive)
		if isActive {
			active++
		}
		swim.Lengths = append(swim.Lengths, l)
	}

	swim.TotalLengths = intPtr(len(swim.Lengths))
	swim.ActiveLengths = intPtr(active)
	if swolfCount > 0 {
		swim.AvgSwolf = f64Ptr(math.Floor(swolfSum / float64(swolfCount)))
	}
	if len(strokes) == 1 {
		for s := range strokes {
			swim.PrimaryStroke = s
		}
	}

	pool := &schema.PoolConfig{Unit: schema.PoolMeters}
	length := scaledUint16(session.PoolLength, 100)
	if length > 0 {
		pool.LengthM = length
		// Pool unit by value band: a 30-40 declared length is a yard
		// pool; everything else is read as meters.
		if length >= 30 && length <= 40 {
			pool.Unit = schema.PoolYards
		}
	} else {
		pool = nil
	}
	return swim, pool
}

func mapFITStroke(stroke fit.SwimStroke) schema.StrokeType {
	switch stroke {
	case fit.SwimStrokeFreestyle:
		return schema.StrokeFreestyle
	case fit.SwimStrokeBackstroke:
		return schema.StrokeBackstroke
	case fit.SwimStrokeBreaststroke:
		return schema.StrokeBreaststroke
	case fit.SwimStrokeButterfly:
		return schema.StrokeButterfly
	case fit.SwimStrokeDrill:
		return schema.StrokeDrill
	case fit.SwimStrokeMixed:
		return schema.StrokeMixed
	case fit.SwimStrokeIm:
		return schema.StrokeIndividualMedley
	default:
		return ""
	}
}

func buildFITTimeSeries(records []*fit.RecordMsg) *schema.TimeSeriesData {
	ts := &schema.TimeSeriesData{}

	for _, rec := range records {
		if rec == nil || fitInvalidTime(rec.Timestamp) {
			continue
		}
		ts.Timestamps = append(ts.Timestamps, rec.Timestamp.UTC().Format(time.RFC3339))
		ts.HeartRate = append(ts.HeartRate, float64(validUint8(rec.HeartRate)))
		ts.Power = append(ts.Power, float64(validUint16(rec.Power)))
		ts.Cadence = append(ts.Cadence, float64(validUint8(rec.Cadence)))

		speed := rec.GetSpeedScaled()
		if !isFiniteNonNegative(speed) || validUint16(rec.Speed) == 0 {
			speed = 0
		}
		ts.SpeedMPS = append(ts.SpeedMPS, speed)

		elev, _ := fitRecordAltitude(rec)
		ts.ElevationM = append(ts.ElevationM, elev)

		ts.DistanceM = append(ts.DistanceM, scaledUint32(rec.Distance, 100))
		if rec.Temperature != 0x7F {
			ts.TemperatureC = append(ts.TemperatureC, float64(rec.Temperature))
		} else {
			ts.TemperatureC = append(ts.TemperatureC, 0)
		}
	}

	if len(ts.Timestamps) == 0 {
		return nil
	}
	return ts
}

func mapDevices(infos []*fit.DeviceInfoMsg) []schema.Device {
	var devices []schema.Device
	seen := map[string]bool{}
	for _, info := range infos {
		if info == nil {
			continue
		}
		deviceType, ok := mapDeviceType(info.DeviceType)
		if !ok {
			continue // unknown device types are dropped silently
		}
		manufacturer := mapManufacturer(uint16(info.Manufacturer))
		key := string(deviceType) + "/" + manufacturer
		if seen[key] {
			continue
		}
		seen[key] = true
		devices = append(devices, schema.Device{
			Type:         deviceType,
			Manufacturer: manufacturer,
		})
	}
	return devices
}

func mapDeviceType(raw uint8) (schema.DeviceType, bool) {
	switch raw {
	case 1:
		return schema.DeviceWatch, true
	case 11:
		return schema.DeviceBikeComputer, true
	case 120:
		return schema.DeviceHeartRateMonitor, true
	case 12, 121:
		return schema.DevicePowerMeter, true
	default:
		return "", false
	}
}

func mapManufacturer(raw uint16) string {
	switch raw {
	case 1:
		return "Garmin"
	case 2:
		return "Polar"
	case 3:
		return "Wahoo"
	case 15:
		return "Suunto"
	case 260:
		return "Coros"
	default:
		return "Unknown"
	}
}

func validUint8(v uint8) uint8 {
	if v == math.MaxUint8 {
		return 0
	}
	return v
}

func validUint16(v uint16) uint16 {
	if v == math.MaxUint16 {
		return 0
	}
	return v
}

func validUint32(v uint32) uint32 {
	if v == math.MaxUint32 {
		return 0
	}
	return v
}

func scaledUint16(v uint16, scale float64) float64 {
	if v == math.MaxUint16 {
		return 0
	}
	return float64(v) / scale
}

func scaledUint32(v uint32, scale float64) float64 {
	if v == math.MaxUint32 {
		return 0
	}
	return float64(v) / scale
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isFiniteNonNegative(v float64) bool {
	return isFinite(v) && v >= 0
}
