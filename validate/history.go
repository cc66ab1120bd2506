package validate

import (
	"fmt"
	"math"
	"strings"

	"pwf/schema"
)

// History validates a History document given as YAML text.
func History(doc []byte) HistoryResult {
	history, err := schema.ParseHistory(doc)
	if err != nil {
		return HistoryResult{
			Errors: []Diagnostic{{
				Path:     "",
				Message:  err.Error(),
				Severity: SeverityError,
			}},
			Warnings: []Diagnostic{},
		}
	}
	return HistoryDocument(history)
}

// HistoryDocument validates an already-parsed History.
func HistoryDocument(history *schema.History) HistoryResult {
	c := &collector{}

	if history.HistoryVersion != 1 && history.HistoryVersion != 2 {
		c.errorf("history_version", "PWF-H001", "unsupported history_version %d (expected 1 or 2)", history.HistoryVersion)
	}
	if history.ExportedAt == nil || strings.TrimSpace(*history.ExportedAt) == "" {
		c.errorf("exported_at", "PWF-H002", "exported_at is required")
	} else if _, ok := parseTimestamp(*history.ExportedAt); !ok {
		c.errorf("exported_at", "PWF-H002", "exported_at %q is not an ISO-8601 datetime with timezone", *history.ExportedAt)
	}

	if history.HistoryVersion == 1 {
		checkV2Features(c, history)
	}

	validateUnits(c, history)

	for i := range history.Workouts {
		validateWorkout(c, &history.Workouts[i], fmt.Sprintf("workouts[%d]", i))
	}

	for i := range history.PersonalRecords {
		pr := &history.PersonalRecords[i]
		path := fmt.Sprintf("personal_records[%d]", i)
		if strings.TrimSpace(pr.Exercise) == "" {
			c.errorf(path+".exercise", "PWF-H901", "personal record exercise name is required")
		}
		if !pr.RecordType.Valid() {
			c.errorf(path+".record_type", "PWF-H902", "unknown record_type %q", pr.RecordType)
		}
		if pr.Value <= 0 {
			c.errorf(path+".value", "PWF-H903", "personal record value must be positive")
		}
		if pr.Date != nil {
			if _, ok := parseDate(*pr.Date); !ok {
				c.errorf(path+".date", "PWF-H904", "date %q is not YYYY-MM-DD", *pr.Date)
			}
		}
	}

	for i := range history.BodyMeasurements {
		bm := &history.BodyMeasurements[i]
		path := fmt.Sprintf("body_measurements[%d]", i)
		if _, ok := parseDate(bm.Date); !ok {
			c.errorf(path+".date", "PWF-H911", "date %q is not YYYY-MM-DD", bm.Date)
		}
		if bm.WeightKG != nil && bm.WeightLB != nil {
			c.warnf(path, "PWF-H912", "both weight_kg and weight_lb set; weight_kg wins")
		}
		if bm.BodyFatPercent != nil && (*bm.BodyFatPercent < 0 || *bm.BodyFatPercent > 100) {
			c.errorf(path+".body_fat_percent", "PWF-H913", "body_fat_percent must be within 0-100")
		}
	}

	result := HistoryResult{
		Valid:    len(c.errors) == 0,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
	if result.Errors == nil {
		result.Errors = []Diagnostic{}
	}
	if result.Warnings == nil {
		result.Warnings = []Diagnostic{}
	}
	if result.Valid {
		result.History = history
		result.Statistics = historyStatistics(history)
	}
	return result
}

// checkV2Features flags every v2.1 capability present on a version-1 export.
func checkV2Features(c *collector, history *schema.History) {
	report := func(path, feature string) {
		c.errorf(path, "PWF-H003", "%s requires history_version 2", feature)
	}
	for i := range history.Workouts {
		w := &history.Workouts[i]
		wPath := fmt.Sprintf("workouts[%d]", i)
		if len(w.Devices) > 0 {
			report(wPath+".devices", "device metadata")
		}
		if len(w.SportSegments) > 0 {
			report(wPath+".sport_segments", "multi-sport segments")
		}
		reportTelemetryV2(report, w.Telemetry, wPath+".telemetry")
		for j := range w.Exercises {
			ex := &w.Exercises[j]
			for k := range ex.Sets {
				set := &ex.Sets[k]
				sPath := fmt.Sprintf("%s.exercises[%d].sets[%d]", wPath, j, k)
				if set.Swimming != nil {
					report(sPath+".swimming", "swimming set data")
				}
				reportTelemetryV2(report, set.Telemetry, sPath+".telemetry")
			}
		}
	}
}

func reportTelemetryV2(report func(path, feature string), t *schema.Telemetry, path string) {
	if t == nil {
		return
	}
	if t.TimeSeries != nil {
		report(path+".time_series", "time-series telemetry")
	}
	if t.Zones != nil {
		report(path+".zones", "zone summaries")
	}
	if t.Power != nil {
		report(path+".power_metrics", "power metrics")
	}
	if t.GpsRoute != nil {
		report(path+".gps_route", "GPS routes")
	}
}

func validateUnits(c *collector, history *schema.History) {
	if history.Units == nil {
		return
	}
	units := history.Units
	if units.Weight != "" && !units.Weight.Valid() {
		c.warnf("units.weight", "PWF-H709", "unknown weight unit %q (expected kg or lb)", units.Weight)
	}
	if units.Distance != "" && !units.Distance.Valid() {
		c.warnf("units.distance", "PWF-H709", "unknown distance unit %q", units.Distance)
	}

	kgSeen, lbSeen := observedWeightFields(history)
	if units.Weight == schema.WeightLB && kgSeen && !lbSeen {
		c.warnf("units.weight", "PWF-H601", "units.weight is lb but only weight_kg values appear in the document")
	}
	if units.Weight == schema.WeightKG && lbSeen && !kgSeen {
		c.warnf("units.weight", "PWF-H601", "units.weight is kg but only weight_lb values appear in the document")
	}
}

func observedWeightFields(history *schema.History) (kg, lb bool) {
	for _, w := range history.Workouts {
		for _, ex := range w.Exercises {
			for _, set := range ex.Sets {
				if set.WeightKG != nil {
					kg = true
				}
				if set.WeightLB != nil {
					lb = true
				}
			}
		}
	}
	for _, bm := range history.BodyMeasurements {
		if bm.WeightKG != nil {
			kg = true
		}
		if bm.WeightLB != nil {
			lb = true
		}
	}
	return kg, lb
}

func validateWorkout(c *collector, w *schema.Workout, path string) {
	if strings.TrimSpace(w.Date) == "" {
		c.errorf(path+".date", "PWF-H101", "workout date is required")
	} else if _, ok := parseDate(w.Date); !ok {
		c.errorf(path+".date", "PWF-H101", "workout date %q is not YYYY-MM-DD", w.Date)
	}

	var started, ended string
	if w.StartedAt != nil {
		started = *w.StartedAt
		if _, ok := parseTimestamp(started); !ok {
			c.errorf(path+".started_at", "PWF-H103", "started_at %q is not an ISO-8601 datetime with timezone", started)
		}
	}
	if w.EndedAt != nil {
		ended = *w.EndedAt
		if _, ok := parseTimestamp(ended); !ok {
			c.errorf(path+".ended_at", "PWF-H103", "ended_at %q is not an ISO-8601 datetime with timezone", ended)
		}
	}
	if started != "" && ended != "" {
		st, okS := parseTimestamp(started)
		et, okE := parseTimestamp(ended)
		if okS && okE && et.Before(st) {
			c.warnf(path, "PWF-H104", "ended_at precedes started_at")
		}
	}
	if w.DurationSec != nil && *w.DurationSec < 0 {
		c.errorf(path+".duration_sec", "PWF-H105", "duration_sec must not be negative")
	}
	if w.Sport != "" && !w.Sport.Valid() {
		c.warnf(path+".sport", "PWF-H106", "unknown sport %q", w.Sport)
	}

	if len(w.Exercises) == 0 {
		c.errorf(path+".exercises", "PWF-H102", "workout must contain at least one exercise")
	}
	for i := range w.Exercises {
		validateCompletedExercise(c, &w.Exercises[i], fmt.Sprintf("%s.exercises[%d]", path, i))
	}

	for i := range w.Devices {
		d := &w.Devices[i]
		dPath := fmt.Sprintf("%s.devices[%d]", path, i)
		if !d.Type.Valid() {
			c.warnf(dPath+".type", "PWF-H107", "unknown device type %q", d.Type)
		}
	}

	validateTelemetry(c, w.Telemetry, path+".telemetry")
	validateSegments(c, w, path)
}

func validateCompletedExercise(c *collector, ex *schema.CompletedExercise, path string) {
	if strings.TrimSpace(ex.Name) == "" {
		c.errorf(path+".name", "PWF-H201", "exercise name is required")
	}
	if ex.Modality != "" && !ex.Modality.Valid() {
		c.errorf(path+".modality", "PWF-H203", "unknown modality %q", ex.Modality)
	}
	if len(ex.Sets) == 0 {
		c.errorf(path+".sets", "PWF-H202", "exercise must contain at least one set")
	}
	if ex.PoolConfig != nil {
		if ex.PoolConfig.LengthM <= 0 {
			c.errorf(path+".pool_config.length", "PWF-H802", "pool length must be positive")
		}
		if !ex.PoolConfig.Unit.Valid() {
			c.errorf(path+".pool_config.unit", "PWF-H802", "unknown pool unit %q (expected meters or yards)", ex.PoolConfig.Unit)
		}
	}
	for i := range ex.Sets {
		validateCompletedSet(c, &ex.Sets[i], fmt.Sprintf("%s.sets[%d]", path, i))
	}
}

func validateCompletedSet(c *collector, set *schema.CompletedSet, path string) {
	if set.SetType != "" && !set.SetType.Valid() {
		c.errorf(path+".set_type", "PWF-H307", "unknown set_type %q", set.SetType)
	}

	hasMetric := set.Reps != nil || set.WeightKG != nil || set.WeightLB != nil ||
		set.DurationSec != nil || set.DistanceM != nil || set.Swimming != nil ||
		set.Telemetry != nil
	if !hasMetric {
		c.errorf(path, "PWF-H301", "set carries no metrics")
	}

	if set.RPE != nil && (*set.RPE < 0 || *set.RPE > 10) {
		c.warnf(path+".rpe", "PWF-H302", "rpe %.1f is outside 0-10", *set.RPE)
	}
	if set.RIR != nil && *set.RIR < 0 {
		c.warnf(path+".rir", "PWF-H303", "rir must not be negative")
	}
	if set.RPE != nil && set.RIR != nil {
		c.warnf(path, "PWF-H304", "rpe and rir must not both be set")
	}
	if set.Reps != nil && *set.Reps < 0 {
		c.errorf(path+".reps", "PWF-H306", "reps must not be negative")
	}
	if set.WeightKG != nil && *set.WeightKG < 0 {
		c.errorf(path+".weight_kg", "PWF-H305", "weight must not be negative")
	}
	if set.WeightLB != nil && *set.WeightLB < 0 {
		c.errorf(path+".weight_lb", "PWF-H305", "weight must not be negative")
	}
	if set.DurationSec != nil && *set.DurationSec < 0 {
		c.errorf(path+".duration_sec", "PWF-H308", "duration_sec must not be negative")
	}
	if set.DistanceM != nil && *set.DistanceM < 0 {
		c.errorf(path+".distance_meters", "PWF-H308", "distance_meters must not be negative")
	}
	if set.CompletedAt != nil {
		if _, ok := parseTimestamp(*set.CompletedAt); !ok {
			c.errorf(path+".completed_at", "PWF-H309", "completed_at %q is not an ISO-8601 datetime with timezone", *set.CompletedAt)
		}
	}

	validateSwimming(c, set.Swimming, path+".swimming")
	validateTelemetry(c, set.Telemetry, path+".telemetry")
}

func validateSwimming(c *collector, swim *schema.SwimmingSetData, path string) {
	if swim == nil {
		return
	}
	for i := range swim.Lengths {
		l := &swim.Lengths[i]
		lPath := fmt.Sprintf("%s.lengths[%d]", path, i)
		if l.Stroke != "" && !l.Stroke.Valid() {
			c.warnf(lPath+".stroke", "PWF-H803", "unknown stroke %q", l.Stroke)
		}
		if l.Swolf != nil && l.StrokeCount != nil && l.DurationSec != nil {
			expected := float64(*l.StrokeCount) + math.Floor(*l.DurationSec)
			if math.Abs(*l.Swolf-expected) > 1 {
				c.warnf(lPath+".swolf", "PWF-H801", "swolf %.0f does not equal stroke_count + floor(duration_sec) = %.0f", *l.Swolf, expected)
			}
		}
	}
	if swim.PrimaryStroke != "" && !swim.PrimaryStroke.Valid() {
		c.warnf(path+".primary_stroke", "PWF-H803", "unknown stroke %q", swim.PrimaryStroke)
	}
}

func validateSegments(c *collector, w *schema.Workout, path string) {
	segs := w.SportSegments
	if len(segs) == 0 {
		return
	}
	seen := map[int]bool{}
	for i := range segs {
		seg := &segs[i]
		sPath := fmt.Sprintf("%s.sport_segments[%d]", path, i)
		if seen[seg.SegmentIndex] {
			c.errorf(sPath+".segment_index", "PWF-H842", "duplicate segment_index %d", seg.SegmentIndex)
		}
		seen[seg.SegmentIndex] = true
		if seg.SegmentIndex != i {
			c.errorf(sPath+".segment_index", "PWF-H841", "segment_index %d breaks the 0..n-1 sequence (expected %d)", seg.SegmentIndex, i)
		}
		if !seg.Sport.Valid() {
			c.errorf(sPath+".sport", "PWF-H843", "unknown sport %q", seg.Sport)
		}
		if seg.Transition != nil {
			tr := seg.Transition
			if i == len(segs)-1 {
				c.warnf(sPath+".transition", "PWF-H861", "final segment carries a transition")
			} else {
				next := &segs[i+1]
				if tr.FromSport != seg.Sport || tr.ToSport != next.Sport {
					c.errorf(sPath+".transition", "PWF-H861",
						"transition %s->%s does not match neighboring segments %s->%s",
						tr.FromSport, tr.ToSport, seg.Sport, next.Sport)
				}
			}
		}
		validateTelemetry(c, seg.Telemetry, sPath+".telemetry")
	}
}

func historyStatistics(history *schema.History) *HistoryStatistics {
	stats := &HistoryStatistics{
		TotalWorkouts:        len(history.Workouts),
		PersonalRecordCount:  len(history.PersonalRecords),
		BodyMeasurementCount: len(history.BodyMeasurements),
	}
	for _, w := range history.Workouts {
		stats.SportSegmentCount += len(w.SportSegments)
		if stats.FirstDate == "" || w.Date < stats.FirstDate {
			stats.FirstDate = w.Date
		}
		if w.Date > stats.LastDate {
			stats.LastDate = w.Date
		}
		for _, ex := range w.Exercises {
			stats.TotalExercises++
			for _, set := range ex.Sets {
				stats.TotalSets++
				if set.Reps == nil {
					continue
				}
				switch {
				case set.WeightKG != nil:
					stats.TotalVolumeKG += float64(*set.Reps) * *set.WeightKG
				case set.WeightLB != nil:
					stats.TotalVolumeKG += float64(*set.Reps) * *set.WeightLB * LBToKG
				}
			}
		}
	}
	return stats
}
