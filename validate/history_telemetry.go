package validate

import (
	"fmt"
	"math"

	"pwf/schema"
)

// Telemetry range bounds. Out-of-range samples may be legitimate hardware
// readings, so every H70x/H89x finding is a warning for user review.
const (
	hrMin, hrMax           = 20.0, 250.0
	cadenceMax             = 255.0
	temperatureMin         = -60.0
	temperatureMax         = 60.0
	trainingEffectMax      = 5.0
	performanceCondLimit   = 20.0
	ratioRelativeTolerance = 0.02
)

func validateTelemetry(c *collector, t *schema.Telemetry, path string) {
	if t == nil {
		return
	}

	checkHR := func(v *float64, field string) {
		if v != nil && (*v < hrMin || *v > hrMax) {
			c.warnf(path+"."+field, "PWF-H701", "%s %.0f is outside %.0f-%.0f bpm", field, *v, hrMin, hrMax)
		}
	}
	checkHR(t.HRAvg, "hr_avg")
	checkHR(t.HRMax, "hr_max")

	if t.PowerAvg != nil && *t.PowerAvg < 0 {
		c.warnf(path+".power_avg", "PWF-H702", "power_avg must not be negative")
	}
	if t.PowerMax != nil && *t.PowerMax < 0 {
		c.warnf(path+".power_max", "PWF-H702", "power_max must not be negative")
	}
	if t.CadenceAvg != nil && (*t.CadenceAvg < 0 || *t.CadenceAvg > cadenceMax) {
		c.warnf(path+".cadence_avg", "PWF-H703", "cadence_avg %.0f is outside 0-%.0f", *t.CadenceAvg, cadenceMax)
	}
	if t.TotalDistanceKM != nil && *t.TotalDistanceKM < 0 {
		c.warnf(path+".total_distance_km", "PWF-H710", "total_distance_km must not be negative")
	}
	if t.TotalCalories != nil && *t.TotalCalories < 0 {
		c.warnf(path+".total_calories", "PWF-H710", "total_calories must not be negative")
	}

	validatePowerMetrics(c, t, path)
	validateAdvancedMetrics(c, t.Advanced, path+".advanced_metrics")
	validateZones(c, t.Zones, path+".zones")
	validateGpsRoute(c, t.GpsRoute, path+".gps_route")
	validateTimeSeries(c, t.TimeSeries, path+".time_series")
}

func validatePowerMetrics(c *collector, t *schema.Telemetry, path string) {
	pm := t.Power
	if pm == nil {
		return
	}
	pmPath := path + ".power_metrics"

	if pm.NormalizedPower != nil && *pm.NormalizedPower < 0 {
		c.warnf(pmPath+".normalized_power", "PWF-H702", "normalized_power must not be negative")
	}
	if pm.FTPWatts != nil && *pm.FTPWatts <= 0 {
		c.warnf(pmPath+".ftp_watts", "PWF-H702", "ftp_watts must be positive")
	}
	if pm.TSS != nil && *pm.TSS < 0 {
		c.warnf(pmPath+".tss", "PWF-H891", "tss must not be negative")
	}

	// IF and VI are derived quantities; disagreement beyond the relative
	// tolerance means the aggregates were edited or exported inconsistently.
	if pm.IntensityFactor != nil && pm.NormalizedPower != nil && pm.FTPWatts != nil && *pm.FTPWatts > 0 {
		expected := *pm.NormalizedPower / *pm.FTPWatts
		if !withinRelative(*pm.IntensityFactor, expected, ratioRelativeTolerance) {
			c.warnf(pmPath+".intensity_factor", "PWF-H893",
				"intensity_factor %.3f disagrees with normalized_power/ftp_watts = %.3f", *pm.IntensityFactor, expected)
		}
	}
	if pm.VariabilityIndex != nil && pm.NormalizedPower != nil && t.PowerAvg != nil && *t.PowerAvg > 0 {
		expected := *pm.NormalizedPower / *t.PowerAvg
		if !withinRelative(*pm.VariabilityIndex, expected, ratioRelativeTolerance) {
			c.warnf(pmPath+".variability_index", "PWF-H894",
				"variability_index %.3f disagrees with normalized_power/power_avg = %.3f", *pm.VariabilityIndex, expected)
		}
	}
}

func withinRelative(actual, expected, tolerance float64) bool {
	if expected == 0 {
		return actual == 0
	}
	return math.Abs(actual-expected)/math.Abs(expected) <= tolerance
}

func validateAdvancedMetrics(c *collector, am *schema.AdvancedMetrics, path string) {
	if am == nil {
		return
	}
	if am.TrainingEffect != nil && (*am.TrainingEffect < 0 || *am.TrainingEffect > trainingEffectMax) {
		c.warnf(path+".training_effect", "PWF-H891", "training_effect %.1f is outside 0-%.0f", *am.TrainingEffect, trainingEffectMax)
	}
	if am.AnaerobicTrainingEffect != nil && (*am.AnaerobicTrainingEffect < 0 || *am.AnaerobicTrainingEffect > trainingEffectMax) {
		c.warnf(path+".anaerobic_training_effect", "PWF-H891", "anaerobic_training_effect %.1f is outside 0-%.0f", *am.AnaerobicTrainingEffect, trainingEffectMax)
	}
	if am.RecoveryTimeHours != nil && *am.RecoveryTimeHours < 0 {
		c.warnf(path+".recovery_time_hours", "PWF-H891", "recovery_time_hours must not be negative")
	}
	if am.VO2MaxEstimate != nil && (*am.VO2MaxEstimate < 10 || *am.VO2MaxEstimate > 100) {
		c.warnf(path+".vo2_max_estimate", "PWF-H892", "vo2_max_estimate %.1f is outside 10-100", *am.VO2MaxEstimate)
	}
	if am.PerformanceCondition != nil && math.Abs(*am.PerformanceCondition) > performanceCondLimit {
		c.warnf(path+".performance_condition", "PWF-H892", "performance_condition %.0f is outside -%.0f..%.0f", *am.PerformanceCondition, performanceCondLimit, performanceCondLimit)
	}
}

func validateZones(c *collector, z *schema.ZoneSummary, path string) {
	if z == nil {
		return
	}
	if len(z.HRZoneSec) > 0 && len(z.PowerZoneSec) > 0 && len(z.HRZoneSec) != len(z.PowerZoneSec) {
		c.warnf(path, "PWF-H871", "hr and power zone arrays have inconsistent lengths (%d vs %d)", len(z.HRZoneSec), len(z.PowerZoneSec))
	}
	for i, v := range z.HRZoneSec {
		if v < 0 {
			c.warnf(fmt.Sprintf("%s.hr_zone_sec[%d]", path, i), "PWF-H871", "time in zone must not be negative")
		}
	}
	for i, v := range z.PowerZoneSec {
		if v < 0 {
			c.warnf(fmt.Sprintf("%s.power_zone_sec[%d]", path, i), "PWF-H871", "time in zone must not be negative")
		}
	}
}

func validateGpsRoute(c *collector, route *schema.GpsRoute, path string) {
	if route == nil {
		return
	}
	for i := range route.Points {
		p := &route.Points[i]
		pPath := fmt.Sprintf("%s.points[%d]", path, i)
		if p.LatitudeDeg < -90 || p.LatitudeDeg > 90 {
			c.errorf(pPath+".latitude_deg", "PWF-H881", "latitude %.6f is outside -90..90", p.LatitudeDeg)
		}
		if p.LongitudeDeg < -180 || p.LongitudeDeg > 180 {
			c.errorf(pPath+".longitude_deg", "PWF-H882", "longitude %.6f is outside -180..180", p.LongitudeDeg)
		}
		if p.HeadingDeg != nil && (*p.HeadingDeg < 0 || *p.HeadingDeg >= 360) {
			c.errorf(pPath+".heading_deg", "PWF-H883", "heading %.1f is outside 0..360", *p.HeadingDeg)
		}
		if p.HeartRate != nil && (*p.HeartRate < hrMin || *p.HeartRate > hrMax) {
			c.warnf(pPath+".heart_rate", "PWF-H701", "heart_rate %.0f is outside %.0f-%.0f bpm", *p.HeartRate, hrMin, hrMax)
		}
		if p.SpeedMPS != nil && *p.SpeedMPS < 0 {
			c.warnf(pPath+".speed_mps", "PWF-H704", "speed must not be negative")
		}
		if p.ElevationM != nil && *p.ElevationM < 0 {
			c.warnf(pPath+".elevation_m", "PWF-H705", "elevation must not be negative")
		}
	}
	if route.MinElevationM != nil && route.MaxElevationM != nil && *route.MinElevationM > *route.MaxElevationM {
		c.warnf(path, "PWF-H705", "min_elevation_m exceeds max_elevation_m")
	}
	if route.Bounds != nil {
		b := route.Bounds
		if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
			c.warnf(path+".bounds", "PWF-H705", "bounding box min exceeds max")
		}
	}
}

func validateTimeSeries(c *collector, ts *schema.TimeSeriesData, path string) {
	if ts == nil {
		return
	}
	n := len(ts.Timestamps)
	for _, series := range ts.ParallelArrays() {
		if series.Values != nil && len(series.Values) != n {
			c.warnf(fmt.Sprintf("%s.%s", path, series.Name), "PWF-H821",
				"%s has %d samples but timestamps has %d", series.Name, len(series.Values), n)
		}
	}

	warnRange := func(values []float64, name, code string, lo, hi float64) {
		for i, v := range values {
			if v < lo || v > hi {
				c.warnf(fmt.Sprintf("%s.%s[%d]", path, name, i), code, "%s %.1f is outside %.0f..%.0f", name, v, lo, hi)
				return // one finding per series is enough for review
			}
		}
	}
	warnRange(ts.HeartRate, "heart_rate", "PWF-H701", hrMin, hrMax)
	warnRange(ts.Power, "power", "PWF-H702", 0, math.MaxFloat64)
	warnRange(ts.Cadence, "cadence", "PWF-H703", 0, cadenceMax)
	warnRange(ts.SpeedMPS, "speed_mps", "PWF-H704", 0, math.MaxFloat64)
	warnRange(ts.ElevationM, "elevation_m", "PWF-H705", 0, math.MaxFloat64)
	warnRange(ts.TemperatureC, "temperature_c", "PWF-H707", temperatureMin, temperatureMax)
	warnRange(ts.GradePercent, "grade_percent", "PWF-H708", -100, 100)
	warnRange(ts.MuscleOxygenPercent, "muscle_oxygen_percent", "PWF-H706", 0, 100)
	warnRange(ts.PowerBalance, "power_balance", "PWF-H706", 0, 100)
	warnRange(ts.GroundContactBalance, "ground_contact_balance", "PWF-H706", 0, 100)
}
