package schema

// Telemetry carries aggregate biometric scalars plus optional detail blocks.
// It appears at workout, set, and segment level.
type Telemetry struct {
	HRAvg           *float64         `yaml:"hr_avg,omitempty" json:"hr_avg,omitempty"`
	HRMax           *float64         `yaml:"hr_max,omitempty" json:"hr_max,omitempty"`
	PowerAvg        *float64         `yaml:"power_avg,omitempty" json:"power_avg,omitempty"`
	PowerMax        *float64         `yaml:"power_max,omitempty" json:"power_max,omitempty"`
	CadenceAvg      *float64         `yaml:"cadence_avg,omitempty" json:"cadence_avg,omitempty"`
	TotalDistanceKM *float64         `yaml:"total_distance_km,omitempty" json:"total_distance_km,omitempty"`
	TotalCalories   *float64         `yaml:"total_calories,omitempty" json:"total_calories,omitempty"`
	Power           *PowerMetrics    `yaml:"power_metrics,omitempty" json:"power_metrics,omitempty"`
	Advanced        *AdvancedMetrics `yaml:"advanced_metrics,omitempty" json:"advanced_metrics,omitempty"`
	Zones           *ZoneSummary     `yaml:"zones,omitempty" json:"zones,omitempty"`
	GpsRoute        *GpsRoute        `yaml:"gps_route,omitempty" json:"gps_route,omitempty"`
	TimeSeries      *TimeSeriesData  `yaml:"time_series,omitempty" json:"time_series,omitempty"`
}

// PowerMetrics holds derived cycling power statistics.
type PowerMetrics struct {
	NormalizedPower  *float64 `yaml:"normalized_power,omitempty" json:"normalized_power,omitempty"`
	TSS              *float64 `yaml:"tss,omitempty" json:"tss,omitempty"`
	IntensityFactor  *float64 `yaml:"intensity_factor,omitempty" json:"intensity_factor,omitempty"`
	VariabilityIndex *float64 `yaml:"variability_index,omitempty" json:"variability_index,omitempty"`
	FTPWatts         *float64 `yaml:"ftp_watts,omitempty" json:"ftp_watts,omitempty"`
	TotalWorkKJ      *float64 `yaml:"total_work_kj,omitempty" json:"total_work_kj,omitempty"`
}

// AdvancedMetrics holds physiological estimates exported by watches.
type AdvancedMetrics struct {
	TrainingEffect          *float64 `yaml:"training_effect,omitempty" json:"training_effect,omitempty"`
	AnaerobicTrainingEffect *float64 `yaml:"anaerobic_training_effect,omitempty" json:"anaerobic_training_effect,omitempty"`
	RecoveryTimeHours       *float64 `yaml:"recovery_time_hours,omitempty" json:"recovery_time_hours,omitempty"`
	VO2MaxEstimate          *float64 `yaml:"vo2_max_estimate,omitempty" json:"vo2_max_estimate,omitempty"`
	PerformanceCondition    *float64 `yaml:"performance_condition,omitempty" json:"performance_condition,omitempty"`
}

// ZoneSummary carries time-in-zone arrays in seconds.
type ZoneSummary struct {
	HRZoneSec    []float64 `yaml:"hr_zone_sec,omitempty" json:"hr_zone_sec,omitempty"`
	PowerZoneSec []float64 `yaml:"power_zone_sec,omitempty" json:"power_zone_sec,omitempty"`
}

// GpsRoute is an ordered recorded track with aggregates.
type GpsRoute struct {
	ID            string      `yaml:"id" json:"id"`
	Name          *string     `yaml:"name,omitempty" json:"name,omitempty"`
	Points        []GpsPoint  `yaml:"points" json:"points"`
	TotalDistanceM *float64   `yaml:"total_distance_m,omitempty" json:"total_distance_m,omitempty"`
	TotalAscentM  *float64    `yaml:"total_ascent_m,omitempty" json:"total_ascent_m,omitempty"`
	TotalDescentM *float64    `yaml:"total_descent_m,omitempty" json:"total_descent_m,omitempty"`
	MinElevationM *float64    `yaml:"min_elevation_m,omitempty" json:"min_elevation_m,omitempty"`
	MaxElevationM *float64    `yaml:"max_elevation_m,omitempty" json:"max_elevation_m,omitempty"`
	Bounds        *GpsBounds  `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	RecordingMode *string     `yaml:"recording_mode,omitempty" json:"recording_mode,omitempty"`
	FixQuality    *string     `yaml:"fix_quality,omitempty" json:"fix_quality,omitempty"`
}

// GpsBounds is the bounding box of a route.
type GpsBounds struct {
	MinLat float64 `yaml:"min_lat" json:"min_lat"`
	MaxLat float64 `yaml:"max_lat" json:"max_lat"`
	MinLon float64 `yaml:"min_lon" json:"min_lon"`
	MaxLon float64 `yaml:"max_lon" json:"max_lon"`
}

// GpsPoint is one recorded position.
type GpsPoint struct {
	LatitudeDeg  float64  `yaml:"latitude_deg" json:"latitude_deg"`
	LongitudeDeg float64  `yaml:"longitude_deg" json:"longitude_deg"`
	Timestamp    *string  `yaml:"timestamp,omitempty" json:"timestamp,omitempty"`
	ElevationM   *float64 `yaml:"elevation_m,omitempty" json:"elevation_m,omitempty"`
	SpeedMPS     *float64 `yaml:"speed_mps,omitempty" json:"speed_mps,omitempty"`
	HeadingDeg   *float64 `yaml:"heading_deg,omitempty" json:"heading_deg,omitempty"`
	HeartRate    *float64 `yaml:"heart_rate,omitempty" json:"heart_rate,omitempty"`
	Power        *float64 `yaml:"power,omitempty" json:"power,omitempty"`
	Cadence      *float64 `yaml:"cadence,omitempty" json:"cadence,omitempty"`
	TemperatureC *float64 `yaml:"temperature_c,omitempty" json:"temperature_c,omitempty"`
}

// TimeSeriesData is a set of parallel sample arrays. Every present optional
// array must have the same length as Timestamps; the History validator flags
// mismatches and converters skip offending blocks.
type TimeSeriesData struct {
	Timestamps []string `yaml:"timestamps" json:"timestamps"`

	HeartRate            []float64 `yaml:"heart_rate,omitempty" json:"heart_rate,omitempty"`
	Power                []float64 `yaml:"power,omitempty" json:"power,omitempty"`
	Cadence              []float64 `yaml:"cadence,omitempty" json:"cadence,omitempty"`
	SpeedMPS             []float64 `yaml:"speed_mps,omitempty" json:"speed_mps,omitempty"`
	ElevationM           []float64 `yaml:"elevation_m,omitempty" json:"elevation_m,omitempty"`
	Latitude             []float64 `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude            []float64 `yaml:"longitude,omitempty" json:"longitude,omitempty"`
	DistanceM            []float64 `yaml:"distance_m,omitempty" json:"distance_m,omitempty"`
	TemperatureC         []float64 `yaml:"temperature_c,omitempty" json:"temperature_c,omitempty"`
	GradePercent         []float64 `yaml:"grade_percent,omitempty" json:"grade_percent,omitempty"`
	RespirationRate      []float64 `yaml:"respiration_rate,omitempty" json:"respiration_rate,omitempty"`
	CoreTemperatureC     []float64 `yaml:"core_temperature_c,omitempty" json:"core_temperature_c,omitempty"`
	MuscleOxygenPercent  []float64 `yaml:"muscle_oxygen_percent,omitempty" json:"muscle_oxygen_percent,omitempty"`
	PowerBalance         []float64 `yaml:"power_balance,omitempty" json:"power_balance,omitempty"`
	LeftPedalSmoothness  []float64 `yaml:"left_pedal_smoothness,omitempty" json:"left_pedal_smoothness,omitempty"`
	RightPedalSmoothness []float64 `yaml:"right_pedal_smoothness,omitempty" json:"right_pedal_smoothness,omitempty"`
	LeftTorqueEff        []float64 `yaml:"left_torque_effectiveness,omitempty" json:"left_torque_effectiveness,omitempty"`
	RightTorqueEff       []float64 `yaml:"right_torque_effectiveness,omitempty" json:"right_torque_effectiveness,omitempty"`
	StrideLengthM        []float64 `yaml:"stride_length_m,omitempty" json:"stride_length_m,omitempty"`
	VerticalOscillation  []float64 `yaml:"vertical_oscillation_mm,omitempty" json:"vertical_oscillation_mm,omitempty"`
	GroundContactTimeMS  []float64 `yaml:"ground_contact_time_ms,omitempty" json:"ground_contact_time_ms,omitempty"`
	GroundContactBalance []float64 `yaml:"ground_contact_balance,omitempty" json:"ground_contact_balance,omitempty"`
	StrokeRate           []float64 `yaml:"stroke_rate,omitempty" json:"stroke_rate,omitempty"`
	StrokeCount          []float64 `yaml:"stroke_count,omitempty" json:"stroke_count,omitempty"`
	Swolf                []float64 `yaml:"swolf,omitempty" json:"swolf,omitempty"`
}

// ParallelArrays returns each optional sample array paired with its wire
// name, in header order. Timestamps is excluded.
func (ts *TimeSeriesData) ParallelArrays() []NamedSeries {
	return []NamedSeries{
		{"heart_rate", ts.HeartRate},
		{"power", ts.Power},
		{"cadence", ts.Cadence},
		{"speed_mps", ts.SpeedMPS},
		{"elevation_m", ts.ElevationM},
		{"latitude", ts.Latitude},
		{"longitude", ts.Longitude},
		{"distance_m", ts.DistanceM},
		{"temperature_c", ts.TemperatureC},
		{"grade_percent", ts.GradePercent},
		{"respiration_rate", ts.RespirationRate},
		{"core_temperature_c", ts.CoreTemperatureC},
		{"muscle_oxygen_percent", ts.MuscleOxygenPercent},
		{"power_balance", ts.PowerBalance},
		{"left_pedal_smoothness", ts.LeftPedalSmoothness},
		{"right_pedal_smoothness", ts.RightPedalSmoothness},
		{"left_torque_effectiveness", ts.LeftTorqueEff},
		{"right_torque_effectiveness", ts.RightTorqueEff},
		{"stride_length_m", ts.StrideLengthM},
		{"vertical_oscillation_mm", ts.VerticalOscillation},
		{"ground_contact_time_ms", ts.GroundContactTimeMS},
		{"ground_contact_balance", ts.GroundContactBalance},
		{"stroke_rate", ts.StrokeRate},
		{"stroke_count", ts.StrokeCount},
		{"swolf", ts.Swolf},
	}
}

// NamedSeries pairs a sample array with its wire name.
type NamedSeries struct {
	Name   string
	Values []float64
}

// SwimmingSetData is the per-length breakdown of a pool swim set.
type SwimmingSetData struct {
	Lengths       []SwimmingLength `yaml:"lengths" json:"lengths"`
	PrimaryStroke StrokeType       `yaml:"primary_stroke,omitempty" json:"primary_stroke,omitempty"`
	TotalLengths  *int             `yaml:"total_lengths,omitempty" json:"total_lengths,omitempty"`
	ActiveLengths *int             `yaml:"active_lengths,omitempty" json:"active_lengths,omitempty"`
	AvgSwolf      *float64         `yaml:"avg_swolf,omitempty" json:"avg_swolf,omitempty"`
}

// SwimmingLength is one pool length.
type SwimmingLength struct {
	LengthNumber int        `yaml:"length_number" json:"length_number"`
	DurationSec  *float64   `yaml:"duration_sec,omitempty" json:"duration_sec,omitempty"`
	Stroke       StrokeType `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	StrokeCount  *int       `yaml:"stroke_count,omitempty" json:"stroke_count,omitempty"`
	Swolf        *float64   `yaml:"swolf,omitempty" json:"swolf,omitempty"`
	Active       *bool      `yaml:"active,omitempty" json:"active,omitempty"`
}
