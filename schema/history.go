package schema

// History is a descriptive export of completed workouts.
type History struct {
	HistoryVersion   int               `yaml:"history_version" json:"history_version"`
	ExportedAt       *string           `yaml:"exported_at,omitempty" json:"exported_at,omitempty"`
	ExportSource     *ExportSource     `yaml:"export_source,omitempty" json:"export_source,omitempty"`
	Units            *Units            `yaml:"units,omitempty" json:"units,omitempty"`
	Workouts         []Workout         `yaml:"workouts" json:"workouts"`
	PersonalRecords  []PersonalRecord  `yaml:"personal_records,omitempty" json:"personal_records,omitempty"`
	BodyMeasurements []BodyMeasurement `yaml:"body_measurements,omitempty" json:"body_measurements,omitempty"`
}

// ExportSource names the producing application.
type ExportSource struct {
	AppName    *string `yaml:"app_name,omitempty" json:"app_name,omitempty"`
	AppVersion *string `yaml:"app_version,omitempty" json:"app_version,omitempty"`
	Platform   *string `yaml:"platform,omitempty" json:"platform,omitempty"`
}

// Units declares document-wide default units.
type Units struct {
	Weight   WeightUnit   `yaml:"weight,omitempty" json:"weight,omitempty"`
	Distance DistanceUnit `yaml:"distance,omitempty" json:"distance,omitempty"`
}

// Workout is one completed session.
type Workout struct {
	ID            *string            `yaml:"id,omitempty" json:"id,omitempty"`
	Date          string             `yaml:"date" json:"date"`
	StartedAt     *string            `yaml:"started_at,omitempty" json:"started_at,omitempty"`
	EndedAt       *string            `yaml:"ended_at,omitempty" json:"ended_at,omitempty"`
	DurationSec   *float64           `yaml:"duration_sec,omitempty" json:"duration_sec,omitempty"`
	Title         *string            `yaml:"title,omitempty" json:"title,omitempty"`
	Notes         *string            `yaml:"notes,omitempty" json:"notes,omitempty"`
	PlanID        *string            `yaml:"plan_id,omitempty" json:"plan_id,omitempty"`
	PlanDayID     *string            `yaml:"plan_day_id,omitempty" json:"plan_day_id,omitempty"`
	Exercises     []CompletedExercise `yaml:"exercises" json:"exercises"`
	Telemetry     *Telemetry         `yaml:"telemetry,omitempty" json:"telemetry,omitempty"`
	Devices       []Device           `yaml:"devices,omitempty" json:"devices,omitempty"`
	Sport         Sport              `yaml:"sport,omitempty" json:"sport,omitempty"`
	SportSegments []SportSegment     `yaml:"sport_segments,omitempty" json:"sport_segments,omitempty"`
}

// CompletedExercise is one exercise performed in a workout.
type CompletedExercise struct {
	ID         *string        `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string         `yaml:"name" json:"name"`
	Modality   Modality       `yaml:"modality,omitempty" json:"modality,omitempty"`
	Notes      *string        `yaml:"notes,omitempty" json:"notes,omitempty"`
	Sets       []CompletedSet `yaml:"sets" json:"sets"`
	PoolConfig *PoolConfig    `yaml:"pool_config,omitempty" json:"pool_config,omitempty"`
	Sport      Sport          `yaml:"sport,omitempty" json:"sport,omitempty"`
}

// PoolConfig describes the pool a swimming exercise was performed in.
type PoolConfig struct {
	LengthM float64  `yaml:"length" json:"length"`
	Unit    PoolUnit `yaml:"unit" json:"unit"`
}

// CompletedSet is one performed set with its recorded metrics.
type CompletedSet struct {
	SetNumber   *int             `yaml:"set_number,omitempty" json:"set_number,omitempty"`
	SetType     SetType          `yaml:"set_type,omitempty" json:"set_type,omitempty"`
	Reps        *int             `yaml:"reps,omitempty" json:"reps,omitempty"`
	WeightKG    *float64         `yaml:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	WeightLB    *float64         `yaml:"weight_lb,omitempty" json:"weight_lb,omitempty"`
	DurationSec *float64         `yaml:"duration_sec,omitempty" json:"duration_sec,omitempty"`
	DistanceM   *float64         `yaml:"distance_meters,omitempty" json:"distance_meters,omitempty"`
	RPE         *float64         `yaml:"rpe,omitempty" json:"rpe,omitempty"`
	RIR         *float64         `yaml:"rir,omitempty" json:"rir,omitempty"`
	IsPR        *bool            `yaml:"is_pr,omitempty" json:"is_pr,omitempty"`
	CompletedAt *string          `yaml:"completed_at,omitempty" json:"completed_at,omitempty"`
	Telemetry   *Telemetry       `yaml:"telemetry,omitempty" json:"telemetry,omitempty"`
	Swimming    *SwimmingSetData `yaml:"swimming,omitempty" json:"swimming,omitempty"`
}

// PersonalRecord is one recorded PR.
type PersonalRecord struct {
	Exercise   string     `yaml:"exercise" json:"exercise"`
	RecordType RecordType `yaml:"record_type" json:"record_type"`
	Value      float64    `yaml:"value" json:"value"`
	Unit       *string    `yaml:"unit,omitempty" json:"unit,omitempty"`
	Date       *string    `yaml:"date,omitempty" json:"date,omitempty"`
	Notes      *string    `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// BodyMeasurement is one dated body metric snapshot.
type BodyMeasurement struct {
	Date           string   `yaml:"date" json:"date"`
	WeightKG       *float64 `yaml:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	WeightLB       *float64 `yaml:"weight_lb,omitempty" json:"weight_lb,omitempty"`
	BodyFatPercent *float64 `yaml:"body_fat_percent,omitempty" json:"body_fat_percent,omitempty"`
	MuscleMassKG   *float64 `yaml:"muscle_mass_kg,omitempty" json:"muscle_mass_kg,omitempty"`
	Notes          *string  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Device identifies a recording device attached to a workout.
type Device struct {
	Type         DeviceType `yaml:"type" json:"type"`
	Manufacturer string     `yaml:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Product      *string    `yaml:"product,omitempty" json:"product,omitempty"`
	SerialNumber *string    `yaml:"serial_number,omitempty" json:"serial_number,omitempty"`
}

// SportSegment is one leg of a multi-sport workout. Segments reference
// exercises by id, never by pointer.
type SportSegment struct {
	ID           *string     `yaml:"id,omitempty" json:"id,omitempty"`
	Sport        Sport       `yaml:"sport" json:"sport"`
	SegmentIndex int         `yaml:"segment_index" json:"segment_index"`
	DurationSec  *float64    `yaml:"duration_sec,omitempty" json:"duration_sec,omitempty"`
	DistanceM    *float64    `yaml:"distance_meters,omitempty" json:"distance_meters,omitempty"`
	ExerciseIDs  []string    `yaml:"exercise_ids,omitempty" json:"exercise_ids,omitempty"`
	Telemetry    *Telemetry  `yaml:"telemetry,omitempty" json:"telemetry,omitempty"`
	Transition   *Transition `yaml:"transition,omitempty" json:"transition,omitempty"`
}

// Transition describes the change-over after a non-final segment.
type Transition struct {
	FromSport   Sport    `yaml:"from_sport" json:"from_sport"`
	ToSport     Sport    `yaml:"to_sport" json:"to_sport"`
	DurationSec *float64 `yaml:"duration_sec,omitempty" json:"duration_sec,omitempty"`
}
