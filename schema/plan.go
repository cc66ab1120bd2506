package schema

// Plan is a prescriptive workout template. Absent optional scalars decode to
// nil pointers; absent sequences and maps decode to nil. Deserialization never
// normalizes values; validators own every cross-field rule.
type Plan struct {
	PlanVersion     int                    `yaml:"plan_version" json:"plan_version"`
	Meta            *PlanMeta              `yaml:"meta,omitempty" json:"meta,omitempty"`
	Glossary        map[string]string      `yaml:"glossary,omitempty" json:"glossary,omitempty"`
	ExerciseLibrary []ExerciseLibraryEntry `yaml:"exercise_library,omitempty" json:"exercise_library,omitempty"`
	Cycle           Cycle                  `yaml:"cycle" json:"cycle"`
}

// PlanMeta is optional descriptive metadata on a plan.
type PlanMeta struct {
	Title            *string    `yaml:"title,omitempty" json:"title,omitempty"`
	Description      *string    `yaml:"description,omitempty" json:"description,omitempty"`
	Author           *string    `yaml:"author,omitempty" json:"author,omitempty"`
	Status           PlanStatus `yaml:"status,omitempty" json:"status,omitempty"`
	ActivatedAt      *string    `yaml:"activated_at,omitempty" json:"activated_at,omitempty"`
	CompletedAt      *string    `yaml:"completed_at,omitempty" json:"completed_at,omitempty"`
	Equipment        []string   `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	DaysPerWeek      *int       `yaml:"daysPerWeek,omitempty" json:"daysPerWeek,omitempty"`
	RecommendedFirst *bool      `yaml:"recommendedFirst,omitempty" json:"recommendedFirst,omitempty"`
	Tags             []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// ExerciseLibraryEntry is a reusable v2 exercise definition referenced by id.
type ExerciseLibraryEntry struct {
	ID                 string     `yaml:"id" json:"id"`
	Name               string     `yaml:"name" json:"name"`
	Description        *string    `yaml:"description,omitempty" json:"description,omitempty"`
	Modality           Modality   `yaml:"modality,omitempty" json:"modality,omitempty"`
	Equipment          []string   `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	MuscleGroups       []string   `yaml:"muscle_groups,omitempty" json:"muscle_groups,omitempty"`
	Difficulty         Difficulty `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	DefaultSets        *int       `yaml:"default_sets,omitempty" json:"default_sets,omitempty"`
	DefaultReps        *int       `yaml:"default_reps,omitempty" json:"default_reps,omitempty"`
	DefaultDurationSec *int       `yaml:"default_duration_sec,omitempty" json:"default_duration_sec,omitempty"`
	DefaultDistanceM   *float64   `yaml:"default_distance_meters,omitempty" json:"default_distance_meters,omitempty"`
	Cues               []string   `yaml:"cues,omitempty" json:"cues,omitempty"`
	URLs               []string   `yaml:"urls,omitempty" json:"urls,omitempty"`
}

// Cycle is the ordered day list of a plan.
type Cycle struct {
	Days []Day `yaml:"days" json:"days"`
}

// Day is one training day in a cycle.
type Day struct {
	ID               *string        `yaml:"id,omitempty" json:"id,omitempty"`
	Order            *int           `yaml:"order,omitempty" json:"order,omitempty"`
	Focus            *string        `yaml:"focus,omitempty" json:"focus,omitempty"`
	Notes            *string        `yaml:"notes,omitempty" json:"notes,omitempty"`
	Date             *string        `yaml:"date,omitempty" json:"date,omitempty"`
	SessionLengthMin *int           `yaml:"session_length_min,omitempty" json:"session_length_min,omitempty"`
	Exercises        []PlanExercise `yaml:"exercises" json:"exercises"`
}

// PlanExercise is one prescribed exercise. Loading is either free-text
// (TargetLoad) or the percentage pair (TargetWeightPercent + PercentOf);
// Group and GroupType go together or not at all. Validators enforce both.
type PlanExercise struct {
	ID          *string  `yaml:"id,omitempty" json:"id,omitempty"`
	Name        *string  `yaml:"name,omitempty" json:"name,omitempty"`
	ExerciseRef *string  `yaml:"exercise_ref,omitempty" json:"exercise_ref,omitempty"`
	Modality    Modality `yaml:"modality,omitempty" json:"modality,omitempty"`

	TargetSets        *int     `yaml:"target_sets,omitempty" json:"target_sets,omitempty"`
	TargetReps        *int     `yaml:"target_reps,omitempty" json:"target_reps,omitempty"`
	TargetDurationSec *int     `yaml:"target_duration_sec,omitempty" json:"target_duration_sec,omitempty"`
	TargetDistanceM   *float64 `yaml:"target_distance_meters,omitempty" json:"target_distance_meters,omitempty"`

	TargetLoad          *string   `yaml:"target_load,omitempty" json:"target_load,omitempty"`
	TargetWeightPercent *float64  `yaml:"target_weight_percent,omitempty" json:"target_weight_percent,omitempty"`
	PercentOf           PercentOf `yaml:"percent_of,omitempty" json:"percent_of,omitempty"`
	ReferenceExercise   *string   `yaml:"reference_exercise,omitempty" json:"reference_exercise,omitempty"`

	Group     *string   `yaml:"group,omitempty" json:"group,omitempty"`
	GroupType GroupType `yaml:"group_type,omitempty" json:"group_type,omitempty"`

	Progression *ProgressionRule `yaml:"progression,omitempty" json:"progression,omitempty"`

	Cues        []string `yaml:"cues,omitempty" json:"cues,omitempty"`
	TargetNotes *string  `yaml:"target_notes,omitempty" json:"target_notes,omitempty"`
	Link        *string  `yaml:"link,omitempty" json:"link,omitempty"`
	Image       *string  `yaml:"image,omitempty" json:"image,omitempty"`

	RestBetweenSetsSec *int `yaml:"rest_between_sets_sec,omitempty" json:"rest_between_sets_sec,omitempty"`
	RestAfterSec       *int `yaml:"rest_after_sec,omitempty" json:"rest_after_sec,omitempty"`
}

// ProgressionRule is a v2 progression prescription. Kind selects the variant;
// the remaining fields are shared and validated per kind.
type ProgressionRule struct {
	Kind                  ProgressionKind `yaml:"type" json:"type"`
	WeightIncrementKG     *float64        `yaml:"weight_increment_kg,omitempty" json:"weight_increment_kg,omitempty"`
	WeightIncrementLB     *float64        `yaml:"weight_increment_lbs,omitempty" json:"weight_increment_lbs,omitempty"`
	RepsRange             *RepsRange      `yaml:"reps_range,omitempty" json:"reps_range,omitempty"`
	DeloadTriggerFailures *int            `yaml:"deload_trigger_failures,omitempty" json:"deload_trigger_failures,omitempty"`
	DeloadPercent         *float64        `yaml:"deload_percent,omitempty" json:"deload_percent,omitempty"`
	MaxWeightKG           *float64        `yaml:"max_weight_kg,omitempty" json:"max_weight_kg,omitempty"`
	MaxWeightLB           *float64        `yaml:"max_weight_lbs,omitempty" json:"max_weight_lbs,omitempty"`
	Notes                 *string         `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// RepsRange bounds a double-progression rep window.
type RepsRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}
