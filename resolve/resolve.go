// Package resolve merges a prescribed plan exercise against its library
// entry into a single effective view. Resolution is pure and never mutates
// its inputs.
package resolve

import "pwf/schema"

// ResolvedExercise is the effective prescription for one exercise after
// plan fields are merged over library defaults. Plan values win field by
// field; absent fields stay nil.
type ResolvedExercise struct {
	Name        string
	Description *string
	Modality    schema.Modality

	Sets        *int
	Reps        *int
	DurationSec *int
	DistanceM   *float64

	TargetLoad          *string
	TargetWeightPercent *float64
	PercentOf           schema.PercentOf
	ReferenceExercise   *string

	Equipment    []string
	MuscleGroups []string
	Difficulty   schema.Difficulty
	Cues         []string
	TargetNotes  *string
	Link         *string
	Image        *string

	Progression *schema.ProgressionRule

	RestBetweenSetsSec *int
	RestAfterSec       *int
}

// Exercise resolves a plan exercise against the plan's exercise library.
// With an exercise_ref it returns nil when the id is unknown; without one
// it returns nil unless the exercise carries its own modality.
func Exercise(ex *schema.PlanExercise, library []schema.ExerciseLibraryEntry) *ResolvedExercise {
	if ex == nil {
		return nil
	}
	if ex.ExerciseRef != nil {
		entry := lookup(library, *ex.ExerciseRef)
		if entry == nil {
			return nil
		}
		return merge(ex, entry)
	}
	if !ex.Modality.Valid() {
		return nil
	}
	r := merge(ex, nil)
	if r.Name == "" {
		r.Name = "Unnamed Exercise"
	}
	return r
}

// lookup scans linearly; the library is capped small enough that an index
// is not worth building per call.
func lookup(library []schema.ExerciseLibraryEntry, id string) *schema.ExerciseLibraryEntry {
	for i := range library {
		if library[i].ID == id {
			return &library[i]
		}
	}
	return nil
}

func merge(ex *schema.PlanExercise, entry *schema.ExerciseLibraryEntry) *ResolvedExercise {
	r := &ResolvedExercise{
		Modality:            ex.Modality,
		Sets:                ex.TargetSets,
		Reps:                ex.TargetReps,
		DurationSec:         ex.TargetDurationSec,
		DistanceM:           ex.TargetDistanceM,
		TargetLoad:          ex.TargetLoad,
		TargetWeightPercent: ex.TargetWeightPercent,
		PercentOf:           ex.PercentOf,
		ReferenceExercise:   ex.ReferenceExercise,
		Cues:                ex.Cues,
		TargetNotes:         ex.TargetNotes,
		Link:                ex.Link,
		Image:               ex.Image,
		Progression:         ex.Progression,
		RestBetweenSetsSec:  ex.RestBetweenSetsSec,
		RestAfterSec:        ex.RestAfterSec,
	}
	if ex.Name != nil {
		r.Name = *ex.Name
	}

	if entry == nil {
		return r
	}

	if r.Name == "" {
		r.Name = entry.Name
	}
	r.Description = entry.Description
	if r.Modality == "" {
		r.Modality = entry.Modality
	}
	if r.Sets == nil {
		r.Sets = entry.DefaultSets
	}
	if r.Reps == nil {
		r.Reps = entry.DefaultReps
	}
	if r.DurationSec == nil {
		r.DurationSec = entry.DefaultDurationSec
	}
	if r.DistanceM == nil {
		r.DistanceM = entry.DefaultDistanceM
	}
	if len(r.Cues) == 0 {
		r.Cues = entry.Cues
	}
	r.Equipment = entry.Equipment
	r.MuscleGroups = entry.MuscleGroups
	r.Difficulty = entry.Difficulty
	return r
}
