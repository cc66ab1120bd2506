package validate

import (
	"reflect"
	"testing"

	"pwf/schema"
)

func hasCode(diags []Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func codes(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestPlanMinimalValid(t *testing.T) {
	doc := []byte(`plan_version: 1
cycle:
  days:
    - exercises:
        - name: Push-ups
          modality: strength
`)
	result := Plan(doc)
	if !result.Valid {
		t.Fatalf("expected valid, got errors %v", result.Errors)
	}
	if !hasCode(result.Warnings, "PWF-P080") {
		t.Fatalf("expected missing-meta warning, got %v", codes(result.Warnings))
	}
	if !hasCode(result.Warnings, "PWF-P081") {
		t.Fatalf("expected strength sets/reps warning, got %v", codes(result.Warnings))
	}
	stats := result.Statistics
	if stats == nil {
		t.Fatal("expected statistics on valid plan")
	}
	if stats.TotalDays != 1 || stats.TotalExercises != 1 || stats.StrengthCount != 1 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
}

func TestPlanLoadingConflict(t *testing.T) {
	doc := []byte(`plan_version: 1
meta:
  title: Strength Block
cycle:
  days:
    - exercises:
        - name: Squat
          modality: strength
          target_sets: 3
          target_reps: 5
          target_load: "100kg"
          target_weight_percent: 85
          percent_of: 1rm
`)
	result := Plan(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0].Code != "PWF-P013" {
		t.Fatalf("expected exactly PWF-P013, got %v", codes(result.Errors))
	}
}

func TestPlanUnresolvedLibraryRef(t *testing.T) {
	doc := []byte(`plan_version: 2
meta:
  title: Hypertrophy
exercise_library:
  - id: squat
    name: Back Squat
    modality: strength
    default_sets: 3
    default_reps: 5
cycle:
  days:
    - exercises:
        - exercise_ref: bench
`)
	result := Plan(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-P032") {
		t.Fatalf("expected PWF-P032, got %v", codes(result.Errors))
	}
}

func TestPlanLibraryDefaultsSatisfyModalityTargets(t *testing.T) {
	doc := []byte(`plan_version: 2
meta:
  title: Hypertrophy
exercise_library:
  - id: squat
    name: Back Squat
    modality: strength
    default_sets: 3
    default_reps: 5
cycle:
  days:
    - exercises:
        - exercise_ref: squat
`)
	result := Plan(doc)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", codes(result.Errors))
	}
	if hasCode(result.Warnings, "PWF-P081") {
		t.Fatal("library defaults should satisfy the strength targets check")
	}
}

func TestPlanRefOnV1IsError(t *testing.T) {
	doc := []byte(`plan_version: 1
meta:
  title: Old Plan
cycle:
  days:
    - exercises:
        - exercise_ref: squat
`)
	result := Plan(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-P033") {
		t.Fatalf("expected PWF-P033, got %v", codes(result.Errors))
	}
}

func TestPlanProgressionChecks(t *testing.T) {
	doc := []byte(`plan_version: 2
meta:
  title: Linear Block
cycle:
  days:
    - exercises:
        - name: Deadlift
          modality: strength
          target_sets: 3
          target_reps: 5
          progression:
            type: linear
            weight_increment_kg: 2.5
            weight_increment_lbs: 5
            deload_percent: 40
`)
	result := Plan(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-P043") {
		t.Fatalf("expected PWF-P043 for dual increments, got %v", codes(result.Errors))
	}
	if !hasCode(result.Errors, "PWF-P050") {
		t.Fatalf("expected PWF-P050 for deload_percent out of range, got %v", codes(result.Errors))
	}
}

func TestPlanDuplicateDayOrder(t *testing.T) {
	doc := []byte(`plan_version: 1
meta:
  title: Split
cycle:
  days:
    - order: 1
      exercises:
        - name: Bench Press
          modality: strength
          target_sets: 3
          target_reps: 8
    - order: 1
      exercises:
        - name: Row
          modality: strength
          target_sets: 3
          target_reps: 8
`)
	result := Plan(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-P070") {
		t.Fatalf("expected PWF-P070, got %v", codes(result.Errors))
	}
}

func TestPlanLinkScheme(t *testing.T) {
	doc := []byte(`plan_version: 1
meta:
  title: Links
cycle:
  days:
    - exercises:
        - name: Plank
          modality: countdown
          target_duration_sec: 60
          link: ftp://example.com/plank
`)
	result := Plan(doc)
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasCode(result.Errors, "PWF-P020") {
		t.Fatalf("expected PWF-P020, got %v", codes(result.Errors))
	}
}

func TestPlanMalformedYAML(t *testing.T) {
	result := Plan([]byte("plan_version: [1"))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected a single parse diagnostic, got %v", result.Errors)
	}
	if result.Plan != nil {
		t.Fatal("expected no document on parse failure")
	}
}

func TestPlanRoundTripKeepsValidityAndStatistics(t *testing.T) {
	doc := []byte(`plan_version: 2
meta:
  title: Round Trip
  status: active
  activated_at: "2026-01-05T08:00:00Z"
exercise_library:
  - id: squat
    name: Back Squat
    modality: strength
    default_sets: 5
    default_reps: 5
cycle:
  days:
    - order: 1
      exercises:
        - exercise_ref: squat
        - name: Bike intervals
          modality: interval
          target_sets: 6
          target_duration_sec: 180
`)
	first := Plan(doc)
	if !first.Valid {
		t.Fatalf("expected valid, got %v", codes(first.Errors))
	}

	reserialized, err := schema.SerializePlan(first.Plan)
	if err != nil {
		t.Fatalf("serialize plan: %v", err)
	}
	second := Plan(reserialized)
	if !second.Valid {
		t.Fatalf("round trip lost validity: %v", codes(second.Errors))
	}
	if !reflect.DeepEqual(planStatsComparable(first.Statistics), planStatsComparable(second.Statistics)) {
		t.Fatalf("statistics changed across round trip: %+v vs %+v", first.Statistics, second.Statistics)
	}
}

// planStatsComparable strips the slice field so statistics compare by value.
func planStatsComparable(s *PlanStatistics) PlanStatistics {
	out := *s
	out.Equipment = nil
	return out
}
