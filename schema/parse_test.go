package schema

import (
	"bytes"
	"testing"
)

func TestParsePlanAbsentFieldsStayNil(t *testing.T) {
	plan, err := ParsePlan([]byte(`plan_version: 1
cycle:
  days:
    - exercises:
        - name: Push-ups
          modality: strength
`))
	if err != nil {
		t.Fatalf("ParsePlan error: %v", err)
	}
	if plan.Meta != nil {
		t.Fatal("absent meta must decode to nil")
	}
	ex := plan.Cycle.Days[0].Exercises[0]
	if ex.TargetSets != nil || ex.TargetLoad != nil || ex.Progression != nil {
		t.Fatalf("absent optionals must stay nil: %+v", ex)
	}
	if ex.Name == nil || *ex.Name != "Push-ups" {
		t.Fatalf("unexpected name %v", ex.Name)
	}
}

func TestParseHistoryRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseHistory([]byte("workouts: [")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSerializeHistoryDeterministic(t *testing.T) {
	doc := []byte(`history_version: 2
exported_at: "2026-03-01T10:00:00Z"
workouts:
  - date: "2026-02-28"
    exercises:
      - name: Row
        modality: interval
        sets:
          - set_number: 1
            duration_sec: 300
`)
	history, err := ParseHistory(doc)
	if err != nil {
		t.Fatalf("ParseHistory error: %v", err)
	}
	first, err := SerializeHistory(history)
	if err != nil {
		t.Fatalf("SerializeHistory error: %v", err)
	}
	second, err := SerializeHistory(history)
	if err != nil {
		t.Fatalf("SerializeHistory error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("serialization must be byte-for-byte stable")
	}

	reparsed, err := ParseHistory(first)
	if err != nil {
		t.Fatalf("reparse error: %v", err)
	}
	if reparsed.Workouts[0].Exercises[0].Name != "Row" {
		t.Fatal("round trip lost content")
	}
}

func TestEnumValidity(t *testing.T) {
	if !ModalityStrength.Valid() || Modality("yoga").Valid() {
		t.Fatal("modality validity broken")
	}
	if !SportRowing.Valid() || Sport("esports").Valid() {
		t.Fatal("sport validity broken")
	}
	if !StrokeIndividualMedley.Valid() || StrokeType("doggy_paddle").Valid() {
		t.Fatal("stroke validity broken")
	}
	if !DeviceBikeComputer.Valid() || DeviceType("scale").Valid() {
		t.Fatal("device type validity broken")
	}
}
