package validate

import (
	"fmt"
	"sort"
	"strings"

	"pwf/schema"
)

const (
	maxGlossaryEntries = 100
	maxGlossaryTerm    = 50
	maxGlossaryDef     = 500
	maxLibraryEntries  = 500
	maxLibraryName     = 100
	maxLibraryDesc     = 500
	maxTitleLen        = 80
	maxGroupIDLen      = 50
)

// Plan validates a Plan document given as YAML text. A parse failure yields a
// single error diagnostic at the document root.
func Plan(doc []byte) PlanResult {
	plan, err := schema.ParsePlan(doc)
	if err != nil {
		return PlanResult{
			Errors: []Diagnostic{{
				Path:     "",
				Message:  err.Error(),
				Severity: SeverityError,
			}},
			Warnings: []Diagnostic{},
		}
	}
	return PlanDocument(plan)
}

// PlanDocument validates an already-parsed Plan.
func PlanDocument(plan *schema.Plan) PlanResult {
	c := &collector{}

	isV2 := plan.PlanVersion == 2
	if plan.PlanVersion != 1 && plan.PlanVersion != 2 {
		c.errorf("plan_version", "PWF-P090", "unsupported plan_version %d (expected 1 or 2)", plan.PlanVersion)
	}

	if plan.Meta == nil {
		c.warnf("meta", "PWF-P080", "plan has no meta block; title and status are recommended")
	} else {
		validateMeta(c, plan.Meta)
	}

	validateGlossary(c, plan.Glossary)

	libByID := validateLibrary(c, plan, isV2)

	if len(plan.Cycle.Days) == 0 {
		c.errorf("cycle.days", "PWF-P071", "cycle must contain at least one day")
	}

	exerciseNames := collectExerciseNames(plan)

	seenOrders := map[int][]int{}
	for i, day := range plan.Cycle.Days {
		if day.Order != nil {
			seenOrders[*day.Order] = append(seenOrders[*day.Order], i)
		}
	}

	for i := range plan.Cycle.Days {
		day := &plan.Cycle.Days[i]
		dayPath := fmt.Sprintf("cycle.days[%d]", i)

		if day.Order != nil && len(seenOrders[*day.Order]) > 1 {
			c.errorf(dayPath+".order", "PWF-P070", "duplicate day order %d", *day.Order)
		}
		if day.Date != nil {
			if _, ok := parseDate(*day.Date); !ok {
				c.errorf(dayPath+".date", "PWF-P079", "scheduled date %q is not YYYY-MM-DD", *day.Date)
			}
		}
		if len(day.Exercises) == 0 {
			c.errorf(dayPath+".exercises", "PWF-P072", "day must contain at least one exercise")
		}

		for j := range day.Exercises {
			ex := &day.Exercises[j]
			exPath := fmt.Sprintf("%s.exercises[%d]", dayPath, j)
			validatePlanExercise(c, ex, exPath, isV2, libByID, exerciseNames)
		}
	}

	result := PlanResult{
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
		result.Plan = plan
		result.Statistics = planStatistics(plan, libByID)
	}
	return result
}

func validateMeta(c *collector, meta *schema.PlanMeta) {
	if meta.Title == nil || strings.TrimSpace(*meta.Title) == "" {
		c.errorf("meta.title", "PWF-P073", "meta.title is required when meta is present")
	} else if len(*meta.Title) > maxTitleLen {
		c.errorf("meta.title", "PWF-P074", "meta.title exceeds %d characters (got %d)", maxTitleLen, len(*meta.Title))
	}

	if meta.Status != "" && !meta.Status.Valid() {
		c.errorf("meta.status", "PWF-P075", "unknown status %q", meta.Status)
	}

	var activated, completed string
	if meta.ActivatedAt != nil {
		activated = *meta.ActivatedAt
		if _, ok := parseTimestamp(activated); !ok {
			c.errorf("meta.activated_at", "PWF-P001", "activated_at %q is not an ISO-8601 datetime with timezone", activated)
		}
	}
	if meta.CompletedAt != nil {
		completed = *meta.CompletedAt
		if _, ok := parseTimestamp(completed); !ok {
			c.errorf("meta.completed_at", "PWF-P002", "completed_at %q is not an ISO-8601 datetime with timezone", completed)
		}
	}
	if meta.Status == schema.StatusActive && meta.ActivatedAt == nil {
		c.warnf("meta.activated_at", "PWF-P003", "status is active but activated_at is not set")
	}
	if meta.Status == schema.StatusCompleted && meta.CompletedAt == nil {
		c.warnf("meta.completed_at", "PWF-P004", "status is completed but completed_at is not set")
	}
	if activated != "" && completed != "" {
		at, okA := parseTimestamp(activated)
		ct, okC := parseTimestamp(completed)
		if okA && okC && !at.Before(ct) {
			c.errorf("meta.activated_at", "PWF-P005", "activated_at must precede completed_at")
		}
	}
}

func validateGlossary(c *collector, glossary map[string]string) {
	if len(glossary) == 0 {
		return
	}
	if len(glossary) > maxGlossaryEntries {
		c.errorf("glossary", "PWF-P006", "glossary has %d entries (maximum %d)", len(glossary), maxGlossaryEntries)
	}

	terms := make([]string, 0, len(glossary))
	for term := range glossary {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		path := fmt.Sprintf("glossary[%q]", term)
		if len(term) < 1 || len(term) > maxGlossaryTerm {
			c.errorf(path, "PWF-P007", "glossary term must be 1-%d characters (got %d)", maxGlossaryTerm, len(term))
		}
		if !validGlossaryTerm(term) {
			c.errorf(path, "PWF-P008", "glossary term %q contains characters outside letters, digits, space, hyphen, apostrophe", term)
		}
		def := glossary[term]
		if strings.TrimSpace(def) == "" {
			c.errorf(path, "PWF-P009", "glossary definition is empty")
		} else if len(def) > maxGlossaryDef {
			c.errorf(path, "PWF-P010", "glossary definition exceeds %d characters (got %d)", maxGlossaryDef, len(def))
		}
	}
}

func validGlossaryTerm(term string) bool {
	for _, r := range term {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '\'':
		default:
			return false
		}
	}
	return term != ""
}

func validateLibrary(c *collector, plan *schema.Plan, isV2 bool) map[string]*schema.ExerciseLibraryEntry {
	byID := map[string]*schema.ExerciseLibraryEntry{}
	if len(plan.ExerciseLibrary) == 0 {
		return byID
	}
	if !isV2 {
		c.warnf("exercise_library", "PWF-P038", "exercise_library is a v2 feature; plan_version is %d", plan.PlanVersion)
	}
	if len(plan.ExerciseLibrary) > maxLibraryEntries {
		c.errorf("exercise_library", "PWF-P037", "exercise_library has %d entries (maximum %d)", len(plan.ExerciseLibrary), maxLibraryEntries)
	}

	for i := range plan.ExerciseLibrary {
		entry := &plan.ExerciseLibrary[i]
		path := fmt.Sprintf("exercise_library[%d]", i)

		if !validIdentifier(entry.ID) {
			c.errorf(path+".id", "PWF-P034", "library id %q must be non-empty alphanumeric with '-' or '_'", entry.ID)
		}
		if _, dup := byID[entry.ID]; dup && entry.ID != "" {
			c.errorf(path+".id", "PWF-P035", "duplicate library id %q", entry.ID)
		} else {
			byID[entry.ID] = entry
		}
		if strings.TrimSpace(entry.Name) == "" {
			c.errorf(path+".name", "PWF-P036", "library entry name is required")
		} else if len(entry.Name) > maxLibraryName {
			c.errorf(path+".name", "PWF-P036", "library entry name exceeds %d characters (got %d)", maxLibraryName, len(entry.Name))
		}
		if entry.Description != nil && len(*entry.Description) > maxLibraryDesc {
			c.errorf(path+".description", "PWF-P039", "library entry description exceeds %d characters", maxLibraryDesc)
		}
		if entry.Modality != "" && !entry.Modality.Valid() {
			c.errorf(path+".modality", "PWF-P078", "unknown modality %q", entry.Modality)
		}
		if entry.Difficulty != "" && !entry.Difficulty.Valid() {
			c.errorf(path+".difficulty", "PWF-P039", "unknown difficulty %q", entry.Difficulty)
		}
	}
	return byID
}

func validIdentifier(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func collectExerciseNames(plan *schema.Plan) map[string]bool {
	names := map[string]bool{}
	for _, day := range plan.Cycle.Days {
		for _, ex := range day.Exercises {
			if ex.Name != nil {
				names[strings.ToLower(strings.TrimSpace(*ex.Name))] = true
			}
		}
	}
	for _, entry := range plan.ExerciseLibrary {
		names[strings.ToLower(strings.TrimSpace(entry.Name))] = true
	}
	return names
}

func validatePlanExercise(c *collector, ex *schema.PlanExercise, path string, isV2 bool, lib map[string]*schema.ExerciseLibraryEntry, names map[string]bool) {
	hasRef := ex.ExerciseRef != nil && *ex.ExerciseRef != ""

	if hasRef && !isV2 {
		c.errorf(path+".exercise_ref", "PWF-P033", "exercise_ref is a v2 feature")
	}
	if hasRef && isV2 {
		if _, ok := lib[*ex.ExerciseRef]; !ok {
			c.errorf(path+".exercise_ref", "PWF-P032", "exercise_ref %q does not resolve to an exercise_library entry", *ex.ExerciseRef)
		}
	}

	if ex.Modality != "" && !ex.Modality.Valid() {
		c.errorf(path+".modality", "PWF-P078", "unknown modality %q", ex.Modality)
	}

	switch {
	case !hasRef && ex.Modality == "":
		if isV2 {
			c.errorf(path, "PWF-P030", "exercise must carry a modality or an exercise_ref")
		} else {
			c.errorf(path+".modality", "PWF-P077", "modality is required")
		}
	case hasRef && ex.Modality != "":
		c.warnf(path, "PWF-P031", "both modality and exercise_ref set; the library entry wins for required fields")
	}

	if !hasRef && (ex.Name == nil || strings.TrimSpace(*ex.Name) == "") {
		if isV2 {
			c.warnf(path+".name", "PWF-P076", "exercise has no name; it will resolve as \"Unnamed Exercise\"")
		} else {
			c.errorf(path+".name", "PWF-P076", "exercise name is required without exercise_ref")
		}
	}

	validateLoading(c, ex, path, names)
	validateGrouping(c, ex, path)
	validateTargets(c, ex, path)
	validateProgression(c, ex, path, isV2)
	validateLinks(c, ex, path)
	validateModalityTargets(c, ex, path, lib)
}

func validateLoading(c *collector, ex *schema.PlanExercise, path string, names map[string]bool) {
	hasPercent := ex.TargetWeightPercent != nil
	hasBase := ex.PercentOf != ""
	hasLoad := ex.TargetLoad != nil && strings.TrimSpace(*ex.TargetLoad) != ""

	if hasPercent && !hasBase {
		c.errorf(path+".target_weight_percent", "PWF-P011", "target_weight_percent requires percent_of")
	}
	if hasBase && !hasPercent {
		c.errorf(path+".percent_of", "PWF-P012", "percent_of requires target_weight_percent")
	}
	if hasLoad && (hasPercent || hasBase) {
		c.errorf(path+".target_load", "PWF-P013", "target_load and percentage loading are mutually exclusive")
	}
	if hasPercent && (*ex.TargetWeightPercent < 0 || *ex.TargetWeightPercent > 200) {
		c.errorf(path+".target_weight_percent", "PWF-P014", "target_weight_percent %.1f is outside 0-200", *ex.TargetWeightPercent)
	}
	if hasBase && !ex.PercentOf.Valid() {
		c.errorf(path+".percent_of", "PWF-P015", "unknown percent_of %q (expected 1rm, 3rm, 5rm or 10rm)", ex.PercentOf)
	}
	if ex.ReferenceExercise != nil {
		key := strings.ToLower(strings.TrimSpace(*ex.ReferenceExercise))
		if !names[key] {
			c.warnf(path+".reference_exercise", "PWF-P016", "reference_exercise %q does not match any exercise name", *ex.ReferenceExercise)
		}
	}
}

func validateGrouping(c *collector, ex *schema.PlanExercise, path string) {
	hasGroup := ex.Group != nil && *ex.Group != ""
	hasType := ex.GroupType != ""

	if hasGroup && !hasType {
		c.errorf(path+".group", "PWF-P017", "group requires group_type")
	}
	if hasType && !hasGroup {
		c.errorf(path+".group_type", "PWF-P018", "group_type requires group")
	}
	if hasType && !ex.GroupType.Valid() {
		c.errorf(path+".group_type", "PWF-P018", "unknown group_type %q (expected superset or circuit)", ex.GroupType)
	}
	if hasGroup {
		id := *ex.Group
		if len(id) > maxGroupIDLen || !validIdentifier(id) {
			c.errorf(path+".group", "PWF-P019", "group id %q must be 1-%d characters of [A-Za-z0-9_-]", id, maxGroupIDLen)
		}
	}
}

func validateTargets(c *collector, ex *schema.PlanExercise, path string) {
	checkNonNegativeInt := func(v *int, field string) {
		if v != nil && *v < 0 {
			c.errorf(path+"."+field, "PWF-P023", "%s must not be negative (got %d)", field, *v)
		}
	}
	checkNonNegativeInt(ex.TargetSets, "target_sets")
	checkNonNegativeInt(ex.TargetReps, "target_reps")
	checkNonNegativeInt(ex.TargetDurationSec, "target_duration_sec")
	if ex.TargetDistanceM != nil && *ex.TargetDistanceM < 0 {
		c.errorf(path+".target_distance_meters", "PWF-P023", "target_distance_meters must not be negative")
	}
	checkNonNegativeInt(ex.RestBetweenSetsSec, "rest_between_sets_sec")
	checkNonNegativeInt(ex.RestAfterSec, "rest_after_sec")
}

func validateLinks(c *collector, ex *schema.PlanExercise, path string) {
	if ex.Link != nil {
		link := *ex.Link
		switch {
		case strings.HasPrefix(link, "https://"):
		case strings.HasPrefix(link, "http://"):
			c.warnf(path+".link", "PWF-P021", "link uses http://; https:// is required for new documents")
		default:
			c.errorf(path+".link", "PWF-P020", "link must start with https://")
		}
	}
	if ex.Image != nil && !strings.HasPrefix(*ex.Image, "https://") {
		c.warnf(path+".image", "PWF-P022", "image URL should start with https://")
	}
}

// validateModalityTargets emits soft warnings when targets the modality
// normally uses are absent. Library defaults satisfy the check.
func validateModalityTargets(c *collector, ex *schema.PlanExercise, path string, lib map[string]*schema.ExerciseLibraryEntry) {
	modality := ex.Modality
	sets := ex.TargetSets
	reps := ex.TargetReps
	duration := ex.TargetDurationSec

	if ex.ExerciseRef != nil {
		if entry, ok := lib[*ex.ExerciseRef]; ok {
			if modality == "" {
				modality = entry.Modality
			}
			if sets == nil {
				sets = entry.DefaultSets
			}
			if reps == nil {
				reps = entry.DefaultReps
			}
			if duration == nil {
				duration = entry.DefaultDurationSec
			}
		}
	}

	switch modality {
	case schema.ModalityStrength:
		if sets == nil || reps == nil {
			c.warnf(path, "PWF-P081", "strength exercise without target_sets and target_reps")
		}
	case schema.ModalityCountdown:
		if duration == nil {
			c.warnf(path, "PWF-P082", "countdown exercise without target_duration_sec")
		}
	case schema.ModalityInterval:
		if sets == nil {
			c.warnf(path, "PWF-P083", "interval exercise without target_sets")
		}
	}
}

func planStatistics(plan *schema.Plan, lib map[string]*schema.ExerciseLibraryEntry) *PlanStatistics {
	stats := &PlanStatistics{TotalDays: len(plan.Cycle.Days)}
	for _, day := range plan.Cycle.Days {
		for _, ex := range day.Exercises {
			stats.TotalExercises++
			modality := ex.Modality
			if modality == "" && ex.ExerciseRef != nil {
				if entry, ok := lib[*ex.ExerciseRef]; ok {
					modality = entry.Modality
				}
			}
			switch modality {
			case schema.ModalityStrength:
				stats.StrengthCount++
			case schema.ModalityCountdown:
				stats.CountdownCount++
			case schema.ModalityStopwatch:
				stats.StopwatchCount++
			case schema.ModalityInterval:
				stats.IntervalCount++
			}
		}
	}
	if plan.Meta != nil {
		stats.Equipment = append([]string(nil), plan.Meta.Equipment...)
	}
	return stats
}
