package validate

import (
	"pwf/schema"
)

// validateProgression covers the PWF-P04x/P05x progression-rule codes. Rules
// are independent: every applicable code is emitted, in walk order.
func validateProgression(c *collector, ex *schema.PlanExercise, path string, isV2 bool) {
	rule := ex.Progression
	if rule == nil {
		return
	}
	rulePath := path + ".progression"

	if !isV2 {
		c.warnf(rulePath, "PWF-P040", "progression rules are a v2 feature; they are ignored on v1 plans")
	}
	if ex.Modality != "" && ex.Modality != schema.ModalityStrength {
		c.warnf(rulePath, "PWF-P041", "progression rules on %s modality have no effect", ex.Modality)
	}

	if !rule.Kind.Valid() {
		c.errorf(rulePath+".type", "PWF-P042", "unknown progression type %q (expected linear or double_progression)", rule.Kind)
	}

	hasKG := rule.WeightIncrementKG != nil
	hasLB := rule.WeightIncrementLB != nil
	if hasKG && hasLB {
		c.errorf(rulePath, "PWF-P043", "weight_increment_kg and weight_increment_lbs are mutually exclusive")
	}
	if rule.Kind == schema.ProgressionLinear && !hasKG && !hasLB {
		c.warnf(rulePath, "PWF-P044", "linear progression without a weight increment")
	}
	if hasKG && *rule.WeightIncrementKG <= 0 {
		c.errorf(rulePath+".weight_increment_kg", "PWF-P045", "weight increment must be positive")
	}
	if hasLB && *rule.WeightIncrementLB <= 0 {
		c.errorf(rulePath+".weight_increment_lbs", "PWF-P045", "weight increment must be positive")
	}

	if rule.RepsRange != nil {
		rr := rule.RepsRange
		if rr.Min < 1 {
			c.errorf(rulePath+".reps_range.min", "PWF-P046", "reps_range.min must be at least 1 (got %d)", rr.Min)
		}
		if rr.Min >= rr.Max {
			c.errorf(rulePath+".reps_range", "PWF-P047", "reps_range.min must be less than reps_range.max (%d >= %d)", rr.Min, rr.Max)
		}
		if rule.Kind == schema.ProgressionLinear {
			c.warnf(rulePath+".reps_range", "PWF-P048", "reps_range has no effect on a linear rule")
		}
	} else if rule.Kind == schema.ProgressionDoubleProgression {
		c.warnf(rulePath, "PWF-P049", "double_progression without reps_range")
	}

	if rule.DeloadPercent != nil {
		if *rule.DeloadPercent < 50 || *rule.DeloadPercent > 100 {
			c.errorf(rulePath+".deload_percent", "PWF-P050", "deload_percent %.1f is outside 50-100", *rule.DeloadPercent)
		}
		if rule.DeloadTriggerFailures == nil {
			c.warnf(rulePath+".deload_percent", "PWF-P052", "deload_percent without deload_trigger_failures")
		}
	}
	if rule.DeloadTriggerFailures != nil {
		if *rule.DeloadTriggerFailures < 1 {
			c.errorf(rulePath+".deload_trigger_failures", "PWF-P051", "deload_trigger_failures must be at least 1")
		}
		if rule.DeloadPercent == nil {
			c.warnf(rulePath+".deload_trigger_failures", "PWF-P055", "deload_trigger_failures without deload_percent")
		}
	}

	if rule.MaxWeightKG != nil && rule.MaxWeightLB != nil {
		c.errorf(rulePath, "PWF-P053", "max_weight_kg and max_weight_lbs are mutually exclusive")
	}
	if rule.MaxWeightKG != nil && *rule.MaxWeightKG <= 0 {
		c.errorf(rulePath+".max_weight_kg", "PWF-P054", "weight cap must be positive")
	}
	if rule.MaxWeightLB != nil && *rule.MaxWeightLB <= 0 {
		c.errorf(rulePath+".max_weight_lbs", "PWF-P054", "weight cap must be positive")
	}
}
