package schema

// Closed enumerations shared by Plan and History documents. Wire spellings
// are canonical lowercase; validators treat any other value as a diagnostic,
// not a parse failure.

// Modality is the shape of an exercise prescription.
type Modality string

const (
	ModalityStrength  Modality = "strength"
	ModalityCountdown Modality = "countdown"
	ModalityStopwatch Modality = "stopwatch"
	ModalityInterval  Modality = "interval"
)

// Valid reports whether m carries a known wire spelling.
func (m Modality) Valid() bool {
	switch m {
	case ModalityStrength, ModalityCountdown, ModalityStopwatch, ModalityInterval:
		return true
	}
	return false
}

// Sport is the broader activity category for completed work.
type Sport string

const (
	SportRunning  Sport = "running"
	SportCycling  Sport = "cycling"
	SportSwimming Sport = "swimming"
	SportRowing   Sport = "rowing"
	SportHiking   Sport = "hiking"
	SportWalking  Sport = "walking"
	SportStrength Sport = "strength"
	SportOther    Sport = "other"
)

func (s Sport) Valid() bool {
	switch s {
	case SportRunning, SportCycling, SportSwimming, SportRowing,
		SportHiking, SportWalking, SportStrength, SportOther:
		return true
	}
	return false
}

// StrokeType identifies a swimming stroke.
type StrokeType string

const (
	StrokeFreestyle        StrokeType = "freestyle"
	StrokeBackstroke       StrokeType = "backstroke"
	StrokeBreaststroke     StrokeType = "breaststroke"
	StrokeButterfly        StrokeType = "butterfly"
	StrokeDrill            StrokeType = "drill"
	StrokeMixed            StrokeType = "mixed"
	StrokeIndividualMedley StrokeType = "individual_medley"
)

func (s StrokeType) Valid() bool {
	switch s {
	case StrokeFreestyle, StrokeBackstroke, StrokeBreaststroke,
		StrokeButterfly, StrokeDrill, StrokeMixed, StrokeIndividualMedley:
		return true
	}
	return false
}

// SetType classifies a completed set.
type SetType string

const (
	SetWorking SetType = "working"
	SetWarmup  SetType = "warmup"
	SetDropset SetType = "dropset"
	SetFailure SetType = "failure"
	SetAmrap   SetType = "amrap"
)

func (s SetType) Valid() bool {
	switch s {
	case SetWorking, SetWarmup, SetDropset, SetFailure, SetAmrap:
		return true
	}
	return false
}

// RecordType classifies a personal record entry.
type RecordType string

const (
	Record1RM         RecordType = "1rm"
	Record3RM         RecordType = "3rm"
	Record5RM         RecordType = "5rm"
	Record10RM        RecordType = "10rm"
	RecordMaxReps     RecordType = "max_reps"
	RecordMaxDuration RecordType = "max_duration"
	RecordMaxDistance RecordType = "max_distance"
	RecordMaxWeight   RecordType = "max_weight"
)

func (r RecordType) Valid() bool {
	switch r {
	case Record1RM, Record3RM, Record5RM, Record10RM,
		RecordMaxReps, RecordMaxDuration, RecordMaxDistance, RecordMaxWeight:
		return true
	}
	return false
}

// WeightUnit is a default weight unit declaration.
type WeightUnit string

const (
	WeightKG WeightUnit = "kg"
	WeightLB WeightUnit = "lb"
)

func (w WeightUnit) Valid() bool {
	return w == WeightKG || w == WeightLB
}

// DistanceUnit is a default distance unit declaration.
type DistanceUnit string

const (
	DistanceMeters     DistanceUnit = "meters"
	DistanceKilometers DistanceUnit = "kilometers"
	DistanceMiles      DistanceUnit = "miles"
	DistanceFeet       DistanceUnit = "feet"
	DistanceYards      DistanceUnit = "yards"
)

func (d DistanceUnit) Valid() bool {
	switch d {
	case DistanceMeters, DistanceKilometers, DistanceMiles, DistanceFeet, DistanceYards:
		return true
	}
	return false
}

// PoolUnit is the unit of a pool length declaration.
type PoolUnit string

const (
	PoolMeters PoolUnit = "meters"
	PoolYards  PoolUnit = "yards"
)

func (p PoolUnit) Valid() bool {
	return p == PoolMeters || p == PoolYards
}

// PlanStatus is the lifecycle state of a plan.
type PlanStatus string

const (
	StatusDraft     PlanStatus = "draft"
	StatusActive    PlanStatus = "active"
	StatusCompleted PlanStatus = "completed"
	StatusArchived  PlanStatus = "archived"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Difficulty grades an exercise library entry.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// GroupType marks how grouped exercises are performed.
type GroupType string

const (
	GroupSuperset GroupType = "superset"
	GroupCircuit  GroupType = "circuit"
)

func (g GroupType) Valid() bool {
	return g == GroupSuperset || g == GroupCircuit
}

// PercentOf names the rep-max base for percentage loading.
type PercentOf string

const (
	PercentOf1RM  PercentOf = "1rm"
	PercentOf3RM  PercentOf = "3rm"
	PercentOf5RM  PercentOf = "5rm"
	PercentOf10RM PercentOf = "10rm"
)

func (p PercentOf) Valid() bool {
	switch p {
	case PercentOf1RM, PercentOf3RM, PercentOf5RM, PercentOf10RM:
		return true
	}
	return false
}

// ProgressionKind tags a progression rule variant.
type ProgressionKind string

const (
	ProgressionLinear            ProgressionKind = "linear"
	ProgressionDoubleProgression ProgressionKind = "double_progression"
)

func (p ProgressionKind) Valid() bool {
	return p == ProgressionLinear || p == ProgressionDoubleProgression
}

// DeviceType classifies a recording device.
type DeviceType string

const (
	DeviceWatch            DeviceType = "watch"
	DeviceBikeComputer     DeviceType = "bike_computer"
	DeviceHeartRateMonitor DeviceType = "heart_rate_monitor"
	DevicePowerMeter       DeviceType = "power_meter"
)

func (d DeviceType) Valid() bool {
	switch d {
	case DeviceWatch, DeviceBikeComputer, DeviceHeartRateMonitor, DevicePowerMeter:
		return true
	}
	return false
}
