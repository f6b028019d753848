package game

import (
	"math"
	"time"
)

// DamageKind classifies threats for mitigation and scaling purposes.
type DamageKind uint8

const (
	DamagePhysical DamageKind = iota
	DamageMagical
)

// String returns the wire name of the damage kind
func (k DamageKind) String() string {
	switch k {
	case DamagePhysical:
		return "physical"
	case DamageMagical:
		return "magical"
	default:
		return "unknown"
	}
}

// CommitmentTier buckets how heavily an actor has invested in one attribute
// relative to their total build. Tier thresholds are fractions of the build.
type CommitmentTier uint8

const (
	TierNone CommitmentTier = iota // below 30%
	TierLow                        // >= 30%
	TierMid                        // >= 45%
	TierHigh                       // >= 60%
)

// Tuning knobs for the derivation formulas. The shapes matter more than the
// exact values; all curves are anchored so a fresh actor with zero investment
// gets exactly neutral scalars (multiplier 1.0, mitigation 0.0).
const (
	axisReach     = 10.0 // derived value per axis point
	spectrumReach = 7.0  // derived value per spectrum point, per pole

	tierLowFraction  = 0.30
	tierMidFraction  = 0.45
	tierHighFraction = 0.60

	decayRatio          = 0.995 // diminishing returns base for scalar curves
	physicalDamageCoeff = 1.5
	magicalDamageCoeff  = 1.5
	reactionWindowCoeff = 1.2

	mitigationDivisor = 330.0
	// MaxMitigation caps passive damage reduction regardless of investment.
	MaxMitigation = 0.75

	// MinReactionWindowScale floors the defender window multiplier so threats
	// always leave some reaction time.
	MinReactionWindowScale = 0.25
	maxReactionWindowScale = 4.0

	baseHealthFlat       = 100.0
	vitalityHealthScalar = 3.8
	healthLevelK         = 0.01
	healthLevelP         = 1.1

	damageLevelK = 0.01
	damageLevelP = 0.5
	windowLevelK = 0.005
	windowLevelP = 0.5

	baseStaminaFlat       = 100.0
	staminaVitalityScalar = 0.3
	baseManaFlat          = 100.0
	manaFocusScalar       = 0.5
	manaPresenceScalar    = 0.3

	// StaminaRegenPerSecond and ManaRegenPerSecond are flat per-second regen
	// rates applied every tick.
	StaminaRegenPerSecond = 10.0
	ManaRegenPerSecond    = 8.0

	baseCritChance     = 0.05
	critInstinctScalar = 0.001
	maxCritChance      = 0.50
	// CritMultiplier scales outgoing damage when the attack-time roll crits.
	CritMultiplier = 1.5

	// MaxQueueSlots is the hard ceiling on reaction queue capacity.
	MaxQueueSlots = 4
)

// AttributePair is one bipolar attribute axis. Axis points push toward one
// pole at the other's expense, spectrum points widen both poles, and shift
// slides spectrum reach between them. Derived values never go negative.
type AttributePair struct {
	Axis     int8 `json:"axis"`
	Spectrum int8 `json:"spectrum"`
	Shift    int8 `json:"shift"`
}

// Forward returns the derived value of the pair's first-named pole.
func (p AttributePair) Forward() float64 {
	v := float64(p.Axis)*axisReach + float64(int(p.Spectrum)+int(p.Shift))*spectrumReach
	return math.Max(0, v)
}

// Reverse returns the derived value of the pair's second-named pole.
func (p AttributePair) Reverse() float64 {
	v := -float64(p.Axis)*axisReach + float64(int(p.Spectrum)-int(p.Shift))*spectrumReach
	return math.Max(0, v)
}

// invested returns the points spent on this pair. Shift re-allocates existing
// spectrum reach and costs nothing.
func (p AttributePair) invested() int {
	axis := int(p.Axis)
	if axis < 0 {
		axis = -axis
	}
	spectrum := int(p.Spectrum)
	if spectrum < 0 {
		spectrum = 0
	}
	return axis + spectrum
}

// Attributes is an actor's full build across the three bipolar pairs.
// The zero value is a neutral build: every derived scalar comes out at its
// baseline (damage x1.0, mitigation 0, window x1.0, capacity 1).
type Attributes struct {
	MightGrace       AttributePair `json:"mightGrace"`       // offense <-> evasion
	VitalityFocus    AttributePair `json:"vitalityFocus"`    // toughness <-> channeling
	InstinctPresence AttributePair `json:"instinctPresence"` // reaction <-> cadence
}

func (a Attributes) Might() float64    { return a.MightGrace.Forward() }
func (a Attributes) Grace() float64    { return a.MightGrace.Reverse() }
func (a Attributes) Vitality() float64 { return a.VitalityFocus.Forward() }
func (a Attributes) Focus() float64    { return a.VitalityFocus.Reverse() }
func (a Attributes) Instinct() float64 { return a.InstinctPresence.Forward() }
func (a Attributes) Presence() float64 { return a.InstinctPresence.Reverse() }

// TotalLevel is the number of points invested across all pairs.
func (a Attributes) TotalLevel() int {
	return a.MightGrace.invested() + a.VitalityFocus.invested() + a.InstinctPresence.invested()
}

// totalBudget is the summed derived reach of the whole build, used as the
// denominator for commitment tiers.
func (a Attributes) totalBudget() float64 {
	return a.Might() + a.Grace() + a.Vitality() + a.Focus() + a.Instinct() + a.Presence()
}

// tierFor buckets a single derived value against the build total.
func (a Attributes) tierFor(value float64) CommitmentTier {
	budget := a.totalBudget()
	if budget <= 0 {
		return TierNone
	}
	frac := value / budget
	switch {
	case frac >= tierHighFraction:
		return TierHigh
	case frac >= tierMidFraction:
		return TierMid
	case frac >= tierLowFraction:
		return TierLow
	default:
		return TierNone
	}
}

// levelMultiplier is the shared progression curve: (1 + level*k)^p.
// Exactly 1.0 at level zero.
func levelMultiplier(level int, k, p float64) float64 {
	if level <= 0 {
		return 1.0
	}
	return math.Pow(1+float64(level)*k, p)
}

// QueueCapacity returns the reaction queue slot count, driven by Focus
// commitment. Always within [1, MaxQueueSlots].
func (a Attributes) QueueCapacity() int {
	switch a.tierFor(a.Focus()) {
	case TierHigh:
		return 4
	case TierMid:
		return 3
	case TierLow:
		return 2
	default:
		return 1
	}
}

// EvasionChance returns the flat chance for an incoming strike to miss,
// driven by Grace commitment.
func (a Attributes) EvasionChance() float64 {
	switch a.tierFor(a.Grace()) {
	case TierHigh:
		return 0.30
	case TierMid:
		return 0.20
	case TierLow:
		return 0.10
	default:
		return 0
	}
}

// CadenceInterval returns the delay between automatic attacks, driven by
// Presence commitment.
func (a Attributes) CadenceInterval() time.Duration {
	switch a.tierFor(a.Presence()) {
	case TierHigh:
		return 750 * time.Millisecond
	case TierMid:
		return 1000 * time.Millisecond
	case TierLow:
		return 1500 * time.Millisecond
	default:
		return 2000 * time.Millisecond
	}
}

// OutgoingDamageMultiplier scales damage at attack time. Might drives
// physical, Focus drives magical. Neutral builds get exactly 1.0.
func (a Attributes) OutgoingDamageMultiplier(kind DamageKind) float64 {
	var attr, coeff float64
	switch kind {
	case DamageMagical:
		attr, coeff = a.Focus(), magicalDamageCoeff
	default:
		attr, coeff = a.Might(), physicalDamageCoeff
	}
	scaled := 1 + coeff*(1-math.Pow(decayRatio, attr))
	scaled *= levelMultiplier(a.TotalLevel(), damageLevelK, damageLevelP)
	return clamp(scaled, 0.1, 10)
}

// PassiveMitigation returns the fraction of incoming damage absorbed at
// resolution time. Vitality mitigates physical, Focus mitigates magical.
// Capped at MaxMitigation for any input.
func (a Attributes) PassiveMitigation(kind DamageKind) float64 {
	var attr float64
	switch kind {
	case DamageMagical:
		attr = a.Focus()
	default:
		attr = a.Vitality()
	}
	return clamp(attr/mitigationDivisor, 0, MaxMitigation)
}

// ReactionWindowMultiplier scales the base reaction window for threats
// entering this defender's queue. The multiplier is frozen into each threat
// at insertion. Neutral builds get exactly 1.0.
func (a Attributes) ReactionWindowMultiplier() float64 {
	scaled := 1 + reactionWindowCoeff*(1-math.Pow(decayRatio, a.Instinct()))
	scaled *= levelMultiplier(a.TotalLevel(), windowLevelK, windowLevelP)
	return clamp(scaled, MinReactionWindowScale, maxReactionWindowScale)
}

// CritChance returns the attack-time critical roll chance.
func (a Attributes) CritChance() float64 {
	return clamp(baseCritChance+a.Instinct()*critInstinctScalar, 0, maxCritChance)
}

// MaxHealth derives the health pool ceiling from Vitality and overall level.
func (a Attributes) MaxHealth() float64 {
	return (baseHealthFlat + a.Vitality()*vitalityHealthScalar) *
		levelMultiplier(a.TotalLevel(), healthLevelK, healthLevelP)
}

// MaxStamina derives the stamina pool ceiling.
func (a Attributes) MaxStamina() float64 {
	return baseStaminaFlat + a.Might() + a.Vitality()*staminaVitalityScalar
}

// MaxMana derives the mana pool ceiling.
func (a Attributes) MaxMana() float64 {
	return baseManaFlat + a.Focus()*manaFocusScalar + a.Presence()*manaPresenceScalar
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
