package game

import (
	"sort"
	"time"
)

// AbilityID identifies an ability on the wire and in the catalog.
type AbilityID string

const (
	AbilityAutoAttack AbilityID = "auto_attack"
	AbilityLunge      AbilityID = "lunge"
	AbilityOverpower  AbilityID = "overpower"
	AbilityKnockback  AbilityID = "knockback"
	AbilityDeflect    AbilityID = "deflect"
	AbilityCounter    AbilityID = "counter"
	AbilityWard       AbilityID = "ward"
	AbilityVolley     AbilityID = "volley"

	// AbilityDismiss is not a real ability: it is the always-available queue
	// operation that accepts the front threat at full damage. No cost, no
	// recovery, usable even while locked out.
	AbilityDismiss AbilityID = "dismiss"
)

// EffectKind describes what an ability does when it executes.
type EffectKind uint8

const (
	EffectStrike       EffectKind = iota // queue a threat on the target
	EffectClearFront                     // remove front threats, no damage
	EffectClearByKind                    // remove all threats of one kind, no damage
	EffectReflect                        // remove front threat and send it back
	EffectDismiss                        // resolve front threat unmitigated
)

// Ability is one catalog entry. BaseDamage and Kind only apply to strike and
// reflect effects; ClearCount only to front-clearing effects.
type Ability struct {
	ID          AbilityID     `json:"id"`
	Name        string        `json:"name"`
	Recovery    time.Duration `json:"-"`
	RecoveryMs  int64         `json:"recoveryMs"`
	StaminaCost float64       `json:"staminaCost"`
	ManaCost    float64       `json:"manaCost"`
	BaseDamage  float64       `json:"baseDamage"`
	Kind        DamageKind    `json:"-"`
	KindName    string        `json:"kind"`
	Effect      EffectKind    `json:"-"`
	ClearCount  int           `json:"-"`
}

func makeAbility(id AbilityID, name string, recovery time.Duration, stamina, mana, damage float64, kind DamageKind, effect EffectKind, clearCount int) Ability {
	return Ability{
		ID:          id,
		Name:        name,
		Recovery:    recovery,
		RecoveryMs:  recovery.Milliseconds(),
		StaminaCost: stamina,
		ManaCost:    mana,
		BaseDamage:  damage,
		Kind:        kind,
		KindName:    kind.String(),
		Effect:      effect,
		ClearCount:  clearCount,
	}
}

var abilityCatalog = map[AbilityID]Ability{
	AbilityAutoAttack: makeAbility(AbilityAutoAttack, "Auto Attack", 0, 0, 0, 10, DamagePhysical, EffectStrike, 0),
	AbilityLunge:      makeAbility(AbilityLunge, "Lunge", 1000*time.Millisecond, 20, 0, 15, DamagePhysical, EffectStrike, 0),
	AbilityOverpower:  makeAbility(AbilityOverpower, "Overpower", 2000*time.Millisecond, 35, 0, 40, DamagePhysical, EffectStrike, 0),
	AbilityKnockback:  makeAbility(AbilityKnockback, "Knockback", 500*time.Millisecond, 15, 0, 10, DamagePhysical, EffectStrike, 0),
	AbilityDeflect:    makeAbility(AbilityDeflect, "Deflect", 1000*time.Millisecond, 10, 0, 0, DamagePhysical, EffectClearFront, 1),
	AbilityCounter:    makeAbility(AbilityCounter, "Counter", 1500*time.Millisecond, 25, 0, 0, DamagePhysical, EffectReflect, 1),
	AbilityWard:       makeAbility(AbilityWard, "Ward", 1000*time.Millisecond, 0, 20, 0, DamageMagical, EffectClearByKind, 0),
	AbilityVolley:     makeAbility(AbilityVolley, "Volley", 3000*time.Millisecond, 0, 30, 30, DamageMagical, EffectStrike, 0),
	AbilityDismiss:    makeAbility(AbilityDismiss, "Dismiss", 0, 0, 0, 0, DamagePhysical, EffectDismiss, 0),
}

// GetAbility looks up a catalog entry by ID.
func GetAbility(id AbilityID) (Ability, bool) {
	ab, ok := abilityCatalog[id]
	return ab, ok
}

// AllAbilities returns the catalog sorted by ID for stable API responses.
func AllAbilities() []Ability {
	out := make([]Ability, 0, len(abilityCatalog))
	for _, ab := range abilityCatalog {
		out = append(out, ab)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SynergyRule opens an early-unlock window: using Trigger lets Unlocks be
// used once the triggering recovery has at most Reduction remaining.
type SynergyRule struct {
	Trigger   AbilityID
	Unlocks   AbilityID
	Reduction time.Duration
}

var synergyRules = []SynergyRule{
	{Trigger: AbilityLunge, Unlocks: AbilityOverpower, Reduction: 500 * time.Millisecond},
	{Trigger: AbilityOverpower, Unlocks: AbilityKnockback, Reduction: 1000 * time.Millisecond},
	{Trigger: AbilityDeflect, Unlocks: AbilityCounter, Reduction: 750 * time.Millisecond},
}

// SynergiesFor returns the rules triggered by using the given ability.
func SynergiesFor(trigger AbilityID) []SynergyRule {
	var out []SynergyRule
	for _, rule := range synergyRules {
		if rule.Trigger == trigger {
			out = append(out, rule)
		}
	}
	return out
}

// RejectReason is the typed refusal sent back when an ability request fails
// validation. Every reason is a normal gameplay outcome, not a server error.
type RejectReason string

const (
	ReasonDead                RejectReason = "dead"
	ReasonOnRecovery          RejectReason = "on-recovery"
	ReasonSynergyLocked       RejectReason = "synergy-locked"
	ReasonInsufficientStamina RejectReason = "insufficient-stamina"
	ReasonInsufficientMana    RejectReason = "insufficient-mana"
	ReasonInvalidTarget       RejectReason = "invalid-target"
	ReasonUnknownActor        RejectReason = "unknown-actor"
	ReasonUnknownAbility      RejectReason = "unknown-ability"
)

// AbilityError carries the rejection reason for a refused ability request.
type AbilityError struct {
	Reason RejectReason
}

func (e *AbilityError) Error() string {
	return "ability rejected: " + string(e.Reason)
}

func rejectErr(reason RejectReason) *AbilityError {
	return &AbilityError{Reason: reason}
}
