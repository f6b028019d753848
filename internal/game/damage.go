package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// The damage pipeline runs in two phases. Phase 1 happens when the attack is
// made: attacker-side scaling and the crit roll are baked into the threat
// before it enters the defender's queue. Phase 2 happens when the threat
// resolves: defender-side mitigation is read at that moment and applied to
// the frozen amount. Dismissed threats skip phase 2 mitigation entirely.

// GenerateThreat runs phase 1. It never fails: the result is always a valid
// threat ready for queue insertion. The reaction window is the base window
// scaled by the defender's current multiplier, frozen here for the threat's
// whole lifetime.
func GenerateThreat(rng *rand.Rand, attacker, defender *Actor, ab Ability, baseWindow, now time.Duration) QueuedThreat {
	amount := ab.BaseDamage * attacker.Attributes.OutgoingDamageMultiplier(ab.Kind)
	critical := rng.Float64() < attacker.Attributes.CritChance()
	if critical {
		amount *= CritMultiplier
	}
	window := time.Duration(float64(baseWindow) * defender.Attributes.ReactionWindowMultiplier())
	if window < 0 {
		window = 0
	}
	return QueuedThreat{
		ID:         uuid.NewString(),
		SourceID:   attacker.ID,
		Ability:    ab.ID,
		Kind:       ab.Kind,
		Amount:     amount,
		Critical:   critical,
		InsertedAt: now,
		Window:     window,
	}
}

// ReflectThreat rebuilds a cleared threat as a new one aimed back at its
// original source. The amount carries over unchanged; the window is re-frozen
// against the new defender.
func ReflectThreat(t QueuedThreat, reflector, target *Actor, baseWindow, now time.Duration) QueuedThreat {
	window := time.Duration(float64(baseWindow) * target.Attributes.ReactionWindowMultiplier())
	return QueuedThreat{
		ID:         uuid.NewString(),
		SourceID:   reflector.ID,
		Ability:    t.Ability,
		Kind:       t.Kind,
		Amount:     t.Amount,
		Critical:   t.Critical,
		InsertedAt: now,
		Window:     window,
	}
}

// ResolveThreat runs phase 2 against the defender and returns the damage
// actually applied. Mitigation is read from the defender's attributes at this
// moment, not at attack time.
func ResolveThreat(t QueuedThreat, defender *Actor) float64 {
	mitigation := defender.Attributes.PassiveMitigation(t.Kind)
	final := t.Amount * (1 - mitigation)
	defender.ApplyDamage(final)
	return final
}

// ResolveUnmitigated applies the threat's full frozen amount, skipping
// mitigation. This is the dismiss path.
func ResolveUnmitigated(t QueuedThreat, defender *Actor) float64 {
	defender.ApplyDamage(t.Amount)
	return t.Amount
}
