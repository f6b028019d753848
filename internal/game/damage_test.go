package game

import (
	"math/rand"
	"testing"
	"time"
)

func TestGenerateThreatNeutral(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	attacker := NewActor("attacker", ActorOptions{})
	defender := NewActor("defender", ActorOptions{})
	ab, _ := GetAbility(AbilityLunge)

	th := GenerateThreat(rng, attacker, defender, ab, 3*time.Second, 7*time.Second)

	// Neutral builds multiply by exactly 1.0; only the crit roll can change
	// the frozen amount.
	expected := ab.BaseDamage
	if th.Critical {
		expected *= CritMultiplier
	}
	if th.Amount != expected {
		t.Errorf("Expected frozen amount %v (critical=%v), got %v", expected, th.Critical, th.Amount)
	}
	if th.Window != 3*time.Second {
		t.Errorf("Expected window 3s for neutral defender, got %v", th.Window)
	}
	if th.InsertedAt != 7*time.Second {
		t.Errorf("Expected InsertedAt 7s, got %v", th.InsertedAt)
	}
	if th.SourceID != attacker.ID {
		t.Errorf("Expected source %s, got %s", attacker.ID, th.SourceID)
	}
	if th.Ability != AbilityLunge || th.Kind != DamagePhysical {
		t.Errorf("Expected lunge/physical, got %s/%s", th.Ability, th.Kind)
	}
	if th.ID == "" {
		t.Error("Expected a generated threat ID")
	}
}

// TestGenerateThreatWindowScales verifies the defender's window multiplier is
// frozen into the threat at generation.
func TestGenerateThreatWindowScales(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	attacker := NewActor("attacker", ActorOptions{})
	quick := NewActor("quick", ActorOptions{
		Attributes: Attributes{InstinctPresence: AttributePair{Axis: 20}},
	})
	ab, _ := GetAbility(AbilityAutoAttack)

	th := GenerateThreat(rng, attacker, quick, ab, 3*time.Second, 0)

	scale := quick.Attributes.ReactionWindowMultiplier()
	if scale <= 1.0 {
		t.Fatalf("Expected instinct build to widen the window, multiplier %v", scale)
	}
	expected := time.Duration(float64(3*time.Second) * scale)
	if th.Window != expected {
		t.Errorf("Expected window %v, got %v", expected, th.Window)
	}
}

func TestResolveThreatAppliesMitigation(t *testing.T) {
	// Enough Vitality to pin mitigation at the cap
	tough := NewActor("tough", ActorOptions{
		Attributes: Attributes{VitalityFocus: AttributePair{Axis: 127, Spectrum: 127, Shift: 127}},
	})
	before := tough.Health.Current

	th := QueuedThreat{ID: "t0", Kind: DamagePhysical, Amount: 100}
	final := ResolveThreat(th, tough)

	if final != 25 {
		t.Errorf("Expected 25 damage through capped mitigation, got %v", final)
	}
	if got := before - tough.Health.Current; got != 25 {
		t.Errorf("Expected health reduced by 25, got %v", got)
	}
}

func TestResolveUnmitigatedSkipsMitigation(t *testing.T) {
	tough := NewActor("tough", ActorOptions{
		Attributes: Attributes{VitalityFocus: AttributePair{Axis: 127, Spectrum: 127, Shift: 127}},
	})
	before := tough.Health.Current

	th := QueuedThreat{ID: "t0", Kind: DamagePhysical, Amount: 100}
	final := ResolveUnmitigated(th, tough)

	if final != 100 {
		t.Errorf("Expected full 100 damage on dismiss, got %v", final)
	}
	if got := before - tough.Health.Current; got != 100 {
		t.Errorf("Expected health reduced by 100, got %v", got)
	}
}

// TestReflectThreatCarriesAmount verifies reflection keeps the frozen amount
// and crit flag but re-freezes the window for the new defender.
func TestReflectThreatCarriesAmount(t *testing.T) {
	reflector := NewActor("reflector", ActorOptions{})
	original := NewActor("original", ActorOptions{})

	th := QueuedThreat{
		ID:       "t0",
		SourceID: original.ID,
		Ability:  AbilityOverpower,
		Kind:     DamagePhysical,
		Amount:   60,
		Critical: true,
	}
	back := ReflectThreat(th, reflector, original, 3*time.Second, 5*time.Second)

	if back.Amount != 60 || !back.Critical {
		t.Errorf("Expected amount 60 critical carried over, got %v critical=%v", back.Amount, back.Critical)
	}
	if back.SourceID != reflector.ID {
		t.Errorf("Expected reflector as source, got %s", back.SourceID)
	}
	if back.ID == th.ID {
		t.Error("Expected a fresh threat ID on reflection")
	}
	if back.InsertedAt != 5*time.Second || back.Window != 3*time.Second {
		t.Errorf("Expected window re-frozen at reflection time, got inserted=%v window=%v", back.InsertedAt, back.Window)
	}
}

// TestCritDeterministicWithSeed verifies the same seed produces the same crit
// sequence.
func TestCritDeterministicWithSeed(t *testing.T) {
	attacker := NewActor("attacker", ActorOptions{
		Attributes: Attributes{InstinctPresence: AttributePair{Axis: 50}},
	})
	defender := NewActor("defender", ActorOptions{})
	ab, _ := GetAbility(AbilityAutoAttack)

	roll := func() []bool {
		rng := rand.New(rand.NewSource(99))
		out := make([]bool, 20)
		for i := range out {
			out[i] = GenerateThreat(rng, attacker, defender, ab, time.Second, 0).Critical
		}
		return out
	}

	first, second := roll(), roll()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Crit sequence diverged at roll %d with identical seeds", i)
		}
	}
}
