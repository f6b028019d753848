package game

import (
	"errors"
	"testing"
	"time"
)

// testStep is the controlled timestep used by engine scenario tests. The loop
// goroutine is never started; tests drive step directly for deterministic
// clocks.
const testStep = 100 * time.Millisecond

func newTestEngine() *Engine {
	return NewEngine(EngineConfig{
		TickRate:           10,
		BaseReactionWindow: time.Second,
		RespawnDelay:       time.Second,
		CombatExitDelay:    10 * time.Second,
		Seed:               1,
	})
}

func advance(e *Engine, steps int) {
	for i := 0; i < steps; i++ {
		e.mu.Lock()
		e.step(testStep)
		e.mu.Unlock()
	}
}

// plantThreat inserts a crafted threat directly into the defender's queue so
// scenarios control the exact amount landing.
func plantThreat(e *Engine, defender *Actor, sourceID string, amount float64, window time.Duration) {
	defender.Queue.Insert(QueuedThreat{
		ID:         "planted-" + defender.ID,
		SourceID:   sourceID,
		Ability:    AbilityLunge,
		Kind:       DamagePhysical,
		Amount:     amount,
		InsertedAt: e.clock,
		Window:     window,
	}, defender.Attributes.QueueCapacity())
}

func rejectReason(t *testing.T, err error) RejectReason {
	t.Helper()
	var abErr *AbilityError
	if !errors.As(err, &abErr) {
		t.Fatalf("Expected AbilityError, got %v", err)
	}
	return abErr.Reason
}

func TestStrikeQueuesThreat(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	if err := e.UseAbility(a.ID, AbilityLunge, b.ID); err != nil {
		t.Fatalf("Expected lunge to succeed, got %v", err)
	}

	if b.Queue.Len() != 1 {
		t.Fatalf("Expected 1 queued threat, got %d", b.Queue.Len())
	}
	th, _ := b.Queue.Front()
	expected := 15.0
	if th.Critical {
		expected *= CritMultiplier
	}
	if th.Amount != expected {
		t.Errorf("Expected frozen amount %v, got %v", expected, th.Amount)
	}
	if th.SourceID != a.ID {
		t.Errorf("Expected source %s, got %s", a.ID, th.SourceID)
	}
	if b.Health.Current != b.Health.Max {
		t.Error("Queued threat must not deal damage before resolution")
	}
	if a.Stamina.Current != a.Stamina.Max-20 {
		t.Errorf("Expected 20 stamina spent, got %v", a.Stamina.Current)
	}
	if a.Recovery.Ready() {
		t.Error("Expected lunge to start a lockout")
	}
	if !a.InCombat || !b.InCombat {
		t.Error("Expected both sides flagged in combat")
	}
}

// TestWindowExpiryResolves verifies an unanswered threat lands after its
// window with defender mitigation applied.
func TestWindowExpiryResolves(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	plantThreat(e, b, a.ID, 30, 500*time.Millisecond)

	advance(e, 4) // 400ms, window still open
	if b.Health.Current != b.Health.Max {
		t.Fatal("Threat resolved before its window elapsed")
	}

	advance(e, 1) // 500ms, window closes
	if b.Queue.Len() != 0 {
		t.Fatal("Expected threat removed from queue at expiry")
	}
	if got := b.Health.Max - b.Health.Current; got != 30 {
		t.Errorf("Expected 30 damage on neutral defender, got %v", got)
	}
}

// TestOverflowForcesOldest pushes a second threat into a single-slot queue
// and expects the first to resolve immediately.
func TestOverflowForcesOldest(t *testing.T) {
	e := newTestEngine()
	a1 := e.AddActor("first", ActorOptions{})
	a2 := e.AddActor("second", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	if cap := b.Attributes.QueueCapacity(); cap != 1 {
		t.Fatalf("Expected neutral defender capacity 1, got %d", cap)
	}

	if err := e.UseAbility(a1.ID, AbilityLunge, b.ID); err != nil {
		t.Fatalf("First lunge failed: %v", err)
	}
	first, _ := b.Queue.Front()

	if err := e.UseAbility(a2.ID, AbilityLunge, b.ID); err != nil {
		t.Fatalf("Second lunge failed: %v", err)
	}

	if got := b.Health.Max - b.Health.Current; got != first.Amount {
		t.Errorf("Expected forced resolution of first threat (%v damage), got %v", first.Amount, got)
	}
	if b.Queue.Len() != 1 {
		t.Fatalf("Expected queue back at capacity, got %d", b.Queue.Len())
	}
	if front, _ := b.Queue.Front(); front.SourceID != a2.ID {
		t.Errorf("Expected second attacker's threat pending, got source %s", front.SourceID)
	}
}

// TestDismissTakesFullDamage verifies dismiss skips mitigation and costs
// nothing: no resources, no lockout.
func TestDismissTakesFullDamage(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	// Heavy Vitality so mitigation would matter if it were applied
	b := e.AddActor("tough", ActorOptions{
		Attributes: Attributes{VitalityFocus: AttributePair{Axis: 127, Spectrum: 127, Shift: 127}},
	})

	plantThreat(e, b, a.ID, 100, 10*time.Second)
	before := b.Health.Current

	if err := e.UseAbility(b.ID, AbilityDismiss, ""); err != nil {
		t.Fatalf("Dismiss failed: %v", err)
	}

	if got := before - b.Health.Current; got != 100 {
		t.Errorf("Expected full unmitigated 100 damage, got %v", got)
	}
	if b.Queue.Len() != 0 {
		t.Error("Expected front threat removed")
	}
	if !b.Recovery.Ready() {
		t.Error("Dismiss must not start a lockout")
	}
	if b.Stamina.Current != b.Stamina.Max || b.Mana.Current != b.Mana.Max {
		t.Error("Dismiss must not spend resources")
	}

	// Empty-queue dismiss is a no-op, never an error
	if err := e.UseAbility(b.ID, AbilityDismiss, ""); err != nil {
		t.Errorf("Expected empty dismiss no-op, got %v", err)
	}
}

// TestDeflectClearsWithoutDamage verifies the front-clear path removes the
// threat for a resource cost instead of damage.
func TestDeflectClearsWithoutDamage(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	plantThreat(e, b, a.ID, 100, 10*time.Second)

	if err := e.UseAbility(b.ID, AbilityDeflect, ""); err != nil {
		t.Fatalf("Deflect failed: %v", err)
	}

	if b.Queue.Len() != 0 {
		t.Error("Expected threat cleared")
	}
	if b.Health.Current != b.Health.Max {
		t.Error("Cleared threats must deal no damage")
	}
	if b.Stamina.Current != b.Stamina.Max-10 {
		t.Errorf("Expected 10 stamina spent, got %v", b.Stamina.Current)
	}
	if b.Recovery.Ready() {
		t.Error("Expected deflect lockout running")
	}
}

// TestCounterReflectsThreat verifies reflection sends the frozen amount back
// at the original attacker.
func TestCounterReflectsThreat(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	plantThreat(e, b, a.ID, 40, 10*time.Second)

	if err := e.UseAbility(b.ID, AbilityCounter, ""); err != nil {
		t.Fatalf("Counter failed: %v", err)
	}

	if b.Queue.Len() != 0 || b.Health.Current != b.Health.Max {
		t.Error("Expected threat cleared from defender without damage")
	}
	if a.Queue.Len() != 1 {
		t.Fatalf("Expected reflected threat on attacker, got %d", a.Queue.Len())
	}
	back, _ := a.Queue.Front()
	if back.Amount != 40 || back.SourceID != b.ID {
		t.Errorf("Expected 40 damage from %s, got %v from %s", b.ID, back.Amount, back.SourceID)
	}
}

// TestWardClearsMagicalOnly verifies kind-targeted clearing leaves other
// threats queued.
func TestWardClearsMagicalOnly(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	// Focus commitment for queue slots
	b := e.AddActor("defender", ActorOptions{
		Attributes: Attributes{VitalityFocus: AttributePair{Axis: -5}},
	})

	b.Queue.Insert(QueuedThreat{ID: "phys", SourceID: a.ID, Kind: DamagePhysical, Amount: 10, InsertedAt: e.clock, Window: 10 * time.Second}, 4)
	b.Queue.Insert(QueuedThreat{ID: "mag1", SourceID: a.ID, Kind: DamageMagical, Amount: 10, InsertedAt: e.clock, Window: 10 * time.Second}, 4)
	b.Queue.Insert(QueuedThreat{ID: "mag2", SourceID: a.ID, Kind: DamageMagical, Amount: 10, InsertedAt: e.clock, Window: 10 * time.Second}, 4)

	if err := e.UseAbility(b.ID, AbilityWard, ""); err != nil {
		t.Fatalf("Ward failed: %v", err)
	}

	if b.Queue.Len() != 1 {
		t.Fatalf("Expected only the physical threat left, got %d", b.Queue.Len())
	}
	if front, _ := b.Queue.Front(); front.ID != "phys" {
		t.Errorf("Expected phys to survive, got %s", front.ID)
	}
	if b.Mana.Current != b.Mana.Max-20 {
		t.Errorf("Expected 20 mana spent, got %v", b.Mana.Current)
	}
}

// TestSynergyChain uses lunge, waits out half the lockout, and chains into
// overpower through the early-unlock window.
func TestSynergyChain(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	if err := e.UseAbility(a.ID, AbilityLunge, b.ID); err != nil {
		t.Fatalf("Lunge failed: %v", err)
	}

	// 1s lockout, overpower opens at 500ms remaining
	err := e.UseAbility(a.ID, AbilityOverpower, b.ID)
	if got := rejectReason(t, err); got != ReasonSynergyLocked {
		t.Fatalf("Expected synergy-locked immediately after lunge, got %s", got)
	}
	err = e.UseAbility(a.ID, AbilityKnockback, b.ID)
	if got := rejectReason(t, err); got != ReasonOnRecovery {
		t.Fatalf("Expected on-recovery for knockback, got %s", got)
	}

	advance(e, 5) // 500ms elapsed, window open

	if err := e.UseAbility(a.ID, AbilityOverpower, b.ID); err != nil {
		t.Fatalf("Expected overpower through synergy window, got %v", err)
	}
	cur := a.Recovery.Current()
	if cur == nil || cur.TriggeredBy != AbilityOverpower {
		t.Fatalf("Expected fresh overpower lockout, got %+v", cur)
	}
}

// TestRejectionChangesNothing verifies a refused request is a complete no-op.
func TestRejectionChangesNothing(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})
	a.Stamina.Current = 5

	err := e.UseAbility(a.ID, AbilityLunge, b.ID)
	if got := rejectReason(t, err); got != ReasonInsufficientStamina {
		t.Fatalf("Expected insufficient-stamina, got %s", got)
	}

	if a.Stamina.Current != 5 {
		t.Errorf("Expected stamina untouched, got %v", a.Stamina.Current)
	}
	if !a.Recovery.Ready() {
		t.Error("Expected no lockout after rejection")
	}
	if b.Queue.Len() != 0 {
		t.Error("Expected no threat queued after rejection")
	}
}

func TestUseAbilityValidation(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	if got := rejectReason(t, e.UseAbility("missing", AbilityLunge, b.ID)); got != ReasonUnknownActor {
		t.Errorf("Expected unknown-actor, got %s", got)
	}
	if got := rejectReason(t, e.UseAbility(a.ID, "fireball", b.ID)); got != ReasonUnknownAbility {
		t.Errorf("Expected unknown-ability, got %s", got)
	}
	if got := rejectReason(t, e.UseAbility(a.ID, AbilityLunge, "missing")); got != ReasonInvalidTarget {
		t.Errorf("Expected invalid-target for missing target, got %s", got)
	}
	if got := rejectReason(t, e.UseAbility(a.ID, AbilityLunge, a.ID)); got != ReasonInvalidTarget {
		t.Errorf("Expected invalid-target for self, got %s", got)
	}

	b.IsDead = true
	if got := rejectReason(t, e.UseAbility(a.ID, AbilityLunge, b.ID)); got != ReasonInvalidTarget {
		t.Errorf("Expected invalid-target for dead target, got %s", got)
	}
	if got := rejectReason(t, e.UseAbility(b.ID, AbilityLunge, a.ID)); got != ReasonDead {
		t.Errorf("Expected dead for dead caster, got %s", got)
	}
}

// TestMutualDestruction lands lethal threats on both sides in the same tick
// and expects both deaths to finalize.
func TestMutualDestruction(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("left", ActorOptions{})
	b := e.AddActor("right", ActorOptions{})
	a.Health.Current = 10
	b.Health.Current = 10

	plantThreat(e, a, b.ID, 50, 50*time.Millisecond)
	plantThreat(e, b, a.ID, 50, 50*time.Millisecond)

	advance(e, 1)

	if !a.IsDead || !b.IsDead {
		t.Fatalf("Expected mutual destruction, dead: left=%v right=%v", a.IsDead, b.IsDead)
	}
	if a.Kills != 1 || b.Kills != 1 {
		t.Errorf("Expected both credited with a kill, got %d and %d", a.Kills, b.Kills)
	}
	if a.Deaths != 1 || b.Deaths != 1 {
		t.Errorf("Expected one death each, got %d and %d", a.Deaths, b.Deaths)
	}
	if e.GetState().TotalKills != 2 {
		t.Errorf("Expected 2 total kills, got %d", e.GetState().TotalKills)
	}
}

// TestDeathClearsState verifies a finalized death drops the queue, the
// lockout, and the auto-attack target.
func TestDeathClearsState(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("killer", ActorOptions{})
	// Focus commitment gives the victim queue slots for a pending threat to
	// survive past the lethal one.
	b := e.AddActor("victim", ActorOptions{
		Attributes: Attributes{VitalityFocus: AttributePair{Axis: -5}},
	})
	lunge, _ := GetAbility(AbilityLunge)

	b.Health.Current = 10
	b.Recovery.Start(lunge)
	b.AutoTargetID = a.ID
	plantThreat(e, b, a.ID, 50, 50*time.Millisecond)
	plantThreat(e, b, a.ID, 50, 10*time.Second)

	advance(e, 1)

	if !b.IsDead {
		t.Fatal("Expected victim dead")
	}
	if b.Queue.Len() != 0 {
		t.Error("Expected pending threats cleared on death")
	}
	if !b.Recovery.Ready() {
		t.Error("Expected lockout cleared on death")
	}
	if b.AutoTargetID != "" {
		t.Error("Expected auto-attack target dropped on death")
	}
	if a.Kills != 1 {
		t.Errorf("Expected killer credited, got %d kills", a.Kills)
	}
}

// TestRespawnAfterDelay steps a dead actor past its respawn time and expects
// full pools.
func TestRespawnAfterDelay(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("victim", ActorOptions{})
	b.Health.Current = 10

	plantThreat(e, b, a.ID, 50, 50*time.Millisecond)
	advance(e, 1)
	if !b.IsDead {
		t.Fatal("Expected victim dead")
	}

	// 1s respawn delay at 100ms steps
	advance(e, 9)
	if !b.IsDead {
		t.Fatal("Expected victim still dead before respawn delay")
	}
	advance(e, 1)
	if b.IsDead {
		t.Fatal("Expected respawn after delay")
	}
	if b.Health.Current != b.Health.Max {
		t.Errorf("Expected full health after respawn, got %v", b.Health.Current)
	}
}

// TestAutoAttackCadence engages auto attack and expects strikes only when the
// cadence timer comes due.
func TestAutoAttackCadence(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	if err := e.UseAbility(a.ID, AbilityAutoAttack, b.ID); err != nil {
		t.Fatalf("Auto attack failed: %v", err)
	}
	if b.Queue.Len() != 1 {
		t.Fatalf("Expected immediate first strike, got %d threats", b.Queue.Len())
	}
	if a.AutoTargetID != b.ID {
		t.Fatal("Expected cadence target set")
	}

	// Neutral cadence is 2s; the first threat resolves at 1s, the second
	// strike lands at 2s.
	advance(e, 19)
	if b.Queue.Len() != 0 {
		t.Fatalf("Expected no pending threat before cadence, got %d", b.Queue.Len())
	}
	resolvedDamage := b.Health.Max - b.Health.Current
	if resolvedDamage <= 0 {
		t.Fatal("Expected first strike resolved by now")
	}

	advance(e, 1)
	if b.Queue.Len() != 1 {
		t.Fatalf("Expected second cadence strike at 2s, got %d threats", b.Queue.Len())
	}
}

// TestAutoAttackStopsOnTargetDeath verifies the cadence target clears once
// the target dies.
func TestAutoAttackStopsOnTargetDeath(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("victim", ActorOptions{})

	if err := e.UseAbility(a.ID, AbilityAutoAttack, b.ID); err != nil {
		t.Fatalf("Auto attack failed: %v", err)
	}
	b.Health.Current = 0
	advance(e, 2)

	if !b.IsDead {
		t.Fatal("Expected victim dead")
	}
	if a.AutoTargetID != "" {
		t.Error("Expected cadence target cleared after target death")
	}
}

func TestCombatFlagTimeout(t *testing.T) {
	e := NewEngine(EngineConfig{
		TickRate:           10,
		BaseReactionWindow: time.Second,
		RespawnDelay:       time.Second,
		CombatExitDelay:    time.Second,
		Seed:               1,
	})
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	plantThreat(e, b, a.ID, 10, 100*time.Millisecond)
	a.MarkCombat(e.clock)

	advance(e, 1) // resolution refreshes defender's combat clock
	if !b.InCombat {
		t.Fatal("Expected defender in combat after resolution")
	}

	advance(e, 10) // a full exit delay with no activity
	if a.InCombat || b.InCombat {
		t.Error("Expected combat flags dropped after idle delay")
	}
}

func TestAddActorLimitsAndReuse(t *testing.T) {
	e := NewEngine(EngineConfig{
		TickRate: 10,
		Seed:     1,
		Limits:   ResourceLimits{MaxTotalActors: 2, MaxActors: 10},
	})

	a := e.AddActor("alice", ActorOptions{})
	if a == nil {
		t.Fatal("Expected first join to succeed")
	}
	if again := e.AddActor("alice", ActorOptions{}); again != a {
		t.Error("Expected same-name join to return the existing actor")
	}

	if e.AddActor("bob", ActorOptions{}) == nil {
		t.Fatal("Expected second join to succeed")
	}
	if e.AddActor("carol", ActorOptions{}) != nil {
		t.Error("Expected join above the actor cap to be rejected")
	}

	// A dead actor rejoining by name respawns instead of duplicating
	a.Health.Current = 0
	a.IsDead = true
	back := e.AddActor("alice", ActorOptions{})
	if back != a || back.IsDead || back.Health.Current != back.Health.Max {
		t.Error("Expected rejoin to respawn the dead actor")
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("attacker", ActorOptions{})
	b := e.AddActor("defender", ActorOptions{})

	if err := e.UseAbility(a.ID, AbilityLunge, b.ID); err != nil {
		t.Fatalf("Lunge failed: %v", err)
	}
	advance(e, 1)

	snap := e.GetSnapshot()
	if snap == nil {
		t.Fatal("Expected a published snapshot")
	}
	if snap.ActorCount != 2 || snap.AliveCount != 2 {
		t.Errorf("Expected 2 actors alive, got count=%d alive=%d", snap.ActorCount, snap.AliveCount)
	}
	if snap.PendingThreats != 1 {
		t.Errorf("Expected 1 pending threat, got %d", snap.PendingThreats)
	}
	if snap.TickNumber != 1 {
		t.Errorf("Expected tick 1, got %d", snap.TickNumber)
	}

	var defSnap *ActorSnapshot
	for i := range snap.Actors {
		if snap.Actors[i].ID == b.ID {
			defSnap = &snap.Actors[i]
		}
	}
	if defSnap == nil {
		t.Fatal("Expected defender in snapshot")
	}
	if defSnap.ThreatCount != 1 {
		t.Fatalf("Expected 1 snapshotted threat, got %d", defSnap.ThreatCount)
	}
	if defSnap.Threats[0].SourceID != a.ID {
		t.Errorf("Expected threat source %s, got %s", a.ID, defSnap.Threats[0].SourceID)
	}

	var atkSnap *ActorSnapshot
	for i := range snap.Actors {
		if snap.Actors[i].ID == a.ID {
			atkSnap = &snap.Actors[i]
		}
	}
	if atkSnap == nil || !atkSnap.HasRecovery {
		t.Fatal("Expected attacker's lockout in snapshot")
	}
	if atkSnap.Recovery.Ability != string(AbilityLunge) {
		t.Errorf("Expected lunge recovery, got %s", atkSnap.Recovery.Ability)
	}
	if atkSnap.SynergyCount != 1 || atkSnap.Synergies[0].Ability != string(AbilityOverpower) {
		t.Error("Expected the overpower unlock window in snapshot")
	}
}

func TestGetStateSortsByKills(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("alpha", ActorOptions{})
	b := e.AddActor("beta", ActorOptions{})
	c := e.AddActor("gamma", ActorOptions{})
	b.Kills = 5
	c.Kills = 2

	state := e.GetState()
	if state.ActorCount != 3 || state.AliveCount != 3 {
		t.Fatalf("Expected 3 alive actors, got %+v", state)
	}
	if state.Actors[0] != b || state.Actors[1] != c || state.Actors[2] != a {
		t.Error("Expected actors sorted by kills descending, then name")
	}
}

// TestLeaderboardTracksKills verifies finalized deaths reorder the ranking.
func TestLeaderboardTracksKills(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("hunter", ActorOptions{})
	b := e.AddActor("prey", ActorOptions{})
	c := e.AddActor("bystander", ActorOptions{})

	if e.board.Length() != 3 {
		t.Fatalf("Expected 3 ranked actors at join, got %d", e.board.Length())
	}

	b.Health.Current = 10
	plantThreat(e, b, a.ID, 50, 50*time.Millisecond)
	advance(e, 1)

	top := e.TopRanked(10)
	if len(top) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(top))
	}
	if top[0].ActorID != a.ID {
		t.Errorf("Expected killer ranked first, got %s", top[0].ActorID)
	}
	if top[len(top)-1].ActorID != b.ID {
		t.Errorf("Expected victim ranked last, got %s", top[len(top)-1].ActorID)
	}
	if e.ActorRank(a.ID) != 1 {
		t.Errorf("Expected killer rank 1, got %d", e.ActorRank(a.ID))
	}
	if score, ok := e.board.Score(b.ID); !ok || score >= 0 {
		t.Errorf("Expected victim penalized below zero, got %v ok=%v", score, ok)
	}

	e.RemoveActor(c.ID)
	if e.board.Length() != 2 {
		t.Errorf("Expected leave to drop the ranking, got %d", e.board.Length())
	}
}

func TestRemoveActor(t *testing.T) {
	e := newTestEngine()
	a := e.AddActor("leaver", ActorOptions{})

	e.RemoveActor(a.ID)

	if e.GetActor(a.ID) != nil {
		t.Error("Expected actor gone by ID")
	}
	if e.GetActorByName("leaver") != nil {
		t.Error("Expected actor gone by name")
	}
	if fresh := e.AddActor("leaver", ActorOptions{}); fresh == nil || fresh == a {
		t.Error("Expected the name freed for a fresh actor")
	}
}
