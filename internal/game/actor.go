package game

import (
	"time"

	"github.com/google/uuid"
)

// Pool is a bounded resource with flat per-second regeneration.
type Pool struct {
	Current float64
	Max     float64
	Regen   float64 // per second, 0 disables regen
}

// Tick applies regeneration for the elapsed duration, clamped at Max.
func (p *Pool) Tick(dt time.Duration) {
	if p.Regen <= 0 || p.Current >= p.Max {
		return
	}
	p.Current += p.Regen * dt.Seconds()
	if p.Current > p.Max {
		p.Current = p.Max
	}
}

// Spend deducts amount if fully available. Partial spends never happen.
func (p *Pool) Spend(amount float64) bool {
	if amount > p.Current {
		return false
	}
	p.Current -= amount
	return true
}

// Refill restores the pool to Max.
func (p *Pool) Refill() {
	p.Current = p.Max
}

// ActorOptions carries optional spawn parameters.
type ActorOptions struct {
	Attributes Attributes
}

// Actor is one combatant's full server-side record. All fields are owned by
// the engine and mutated only under its lock.
type Actor struct {
	ID   string
	Name string

	Attributes Attributes

	Health  Pool
	Stamina Pool
	Mana    Pool

	Queue    *ReactionQueue
	Recovery RecoveryState

	IsDead    bool
	RespawnAt time.Duration // engine clock, valid while IsDead

	InCombat     bool
	LastCombatAt time.Duration

	// Auto attack cadence state
	AutoTargetID string
	NextAutoAt   time.Duration

	// lastHitBy credits the killer when deaths are finalized.
	lastHitBy string

	Kills  int
	Deaths int
}

// NewActor creates a spawned actor with pools at their derived maxima.
func NewActor(name string, opts ActorOptions) *Actor {
	attrs := opts.Attributes
	a := &Actor{
		ID:         uuid.NewString(),
		Name:       name,
		Attributes: attrs,
		Health:     Pool{Max: attrs.MaxHealth()},
		Stamina:    Pool{Max: attrs.MaxStamina(), Regen: StaminaRegenPerSecond},
		Mana:       Pool{Max: attrs.MaxMana(), Regen: ManaRegenPerSecond},
		Queue:      NewReactionQueue(),
	}
	a.Health.Refill()
	a.Stamina.Refill()
	a.Mana.Refill()
	return a
}

// TickPools regenerates stamina and mana. Health has no passive regen.
func (a *Actor) TickPools(dt time.Duration) {
	a.Stamina.Tick(dt)
	a.Mana.Tick(dt)
}

// ApplyDamage reduces health, clamped at zero. Death is not finalized here;
// the engine evaluates deaths after all resolutions in the tick so mutual
// destruction lands symmetrically.
func (a *Actor) ApplyDamage(amount float64) {
	if amount <= 0 {
		return
	}
	a.Health.Current -= amount
	if a.Health.Current < 0 {
		a.Health.Current = 0
	}
}

// Heal restores health up to the derived maximum. Dead actors stay dead.
func (a *Actor) Heal(amount float64) {
	if a.IsDead || amount <= 0 {
		return
	}
	a.Health.Current += amount
	if a.Health.Current > a.Health.Max {
		a.Health.Current = a.Health.Max
	}
}

// MarkCombat flags the actor as in combat at the given clock.
func (a *Actor) MarkCombat(now time.Duration) {
	a.InCombat = true
	a.LastCombatAt = now
}

// Respawn brings a dead actor back with full pools, an empty queue, and no
// lockout.
func (a *Actor) Respawn() {
	a.IsDead = false
	a.Health.Refill()
	a.Stamina.Refill()
	a.Mana.Refill()
	a.Queue.ClearAll()
	a.Recovery.Reset()
	a.InCombat = false
	a.AutoTargetID = ""
	a.lastHitBy = ""
}

// ToJSON returns the API representation of the actor.
func (a *Actor) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"id":            a.ID,
		"name":          a.Name,
		"health":        a.Health.Current,
		"maxHealth":     a.Health.Max,
		"stamina":       a.Stamina.Current,
		"maxStamina":    a.Stamina.Max,
		"mana":          a.Mana.Current,
		"maxMana":       a.Mana.Max,
		"queueCapacity": a.Attributes.QueueCapacity(),
		"queueLen":      a.Queue.Len(),
		"isDead":        a.IsDead,
		"inCombat":      a.InCombat,
		"kills":         a.Kills,
		"deaths":        a.Deaths,
	}
}
